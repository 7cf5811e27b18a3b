// Package declscan locates the nearest enclosing declaration above a
// source line so suppression annotations can be placed, skipping
// comments and string literals. It is a bounded lexical heuristic, not a
// parser: regexes plus quote parity, correct for single-line comments
// and strings but blind to multi-line string literals.
package declscan

import "regexp"

// Language bundles the lexical patterns the scanner needs for one
// source language.
type Language struct {
	// ID is the editor language identifier, e.g. "apex" or "java".
	ID string

	// LineComment matches a line that is entirely a line comment.
	LineComment *regexp.Regexp

	// BlockCommentStart and BlockCommentEnd delimit block comments.
	BlockCommentStart string
	BlockCommentEnd   string

	// Declaration matches a line containing a type declaration keyword.
	Declaration *regexp.Regexp

	// Suppression matches an existing suppression annotation line; the
	// first capture group is the comma-separated rule list.
	Suppression *regexp.Regexp

	// Quote is the string-literal quote character used for quote-parity
	// checks and for formatting new annotations.
	Quote byte
}

// Apex returns the lexical configuration for Apex source files.
func Apex() Language {
	return Language{
		ID:                "apex",
		LineComment:       regexp.MustCompile(`^\s*//`),
		BlockCommentStart: "/*",
		BlockCommentEnd:   "*/",
		Declaration:       regexp.MustCompile(`\b(?:class|interface|enum|trigger)\b`),
		Suppression:       regexp.MustCompile(`(?i)^\s*@SuppressWarnings\(\s*'([^']*)'\s*\)`),
		Quote:             '\'',
	}
}

// Java returns the lexical configuration for Java source files.
func Java() Language {
	return Language{
		ID:                "java",
		LineComment:       regexp.MustCompile(`^\s*//`),
		BlockCommentStart: "/*",
		BlockCommentEnd:   "*/",
		Declaration:       regexp.MustCompile(`\b(?:class|interface|enum|record)\b`),
		Suppression:       regexp.MustCompile(`^\s*@SuppressWarnings\(\s*"([^"]*)"\s*\)`),
		Quote:             '"',
	}
}

// ForLanguageID returns the Language for an editor language id.
// Unsupported languages return false; callers then have no suppression
// available for the document.
func ForLanguageID(id string) (Language, bool) {
	switch id {
	case "apex":
		return Apex(), true
	case "java":
		return Java(), true
	default:
		return Language{}, false
	}
}
