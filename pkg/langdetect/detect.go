// Package langdetect resolves the editor language id of a source file,
// used to pick the right suppression-annotation convention. It combines
// extension lookup with go-enry content classification.
package langdetect

import (
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Language ids as editor hosts label them.
const (
	LangApex       = "apex"
	LangJava       = "java"
	LangJavaScript = "javascript"
	LangUnknown    = ""
)

// apexExtensions are Salesforce source extensions go-enry maps to Apex.
var apexExtensions = map[string]bool{
	".cls":     true,
	".trigger": true,
	".apex":    true,
}

// DetectFile returns the language id for a file path and its content.
// Returns LangUnknown when neither the extension nor the content is
// conclusive; callers then have no suppression convention available.
func DetectFile(path string, content []byte) string {
	ext := strings.ToLower(filepath.Ext(path))
	if apexExtensions[ext] {
		return LangApex
	}

	if lang, safe := enry.GetLanguageByExtension(path); safe {
		return normalize(lang)
	}

	if len(content) == 0 {
		return LangUnknown
	}

	candidates := []string{"Apex", "Java", "JavaScript", "TypeScript"}
	if lang, safe := enry.GetLanguageByClassifier(content, candidates); safe && lang != "" {
		return normalize(lang)
	}

	return LangUnknown
}

// normalize maps go-enry language names to editor language ids.
func normalize(enryName string) string {
	switch strings.ToLower(enryName) {
	case "apex":
		return LangApex
	case "java":
		return LangJava
	case "javascript", "typescript":
		return LangJavaScript
	default:
		return LangUnknown
	}
}
