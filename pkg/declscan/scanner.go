package declscan

import "strings"

// Locator finds the line a suppression annotation should attach to.
// The regex-based Scanner is the default implementation; a real
// per-language lexer can be substituted without touching the suppression
// merge logic.
type Locator interface {
	FindEnclosingDeclarationStart(lines []string, fromLine int) int
}

// Scanner is the lexical Locator for one Language.
type Scanner struct {
	lang Language
}

// NewScanner creates a Scanner for the given language.
func NewScanner(lang Language) *Scanner {
	return &Scanner{lang: lang}
}

// FindEnclosingDeclarationStart scans lines [0, fromLine] top-down and
// returns the last line matching the declaration pattern outside
// comments and string literals — the nearest declaration preceding
// fromLine. Returns 0 when no declaration line is found.
func (s *Scanner) FindEnclosingDeclarationStart(lines []string, fromLine int) int {
	if fromLine >= len(lines) {
		fromLine = len(lines) - 1
	}

	best := 0
	inBlockComment := false

	for i := 0; i <= fromLine; i++ {
		line := lines[i]
		hasStart := strings.Contains(line, s.lang.BlockCommentStart)
		hasEnd := strings.Contains(line, s.lang.BlockCommentEnd)

		switch {
		case inBlockComment:
			if hasEnd {
				inBlockComment = false
			}
			continue
		case hasStart && !hasEnd:
			inBlockComment = true
			continue
		case s.lang.LineComment.MatchString(line):
			continue
		case hasStart && hasEnd:
			continue
		}

		loc := s.lang.Declaration.FindStringIndex(line)
		if loc == nil {
			continue
		}
		if insideStringLiteral(line, loc[0], s.lang.Quote) {
			continue
		}
		best = i
	}

	return best
}

// insideStringLiteral reports whether the character at idx sits inside a
// quoted string, judged by the parity of unescaped quotes before it.
func insideStringLiteral(line string, idx int, quote byte) bool {
	count := 0
	for i := 0; i < idx; i++ {
		if line[i] != quote {
			continue
		}
		if i > 0 && line[i-1] == '\\' {
			continue
		}
		count++
	}
	return count%2 == 1
}
