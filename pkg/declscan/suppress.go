package declscan

import "strings"

// suppressionEntryPrefix namespaces rule entries inside annotations, as
// the scanning engines expect them.
const suppressionEntryPrefix = "PMD."

// SuppressionAction says what edit, if any, places the suppression.
type SuppressionAction int

const (
	// SuppressionNone means the rule is already suppressed; no edit.
	SuppressionNone SuppressionAction = iota

	// SuppressionReplaceLine rewrites an existing annotation line.
	SuppressionReplaceLine

	// SuppressionInsertLine inserts a new annotation line before Line.
	SuppressionInsertLine
)

// SuppressionEdit is the single-line edit that suppresses a rule at a
// declaration.
type SuppressionEdit struct {
	Action SuppressionAction

	// Line is the line to replace, or to insert before.
	Line int

	// Text is the full new line content. Empty when Action is
	// SuppressionNone.
	Text string
}

// SuppressionFor computes the edit that suppresses rule for the
// declaration starting at declLine.
//
// The line immediately above the declaration is checked for an existing
// annotation. If the rule is already listed there, no edit is needed; if
// the annotation exists without the rule, it is rewritten with the rule
// appended, preserving the existing entries and quoting; otherwise a new
// annotation line is inserted before the declaration, indented to match
// it.
func (l Language) SuppressionFor(lines []string, declLine int, rule string) SuppressionEdit {
	entry := suppressionEntryPrefix + rule

	if declLine > 0 {
		above := lines[declLine-1]
		if m := l.Suppression.FindStringSubmatchIndex(above); m != nil {
			existing := above[m[2]:m[3]]
			if containsEntry(existing, entry) {
				return SuppressionEdit{Action: SuppressionNone}
			}
			merged := existing + "," + entry
			if existing == "" {
				merged = entry
			}
			return SuppressionEdit{
				Action: SuppressionReplaceLine,
				Line:   declLine - 1,
				Text:   above[:m[2]] + merged + above[m[3]:],
			}
		}
	}

	annotation := l.NewAnnotation(entry)
	if annotation == "" {
		return SuppressionEdit{Action: SuppressionNone}
	}
	indent := leadingWhitespace(lines[declLine])
	return SuppressionEdit{
		Action: SuppressionInsertLine,
		Line:   declLine,
		Text:   indent + annotation,
	}
}

// NewAnnotation formats a fresh suppression annotation carrying one
// entry, using the language's quoting convention. Languages without a
// known convention return the empty string, signaling that no
// suppression is available.
func (l Language) NewAnnotation(entry string) string {
	switch l.ID {
	case "apex":
		return "@SuppressWarnings('" + entry + "')"
	case "java":
		return `@SuppressWarnings("` + entry + `")`
	default:
		return ""
	}
}

func containsEntry(list, entry string) bool {
	for part := range strings.SplitSeq(list, ",") {
		if strings.EqualFold(strings.TrimSpace(part), entry) {
			return true
		}
	}
	return false
}

func leadingWhitespace(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}
