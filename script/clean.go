package script

import "strings"

// characters the target runtime cannot display, mapped to safe equivalents
var replacements = strings.NewReplacer(
	"“", "\"", // left curly quote
	"”", "\"", // right curly quote
	"‘", "'",
	"’", "'",
	"…", "...",
	"—", "--",
)

// directives writers tend to capitalize; the classifier only matches the
// lowercase forms
var directiveFixes = strings.NewReplacer(
	"*If", "*if",
	"*Else", "*else",
	"*End", "*end",
	"*Choice", "*choice",
	"*Option", "*option",
)

// Clean normalizes raw file lines into the form the classifier consumes:
// surrounding whitespace trimmed, blank lines dropped, curly quotes and
// ellipses replaced, directive keywords case-folded. Line numbers refer to
// the raw input.
func Clean(raw []string) []Line {
	cleaned := make([]Line, 0, len(raw))
	for i, text := range raw {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		text = replacements.Replace(text)
		if strings.HasPrefix(text, "*") {
			text = directiveFixes.Replace(text)
		}
		cleaned = append(cleaned, Line{Text: text, Number: i + 1})
	}
	return cleaned
}
