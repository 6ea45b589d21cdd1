package parser

import (
	"strings"

	"github.com/dhamidi/dlg/script"
)

// The classifier works on single cleaned lines plus an unmatched-delimiter
// scan for block extents. There is no grammar; every kind is recognizable
// from its first line.

func isDirective(text, name string) bool {
	if !strings.HasPrefix(text, "*"+name) {
		return false
	}
	rest := text[len(name)+1:]
	return rest == "" || rest[0] == ' '
}

func isIf(text string) bool      { return isDirective(text, "if") }
func isChoice(text string) bool  { return isDirective(text, "choice") }
func isOption(text string) bool  { return isDirective(text, "option") }
func isElse(text string) bool    { return text == "*else" }
func isEnd(text string) bool     { return text == "*end" }
func isComment(text string) bool { return strings.HasPrefix(text, "(") && strings.HasSuffix(text, ")") }
func isManual(text string) bool  { return strings.HasPrefix(text, "{") }

// blockExtent finds the *end matching the opener at lines[open], counting
// nested *if and *choice blocks. It also records the first *else belonging
// to the opener. A missing terminator is a classification error.
func blockExtent(lines []script.Line, open int) (elseIdx, endIdx int, err error) {
	depth := 0
	elseIdx = -1
	for i := open + 1; i < len(lines); i++ {
		text := lines[i].Text
		switch {
		case isIf(text) || isChoice(text):
			depth++
		case isEnd(text):
			if depth == 0 {
				return elseIdx, i, nil
			}
			depth--
		case isElse(text):
			if depth == 0 {
				if elseIdx >= 0 {
					return -1, -1, &script.ClassifyError{
						Line:    lines[i].Number,
						Text:    text,
						Message: "duplicate *else in the same *if",
					}
				}
				elseIdx = i
			}
		}
	}
	return -1, -1, &script.ClassifyError{
		Line:    lines[open].Number,
		Text:    lines[open].Text,
		Message: "unterminated block, missing *end",
	}
}

// optionStarts returns the indices of the depth-0 *option lines between a
// *choice opener and its matching *end.
func optionStarts(lines []script.Line, open, end int) []int {
	var starts []int
	depth := 0
	for i := open + 1; i < end; i++ {
		text := lines[i].Text
		switch {
		case isIf(text) || isChoice(text):
			depth++
		case isEnd(text):
			depth--
		case isOption(text) && depth == 0:
			starts = append(starts, i)
		}
	}
	return starts
}
