package parser

import (
	"strings"

	"github.com/dhamidi/dlg/script"
)

// SplitText splits text into the minimum number of segments of at most
// budget characters, greedily left to right, cutting only at word
// boundaries. A single word longer than the budget cannot be split and
// yields an OverflowError (with the line left for the caller to fill in).
func SplitText(text string, budget int) ([]string, error) {
	rest := []rune(strings.TrimSpace(text))
	var segments []string
	for len(rest) > budget {
		cut := -1
		for i := budget; i >= 0; i-- {
			if rest[i] == ' ' {
				cut = i
				break
			}
		}
		if cut <= 0 {
			return nil, &script.OverflowError{Word: firstWord(rest), Budget: budget}
		}
		segments = append(segments, strings.TrimRight(string(rest[:cut]), " "))
		for cut < len(rest) && rest[cut] == ' ' {
			cut++
		}
		rest = rest[cut:]
	}
	return append(segments, string(rest)), nil
}

func firstWord(runes []rune) string {
	for i, r := range runes {
		if r == ' ' {
			return string(runes[:i])
		}
	}
	return string(runes)
}
