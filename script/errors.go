package script

import (
	"errors"
	"fmt"
)

// ClassifyError reports a line no Parseable kind matches, or a block
// construct whose terminator was never found. Fatal for the whole file.
type ClassifyError struct {
	Line    int
	Text    string
	Message string
}

func (e *ClassifyError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Message, e.Text)
}

// OverflowError reports a single word longer than the display budget.
// Splitting never breaks inside a word, so such text cannot be emitted.
type OverflowError struct {
	Line   int
	Word   string
	Budget int
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("line %d: word %q exceeds the display budget of %d characters", e.Line, e.Word, e.Budget)
}

// EmptyBranchError reports a choice construct with no options.
type EmptyBranchError struct {
	Line int
}

func (e *EmptyBranchError) Error() string {
	return fmt.Sprintf("line %d: choice has no options", e.Line)
}

// LineOf returns the 1-based source line an error refers to, or 0 when the
// error carries no position.
func LineOf(err error) int {
	var classify *ClassifyError
	if errors.As(err, &classify) {
		return classify.Line
	}
	var overflow *OverflowError
	if errors.As(err, &overflow) {
		return overflow.Line
	}
	var empty *EmptyBranchError
	if errors.As(err, &empty) {
		return empty.Line
	}
	return 0
}
