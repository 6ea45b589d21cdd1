package script

// Line is one cleaned input line, ready for classification.
// Number is the 1-based line number in the original file, kept for
// diagnostics after blank lines have been dropped.
type Line struct {
	Text   string
	Number int
}

// Span is the contiguous range of source lines a node was built from.
type Span struct {
	First int
	Last  int
}
