package script

import (
	"strings"
	"testing"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindComment, "Comment"},
		{KindThinking, "Thinking"},
		{KindDialogue, "Dialogue"},
		{KindManualCode, "ManualCode"},
		{KindIfElse, "IfElse"},
		{KindBranch, "Branch"},
		{KindOverflowChain, "OverflowChain"},
		{Kind(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestDump(t *testing.T) {
	nodes := []Parseable{
		&Thinking{Node: Node{ID: 1, Span: Span{First: 1, Last: 1}}, Text: "hm"},
		&IfElse{
			Node:      Node{ID: 2, Span: Span{First: 2, Last: 6}},
			Condition: "saw_her",
			Then: []Parseable{
				&Dialogue{Node: Node{ID: 3, Span: Span{First: 3, Last: 3}}, Speaker: "Alex", Text: "Hello!"},
			},
			Else: []Parseable{
				&Dialogue{Node: Node{ID: 4, Span: Span{First: 5, Last: 5}}, Speaker: "Alex", Text: "Nobody's home."},
			},
		},
	}

	dump := Dump(nodes)

	for _, want := range []string{
		"Thinking #1 [1-1] hm",
		"IfElse #2 [2-6] if saw_her",
		"  Dialogue #3 [3-3] Alex: Hello!",
		"else",
		"  Dialogue #4 [5-5] Alex: Nobody's home.",
	} {
		if !strings.Contains(dump, want) {
			t.Errorf("dump missing %q:\n%s", want, dump)
		}
	}
}

func TestLineOf(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{&ClassifyError{Line: 7, Message: "x"}, 7},
		{&OverflowError{Line: 3, Word: "w", Budget: 10}, 3},
		{&EmptyBranchError{Line: 12}, 12},
		{nil, 0},
	}
	for _, tt := range tests {
		if got := LineOf(tt.err); got != tt.want {
			t.Errorf("LineOf(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
