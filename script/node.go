package script

import (
	"fmt"
	"strings"
)

type Kind int

const (
	KindComment Kind = iota
	KindThinking
	KindDialogue
	KindManualCode
	KindIfElse
	KindBranch
	KindOverflowChain
)

var kindNames = map[Kind]string{
	KindComment:       "Comment",
	KindThinking:      "Thinking",
	KindDialogue:      "Dialogue",
	KindManualCode:    "ManualCode",
	KindIfElse:        "IfElse",
	KindBranch:        "Branch",
	KindOverflowChain: "OverflowChain",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Parseable is one node of the parsed script tree. Nodes are created by the
// parser, immutable afterwards, and consumed exactly once by the emitter.
// Child sequences are exclusively owned by their parent; the structure is a
// tree by construction.
type Parseable interface {
	NodeID() int
	NodeKind() Kind
	NodeSpan() Span
}

// Node carries the attributes every Parseable shares: a generation-order id
// (assigned once, never reused) and the source line range.
type Node struct {
	ID   int
	Span Span
}

func (n Node) NodeID() int    { return n.ID }
func (n Node) NodeSpan() Span { return n.Span }

// Comment is an inert annotation; it never becomes executable code.
type Comment struct {
	Node
	Text string
}

// Thinking is text the player thinks to themselves. The speaker is implicit.
type Thinking struct {
	Node
	Text string
}

// Dialogue is a line spoken by a named character.
type Dialogue struct {
	Node
	Speaker string
	Text    string
}

// ManualCode is target code passed through verbatim. By convention it ends
// with its own control transfer; the emitter appends nothing.
type ManualCode struct {
	Node
	Raw string
}

// IfElse branches on a raw condition expression. Else may be empty.
type IfElse struct {
	Node
	Condition string
	Then      []Parseable
	Else      []Parseable
}

// Option is one selectable entry of a Branch. Condition is empty when the
// option is always available.
type Option struct {
	Label     string
	Condition string
	Body      []Parseable
}

// Branch presents the player a set of options. It always has at least one;
// when several unconditional options qualify they display in declaration
// order.
type Branch struct {
	Node
	Options []Option
}

// Segment is one display screen of an OverflowChain. An empty Speaker marks
// player thought.
type Segment struct {
	Speaker string
	Text    string
}

// OverflowChain replaces a Thinking or Dialogue whose text exceeded the
// display budget. It behaves as a single leaf to any containing construct
// but emits one linked screen per segment. Always at least two segments.
type OverflowChain struct {
	Node
	Segments []Segment
}

func (Comment) NodeKind() Kind       { return KindComment }
func (Thinking) NodeKind() Kind      { return KindThinking }
func (Dialogue) NodeKind() Kind      { return KindDialogue }
func (ManualCode) NodeKind() Kind    { return KindManualCode }
func (IfElse) NodeKind() Kind        { return KindIfElse }
func (Branch) NodeKind() Kind        { return KindBranch }
func (OverflowChain) NodeKind() Kind { return KindOverflowChain }

// Dump renders the node sequence as an indented tree, one node per line.
func Dump(nodes []Parseable) string {
	var sb strings.Builder
	dumpSeq(&sb, nodes, 0)
	return sb.String()
}

func dumpSeq(sb *strings.Builder, nodes []Parseable, indent int) {
	for _, n := range nodes {
		dumpNode(sb, n, indent)
	}
}

func dumpNode(sb *strings.Builder, n Parseable, indent int) {
	prefix := strings.Repeat("  ", indent)
	span := n.NodeSpan()
	fmt.Fprintf(sb, "%s%s #%d [%d-%d]", prefix, n.NodeKind(), n.NodeID(), span.First, span.Last)

	switch node := n.(type) {
	case *Comment:
		fmt.Fprintf(sb, " %s\n", node.Text)
	case *Thinking:
		fmt.Fprintf(sb, " %s\n", node.Text)
	case *Dialogue:
		fmt.Fprintf(sb, " %s: %s\n", node.Speaker, node.Text)
	case *ManualCode:
		fmt.Fprintf(sb, " {%s}\n", node.Raw)
	case *IfElse:
		fmt.Fprintf(sb, " if %s\n", node.Condition)
		dumpSeq(sb, node.Then, indent+1)
		if len(node.Else) > 0 {
			fmt.Fprintf(sb, "%selse\n", prefix)
			dumpSeq(sb, node.Else, indent+1)
		}
	case *Branch:
		sb.WriteString("\n")
		for _, opt := range node.Options {
			if opt.Condition != "" {
				fmt.Fprintf(sb, "%soption %s ? %s\n", prefix+"  ", opt.Label, opt.Condition)
			} else {
				fmt.Fprintf(sb, "%soption %s\n", prefix+"  ", opt.Label)
			}
			dumpSeq(sb, opt.Body, indent+2)
		}
	case *OverflowChain:
		fmt.Fprintf(sb, " %d segments\n", len(node.Segments))
	default:
		sb.WriteString("\n")
	}
}
