package gml

import (
	"fmt"
	"strings"

	"github.com/dhamidi/dlg/script"
)

// EndLabel is the successor of the last top-level node; the generated
// script leaves the conversation when control reaches it.
const EndLabel = "case_end"

const (
	DefaultRowLength  = 85
	DefaultPlayerName = "global.name"

	rowSpacing        = 40
	optionSpacingFew  = 60 // up to three options on screen
	optionSpacingMany = 40
)

// Block is one unit of emitted code, addressable by a unique label.
type Block struct {
	Label string
	Code  string
}

type Option func(*Emitter)

// WithRowLength sets the maximum characters per drawn text row.
func WithRowLength(n int) Option {
	return func(e *Emitter) {
		e.rowLength = n
	}
}

// WithPlayerName sets the expression announced when the player speaks.
func WithPlayerName(name string) Option {
	return func(e *Emitter) {
		e.playerName = name
	}
}

type Emitter struct {
	rowLength  int
	playerName string
}

// Emit walks the Parseable sequence and produces one case block per node,
// one per segment for overflow chains. Control flow is wired through a
// successor label threaded down the recursion: each node's last block
// transfers to the entry of its next sibling, and the last node in any body
// transfers to the owning construct's successor. Blocks come out in
// depth-first, left-to-right order.
func Emit(nodes []script.Parseable, opts ...Option) ([]Block, error) {
	e := &Emitter{rowLength: DefaultRowLength, playerName: DefaultPlayerName}
	for _, opt := range opts {
		opt(e)
	}
	return e.emitSeq(nodes, EndLabel)
}

func (e *Emitter) emitSeq(nodes []script.Parseable, succ string) ([]Block, error) {
	var blocks []Block
	for i, node := range nodes {
		next := succ
		if i+1 < len(nodes) {
			next = entryLabel(nodes[i+1])
		}
		emitted, err := e.emitNode(node, next)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, emitted...)
	}
	return blocks, nil
}

func (e *Emitter) emitNode(n script.Parseable, succ string) ([]Block, error) {
	switch node := n.(type) {
	case *script.Comment:
		code := "// " + node.Text + "\n" + transfer(succ)
		return []Block{{Label: nodeLabel(node), Code: code}}, nil
	case *script.Thinking:
		return []Block{{Label: nodeLabel(node), Code: e.displayCode("", node.Text, succ)}}, nil
	case *script.Dialogue:
		return []Block{{Label: nodeLabel(node), Code: e.displayCode(node.Speaker, node.Text, succ)}}, nil
	case *script.ManualCode:
		// ends with its own transfer by convention
		return []Block{{Label: nodeLabel(node), Code: node.Raw}}, nil
	case *script.OverflowChain:
		return e.emitChain(node, succ), nil
	case *script.IfElse:
		return e.emitIfElse(node, succ)
	case *script.Branch:
		return e.emitBranch(node, succ)
	default:
		return nil, fmt.Errorf("emit: unknown node kind %s", n.NodeKind())
	}
}

func (e *Emitter) emitChain(chain *script.OverflowChain, succ string) []Block {
	blocks := make([]Block, 0, len(chain.Segments))
	for i, seg := range chain.Segments {
		next := succ
		if i+1 < len(chain.Segments) {
			next = segmentLabel(chain, i+1)
		}
		blocks = append(blocks, Block{
			Label: segmentLabel(chain, i),
			Code:  e.displayCode(seg.Speaker, seg.Text, next),
		})
	}
	return blocks
}

func (e *Emitter) emitIfElse(node *script.IfElse, succ string) ([]Block, error) {
	thenEntry := succ
	if len(node.Then) > 0 {
		thenEntry = entryLabel(node.Then[0])
	}
	elseEntry := succ
	if len(node.Else) > 0 {
		elseEntry = entryLabel(node.Else[0])
	}

	test := Block{
		Label: nodeLabel(node),
		Code: fmt.Sprintf("if (%s) {\n\t%s\n} else {\n\t%s\n}",
			node.Condition, transfer(thenEntry), transfer(elseEntry)),
	}

	blocks := []Block{test}
	thenBlocks, err := e.emitSeq(node.Then, succ)
	if err != nil {
		return nil, err
	}
	blocks = append(blocks, thenBlocks...)
	elseBlocks, err := e.emitSeq(node.Else, succ)
	if err != nil {
		return nil, err
	}
	return append(blocks, elseBlocks...), nil
}

func (e *Emitter) emitBranch(node *script.Branch, succ string) ([]Block, error) {
	if len(node.Options) == 0 {
		return nil, &script.EmptyBranchError{Line: node.NodeSpan().First}
	}

	spacing := optionSpacingFew
	if len(node.Options) > 3 {
		spacing = optionSpacingMany
	}

	// The selection block runs every step while the player decides: it
	// draws each available option and watches the choice variable set by
	// the option objects. Condition-gated options are hidden and
	// unselectable while their condition is false.
	var lines []string
	for i, opt := range node.Options {
		entry := succ
		if len(opt.Body) > 0 {
			entry = entryLabel(opt.Body[0])
		}
		draw := fmt.Sprintf("draw_text(x, y + %d, %s);",
			i*spacing, gmlString(fmt.Sprintf("Option %d: %s", i+1, opt.Label)))
		pick := fmt.Sprintf("if (option == %d) { %s }", i+1, transfer(entry))
		if opt.Condition != "" {
			lines = append(lines, fmt.Sprintf("if (%s) {", opt.Condition), "\t"+draw, "\t"+pick, "}")
		} else {
			lines = append(lines, draw, pick)
		}
	}

	blocks := []Block{{Label: nodeLabel(node), Code: strings.Join(lines, "\n")}}
	for _, opt := range node.Options {
		body, err := e.emitSeq(opt.Body, succ)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, body...)
	}
	return blocks, nil
}

// displayCode renders one screen of text: an announcement of the speaker
// for dialogue (none for player thought), the text wrapped into rows, and
// the advance check transferring to the successor.
func (e *Emitter) displayCode(speaker, text, succ string) string {
	var lines []string
	if speaker != "" {
		lines = append(lines, fmt.Sprintf("announce(%s);", e.announcer(speaker)))
	}
	for i, row := range wrapRows(text, e.rowLength) {
		lines = append(lines, fmt.Sprintf("draw_text(x, y + %d, %s);", i*rowSpacing, gmlString(row)))
	}
	lines = append(lines, fmt.Sprintf("if (keyboard_check_pressed(vk_space)) { %s }", transfer(succ)))
	return strings.Join(lines, "\n")
}

// announcer quotes the speaker name, except for the player, whose chosen
// name lives in a variable.
func (e *Emitter) announcer(speaker string) string {
	if speaker == "Player" {
		return e.playerName
	}
	return gmlString(speaker)
}

func nodeLabel(n script.Parseable) string {
	return fmt.Sprintf("case_%d", n.NodeID())
}

func segmentLabel(chain *script.OverflowChain, i int) string {
	return fmt.Sprintf("case_%d_%d", chain.NodeID(), i)
}

// entryLabel is the label control arrives at to start a node: the first
// segment for overflow chains, the node's own block otherwise.
func entryLabel(n script.Parseable) string {
	if chain, ok := n.(*script.OverflowChain); ok {
		return segmentLabel(chain, 0)
	}
	return nodeLabel(n)
}

func transfer(label string) string {
	return fmt.Sprintf("state = %s;", label)
}

// gmlString quotes s for GML, routing embedded double quotes through
// chr(34) since GML strings have no escape sequences.
func gmlString(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `" + chr(34) + "`) + `"`
}

// wrapRows word-wraps text into rows of at most width characters. Words
// longer than a row are hard-cut; the splitter has already rejected words
// longer than the display budget, but a row is narrower than a screen.
func wrapRows(text string, width int) []string {
	words := strings.Fields(text)
	var rows []string
	current := ""
	for _, word := range words {
		for len([]rune(word)) > width {
			if current != "" {
				rows = append(rows, current)
				current = ""
			}
			runes := []rune(word)
			rows = append(rows, string(runes[:width]))
			word = string(runes[width:])
		}
		switch {
		case current == "":
			current = word
		case len([]rune(current))+1+len([]rune(word)) <= width:
			current += " " + word
		default:
			rows = append(rows, current)
			current = word
		}
	}
	if current != "" || len(rows) == 0 {
		rows = append(rows, current)
	}
	return rows
}
