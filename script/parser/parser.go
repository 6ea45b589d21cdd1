package parser

import (
	"errors"
	"strings"

	"github.com/dhamidi/dlg/script"
)

// DefaultBudget is the maximum characters per display screen: four rows of
// 85 characters in the default room layout.
const DefaultBudget = 340

type Option func(*Parser)

// WithBudget sets the display-length budget used when splitting oversized
// dialogue and thought text.
func WithBudget(budget int) Option {
	return func(p *Parser) {
		p.budget = budget
	}
}

type Parser struct {
	budget int
	nextID int
}

// Parse turns cleaned lines into an ordered sequence of Parseables,
// recursing into the bodies of *if and *choice constructs. The first error
// aborts the parse; no partial result is returned.
func Parse(lines []script.Line, opts ...Option) ([]script.Parseable, error) {
	p := &Parser{budget: DefaultBudget, nextID: 1}
	for _, opt := range opts {
		opt(p)
	}
	return p.parseSeq(lines)
}

func (p *Parser) newNode(first, last int) script.Node {
	id := p.nextID
	p.nextID++
	return script.Node{ID: id, Span: script.Span{First: first, Last: last}}
}

func (p *Parser) parseSeq(lines []script.Line) ([]script.Parseable, error) {
	var nodes []script.Parseable
	i := 0
	for i < len(lines) {
		text := lines[i].Text
		switch {
		case isComment(text):
			nodes = append(nodes, &script.Comment{
				Node: p.newNode(lines[i].Number, lines[i].Number),
				Text: strings.TrimSuffix(strings.TrimPrefix(text, "("), ")"),
			})
			i++
		case isManual(text):
			node, next, err := p.parseManual(lines, i)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, node)
			i = next
		case isIf(text):
			node, next, err := p.parseIfElse(lines, i)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, node)
			i = next
		case isChoice(text):
			node, next, err := p.parseChoice(lines, i)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, node)
			i = next
		case isOption(text), isElse(text), isEnd(text):
			return nil, &script.ClassifyError{
				Line:    lines[i].Number,
				Text:    text,
				Message: "directive outside of its block",
			}
		case strings.HasPrefix(text, "*"):
			return nil, &script.ClassifyError{
				Line:    lines[i].Number,
				Text:    text,
				Message: "unrecognized directive",
			}
		default:
			node, err := p.parseScreen(lines[i])
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, node)
			i++
		}
	}
	return nodes, nil
}

// parseIfElse handles "*if <condition>" up to its matching "*end", with an
// optional "*else" in between. Both bodies are parsed recursively.
func (p *Parser) parseIfElse(lines []script.Line, open int) (script.Parseable, int, error) {
	condition := strings.TrimSpace(strings.TrimPrefix(lines[open].Text, "*if"))
	if condition == "" {
		return nil, 0, &script.ClassifyError{
			Line:    lines[open].Number,
			Text:    lines[open].Text,
			Message: "*if needs a condition",
		}
	}

	elseIdx, endIdx, err := blockExtent(lines, open)
	if err != nil {
		return nil, 0, err
	}

	node := &script.IfElse{
		Node:      p.newNode(lines[open].Number, lines[endIdx].Number),
		Condition: condition,
	}

	thenEnd := endIdx
	if elseIdx >= 0 {
		thenEnd = elseIdx
	}
	if node.Then, err = p.parseSeq(lines[open+1 : thenEnd]); err != nil {
		return nil, 0, err
	}
	if elseIdx >= 0 {
		if node.Else, err = p.parseSeq(lines[elseIdx+1 : endIdx]); err != nil {
			return nil, 0, err
		}
	}
	return node, endIdx + 1, nil
}

// parseChoice handles "*choice" up to its matching "*end". Every line
// between them must belong to an "*option" block; each option body is
// parsed recursively.
func (p *Parser) parseChoice(lines []script.Line, open int) (script.Parseable, int, error) {
	elseIdx, endIdx, err := blockExtent(lines, open)
	if err != nil {
		return nil, 0, err
	}
	if elseIdx >= 0 {
		return nil, 0, &script.ClassifyError{
			Line:    lines[elseIdx].Number,
			Text:    lines[elseIdx].Text,
			Message: "*else is not valid inside *choice",
		}
	}

	starts := optionStarts(lines, open, endIdx)
	if len(starts) == 0 {
		return nil, 0, &script.EmptyBranchError{Line: lines[open].Number}
	}
	if starts[0] != open+1 {
		return nil, 0, &script.ClassifyError{
			Line:    lines[open+1].Number,
			Text:    lines[open+1].Text,
			Message: "expected *option after *choice",
		}
	}

	node := &script.Branch{
		Node: p.newNode(lines[open].Number, lines[endIdx].Number),
	}
	for k, start := range starts {
		label, condition, err := parseOptionHeader(lines[start])
		if err != nil {
			return nil, 0, err
		}
		bodyEnd := endIdx
		if k+1 < len(starts) {
			bodyEnd = starts[k+1]
		}
		body, err := p.parseSeq(lines[start+1 : bodyEnd])
		if err != nil {
			return nil, 0, err
		}
		node.Options = append(node.Options, script.Option{
			Label:     label,
			Condition: condition,
			Body:      body,
		})
	}
	return node, endIdx + 1, nil
}

// parseOptionHeader splits "*option <label> [ ? <condition>]". The gate
// marker is a standalone " ? " so labels may end in a question mark; the
// last occurrence wins.
func parseOptionHeader(line script.Line) (label, condition string, err error) {
	rest := strings.TrimSpace(strings.TrimPrefix(line.Text, "*option"))
	if mark := strings.LastIndex(rest, " ? "); mark >= 0 {
		condition = strings.TrimSpace(rest[mark+3:])
		rest = strings.TrimSpace(rest[:mark])
		if condition == "" {
			return "", "", &script.ClassifyError{
				Line:    line.Number,
				Text:    line.Text,
				Message: "*option has '?' but no condition",
			}
		}
	}
	if rest == "" {
		return "", "", &script.ClassifyError{
			Line:    line.Number,
			Text:    line.Text,
			Message: "*option needs a label",
		}
	}
	return rest, condition, nil
}

// parseManual handles a "{...}" escape, which may span several lines. The
// raw code is passed to the emitter verbatim.
func (p *Parser) parseManual(lines []script.Line, open int) (script.Parseable, int, error) {
	text := lines[open].Text
	if strings.HasSuffix(text, "}") {
		return &script.ManualCode{
			Node: p.newNode(lines[open].Number, lines[open].Number),
			Raw:  strings.TrimSuffix(strings.TrimPrefix(text, "{"), "}"),
		}, open + 1, nil
	}

	parts := []string{strings.TrimPrefix(text, "{")}
	for i := open + 1; i < len(lines); i++ {
		if strings.HasSuffix(lines[i].Text, "}") {
			parts = append(parts, strings.TrimSuffix(lines[i].Text, "}"))
			raw := strings.Join(parts, "\n")
			return &script.ManualCode{
				Node: p.newNode(lines[open].Number, lines[i].Number),
				Raw:  strings.TrimPrefix(raw, "\n"),
			}, i + 1, nil
		}
		parts = append(parts, lines[i].Text)
	}
	return nil, 0, &script.ClassifyError{
		Line:    lines[open].Number,
		Text:    text,
		Message: "unterminated manual code, missing '}'",
	}
}

// parseScreen handles one line of dialogue or player thought. Text before
// the first colon names the speaker; without a colon the player is thinking.
// Text longer than the budget becomes an OverflowChain.
func (p *Parser) parseScreen(line script.Line) (script.Parseable, error) {
	text := line.Text
	speaker := ""
	if idx := strings.Index(text, ":"); idx > 0 {
		speaker = strings.TrimSpace(text[:idx])
		text = strings.TrimSpace(text[idx+1:])
	}

	node := p.newNode(line.Number, line.Number)
	segments, err := SplitText(text, p.budget)
	if err != nil {
		var overflow *script.OverflowError
		if errors.As(err, &overflow) {
			overflow.Line = line.Number
		}
		return nil, err
	}

	if len(segments) > 1 {
		chain := &script.OverflowChain{Node: node}
		for _, seg := range segments {
			chain.Segments = append(chain.Segments, script.Segment{Speaker: speaker, Text: seg})
		}
		return chain, nil
	}
	if speaker != "" {
		return &script.Dialogue{Node: node, Speaker: speaker, Text: segments[0]}, nil
	}
	return &script.Thinking{Node: node, Text: segments[0]}, nil
}
