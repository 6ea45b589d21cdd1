package gml

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/dlg/script"
)

// TreeJSONEncoder dumps a parsed script tree as JSON, for tooling and for
// inspecting what the parser made of a script.
type TreeJSONEncoder struct {
	w io.Writer
}

func NewTreeJSONEncoder(w io.Writer) *TreeJSONEncoder {
	return &TreeJSONEncoder{w: w}
}

func (e *TreeJSONEncoder) Encode(nodes []script.Parseable) error {
	text, err := e.MarshalText(nodes)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TreeJSONEncoder) MarshalText(nodes []script.Parseable) ([]byte, error) {
	return json.MarshalIndent(seqToJSON(nodes), "", "  ")
}

type treeJSONNode struct {
	Kind      string             `json:"kind"`
	ID        int                `json:"id"`
	Span      treeJSONSpan       `json:"span"`
	Speaker   string             `json:"speaker,omitempty"`
	Text      string             `json:"text,omitempty"`
	Raw       string             `json:"raw,omitempty"`
	Condition string             `json:"condition,omitempty"`
	Then      []*treeJSONNode    `json:"then,omitempty"`
	Else      []*treeJSONNode    `json:"else,omitempty"`
	Options   []*treeJSONOption  `json:"options,omitempty"`
	Segments  []*treeJSONSegment `json:"segments,omitempty"`
}

type treeJSONSpan struct {
	First int `json:"first"`
	Last  int `json:"last"`
}

type treeJSONOption struct {
	Label     string          `json:"label"`
	Condition string          `json:"condition,omitempty"`
	Body      []*treeJSONNode `json:"body,omitempty"`
}

type treeJSONSegment struct {
	Speaker string `json:"speaker,omitempty"`
	Text    string `json:"text"`
}

func seqToJSON(nodes []script.Parseable) []*treeJSONNode {
	result := make([]*treeJSONNode, len(nodes))
	for i, n := range nodes {
		result[i] = nodeToJSON(n)
	}
	return result
}

func nodeToJSON(n script.Parseable) *treeJSONNode {
	span := n.NodeSpan()
	jn := &treeJSONNode{
		Kind: n.NodeKind().String(),
		ID:   n.NodeID(),
		Span: treeJSONSpan{First: span.First, Last: span.Last},
	}

	switch node := n.(type) {
	case *script.Comment:
		jn.Text = node.Text
	case *script.Thinking:
		jn.Text = node.Text
	case *script.Dialogue:
		jn.Speaker = node.Speaker
		jn.Text = node.Text
	case *script.ManualCode:
		jn.Raw = node.Raw
	case *script.IfElse:
		jn.Condition = node.Condition
		jn.Then = seqToJSON(node.Then)
		jn.Else = seqToJSON(node.Else)
	case *script.Branch:
		for _, opt := range node.Options {
			jn.Options = append(jn.Options, &treeJSONOption{
				Label:     opt.Label,
				Condition: opt.Condition,
				Body:      seqToJSON(opt.Body),
			})
		}
	case *script.OverflowChain:
		for _, seg := range node.Segments {
			jn.Segments = append(jn.Segments, &treeJSONSegment{Speaker: seg.Speaker, Text: seg.Text})
		}
	}

	return jn
}
