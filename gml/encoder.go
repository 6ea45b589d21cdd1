package gml

import (
	"fmt"
	"io"
	"strings"
)

// ScriptEncoder serializes emitted blocks into a complete GML step script:
// a macro per label (numbered in emission order) followed by one switch
// case per block. The numbering is cosmetic; every transfer goes through
// the macros.
type ScriptEncoder struct {
	w      io.Writer
	blocks []Block
}

func NewScriptEncoder(w io.Writer) *ScriptEncoder {
	return &ScriptEncoder{w: w}
}

func (e *ScriptEncoder) Encode(blocks []Block) error {
	e.blocks = blocks
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *ScriptEncoder) MarshalText() ([]byte, error) {
	seen := make(map[string]int, len(e.blocks))
	for i, b := range e.blocks {
		if prev, ok := seen[b.Label]; ok {
			return nil, fmt.Errorf("duplicate case label %s (blocks %d and %d)", b.Label, prev, i)
		}
		seen[b.Label] = i
	}

	var sb strings.Builder
	sb.WriteString("// generated by dlg; do not edit\n")
	fmt.Fprintf(&sb, "#macro %s %d\n", EndLabel, -1)
	for i, b := range e.blocks {
		fmt.Fprintf(&sb, "#macro %s %d\n", b.Label, i)
	}

	sb.WriteString("\nswitch (state) {\n")
	for _, b := range e.blocks {
		fmt.Fprintf(&sb, "case %s:\n", b.Label)
		for _, line := range strings.Split(b.Code, "\n") {
			sb.WriteString("\t" + line + "\n")
		}
		sb.WriteString("\tbreak;\n\n")
	}
	fmt.Fprintf(&sb, "case %s:\n\tinstance_destroy();\n\tbreak;\n}\n", EndLabel)

	return []byte(sb.String()), nil
}
