package gml

import (
	"fmt"
	"strings"
	"testing"

	"github.com/dhamidi/dlg/script"
	"github.com/dhamidi/dlg/script/parser"
)

func emitText(t *testing.T, text string, opts ...Option) []Block {
	t.Helper()
	nodes, err := parser.Parse(script.Clean(strings.Split(text, "\n")))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	blocks, err := Emit(nodes, opts...)
	if err != nil {
		t.Fatalf("emit failed: %v", err)
	}
	return blocks
}

func blockByLabel(t *testing.T, blocks []Block, label string) Block {
	t.Helper()
	for _, b := range blocks {
		if b.Label == label {
			return b
		}
	}
	t.Fatalf("no block labeled %s in %v", label, labels(blocks))
	return Block{}
}

func labels(blocks []Block) []string {
	result := make([]string, len(blocks))
	for i, b := range blocks {
		result[i] = b.Label
	}
	return result
}

func TestEmitSingleLeafIsOneBlock(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"comment", "(just a note)"},
		{"thinking", "What a day."},
		{"dialogue", "Alex: What a day."},
		{"manual code", "{state = case_end;}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := emitText(t, tt.input)
			if len(blocks) != 1 {
				t.Fatalf("got %d blocks, want 1", len(blocks))
			}
			if blocks[0].Label != "case_1" {
				t.Errorf("label %s", blocks[0].Label)
			}
		})
	}
}

func TestEmitLeafTransfersToEnd(t *testing.T) {
	blocks := emitText(t, "Alex: Bye.")
	if !strings.Contains(blocks[0].Code, "state = case_end;") {
		t.Errorf("missing transfer to end:\n%s", blocks[0].Code)
	}
}

func TestEmitSiblingsChainForward(t *testing.T) {
	blocks := emitText(t, "first thought\nsecond thought")
	if !strings.Contains(blocks[0].Code, "state = case_2;") {
		t.Errorf("first block does not transfer to second:\n%s", blocks[0].Code)
	}
	if !strings.Contains(blocks[1].Code, "state = case_end;") {
		t.Errorf("second block does not transfer to end:\n%s", blocks[1].Code)
	}
}

func TestEmitDialogueAnnouncesSpeaker(t *testing.T) {
	blocks := emitText(t, "Alex: Hello.")
	if !strings.Contains(blocks[0].Code, `announce("Alex");`) {
		t.Errorf("missing announce:\n%s", blocks[0].Code)
	}
}

func TestEmitPlayerSpeaksWithConfiguredName(t *testing.T) {
	blocks := emitText(t, "Player: It's me.", WithPlayerName("global.name"))
	if !strings.Contains(blocks[0].Code, "announce(global.name);") {
		t.Errorf("player announce wrong:\n%s", blocks[0].Code)
	}
}

func TestEmitThinkingDoesNotAnnounce(t *testing.T) {
	blocks := emitText(t, "Strange, the lights are on.")
	if strings.Contains(blocks[0].Code, "announce(") {
		t.Errorf("thinking should not announce:\n%s", blocks[0].Code)
	}
}

func TestEmitManualCodeVerbatim(t *testing.T) {
	blocks := emitText(t, "{snd_play(snd_door); state = case_end;}")
	if blocks[0].Code != "snd_play(snd_door); state = case_end;" {
		t.Errorf("manual code was altered: %q", blocks[0].Code)
	}
}

// The concrete walkthrough: thinking, then a condition with one line of
// dialogue on each side. Four blocks, all converging on the end label.
func TestEmitIfElseScenario(t *testing.T) {
	blocks := emitText(t, `I wonder if she's here.
*if saw_her
Alex: Hello!
*else
Alex: Nobody's home.
*end`)

	if len(blocks) != 4 {
		t.Fatalf("got %d blocks, want 4: %v", len(blocks), labels(blocks))
	}

	thinking := blocks[0]
	if !strings.Contains(thinking.Code, "state = case_2;") {
		t.Errorf("thinking does not transfer to the test block:\n%s", thinking.Code)
	}

	test := blockByLabel(t, blocks, "case_2")
	if !strings.Contains(test.Code, "if (saw_her)") {
		t.Errorf("test block missing condition:\n%s", test.Code)
	}
	if !strings.Contains(test.Code, "state = case_3;") || !strings.Contains(test.Code, "state = case_4;") {
		t.Errorf("test block does not branch to both arms:\n%s", test.Code)
	}

	for _, label := range []string{"case_3", "case_4"} {
		arm := blockByLabel(t, blocks, label)
		if !strings.Contains(arm.Code, "state = case_end;") {
			t.Errorf("%s does not converge on the successor:\n%s", label, arm.Code)
		}
	}
}

func TestEmitIfWithEmptyElseFallsToSuccessor(t *testing.T) {
	blocks := emitText(t, "*if brave\nOnward.\n*end\nAfterwards.")
	test := blocks[0]
	after := blockByLabel(t, blocks, "case_3")
	if after.Code == "" {
		t.Fatal("missing successor block")
	}
	// false arm goes straight to the node after the *if
	if !strings.Contains(test.Code, "else {\n\tstate = case_3;\n}") {
		t.Errorf("empty else does not transfer to successor:\n%s", test.Code)
	}
}

func TestEmitBranch(t *testing.T) {
	blocks := emitText(t, `*choice
*option Knock
Alex: Come in!
*option Sneak away ? courage < 2
So much for bravery.
*end
Then it was over.`)

	selection := blocks[0]
	if !strings.Contains(selection.Code, `"Option 1: Knock"`) {
		t.Errorf("selection missing option 1:\n%s", selection.Code)
	}
	if !strings.Contains(selection.Code, "if (option == 1) { state = case_2; }") {
		t.Errorf("option 1 not wired to its body:\n%s", selection.Code)
	}
	// gated option is wrapped in its condition
	if !strings.Contains(selection.Code, "if (courage < 2) {") {
		t.Errorf("option 2 not gated:\n%s", selection.Code)
	}
	if !strings.Contains(selection.Code, "if (option == 2) { state = case_3; }") {
		t.Errorf("option 2 not wired to its body:\n%s", selection.Code)
	}

	// both option bodies converge on the branch successor
	successor := "state = case_4;"
	for _, label := range []string{"case_2", "case_3"} {
		body := blockByLabel(t, blocks, label)
		if !strings.Contains(body.Code, successor) {
			t.Errorf("%s does not converge on branch successor:\n%s", label, body.Code)
		}
	}
}

func TestEmitBranchOptionWithEmptyBodySkipsToSuccessor(t *testing.T) {
	blocks := emitText(t, "*choice\n*option Leave\n*option Stay\nStaying.\n*end")
	selection := blocks[0]
	if !strings.Contains(selection.Code, "if (option == 1) { state = case_end; }") {
		t.Errorf("empty option body should go to successor:\n%s", selection.Code)
	}
}

func TestEmitOverflowChain(t *testing.T) {
	long := "Alex: " + strings.TrimSpace(strings.Repeat("word ", 50))
	nodes, err := parser.Parse(script.Clean([]string{long, "Done."}), parser.WithBudget(100))
	if err != nil {
		t.Fatal(err)
	}
	blocks, err := Emit(nodes)
	if err != nil {
		t.Fatal(err)
	}

	// three segment blocks plus the trailing thought
	if len(blocks) != 4 {
		t.Fatalf("got %d blocks: %v", len(blocks), labels(blocks))
	}
	first := blockByLabel(t, blocks, "case_1_0")
	if !strings.Contains(first.Code, "state = case_1_1;") {
		t.Errorf("segment 0 does not chain to segment 1:\n%s", first.Code)
	}
	second := blockByLabel(t, blocks, "case_1_1")
	if !strings.Contains(second.Code, "state = case_1_2;") {
		t.Errorf("segment 1 does not chain to segment 2:\n%s", second.Code)
	}
	last := blockByLabel(t, blocks, "case_1_2")
	if !strings.Contains(last.Code, "state = case_2;") {
		t.Errorf("last segment does not transfer to successor:\n%s", last.Code)
	}
}

func TestEmitNestedThreeLevelsHasUniqueLabels(t *testing.T) {
	blocks := emitText(t, `*if a
*choice
*option one
*if b
deep thought
*end
*option two
goodbye then
*end
*else
nothing here
*end`)

	seen := map[string]bool{}
	for _, b := range blocks {
		if seen[b.Label] {
			t.Errorf("duplicate label %s", b.Label)
		}
		seen[b.Label] = true
	}
	// every transfer targets an emitted block or the end label
	for _, b := range blocks {
		for _, target := range transferTargets(b.Code) {
			if target != EndLabel && !seen[target] {
				t.Errorf("block %s transfers to unknown label %s", b.Label, target)
			}
		}
	}
}

func transferTargets(code string) []string {
	var targets []string
	rest := code
	for {
		idx := strings.Index(rest, "state = ")
		if idx < 0 {
			return targets
		}
		rest = rest[idx+len("state = "):]
		if end := strings.Index(rest, ";"); end >= 0 {
			targets = append(targets, rest[:end])
		}
	}
}

func TestEmitDepthFirstOrder(t *testing.T) {
	blocks := emitText(t, "*if a\nthen text\n*else\nelse text\n*end")
	want := []string{"case_1", "case_2", "case_3"}
	got := labels(blocks)
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("emission order %v, want %v", got, want)
	}
}

func TestEmitCommentIsInert(t *testing.T) {
	blocks := emitText(t, "(setup for scene two)\nOnward.")
	comment := blocks[0]
	if !strings.Contains(comment.Code, "// setup for scene two") {
		t.Errorf("comment text missing:\n%s", comment.Code)
	}
	if strings.Contains(comment.Code, "draw_text") {
		t.Errorf("comment should not display anything:\n%s", comment.Code)
	}
}

func TestEmitRowWrapping(t *testing.T) {
	text := strings.TrimSpace(strings.Repeat("tiny ", 30)) // 149 characters, fits one screen
	blocks := emitText(t, text, WithRowLength(85))
	code := blocks[0].Code
	if !strings.Contains(code, "draw_text(x, y + 0,") {
		t.Errorf("missing first row:\n%s", code)
	}
	if !strings.Contains(code, "draw_text(x, y + 40,") {
		t.Errorf("missing second row:\n%s", code)
	}
}

func TestEmitQuotesInDisplayText(t *testing.T) {
	blocks := emitText(t, `Alex: She said "run".`)
	if !strings.Contains(blocks[0].Code, `chr(34)`) {
		t.Errorf("embedded quotes not routed through chr(34):\n%s", blocks[0].Code)
	}
}
