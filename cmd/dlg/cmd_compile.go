package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhamidi/dlg/gml"
	"github.com/dhamidi/dlg/project"
	"github.com/dhamidi/dlg/script"
	"github.com/dhamidi/dlg/script/parser"
	"github.com/spf13/cobra"
)

func newCompileCmd() *cobra.Command {
	var outPath string
	var budget int

	cmd := &cobra.Command{
		Use:   "compile <script>",
		Short: "Convert a dialogue script into a GML case script",
		Long: `Convert a dialogue script into a GML case script.

Configuration is read from dlg.yaml next to the script, if present.
Nothing is written when the script has errors: a broken script yields
no output file rather than a partial one.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(args[0], outPath, budget)
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "output file (default: input name with .gml extension)")
	cmd.Flags().IntVar(&budget, "budget", 0, "override display_budget from dlg.yaml")

	return cmd
}

func runCompile(inPath, outPath string, budget int) error {
	cfg, err := project.LoadFrom(filepath.Dir(inPath))
	if err != nil {
		return err
	}
	if budget > 0 {
		cfg.DisplayBudget = budget
	}

	blocks, err := compileFile(inPath, cfg)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := gml.NewScriptEncoder(&buf).Encode(blocks); err != nil {
		return fmt.Errorf("encode %s: %w", inPath, err)
	}

	if outPath == "" {
		name := strings.TrimSuffix(filepath.Base(inPath), filepath.Ext(inPath)) + ".gml"
		dir := filepath.Dir(inPath)
		if cfg.OutDir != "" {
			dir = cfg.OutDir
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("create %s: %w", dir, err)
			}
		}
		outPath = filepath.Join(dir, name)
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}

	fmt.Printf("%s: %d blocks -> %s\n", inPath, len(blocks), outPath)
	return nil
}

func compileFile(path string, cfg project.Config) ([]gml.Block, error) {
	nodes, err := parseFile(path, cfg)
	if err != nil {
		return nil, err
	}
	blocks, err := gml.Emit(nodes,
		gml.WithRowLength(cfg.RowLength),
		gml.WithPlayerName(cfg.PlayerName),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return blocks, nil
}

func parseFile(path string, cfg project.Config) ([]script.Parseable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	lines := script.Clean(strings.Split(string(data), "\n"))
	nodes, err := parser.Parse(lines, parser.WithBudget(cfg.DisplayBudget))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return nodes, nil
}
