package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dhamidi/dlg/gml"
	"github.com/dhamidi/dlg/project"
	"github.com/dhamidi/dlg/script"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "parse <script>",
		Short: "Parse a dialogue script and dump the node tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			cfg, err := project.LoadFrom(filepath.Dir(path))
			if err != nil {
				return err
			}
			nodes, err := parseFile(path, cfg)
			if err != nil {
				return err
			}

			switch outputFormat {
			case "text":
				fmt.Print(script.Dump(nodes))
			case "json":
				enc := gml.NewTreeJSONEncoder(os.Stdout)
				if err := enc.Encode(nodes); err != nil {
					return fmt.Errorf("encode json: %w", err)
				}
				fmt.Println()
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (text, json)")

	return cmd
}
