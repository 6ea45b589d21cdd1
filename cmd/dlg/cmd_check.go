package main

import (
	"fmt"
	"path/filepath"

	"github.com/dhamidi/dlg/project"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <script>...",
		Short: "Parse scripts and report errors without generating code",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(args)
		},
	}
	return cmd
}

// runCheck validates each script independently; one broken file does not
// stop the others from being checked.
func runCheck(paths []string) error {
	failures := 0
	for _, path := range paths {
		cfg, err := project.LoadFrom(filepath.Dir(path))
		if err != nil {
			fmt.Printf("%s: %s\n", path, err)
			failures++
			continue
		}
		nodes, err := parseFile(path, cfg)
		if err != nil {
			fmt.Println(err)
			failures++
			continue
		}
		fmt.Printf("%s: ok (%d top-level nodes)\n", path, len(nodes))
	}
	if failures > 0 {
		return fmt.Errorf("%d of %d scripts have errors", failures, len(paths))
	}
	return nil
}
