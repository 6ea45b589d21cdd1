package main

import (
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "dlg",
		Short: "Turn dialogue scripts into GameMaker case scripts",
	}

	rootCmd.AddCommand(newCompileCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newLSPCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
