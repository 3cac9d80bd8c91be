package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags).
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	debugFlag     bool
	interpretFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "tayat [file]",
	Short: "tayat lexer, symbol tree and interpreter",
	Long: `tayat is a single-pass front end and tree-walking interpreter for a
small C-like teaching language: an integer-typed variable/array/typedef
scoping model, while loops, and arithmetic/relational expressions.

Run with no subcommand to lex, parse, and (with --interpret) execute a
source file; defaults to reading "input.txt" if no file is given.`,
	Version:      Version,
	Args:         cobra.MaximumNArgs(1),
	RunE:         runScript,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "trace evaluator steps and report implicit-conversion warnings")
	rootCmd.PersistentFlags().BoolVar(&interpretFlag, "interpret", false, "execute main() after parsing (default: parse and check only)")
}

// sourceFile resolves the positional file argument: default to
// "input.txt" when none is given.
func sourceFile(args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	return "input.txt"
}
