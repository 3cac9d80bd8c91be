package cmd

import (
	"fmt"
	"os"

	"github.com/Yazip/tayat/internal/driver"
	"github.com/Yazip/tayat/internal/lexer"
	"github.com/Yazip/tayat/internal/parser"
	"github.com/Yazip/tayat/internal/symtree"
	"github.com/spf13/cobra"
)

var treeCmd = &cobra.Command{
	Use:   "tree [file]",
	Short: "Parse a tayat source file and print its symbol tree",
	Long: `Parse-only mode: run the lexer/parser, populate the symbol tree, and
print it in indented form without interpreting main().`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTree,
}

func init() {
	rootCmd.AddCommand(treeCmd)
}

func runTree(_ *cobra.Command, args []string) error {
	filename := sourceFile(args)
	src, lerr := driver.LoadSource(filename)
	if lerr != nil {
		fmt.Fprintln(os.Stderr, lerr.Format())
		return fmt.Errorf("%w: %s", driver.ErrCannotLoad, filename)
	}

	tree := symtree.New()
	p := parser.New(lexer.New(src), tree)
	if _, perr := p.ParseProgram(); perr != nil {
		fmt.Fprintln(os.Stderr, perr.Format())
		return fmt.Errorf("%s: parsing failed", filename)
	}

	tree.Dump(os.Stdout)
	return nil
}
