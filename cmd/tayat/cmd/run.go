package cmd

import (
	"fmt"
	"os"

	"github.com/Yazip/tayat/internal/driver"
	"github.com/Yazip/tayat/internal/interp"
	"github.com/Yazip/tayat/internal/lexer"
	"github.com/Yazip/tayat/internal/parser"
	"github.com/Yazip/tayat/internal/symtree"
	"github.com/spf13/cobra"
)

func runScript(_ *cobra.Command, args []string) error {
	filename := sourceFile(args)
	src, lerr := driver.LoadSource(filename)
	if lerr != nil {
		fmt.Fprintln(os.Stderr, lerr.Format())
		return fmt.Errorf("%w: %s", driver.ErrCannotLoad, filename)
	}

	tree := symtree.New()
	p := parser.New(lexer.New(src), tree)
	prog, perr := p.ParseProgram()
	if perr != nil {
		fmt.Fprintln(os.Stderr, perr.Format())
		return fmt.Errorf("%s: parsing failed", filename)
	}

	if !interpretFlag {
		tree.Dump(os.Stdout)
		return nil
	}

	in := interp.New(tree, debugFlag, os.Stdout)
	if rerr := in.Run(prog); rerr != nil {
		fmt.Fprintln(os.Stderr, rerr.Format())
		return fmt.Errorf("%s: interpretation failed", filename)
	}
	for _, w := range in.Warnings {
		fmt.Fprintln(os.Stderr, w.Format())
	}
	tree.Dump(os.Stdout)
	return nil
}
