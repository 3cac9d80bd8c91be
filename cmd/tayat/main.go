// Command tayat is the CLI front-end to the lexer/symtree/parser/eval
// core: it reads a source file, always runs the lex → parse pipeline,
// and optionally interprets the result.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/Yazip/tayat/cmd/tayat/cmd"
	"github.com/Yazip/tayat/internal/driver"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, driver.ErrCannotLoad) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
