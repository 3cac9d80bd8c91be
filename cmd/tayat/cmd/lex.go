package cmd

import (
	"fmt"
	"os"

	"github.com/Yazip/tayat/internal/driver"
	"github.com/Yazip/tayat/internal/lexer"
	"github.com/spf13/cobra"
)

var (
	lexShowPos  bool
	lexShowType bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a tayat source file and print the resulting tokens",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().BoolVar(&lexShowPos, "show-pos", false, "show each token's line:column position")
	lexCmd.Flags().BoolVar(&lexShowType, "show-type", false, "show each token's type name")
}

func runLex(_ *cobra.Command, args []string) error {
	filename := sourceFile(args)
	src, lerr := driver.LoadSource(filename)
	if lerr != nil {
		fmt.Fprintln(os.Stderr, lerr.Format())
		return fmt.Errorf("%w: %s", driver.ErrCannotLoad, filename)
	}

	l := lexer.New(src)
	for {
		tok := l.NextToken()
		printToken(tok)
		if tok.Type == lexer.EOF {
			break
		}
	}
	return nil
}

func printToken(tok lexer.Token) {
	var out string
	if lexShowType {
		out = fmt.Sprintf("[%-10s]", tok.Type)
	}
	switch tok.Type {
	case lexer.EOF:
		out += " EOF"
	case lexer.ILLEGAL:
		out += fmt.Sprintf(" ILLEGAL %q: %s", tok.Literal, tok.ErrMessage)
	default:
		out += fmt.Sprintf(" %q", tok.Literal)
	}
	if lexShowPos {
		out += fmt.Sprintf(" @%s", tok.Pos)
	}
	fmt.Println(out)
}
