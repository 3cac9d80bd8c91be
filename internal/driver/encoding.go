// Package driver loads a source file for the core (lexer/symtree/
// parser/eval) packages: it reads the file and decodes it to a UTF-8
// string. Running the parse/interpret pipeline and printing diagnostics
// is done by the cmd/tayat commands, not here.
package driver

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/Yazip/tayat/internal/diag"
	"github.com/Yazip/tayat/internal/lexer"
)

// ErrCannotLoad is the sentinel the CLI commands wrap (with %w) around
// any failure LoadSource reports, letting the CLI choose exit status 2
// (spec.md §6) rather than 1 for this one class of failure without
// teaching every caller the diag.Category enum. LoadSource itself
// returns a *diag.Diagnostic, not this error.
var ErrCannotLoad = errors.New("cannot load source file")

// LoadSource reads path and decodes it to a UTF-8 string. Byte-order-mark
// detection (UTF-8, UTF-16LE, UTF-16BE) is delegated to x/text's own
// unicode.BOMOverride transformer rather than hand-checked against raw
// byte values — the library already owns the canonical BOM table and
// picks the matching decoder itself, so this module supplies only the
// no-BOM fallback: an identity transform, since the common case (a
// source file edited on Linux) is already plain UTF-8 and needs no
// conversion. Anything left over that still isn't valid UTF-8 — no BOM
// present, and not UTF-8 either — is not rejected outright: each byte is
// promoted to its own rune, since only ASCII bytes are ever lexically
// significant downstream.
func LoadSource(path string) (string, *diag.Diagnostic) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", ioError(path, fmt.Sprintf("cannot open source file: %v", err))
	}

	decoded, _, err := transform.Bytes(unicode.BOMOverride(encoding.Nop.NewDecoder()), data)
	if err != nil {
		return "", ioError(path, fmt.Sprintf("decoding source file: %v", err))
	}

	if utf8.Valid(decoded) {
		return string(decoded), nil
	}
	return string(promoteBytesToRunes(decoded)), nil
}

func promoteBytesToRunes(data []byte) []rune {
	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return runes
}

// ioError builds the Diagnostic LoadSource reports on any failure. It
// carries no meaningful line/column — the lexer never ran — so Pos is
// the zero value; Lexeme holds the path instead of a lexeme, the
// closest equivalent this failure has.
func ioError(path, message string) *diag.Diagnostic {
	return diag.New(diag.IO, message, path, lexer.Position{})
}
