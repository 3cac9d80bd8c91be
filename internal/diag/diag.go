// Package diag formats two-line Russian-language diagnostics: a
// category, a message, the offending lexeme, and a line:column pair.
// Every tayat subsystem reports failures as a *Diagnostic rather than a
// bare error so the category survives all the way to the CLI.
package diag

import (
	"fmt"

	"github.com/Yazip/tayat/internal/lexer"
)

// Category is one of the five diagnostic classes spec.md §7 defines for
// the core (lexical/syntactic/semantic/interpretation, all fatal, and the
// non-fatal warning), plus IO —
// a driver-level addition for failures the core never sees (the
// source file itself could not be opened or decoded), so that failure
// still renders through the same two-line format instead of a bare error.
type Category int

const (
	Lexical Category = iota
	Syntactic
	Semantic
	Interpretation
	Warning
	IO
)

var categoryNames = map[Category]string{
	Lexical:        "Лексическая ошибка",
	Syntactic:      "Синтаксическая ошибка",
	Semantic:       "Семантическая ошибка",
	Interpretation: "Ошибка при интерпретации",
	Warning:        "Предупреждение",
	IO:             "Ошибка ввода-вывода",
}

func (c Category) String() string {
	return categoryNames[c]
}

// Diagnostic is a single lexical, syntactic, semantic, interpretation, or
// warning report, tied to the lexeme and position that produced it.
type Diagnostic struct {
	Message  string
	Lexeme   string
	Category Category
	Pos      lexer.Position
}

// New builds a Diagnostic.
func New(cat Category, message, lexeme string, pos lexer.Position) *Diagnostic {
	return &Diagnostic{Category: cat, Message: message, Lexeme: lexeme, Pos: pos}
}

// Error implements the error interface so a *Diagnostic can be returned
// anywhere a plain error is expected (e.g. from the cobra RunE hooks).
func (d *Diagnostic) Error() string {
	return d.Format()
}

// Fatal reports whether this diagnostic halts the pipeline. Only
// warnings are non-fatal.
func (d *Diagnostic) Fatal() bool {
	return d.Category != Warning
}

// Format renders the exact two-line shape a diagnostic always takes:
//
//	<Category>: <message> (около '<current-lexeme>')
//	(строка <line>:<col>)
func (d *Diagnostic) Format() string {
	return fmt.Sprintf("%s: %s (около '%s')\n(строка %d:%d)",
		d.Category, d.Message, d.Lexeme, d.Pos.Line, d.Pos.Column)
}
