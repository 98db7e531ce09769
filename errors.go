package venn

import "fmt"

// Position is a location in the source text. Line and Column are 1-based.
type Position struct {
	Line   int
	Column int
	Offset int
}

func (p Position) String() string {
	return fmt.Sprintf("line %d, col %d", p.Line, p.Column)
}

// ParseError is the base error type for all venn parse errors.
type ParseError struct {
	Message string
	Pos     Position
	Snippet string // offending source line, trimmed
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Pos.Line > 0 {
		return fmt.Sprintf("%s: %s", e.Pos, e.Message)
	}
	return e.Message
}

func (e *ParseError) Unwrap() error { return e.Cause }

// Position returns where the error was detected.
func (e *ParseError) Position() Position { return e.Pos }

// LexError reports input text that matches no token rule.
type LexError struct {
	ParseError
	Char rune
}

// SyntaxError reports a token sequence that matches no statement production,
// or a statement with the wrong number or shape of arguments.
type SyntaxError struct {
	ParseError
	Expected string
	Got      string
}

func (e *SyntaxError) Error() string {
	msg := fmt.Sprintf("expected %s, got %s", e.Expected, e.Got)
	if e.Message != "" {
		msg = e.Message + ": " + msg
	}
	if e.Pos.Line > 0 {
		return fmt.Sprintf("%s: %s", e.Pos, msg)
	}
	return msg
}

// MissingHeaderError reports a definition whose first statement is not the
// diagram header.
type MissingHeaderError struct {
	ParseError
	Header string
}

func (e *MissingHeaderError) Error() string {
	if e.Pos.Line > 0 {
		return fmt.Sprintf("%s: missing %q header", e.Pos, e.Header)
	}
	return fmt.Sprintf("missing %q header", e.Header)
}
