package venn

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"
)

// The lexer has three states. Root sits at the start of a statement, where
// statement keywords are recognized; the first other token moves it into
// Line until the newline. A title keyword moves it into TitleText, which
// captures the rest of the line verbatim.
var definition = lexer.MustStateful(lexerRules())

// argumentRules are the tokens allowed inside a statement.
var argumentRules = []lexer.Rule{
	{Name: "Size", Pattern: `size:`},
	{Name: "String", Pattern: `"[^"\r\n]*"`},
	{Name: "Color", Pattern: `#[0-9A-Za-z]+`},
	{Name: "Number", Pattern: `-?(?:[0-9]+(?:\.[0-9]+)?|\.[0-9]+)\b`},
	{Name: "Ident", Pattern: `[A-Za-z0-9_][A-Za-z0-9_\-]*`},
	{Name: "Colon", Pattern: `:`},
	{Name: "Comma", Pattern: `,`},
}

func lexerRules() lexer.Rules {
	skip := []lexer.Rule{
		{Name: "Whitespace", Pattern: `[ \t]+`},
		{Name: "Comment", Pattern: `%%[^\r\n]*`},
	}

	root := append([]lexer.Rule{}, skip...)
	root = append(root,
		lexer.Rule{Name: "Newline", Pattern: `\r?\n`},
		lexer.Rule{Name: "Header", Pattern: HeaderKeyword + `\b`},
		lexer.Rule{Name: "Title", Pattern: `title\b`, Action: lexer.Push("TitleText")},
		lexer.Rule{Name: "Set", Pattern: `set\b`, Action: lexer.Push("Line")},
		lexer.Rule{Name: "Intersect", Pattern: `intersect\b`, Action: lexer.Push("Line")},
		lexer.Rule{Name: "Style", Pattern: `style\b`, Action: lexer.Push("Line")},
	)
	for _, r := range argumentRules {
		root = append(root, lexer.Rule{Name: r.Name, Pattern: r.Pattern, Action: lexer.Push("Line")})
	}

	line := append([]lexer.Rule{}, skip...)
	line = append(line, lexer.Rule{Name: "Newline", Pattern: `\r?\n`, Action: lexer.Pop()})
	line = append(line, argumentRules...)

	return lexer.Rules{
		"Root": root,
		"Line": line,
		"TitleText": {
			{Name: "Text", Pattern: `[^\r\n]+`},
			{Name: "Newline", Pattern: `\r?\n`, Action: lexer.Pop()},
		},
	}
}

var tokenKinds = func() map[lexer.TokenType]TokenKind {
	m := make(map[lexer.TokenType]TokenKind)
	for name, typ := range definition.Symbols() {
		if kind, ok := ruleKinds[name]; ok {
			m[typ] = kind
		}
	}
	return m
}()

// Tokenize scans text into tokens, dropping whitespace and %% comments.
// The returned slice always ends with a TokenEOF token. A character that
// matches no rule yields a *LexError.
func Tokenize(text string) ([]Token, error) {
	lx, err := definition.LexString("", text)
	if err != nil {
		return nil, err
	}

	var tokens []Token
	for {
		tok, err := lx.Next()
		if err != nil {
			return nil, newLexError(text, err)
		}
		pos := Position{Line: tok.Pos.Line, Column: tok.Pos.Column, Offset: tok.Pos.Offset}
		if tok.EOF() {
			tokens = append(tokens, Token{Kind: TokenEOF, Pos: pos})
			return tokens, nil
		}

		kind, ok := tokenKinds[tok.Type]
		if !ok {
			return nil, fmt.Errorf("venn: unknown token type %d at %s", tok.Type, pos)
		}
		if kind == tokenWhitespace || kind == tokenComment {
			continue
		}

		lit := tok.Value
		if kind == TokenString {
			lit = lit[1 : len(lit)-1]
		}
		tokens = append(tokens, Token{Kind: kind, Literal: lit, Pos: pos})
	}
}

func newLexError(text string, err error) error {
	var lerr *lexer.Error
	if !errors.As(err, &lerr) {
		return err
	}
	pos := Position{Line: lerr.Pos.Line, Column: lerr.Pos.Column, Offset: lerr.Pos.Offset}

	ch := utf8.RuneError
	if pos.Offset < len(text) {
		ch, _ = utf8.DecodeRuneInString(text[pos.Offset:])
	}
	msg := fmt.Sprintf("unexpected character %q", ch)
	if ch == '"' {
		msg = "unterminated string"
	}
	return &LexError{
		ParseError: ParseError{
			Message: msg,
			Pos:     pos,
			Snippet: lineAt(text, pos.Line),
			Cause:   err,
		},
		Char: ch,
	}
}

// lineAt returns the trimmed text of the 1-based line n.
func lineAt(text string, n int) string {
	for i := 1; ; i++ {
		line, rest, found := strings.Cut(text, "\n")
		if i == n {
			return strings.TrimSpace(line)
		}
		if !found {
			return ""
		}
		text = rest
	}
}
