// Package venn parses Venn diagram definitions into ordered statement records.
package venn

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Parser provides configurable parsing functionality. Configure it before
// first use; after that a Parser may be shared by concurrent callers, since
// every parse keeps its state on the stack of the call.
type Parser struct {
	logger *slog.Logger
}

// NewParser creates a new Parser with default configuration.
func NewParser() *Parser {
	return &Parser{logger: slog.New(slog.DiscardHandler)}
}

// WithLogger configures the logger used for debug tracing. A nil logger
// disables logging.
func (p *Parser) WithLogger(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	p.logger = logger.With(slog.String("component", "parser"))
	return p
}

var defaultParser = NewParser()

// Parse parses a diagram definition with the default parser.
// Returns a *LexError, *SyntaxError or *MissingHeaderError on failure.
func Parse(text string) (*Document, error) {
	return defaultParser.Parse(text)
}

// MustParse is like Parse but panics on error.
func MustParse(text string) *Document {
	doc, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return doc
}

// ParseDocument reads the whole of r and parses it.
func (p *Parser) ParseDocument(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read diagram: %w", err)
	}
	return p.Parse(string(data))
}

// Parse parses a diagram definition. On failure no statements are returned.
func (p *Parser) Parse(text string) (*Document, error) {
	tokens, err := Tokenize(text)
	if err != nil {
		p.logger.Debug("tokenize failed", slog.Any("error", err))
		return nil, err
	}

	st := &state{src: text, tokens: tokens, logger: p.logger}
	stmts, err := st.parseDiagram()
	if err != nil {
		p.logger.Debug("parse failed", slog.Any("error", err))
		return nil, err
	}
	p.logger.Debug("parsed diagram", slog.Int("statements", len(stmts)))
	return &Document{Statements: stmts}, nil
}

// state is the per-call parse state.
type state struct {
	src    string
	tokens []Token
	pos    int
	logger *slog.Logger
}

func (s *state) peek() Token {
	return s.tokens[s.pos]
}

func (s *state) next() Token {
	tok := s.tokens[s.pos]
	if tok.Kind != TokenEOF {
		s.pos++
	}
	return tok
}

func (s *state) expect(kind TokenKind, what string) (Token, error) {
	tok := s.next()
	if tok.Kind != kind {
		return Token{}, s.syntaxError(tok, "", what)
	}
	return tok, nil
}

func (s *state) syntaxError(tok Token, msg, expected string) *SyntaxError {
	return &SyntaxError{
		ParseError: ParseError{
			Message: msg,
			Pos:     tok.Pos,
			Snippet: lineAt(s.src, tok.Pos.Line),
		},
		Expected: expected,
		Got:      describe(tok),
	}
}

func describe(tok Token) string {
	switch tok.Kind {
	case TokenEOF, TokenNewline:
		return tok.Kind.String()
	case TokenString:
		return fmt.Sprintf("%s (%q)", tok.Kind, tok.Literal)
	default:
		return fmt.Sprintf("%s %q", tok.Kind, tok.Literal)
	}
}

func (s *state) skipNewlines() {
	for s.peek().Kind == TokenNewline {
		s.next()
	}
}

func atStatementEnd(tok Token) bool {
	return tok.Kind == TokenNewline || tok.Kind == TokenEOF
}

// endStatement consumes the newline that terminates a statement.
func (s *state) endStatement(expected string) error {
	tok := s.peek()
	if !atStatementEnd(tok) {
		return s.syntaxError(tok, "", expected)
	}
	s.next()
	return nil
}

func (s *state) parseDiagram() ([]Statement, error) {
	s.skipNewlines()
	tok := s.peek()
	if tok.Kind != TokenHeader {
		return nil, &MissingHeaderError{
			ParseError: ParseError{
				Message: fmt.Sprintf("expected %q, got %s", HeaderKeyword, describe(tok)),
				Pos:     tok.Pos,
				Snippet: lineAt(s.src, tok.Pos.Line),
			},
			Header: HeaderKeyword,
		}
	}
	s.next()

	// The first statement may share the header's line.
	stmts := []Statement{}
	for {
		s.skipNewlines()
		if s.peek().Kind == TokenEOF {
			return stmts, nil
		}
		stmt, err := s.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
}

func (s *state) parseStatement() (Statement, error) {
	tok := s.next()
	s.logger.Debug("statement", slog.String("keyword", tok.Literal), slog.Int("line", tok.Pos.Line))

	switch tok.Kind {
	case TokenTitle:
		return s.parseTitle()
	case TokenSet:
		return s.parseSet()
	case TokenIntersect:
		return s.parseIntersect()
	case TokenStyle:
		return s.parseStyle()
	case TokenHeader:
		return nil, s.syntaxError(tok, "duplicate header", "statement")
	default:
		return nil, s.syntaxError(tok, "", "'title', 'set', 'intersect' or 'style'")
	}
}

// title <rest-of-line>
func (s *state) parseTitle() (Statement, error) {
	var text string
	if s.peek().Kind == TokenText {
		text = strings.TrimSpace(s.next().Literal)
	}
	if err := s.endStatement("end of line"); err != nil {
		return nil, err
	}
	return Title{Text: text}, nil
}

// set <id> [size:<number>]
func (s *state) parseSet() (Statement, error) {
	id, err := s.expectIdent("set identifier")
	if err != nil {
		return nil, err
	}
	decl := SetDecl{ID: id}

	if s.peek().Kind == TokenSize {
		s.next()
		size, err := s.parseSizeValue()
		if err != nil {
			return nil, err
		}
		decl.Size = &size
	}
	if err := s.endStatement("'size:' or end of line"); err != nil {
		return nil, err
	}
	return decl, nil
}

// intersect <id> <id> {<id>} [: "<label>"] [size:<number>]
//
// The label and size suffixes may appear in either order, each at most once.
func (s *state) parseIntersect() (Statement, error) {
	var sets []string
	for isIdent(s.peek()) {
		sets = append(sets, s.next().Literal)
	}
	if len(sets) < 2 {
		return nil, s.syntaxError(s.peek(), "intersect needs at least two sets", "set identifier")
	}
	in := Intersection{Sets: sets}

	for !atStatementEnd(s.peek()) {
		tok := s.next()
		switch {
		case tok.Kind == TokenColon && in.Label == nil:
			str, err := s.expect(TokenString, "quoted label")
			if err != nil {
				return nil, err
			}
			label := str.Literal
			in.Label = &label
		case tok.Kind == TokenSize && in.Size == nil:
			size, err := s.parseSizeValue()
			if err != nil {
				return nil, err
			}
			in.Size = &size
		case tok.Kind == TokenColon || tok.Kind == TokenSize:
			return nil, s.syntaxError(tok, "duplicate modifier", "end of line")
		default:
			return nil, s.syntaxError(tok, "", `': "label"', 'size:' or end of line`)
		}
	}
	s.next()
	return in, nil
}

// style <id> <key>:<value>{,<key>:<value>}
func (s *state) parseStyle() (Statement, error) {
	id, err := s.expectIdent("style target identifier")
	if err != nil {
		return nil, err
	}
	if atStatementEnd(s.peek()) {
		return nil, s.syntaxError(s.peek(), "style needs at least one attribute", "key:value")
	}

	decl := StyleDecl{ID: id}
	for {
		attr, err := s.parseAttribute()
		if err != nil {
			return nil, err
		}
		decl.Attributes = append(decl.Attributes, attr)

		if s.peek().Kind != TokenComma {
			break
		}
		s.next()
	}
	if err := s.endStatement("',' or end of line"); err != nil {
		return nil, err
	}
	return decl, nil
}

func (s *state) parseAttribute() (Attribute, error) {
	var key string
	tok := s.next()
	switch {
	case tok.Kind == TokenSize:
		// "size:" is lexed as one marker; the colon is already consumed.
		key = "size"
	case isIdent(tok):
		key = tok.Literal
		if _, err := s.expect(TokenColon, "':'"); err != nil {
			return Attribute{}, err
		}
	default:
		return Attribute{}, s.syntaxError(tok, "", "key:value")
	}

	val := s.next()
	switch val.Kind {
	case TokenNumber, TokenIdent, TokenColor, TokenString:
		return Attribute{Key: key, Value: tokenValue(val)}, nil
	default:
		return Attribute{}, s.syntaxError(val, fmt.Sprintf("missing value for %q", key), "value")
	}
}

func (s *state) parseSizeValue() (float64, error) {
	tok, err := s.expect(TokenNumber, "number after 'size:'")
	if err != nil {
		return 0, err
	}
	return parseNumber(tok)
}

func (s *state) expectIdent(what string) (string, error) {
	tok := s.next()
	if !isIdent(tok) {
		return "", s.syntaxError(tok, "", what)
	}
	return tok.Literal, nil
}

// isIdent reports whether tok can name a set. Bare digit runs lex as
// numbers but are valid identifiers.
func isIdent(tok Token) bool {
	switch tok.Kind {
	case TokenIdent:
		return true
	case TokenNumber:
		return !strings.ContainsAny(tok.Literal, "-.")
	}
	return false
}
