package venn

// TokenKind identifies the type of a lexical token.
type TokenKind int

const (
	TokenEOF       TokenKind = iota
	TokenNewline             // \n or \r\n, ends a statement
	TokenHeader              // vennDiagram
	TokenTitle               // title (statement start only)
	TokenSet                 // set (statement start only)
	TokenIntersect           // intersect (statement start only)
	TokenStyle               // style (statement start only)
	TokenText                // raw remainder of a title line
	TokenSize                // size:
	TokenString              // "..." without escapes
	TokenColor               // #[0-9A-Za-z]+
	TokenNumber              // -?[0-9]+(.[0-9]+)? or .[0-9]+
	TokenIdent               // [A-Za-z0-9_][A-Za-z0-9_-]*
	TokenColon               // :
	TokenComma               // ,

	// Skipped by Tokenize.
	tokenWhitespace
	tokenComment
)

var tokenNames = map[TokenKind]string{
	TokenEOF:        "end of input",
	TokenNewline:    "end of line",
	TokenHeader:     "'vennDiagram'",
	TokenTitle:      "'title'",
	TokenSet:        "'set'",
	TokenIntersect:  "'intersect'",
	TokenStyle:      "'style'",
	TokenText:       "text",
	TokenSize:       "'size:'",
	TokenString:     "string",
	TokenColor:      "color",
	TokenNumber:     "number",
	TokenIdent:      "identifier",
	TokenColon:      "':'",
	TokenComma:      "','",
	tokenWhitespace: "whitespace",
	tokenComment:    "comment",
}

func (k TokenKind) String() string {
	if name, ok := tokenNames[k]; ok {
		return name
	}
	return "unknown"
}

// Token is a single lexical unit produced by Tokenize.
type Token struct {
	Kind    TokenKind
	Literal string // text content (unquoted for strings, raw for others)
	Pos     Position
}

// HeaderKeyword is the keyword that must open every diagram definition.
const HeaderKeyword = "vennDiagram"

// ruleKinds maps lexer rule names to token kinds.
var ruleKinds = map[string]TokenKind{
	"Newline":    TokenNewline,
	"Header":     TokenHeader,
	"Title":      TokenTitle,
	"Set":        TokenSet,
	"Intersect":  TokenIntersect,
	"Style":      TokenStyle,
	"Text":       TokenText,
	"Size":       TokenSize,
	"String":     TokenString,
	"Color":      TokenColor,
	"Number":     TokenNumber,
	"Ident":      TokenIdent,
	"Colon":      TokenColon,
	"Comma":      TokenComma,
	"Whitespace": tokenWhitespace,
	"Comment":    tokenComment,
}
