package venn

import (
	"regexp"
	"strconv"
)

var decimalPattern = regexp.MustCompile(`^-?(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+)$`)

// ParseValue converts the text of a style value into a Value. The value is
// numeric only when the whole text is a decimal number; anything else, such
// as a "#ff0000" colour code, keeps its literal text.
func ParseValue(raw string) Value {
	if decimalPattern.MatchString(raw) {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return Value{Kind: ValueNumber, Num: f, Raw: raw}
		}
	}
	return Value{Kind: ValueString, Str: raw, Raw: raw}
}

// NumberValue returns a numeric Value.
func NumberValue(f float64) Value {
	return Value{Kind: ValueNumber, Num: f}
}

// StringValue returns a string Value.
func StringValue(s string) Value {
	return Value{Kind: ValueString, Str: s}
}

// tokenValue converts a style value token. Quoted strings are never coerced.
func tokenValue(tok Token) Value {
	if tok.Kind == TokenString {
		return Value{Kind: ValueString, Str: tok.Literal, Raw: `"` + tok.Literal + `"`}
	}
	return ParseValue(tok.Literal)
}

func parseNumber(tok Token) (float64, error) {
	f, err := strconv.ParseFloat(tok.Literal, 64)
	if err != nil {
		return 0, &SyntaxError{
			ParseError: ParseError{Pos: tok.Pos, Cause: err},
			Expected:   "number",
			Got:        describe(tok),
		}
	}
	return f, nil
}
