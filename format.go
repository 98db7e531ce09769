package venn

import (
	"regexp"
	"strconv"
	"strings"
)

const indent = "  "

var bareValuePattern = regexp.MustCompile(`^(?:[A-Za-z_][A-Za-z0-9_\-]*|#[0-9A-Za-z]+)$`)

// Format renders a document as canonical diagram text: the header on its own
// line followed by one indented statement per line. Parsing the output yields
// an equal document as long as no label or string value contains a double
// quote.
func Format(doc *Document) string {
	var b strings.Builder
	b.WriteString(HeaderKeyword)
	b.WriteByte('\n')
	for _, st := range doc.Statements {
		b.WriteString(indent)
		writeStatement(&b, st)
		b.WriteByte('\n')
	}
	return b.String()
}

// String returns the canonical text of the document.
func (d *Document) String() string {
	return Format(d)
}

func writeStatement(b *strings.Builder, st Statement) {
	switch st := st.(type) {
	case Title:
		b.WriteString("title")
		if st.Text != "" {
			b.WriteByte(' ')
			b.WriteString(st.Text)
		}
	case SetDecl:
		b.WriteString("set ")
		b.WriteString(st.ID)
		writeSize(b, st.Size)
	case Intersection:
		b.WriteString("intersect ")
		b.WriteString(strings.Join(st.Sets, " "))
		if st.Label != nil {
			b.WriteString(` : "`)
			b.WriteString(*st.Label)
			b.WriteByte('"')
		}
		writeSize(b, st.Size)
	case StyleDecl:
		b.WriteString("style ")
		b.WriteString(st.ID)
		b.WriteByte(' ')
		for i, attr := range st.Attributes {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(attr.Key)
			b.WriteByte(':')
			b.WriteString(formatValue(attr.Value))
		}
	}
}

func writeSize(b *strings.Builder, size *float64) {
	if size == nil {
		return
	}
	b.WriteString(" size:")
	b.WriteString(formatNumber(*size))
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatValue prefers the source text. Values built in code are quoted when
// their text would not lex back as a single bare token of the same kind.
func formatValue(v Value) string {
	if v.Raw != "" {
		return v.Raw
	}
	if v.Kind == ValueNumber {
		return formatNumber(v.Num)
	}
	if bareValuePattern.MatchString(v.Str) {
		return v.Str
	}
	return `"` + v.Str + `"`
}
