// Package venn defines the records produced by parsing a Venn diagram definition.
package venn

import (
	"encoding/json"
	"strconv"
)

// StatementKind identifies the variant of a Statement.
type StatementKind int

const (
	KindTitle StatementKind = iota
	KindSet
	KindIntersect
	KindStyle
)

var kindNames = map[StatementKind]string{
	KindTitle:     "title",
	KindSet:       "set",
	KindIntersect: "intersect",
	KindStyle:     "style",
}

func (k StatementKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Statement is one parsed line of a diagram definition. It is implemented
// only by Title, SetDecl, Intersection and StyleDecl.
type Statement interface {
	Kind() StatementKind
	statement()
}

// Title is free text drawn once above the diagram.
type Title struct {
	Text string
}

// SetDecl declares a named set with an optional relative size.
type SetDecl struct {
	ID   string
	Size *float64
}

// Intersection declares the overlap of two or more sets.
type Intersection struct {
	Sets  []string
	Label *string
	Size  *float64
}

// StyleDecl attaches presentation overrides to a set or intersection id.
type StyleDecl struct {
	ID         string
	Attributes []Attribute
}

// Attribute is one key:value pair of a style directive.
type Attribute struct {
	Key   string
	Value Value
}

func (Title) Kind() StatementKind        { return KindTitle }
func (SetDecl) Kind() StatementKind      { return KindSet }
func (Intersection) Kind() StatementKind { return KindIntersect }
func (StyleDecl) Kind() StatementKind    { return KindStyle }

func (Title) statement()        {}
func (SetDecl) statement()      {}
func (Intersection) statement() {}
func (StyleDecl) statement()    {}

// ValueKind identifies the type of a style attribute value.
type ValueKind int

const (
	ValueString ValueKind = iota
	ValueNumber
)

// Value is a style attribute value. Numbers are kept as float64; everything
// else keeps its literal text.
type Value struct {
	Kind ValueKind
	Str  string
	Num  float64
	Raw  string
}

// String returns the value as it would appear in source.
func (v Value) String() string {
	if v.Raw != "" {
		return v.Raw
	}
	if v.Kind == ValueNumber {
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	}
	return v.Str
}

// Document is the ordered result of one parse.
type Document struct {
	Statements []Statement
}

// Titles returns the title statements in source order.
func (d *Document) Titles() []Title {
	return collect[Title](d)
}

// Sets returns the set declarations in source order.
func (d *Document) Sets() []SetDecl {
	return collect[SetDecl](d)
}

// Intersections returns the intersection statements in source order.
func (d *Document) Intersections() []Intersection {
	return collect[Intersection](d)
}

// Styles returns the style directives in source order.
func (d *Document) Styles() []StyleDecl {
	return collect[StyleDecl](d)
}

func collect[T Statement](d *Document) []T {
	var out []T
	for _, st := range d.Statements {
		if v, ok := st.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

// MarshalJSON encodes the value as a JSON number or string.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.Kind == ValueNumber {
		return json.Marshal(v.Num)
	}
	return json.Marshal(v.Str)
}

func (a Attribute) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key   string `json:"key"`
		Value Value  `json:"value"`
	}{a.Key, a.Value})
}

func (t Title) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}{KindTitle.String(), t.Text})
}

func (s SetDecl) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string   `json:"type"`
		ID   string   `json:"id"`
		Size *float64 `json:"size"`
	}{KindSet.String(), s.ID, s.Size})
}

func (i Intersection) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string   `json:"type"`
		Sets  []string `json:"sets"`
		Label *string  `json:"label"`
		Size  *float64 `json:"size"`
	}{KindIntersect.String(), i.Sets, i.Label, i.Size})
}

func (s StyleDecl) MarshalJSON() ([]byte, error) {
	attrs := s.Attributes
	if attrs == nil {
		attrs = []Attribute{}
	}
	return json.Marshal(struct {
		Type       string      `json:"type"`
		ID         string      `json:"id"`
		Attributes []Attribute `json:"attributes"`
	}{KindStyle.String(), s.ID, attrs})
}

// MarshalJSON encodes the document as an array of records.
func (d *Document) MarshalJSON() ([]byte, error) {
	stmts := d.Statements
	if stmts == nil {
		stmts = []Statement{}
	}
	return json.Marshal(stmts)
}
