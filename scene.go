package venn

import (
	"fmt"
	"math"
)

// Config holds the presentation defaults a scene is built with. It is passed
// by value to every consumer; nothing in this package keeps a shared copy.
type Config struct {
	Width   float64  `json:"width"`
	Height  float64  `json:"height"`
	Padding float64  `json:"padding"`
	Palette []string `json:"palette"`
}

// category10 is the fallback fill palette, assigned in order of first use to
// ids without an explicit fill.
var category10 = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// DefaultConfig returns a 500x500 canvas with 15 units of padding.
func DefaultConfig() Config {
	return Config{
		Width:   500,
		Height:  500,
		Padding: 15,
		Palette: append([]string(nil), category10...),
	}
}

// ShapeStyle is the resolved presentation of one shape. Style directives
// override fields through their venn tags.
type ShapeStyle struct {
	Fill        string  `venn:"fill" json:"fill"`
	FillOpacity float64 `venn:"opacity" json:"fillOpacity"`
	Stroke      string  `venn:"stroke" json:"stroke"`
	StrokeWidth float64 `venn:"stroke-width" json:"strokeWidth"`
	TextColor   string  `venn:"color" json:"textColor"`
}

// Shape is one area to lay out: a set (one entry in Sets) or an
// intersection. Weight is its relative area.
type Shape struct {
	Sets   []string   `json:"sets"`
	Weight float64    `json:"weight"`
	Label  string     `json:"label,omitempty"`
	Style  ShapeStyle `json:"style"`
}

// LegendEntry pairs a set id with its fill colour.
type LegendEntry struct {
	ID    string `json:"id"`
	Color string `json:"color"`
}

// Scene is a parsed diagram partitioned into shapes to lay out, style
// overrides and decoration.
type Scene struct {
	ID      string                 `json:"id,omitempty"`
	Version string                 `json:"version,omitempty"`
	Title   string                 `json:"title,omitempty"`
	Config  Config                 `json:"config"`
	Shapes  []Shape                `json:"shapes"`
	Styles  map[string][]Attribute `json:"styles"`
	Legend  []LegendEntry          `json:"legend"`
}

// ValidationError reports a well-formed statement whose values cannot be
// laid out, such as a negative size.
type ValidationError struct {
	Statement Statement
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s statement: %s", e.Statement.Kind(), e.Message)
}

// BuildScene partitions doc into a Scene. Sets come first, then
// intersections, each in source order. A missing or zero size weighs 1.
// Styles for ids with no shape are kept but never applied. When several
// titles are present the last one is used.
func BuildScene(doc *Document, cfg Config) (*Scene, error) {
	sc := &Scene{
		Config: cfg,
		Styles: make(map[string][]Attribute),
		Shapes: []Shape{},
		Legend: []LegendEntry{},
	}

	for _, st := range doc.Statements {
		switch st := st.(type) {
		case Title:
			sc.Title = st.Text
		case StyleDecl:
			sc.Styles[st.ID] = append(sc.Styles[st.ID], st.Attributes...)
		}
	}

	colors := newColorScale(cfg.Palette)
	for _, set := range doc.Sets() {
		w, err := weight(set, set.Size)
		if err != nil {
			return nil, err
		}
		style, err := sc.resolveStyle(set.ID, colors)
		if err != nil {
			return nil, err
		}
		sc.Shapes = append(sc.Shapes, Shape{Sets: []string{set.ID}, Weight: w, Style: style})
		sc.Legend = append(sc.Legend, LegendEntry{ID: set.ID, Color: style.Fill})
	}
	for _, in := range doc.Intersections() {
		w, err := weight(in, in.Size)
		if err != nil {
			return nil, err
		}
		// Overlaps are coloured after their first set.
		style, err := sc.resolveStyle(in.Sets[0], colors)
		if err != nil {
			return nil, err
		}
		shape := Shape{Sets: append([]string(nil), in.Sets...), Weight: w, Style: style}
		if in.Label != nil {
			shape.Label = *in.Label
		}
		sc.Shapes = append(sc.Shapes, shape)
	}
	return sc, nil
}

func weight(st Statement, size *float64) (float64, error) {
	if size == nil || *size == 0 {
		return 1, nil
	}
	if *size < 0 || math.IsInf(*size, 0) || math.IsNaN(*size) {
		return 0, &ValidationError{Statement: st, Message: fmt.Sprintf("size %v must be a finite non-negative number", *size)}
	}
	return *size, nil
}

func (sc *Scene) resolveStyle(id string, colors *colorScale) (ShapeStyle, error) {
	style := ShapeStyle{
		FillOpacity: 0.5,
		Stroke:      "#fff",
		StrokeWidth: 3,
		TextColor:   "#444",
	}
	if err := UnmarshalAttributes(sc.Styles[id], &style); err != nil {
		return ShapeStyle{}, fmt.Errorf("style %s: %w", id, err)
	}
	if style.Fill == "" {
		style.Fill = colors.color(id)
	}
	return style, nil
}

// colorScale is an ordinal scale: each new id takes the next palette entry,
// wrapping around when the palette is exhausted.
type colorScale struct {
	palette  []string
	assigned map[string]string
}

func newColorScale(palette []string) *colorScale {
	if len(palette) == 0 {
		palette = category10
	}
	return &colorScale{palette: palette, assigned: make(map[string]string)}
}

func (c *colorScale) color(id string) string {
	if col, ok := c.assigned[id]; ok {
		return col
	}
	col := c.palette[len(c.assigned)%len(c.palette)]
	c.assigned[id] = col
	return col
}
