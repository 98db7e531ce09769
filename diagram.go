package venn

import (
	"fmt"
	"log/slog"
)

// Diagram ties a parser to the presentation config a host renders with.
type Diagram struct {
	parser *Parser
	config Config
	logger *slog.Logger
}

// Option configures a Diagram.
type Option func(*Diagram)

// WithConfig sets the presentation config. The palette is copied.
func WithConfig(cfg Config) Option {
	return func(d *Diagram) {
		cfg.Palette = append([]string(nil), cfg.Palette...)
		d.config = cfg
	}
}

// WithLogger sets the logger for draw and parse events. Nil disables logging.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Diagram) {
		if logger == nil {
			logger = slog.New(slog.DiscardHandler)
		}
		d.logger = logger.With(slog.String("component", "diagram"))
		d.parser.WithLogger(logger)
	}
}

// NewDiagram returns a Diagram using DefaultConfig unless overridden.
func NewDiagram(opts ...Option) *Diagram {
	d := &Diagram{
		parser: NewParser(),
		config: DefaultConfig(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Styles returns a copy of the diagram's config.
func (d *Diagram) Styles() Config {
	cfg := d.config
	cfg.Palette = append([]string(nil), d.config.Palette...)
	return cfg
}

// Draw parses text and builds the scene a renderer draws for the diagram
// identified by id and version. Any parse or validation error is logged and
// returned; no partial scene is produced.
func (d *Diagram) Draw(text, id, version string) (*Scene, error) {
	log := d.logger.With(slog.String("id", id), slog.String("version", version))
	log.Info("drawing venn diagram")

	doc, err := d.parser.Parse(text)
	if err != nil {
		log.Error("error while parsing venn diagram", slog.Any("error", err))
		return nil, fmt.Errorf("draw %s: %w", id, err)
	}

	scene, err := BuildScene(doc, d.Styles())
	if err != nil {
		log.Error("error while building venn scene", slog.Any("error", err))
		return nil, fmt.Errorf("draw %s: %w", id, err)
	}
	scene.ID = id
	scene.Version = version

	log.Debug("built scene", slog.Int("shapes", len(scene.Shapes)), slog.String("title", scene.Title))
	return scene, nil
}
