package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	venn "github.com/venndsl/go"
)

var version = "dev"

// env is the state shared by all commands, set up in Before.
type env struct {
	config venn.Config
	logger *slog.Logger
}

func newApp() *cli.App {
	e := &env{}
	return &cli.App{
		Name:    "venn",
		Usage:   "parse, format and check Venn diagram definitions",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "load presentation defaults from `FILE` (yaml, toml or json)",
				EnvVars: []string{"VENN_CONFIG"},
			},
			&cli.Float64Flag{Name: "width", Usage: "canvas width"},
			&cli.Float64Flag{Name: "height", Usage: "canvas height"},
			&cli.Float64Flag{Name: "padding", Usage: "canvas padding"},
			&cli.BoolFlag{Name: "verbose", Usage: "log draw events"},
			&cli.BoolFlag{Name: "debug", Usage: "log every parsed statement"},
		},
		Before: func(c *cli.Context) error {
			level := slog.LevelWarn
			switch {
			case c.Bool("debug"):
				level = slog.LevelDebug
			case c.Bool("verbose"):
				level = slog.LevelInfo
			}
			e.logger = slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{Level: level}))

			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			e.config = cfg
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "parse",
				Usage:     "print the statement records as JSON",
				ArgsUsage: "[FILE|-]",
				Action:    e.parse,
			},
			{
				Name:      "fmt",
				Usage:     "print the definition in canonical form",
				ArgsUsage: "[FILE|-]",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "write", Aliases: []string{"w"}, Usage: "rewrite FILE in place"},
				},
				Action: e.format,
			},
			{
				Name:      "check",
				Usage:     "report syntax errors",
				ArgsUsage: "FILE...",
				Action:    e.check,
			},
			{
				Name:      "scene",
				Usage:     "print the scene a renderer would draw as JSON",
				ArgsUsage: "[FILE|-]",
				Action:    e.scene,
			},
		},
	}
}

func (e *env) parser() *venn.Parser {
	return venn.NewParser().WithLogger(e.logger)
}

func (e *env) parse(c *cli.Context) error {
	text, _, err := readInput(c)
	if err != nil {
		return err
	}
	doc, err := e.parser().Parse(text)
	if err != nil {
		return cli.Exit(err, 1)
	}
	return writeJSON(c.App.Writer, doc)
}

func (e *env) format(c *cli.Context) error {
	text, path, err := readInput(c)
	if err != nil {
		return err
	}
	doc, err := e.parser().Parse(text)
	if err != nil {
		return cli.Exit(err, 1)
	}
	out := venn.Format(doc)

	if c.Bool("write") {
		if path == "" {
			return cli.Exit("fmt: --write needs a file argument", 2)
		}
		if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		return nil
	}
	_, err = io.WriteString(c.App.Writer, out)
	return err
}

func (e *env) check(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("check: no files given", 2)
	}
	p := e.parser()
	failed := 0
	for _, path := range c.Args().Slice() {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		if _, err := p.Parse(string(data)); err != nil {
			failed++
			fmt.Fprintf(c.App.Writer, "%s: %v\n", path, err)
			continue
		}
		fmt.Fprintf(c.App.Writer, "%s: ok\n", path)
	}
	if failed > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d files failed", failed, c.NArg()), 1)
	}
	return nil
}

func (e *env) scene(c *cli.Context) error {
	text, path, err := readInput(c)
	if err != nil {
		return err
	}
	id := "stdin"
	if path != "" {
		id = filepath.Base(path)
	}
	d := venn.NewDiagram(venn.WithConfig(e.config), venn.WithLogger(e.logger))
	scene, err := d.Draw(text, id, c.App.Version)
	if err != nil {
		return cli.Exit(err, 1)
	}
	return writeJSON(c.App.Writer, scene)
}

// readInput reads the first argument, or standard input when it is absent
// or "-". The returned path is empty for standard input.
func readInput(c *cli.Context) (string, string, error) {
	path := c.Args().First()
	if path == "" || path == "-" {
		data, err := io.ReadAll(c.App.Reader)
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), path, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
