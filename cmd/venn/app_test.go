package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

const sample = `vennDiagram
title   Pets
set Cats size:30
set Dogs
intersect Cats Dogs : "Both"
style Cats fill:#ff0000
`

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	app := newApp()
	var out, errOut bytes.Buffer
	app.Writer = &out
	app.ErrWriter = &errOut
	app.Reader = strings.NewReader(stdin)
	app.ExitErrHandler = func(*cli.Context, error) {}

	err := app.Run(append([]string{"venn"}, args...))
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseCommandStdin(t *testing.T) {
	out, _, err := run(t, sample, "parse")
	require.NoError(t, err)

	var records []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 5)
	assert.Equal(t, "title", records[0]["type"])
	assert.Equal(t, "Pets", records[0]["text"])
	assert.Equal(t, 30.0, records[1]["size"])
	assert.Nil(t, records[2]["size"])
	assert.Equal(t, "Both", records[3]["label"])
}

func TestParseCommandError(t *testing.T) {
	_, _, err := run(t, "vennDiagram\nset A\ninvalid command\n", "parse", "-")
	require.Error(t, err)

	exit, ok := err.(cli.ExitCoder)
	require.True(t, ok, "expected exit error, got %T", err)
	assert.Equal(t, 1, exit.ExitCode())
	assert.Contains(t, err.Error(), "line 3")
}

func TestFmtCommand(t *testing.T) {
	path := writeFile(t, "pets.venn", sample)

	out, _, err := run(t, "", "fmt", path)
	require.NoError(t, err)
	assert.Equal(t, `vennDiagram
  title Pets
  set Cats size:30
  set Dogs
  intersect Cats Dogs : "Both"
  style Cats fill:#ff0000
`, out)

	_, _, err = run(t, "", "fmt", "--write", path)
	require.NoError(t, err)
	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, out, string(written))
}

func TestFmtWriteNeedsFile(t *testing.T) {
	_, _, err := run(t, sample, "fmt", "-w")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "needs a file argument")
}

func TestCheckCommand(t *testing.T) {
	good := writeFile(t, "good.venn", sample)
	bad := writeFile(t, "bad.venn", "set A\n")

	out, _, err := run(t, "", "check", good)
	require.NoError(t, err)
	assert.Equal(t, good+": ok\n", out)

	out, _, err = run(t, "", "check", good, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 files failed")
	assert.Contains(t, out, good+": ok")
	assert.Contains(t, out, bad+": line 1, col 1: missing \"vennDiagram\" header")
}

func TestCheckCommandNoFiles(t *testing.T) {
	_, _, err := run(t, "", "check")
	require.Error(t, err)
	exit, ok := err.(cli.ExitCoder)
	require.True(t, ok)
	assert.Equal(t, 2, exit.ExitCode())
}

func TestSceneCommand(t *testing.T) {
	path := writeFile(t, "pets.venn", sample)

	out, logs, err := run(t, "", "--width", "800", "--verbose", "scene", path)
	require.NoError(t, err)

	var scene struct {
		ID     string `json:"id"`
		Title  string `json:"title"`
		Config struct {
			Width  float64 `json:"width"`
			Height float64 `json:"height"`
		} `json:"config"`
		Shapes []struct {
			Sets   []string `json:"sets"`
			Weight float64  `json:"weight"`
		} `json:"shapes"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &scene))
	assert.Equal(t, "pets.venn", scene.ID)
	assert.Equal(t, "Pets", scene.Title)
	assert.Equal(t, 800.0, scene.Config.Width)
	assert.Equal(t, 500.0, scene.Config.Height)
	require.Len(t, scene.Shapes, 3)
	assert.Equal(t, 30.0, scene.Shapes[0].Weight)

	assert.Contains(t, logs, "drawing venn diagram")
}

func TestSceneCommandConfigFile(t *testing.T) {
	cfg := writeFile(t, "venn.yaml", "width: 640\npadding: 4\npalette:\n  - \"#000000\"\n")

	out, _, err := run(t, "vennDiagram\nset A\nset B\n", "--config", cfg, "--padding", "8", "scene")
	require.NoError(t, err)

	var scene struct {
		Config struct {
			Width   float64  `json:"width"`
			Padding float64  `json:"padding"`
			Palette []string `json:"palette"`
		} `json:"config"`
		Legend []struct {
			ID    string `json:"id"`
			Color string `json:"color"`
		} `json:"legend"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &scene))
	assert.Equal(t, 640.0, scene.Config.Width)
	assert.Equal(t, 8.0, scene.Config.Padding, "flags override the config file")
	assert.Equal(t, []string{"#000000"}, scene.Config.Palette)
	require.Len(t, scene.Legend, 2)
	assert.Equal(t, "#000000", scene.Legend[1].Color)
}

func TestSceneCommandEnv(t *testing.T) {
	t.Setenv("VENN_HEIGHT", "321")
	out, _, err := run(t, "vennDiagram\nset A\n", "scene")
	require.NoError(t, err)
	assert.Contains(t, out, `"height": 321`)
}

func TestMissingConfigFile(t *testing.T) {
	_, _, err := run(t, sample, "--config", filepath.Join(t.TempDir(), "nope.yaml"), "parse")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}
