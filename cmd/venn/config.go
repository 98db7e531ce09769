package main

import (
	"fmt"

	"github.com/spf13/viper"
	"github.com/urfave/cli/v2"

	venn "github.com/venndsl/go"
)

// loadConfig resolves presentation defaults. Later sources win: built-in
// defaults, the --config file, VENN_* environment variables, then flags set
// on the command line.
func loadConfig(c *cli.Context) (venn.Config, error) {
	v := viper.New()

	def := venn.DefaultConfig()
	v.SetDefault("width", def.Width)
	v.SetDefault("height", def.Height)
	v.SetDefault("padding", def.Padding)
	v.SetDefault("palette", def.Palette)

	v.SetEnvPrefix("VENN")
	v.AutomaticEnv()

	if path := c.String("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return venn.Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	for _, name := range []string{"width", "height", "padding"} {
		if c.IsSet(name) {
			v.Set(name, c.Float64(name))
		}
	}

	return venn.Config{
		Width:   v.GetFloat64("width"),
		Height:  v.GetFloat64("height"),
		Padding: v.GetFloat64("padding"),
		Palette: v.GetStringSlice("palette"),
	}, nil
}
