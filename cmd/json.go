package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/dr8co/yj/internal/config"
	"github.com/dr8co/yj/internal/output"
	"github.com/dr8co/yj/internal/stats"
	"github.com/dr8co/yj/internal/style"
)

// JSONCommand returns the json command configuration.
func JSONCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:    "json",
		Aliases: []string{"to-json", "y2j"},
		Usage:   "Convert YAML, TOML or JSON to colorized JSON",
		Description: `Read documents from a file or standard input and print them as JSON.
Object keys, strings and nulls are colored when writing to a terminal.
A YAML stream with several documents prints one JSON document per document.`,
		ArgsUsage:             "[file]",
		EnableShellCompletion: true,
		Suggest:               true,

		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:    "minify",
				Aliases: []string{"m"},
				Usage:   "Write compact JSON on a single line",
			},
			&cli.StringFlag{
				Name:    "color",
				Aliases: []string{"c"},
				Usage:   "When to color the output: " + strings.Join(style.ChoiceNames(), ", "),
				Value:   "auto",
			},
			&cli.StringFlag{
				Name:  "key-color",
				Usage: `Style of object keys (e.g. "bold blue", "#ff8800 underline", "none")`,
				Value: "bold blue",
			},
			&cli.StringFlag{
				Name:  "string-color",
				Usage: "Style of string values",
				Value: "bold green",
			},
			&cli.StringFlag{
				Name:  "null-color",
				Usage: "Style of null",
				Value: "bold black",
			},
			&cli.BoolFlag{
				Name:  "stats",
				Usage: "Print a conversion summary to stderr",
			},
		}, inputFlags()...),
		Action: func(ctx context.Context, c *cli.Command) error {
			return jsonCmd(ctx, c, cfg)
		},
	}
}

// jsonCmd is the action function for the json command.
func jsonCmd(ctx context.Context, c *cli.Command, cfg *config.Config) error {
	jc := &cfg.JSON

	// Override with CLI flags
	if c.IsSet("minify") {
		jc.Minify = c.Bool("minify")
	}
	if c.IsSet("color") {
		jc.Color = c.String("color")
	}
	if c.IsSet("indent") {
		jc.Indent = c.Int("indent")
	}
	if c.IsSet("input-format") {
		jc.InputFormat = c.String("input-format")
	}
	if c.IsSet("preserve-order") {
		jc.PreserveOrder = c.Bool("preserve-order")
	}
	if c.IsSet("key-color") {
		jc.KeyColor = c.String("key-color")
	}
	if c.IsSet("string-color") {
		jc.StringColor = c.String("string-color")
	}
	if c.IsSet("null-color") {
		jc.NullColor = c.String("null-color")
	}
	if c.IsSet("stats") {
		jc.Stats = c.Bool("stats")
	}
	if c.IsSet("output-file") {
		jc.OutputFile = c.String("output-file")
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	input, err := inputArg(c)
	if err != nil {
		return err
	}

	formatter, err := newJSONFormatter(jc)
	if err != nil {
		return err
	}

	choice, err := style.ParseChoice(jc.Color)
	if err != nil {
		return err
	}

	reg, err := output.InitFormatters(formatter)
	if err != nil {
		return fmt.Errorf("error initializing formatters: %w", err)
	}

	err = run(ctx, conversion{
		input:       input,
		inputFormat: jc.InputFormat,
		sortKeys:    !jc.PreserveOrder,
		outputFile:  jc.OutputFile,
		color:       choice,
		progress:    c.Bool("progress"),
		registry:    reg,
		output:      formatter.Name(),
	})
	if err != nil {
		return err
	}

	if formatter.Stats != nil {
		formatter.Stats.Finish()
		if err := stats.Report(os.Stderr, formatter.Stats); err != nil {
			return fmt.Errorf("error writing stats: %w", err)
		}
	}
	return nil
}

// newJSONFormatter builds the JSON output formatter from cfg.
func newJSONFormatter(cfg *config.JSONConfig) (*output.JSONFormatter, error) {
	f := output.NewJSONFormatter()
	f.Minify = cfg.Minify
	f.IndentSize = cfg.Indent

	colors := []struct {
		name string
		text string
		dst  *style.Spec
	}{
		{"key color", cfg.KeyColor, &f.KeyColor},
		{"string color", cfg.StringColor, &f.StringColor},
		{"null color", cfg.NullColor, &f.NullColor},
	}
	for _, col := range colors {
		if col.text == "" {
			continue
		}
		spec, err := style.ParseSpec(col.text)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", col.name, err)
		}
		*col.dst = spec
	}

	if cfg.Stats {
		f.Stats = stats.New()
	}
	return f, nil
}
