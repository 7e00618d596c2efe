package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/dr8co/yj/internal/config"
	"github.com/dr8co/yj/internal/output"
	"github.com/dr8co/yj/internal/style"
)

// YAMLCommand returns the yaml command configuration.
func YAMLCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:    "yaml",
		Aliases: []string{"to-yaml", "j2y"},
		Usage:   "Convert JSON, TOML or YAML to YAML",
		Description: `Read documents from a file or standard input and print them as YAML.
Several input documents are separated by "---" in the output.`,
		ArgsUsage:             "[file]",
		EnableShellCompletion: true,
		Suggest:               true,
		Flags:                 inputFlags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			return yamlCmd(ctx, c, cfg)
		},
	}
}

// yamlCmd is the action function for the yaml command.
func yamlCmd(ctx context.Context, c *cli.Command, cfg *config.Config) error {
	yc := &cfg.YAML

	// Override with CLI flags
	if c.IsSet("indent") {
		yc.Indent = c.Int("indent")
	}
	if c.IsSet("input-format") {
		yc.InputFormat = c.String("input-format")
	}
	if c.IsSet("preserve-order") {
		yc.PreserveOrder = c.Bool("preserve-order")
	}
	if c.IsSet("output-file") {
		yc.OutputFile = c.String("output-file")
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	input, err := inputArg(c)
	if err != nil {
		return err
	}

	formatter := output.NewYAMLFormatter()
	formatter.IndentSize = yc.Indent

	reg, err := output.InitFormatters(formatter)
	if err != nil {
		return fmt.Errorf("error initializing formatters: %w", err)
	}

	return run(ctx, conversion{
		input:       input,
		inputFormat: yc.InputFormat,
		sortKeys:    !yc.PreserveOrder,
		outputFile:  yc.OutputFile,
		color:       style.Never,
		progress:    c.Bool("progress"),
		registry:    reg,
		output:      formatter.Name(),
	})
}
