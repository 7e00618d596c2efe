// Yj converts YAML, TOML and JSON documents to colorized JSON, and back to YAML.
// Object keys, strings and nulls are styled when the output is a terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/dr8co/yj/cmd"
	"github.com/dr8co/yj/internal/config"
	"github.com/dr8co/yj/internal/logger"
	"github.com/dr8co/yj/internal/pathutil"
)

const (
	version = "1.0.0"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var closer io.Closer
	closeLogFile := func() {
		if closer != nil {
			_ = closer.Close()
		}
	}
	defer closeLogFile()

	// exit function to handle a graceful shutdown
	exit := func(status int) {
		cancel()
		closeLogFile()
		os.Exit(status)
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		sig := <-c
		logger.InfoAttrs(ctx, "Received signal, shutting down", slog.String("signal", sig.String()))
		exit(1)
	}()

	appConfig, err := config.Load()
	if err != nil {
		if appConfig == nil {
			logger.Error("failed to load the config", "error", err)
			exit(1)
		}
		logger.Warn("some configuration sources were skipped", "error", err)
	}

	app := &cli.Command{
		Name:    "yj",
		Usage:   "Convert YAML, TOML and JSON to colorized JSON or YAML",
		Version: version,
		Authors: []any{
			"Ian Duncan <dr8co@duck.com>",
		},
		Copyright: "(c) 2025 Ian Duncan",
		Description: `Read a YAML, TOML or JSON document from a file or standard input and
print it as JSON. On a terminal, object keys, strings and nulls are colored.

Settings are read from config.yaml, config.toml and config.json in the user
config directory, then from YJ_* environment variables, then from --config.
Command-line flags take precedence over all of them.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Set the log level (debug, info, warn, error)",
				Value: "warn",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "Set the log format (text, json, pretty, discard)",
				Value: "pretty",
			},
			&cli.StringFlag{
				Name:  "log-output",
				Usage: "Set the log output (stdout, stderr, null, or file path)",
				Value: "stderr",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "Path to a TOML, YAML or JSON configuration file",
			},
		},
		Commands: []*cli.Command{
			cmd.JSONCommand(appConfig),
			cmd.YAMLCommand(appConfig),
		},
		DefaultCommand:        "json",
		Suggest:               true,
		EnableShellCompletion: true,
		Before: func(ctx context.Context, command *cli.Command) (context.Context, error) {
			if command.IsSet("config") {
				configPath, err := pathutil.ValidateRegularFile(command.String("config"))
				if err != nil {
					return ctx, fmt.Errorf("failed to parse the config: %w", err)
				}

				loader := config.NewLoader(
					config.WithTimeout(2 * time.Second),
				)
				loader.AddDefaultProviders(config.Dir())
				loader.AddProvider(config.NewRequiredFileProvider(configPath, config.PriorityExplicitFile))
				customConfig, err := loader.Load(ctx)
				if err != nil {
					return ctx, err
				}
				*appConfig = *customConfig
			}

			logCloser, err := initialize(command, appConfig)
			closer = logCloser
			return ctx, err
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		if errors.Is(err, syscall.EPIPE) {
			// The reader went away, e.g. `yj big.yaml | head`.
			exit(0)
		}
		logger.Error("application error", "error", err)
		exit(1)
	}
}

// initialize sets up the logging system based on CLI flags and configuration.
func initialize(command *cli.Command, cfg *config.Config) (io.Closer, error) {
	// Override with CLI flags
	if command.IsSet("log-level") {
		cfg.Log.Level = command.String("log-level")
	}
	if command.IsSet("log-format") {
		cfg.Log.Format = command.String("log-format")
	}
	if command.IsSet("log-output") {
		cfg.Log.Output = command.String("log-output")
	}

	logCfg, closer, err := logger.NewConfig(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output)
	if err != nil {
		return nil, err
	}

	l, err := logger.New(logCfg)
	if err != nil {
		return closer, err
	}

	return closer, logger.SetDefault(l)
}
