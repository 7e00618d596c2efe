// Package cmd provides the command-line interface commands of yj.
//
// This package implements the CLI commands using the urfave/cli framework:
//   - json: convert YAML, TOML or JSON input to colorized JSON
//   - yaml: convert JSON, TOML or YAML input to YAML
//
// Both commands read a single file argument or standard input, and write to
// standard output unless an output file is given. Flags override the
// values loaded by the config package.
package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v3"

	"github.com/dr8co/yj/internal/document"
	"github.com/dr8co/yj/internal/logger"
	"github.com/dr8co/yj/internal/output"
	"github.com/dr8co/yj/internal/pathutil"
	"github.com/dr8co/yj/internal/style"
)

// conversion describes one run of a command.
type conversion struct {
	input       string
	inputFormat string
	sortKeys    bool
	outputFile  string
	color       style.Choice
	progress    bool
	registry    *output.OutputFormatterRegistry
	output      string
}

// inputArg returns the single optional file argument.
func inputArg(c *cli.Command) (string, error) {
	switch c.NArg() {
	case 0:
		return "", nil
	case 1:
		return c.Args().First(), nil
	}
	return "", fmt.Errorf("expected at most one input file, got %d", c.NArg())
}

// inputFlags are shared by both commands.
func inputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "input-format",
			Aliases: []string{"i"},
			Usage:   "Input format: auto, json, yaml, toml",
			Value:   "auto",
		},
		&cli.IntFlag{
			Name:  "indent",
			Usage: "Spaces per nesting level",
			Value: 2,
		},
		&cli.BoolFlag{
			Name:  "preserve-order",
			Usage: "Keep object keys in document order instead of sorting them",
		},
		&cli.StringFlag{
			Name:    "output-file",
			Aliases: []string{"o"},
			Usage:   "Write output to file (default: stdout)",
		},
		&cli.BoolFlag{
			Name:  "progress",
			Usage: "Show a spinner on stderr while converting",
		},
	}
}

// run decodes every document of the input and encodes it with
// the formatter registered as conv.output.
func run(ctx context.Context, conv conversion) (err error) {
	format, err := document.ParseFormat(conv.inputFormat)
	if err != nil {
		return err
	}

	in, err := pathutil.OpenInput(conv.input)
	if err != nil {
		return fmt.Errorf("error opening input: %w", err)
	}
	defer func() { _ = in.Close() }()

	dest := os.Stdout
	if !pathutil.IsStdio(conv.outputFile) {
		dest, err = pathutil.CreateOutput(conv.outputFile)
		if err != nil {
			return fmt.Errorf("error opening output file: %w", err)
		}
		defer func() {
			if cerr := dest.Close(); err == nil && cerr != nil {
				err = fmt.Errorf("error closing output file: %w", cerr)
			}
		}()
	}

	out, colored := conv.color.Output(dest)
	bw := bufio.NewWriter(out)
	sink := style.NewWriter(bw, colored)

	logger.Debug("Converting",
		"input", displayName(conv.input),
		"input_format", string(format),
		"output", conv.output,
		"colored", colored)

	dec, err := document.NewDecoder(in, format, conv.input, document.Options{SortKeys: conv.sortKeys})
	if err != nil {
		return err
	}

	stopProgress := func() {}
	if progressWanted(conv.progress, isatty.IsTerminal(os.Stderr.Fd()), isatty.IsTerminal(dest.Fd())) {
		s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
		s.Suffix = " Converting " + displayName(conv.input)
		s.Start()
		stopProgress = s.Stop
		defer s.Stop()
	}

	enc, err := conv.registry.NewEncoder(conv.output, sink)
	if err != nil {
		return err
	}
	n, err := transcode(ctx, dec, enc)
	stopProgress()
	if err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("error writing output: %w", err)
	}

	logger.Debug("Converted", "documents", n)
	if dest != os.Stdout {
		logger.Info("Results written", "file", conv.outputFile, "documents", n)
	}
	return nil
}

// progressWanted reports whether to show the spinner. Its frames are
// redrawn with carriage returns, so it stays off when the documents go
// to a terminal as well.
func progressWanted(requested, stderrTerminal, destTerminal bool) bool {
	return requested && stderrTerminal && !destTerminal
}

// transcode copies documents from dec to enc until the input ends and
// returns how many were written.
func transcode(ctx context.Context, dec document.Decoder, enc output.Encoder) (int, error) {
	n := 0
	for {
		select {
		case <-ctx.Done():
			return n, ctx.Err()
		default:
		}

		doc, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return n, fmt.Errorf("error decoding document %d: %w", n+1, err)
		}
		if err := enc.Encode(doc); err != nil {
			return n, err
		}
		n++
	}

	if err := enc.Close(); err != nil {
		return n, fmt.Errorf("error finishing output: %w", err)
	}
	return n, nil
}

func displayName(path string) string {
	if pathutil.IsStdio(path) {
		return "<stdin>"
	}
	return path
}
