// Package cmd is the command-line surface of sidediff: flag parsing,
// the file and directory collaborators, and exit-status mapping. The
// rendering core receives one resolved, immutable options value and
// never looks at flags, files, or the environment itself.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/sidediff/sidediff/internal/log"
	"github.com/sidediff/sidediff/internal/render"
)

const version = "1.1.0"

// Main runs the tool and returns its exit status: 0 clean, 1 when any
// comparison failed at runtime, 2 for configuration or usage mistakes.
func Main(args []string) int {
	log.Init()

	r := &runner{stdout: os.Stdout, stderr: os.Stderr}
	app := newApp(r)

	if err := app.Run(context.Background(), args); err != nil {
		fmt.Fprintf(os.Stderr, "sidediff: %v\n", err)
		var coder cli.ExitCoder
		if errors.As(err, &coder) {
			return coder.ExitCode()
		}
		return 2 // flag-parse and validation problems are usage errors
	}
	if r.failed {
		return 1
	}
	return 0
}

func newApp(r *runner) *cli.Command {
	return &cli.Command{
		Name:      "sidediff",
		Usage:     "side-by-side terminal diff with color highlights",
		ArgsUsage: "left right",
		Version:   version,
		// Keep exit-status mapping in Main instead of letting the CLI
		// library call os.Exit on ExitCoder errors.
		ExitErrHandler: func(ctx context.Context, cmd *cli.Command, err error) {},
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "cols", Usage: "total line width; autodetected from the terminal when 0"},
			&cli.IntFlag{Name: "tabsize", Value: 8, Usage: "tab stop spacing"},
			&cli.BoolFlag{Name: "line-numbers", Aliases: []string{"N"}, Usage: "show line numbers"},
			&cli.BoolFlag{Name: "highlight", Aliases: []string{"H"}, Usage: "color by changing the background instead of the foreground"},
			&cli.BoolFlag{Name: "no-bold", Usage: "use non-bold colors"},
			&cli.BoolFlag{Name: "show-all-spaces", Usage: "highlight every changed whitespace character individually"},
			&cli.BoolFlag{Name: "show-no-spaces", Usage: "leave whitespace-only changes unhighlighted"},
			&cli.BoolFlag{Name: "truncate", Usage: "truncate long lines instead of wrapping them"},
			&cli.BoolFlag{Name: "strip-trailing-cr", Usage: "strip trailing carriage returns before comparing"},
			&cli.IntFlag{Name: "head", Usage: "compare at most the first N lines of each file"},
			&cli.StringFlag{Name: "exclude-lines", Aliases: []string{"x"}, Usage: "drop lines matching this regex before comparing"},
			&cli.StringSliceFlag{Name: "label", Aliases: []string{"L"}, Usage: "column header; give twice, once per side"},
			&cli.BoolFlag{Name: "no-headers", Usage: "omit the filename header row"},
			&cli.BoolFlag{Name: "whole-file", Aliases: []string{"W"}, Usage: "show the whole file, not just changed regions"},
			&cli.IntFlag{Name: "unified", Aliases: []string{"U"}, Value: 5, Usage: "unchanged lines shown around each change"},
			&cli.BoolFlag{Name: "recursive", Aliases: []string{"r"}, Usage: "recursively compare subdirectories"},
			&cli.BoolFlag{Name: "report-identical-files", Aliases: []string{"s"}, Usage: "report when two files are the same"},
			&cli.BoolFlag{Name: "permissions", Aliases: []string{"P"}, Usage: "add a row when file permissions differ"},
			&cli.StringFlag{Name: "color-map", Usage: `override colors, e.g. "change:magenta,subtract:red_bold"`},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			paths := cmd.Args().Slice()
			if len(paths) != 2 {
				return cli.Exit("usage: sidediff [options] left right", 2)
			}
			if err := r.configure(cmd); err != nil {
				return err
			}
			r.comparePaths(paths[0], paths[1])
			return nil
		},
	}
}

// configure resolves every flag into the runner's immutable per-run
// state. All configuration errors surface here, before any row is
// rendered.
func (r *runner) configure(cmd *cli.Command) error {
	if cmd.Bool("show-all-spaces") && cmd.Bool("show-no-spaces") {
		return &render.ConfigError{
			Token:  "--show-all-spaces, --show-no-spaces",
			Reason: "conflicting whitespace flags",
		}
	}

	labels := cmd.StringSlice("label")
	if len(labels) != 0 && len(labels) != 2 {
		return &render.ConfigError{
			Token:  strings.Join(labels, ", "),
			Reason: "to use arbitrary file labels, specify -L exactly twice",
		}
	}
	r.labels = labels

	overrides, err := render.ParseColorMap(cmd.String("color-map"))
	if err != nil {
		return err
	}
	colors, err := render.ResolveColors(overrides, cmd.Bool("no-bold"))
	if err != nil {
		return err
	}
	r.colors = colors

	if pattern := cmd.String("exclude-lines"); pattern != "" {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return &render.ConfigError{Token: pattern, Reason: "invalid exclude-lines pattern"}
		}
		r.exclude = re
	}

	cols := int(cmd.Int("cols"))
	if cols <= 0 {
		cols = terminalCols(os.Stdout)
	}

	whitespace := render.WhitespaceDefault
	if cmd.Bool("show-all-spaces") {
		whitespace = render.WhitespaceShowAll
	} else if cmd.Bool("show-no-spaces") {
		whitespace = render.WhitespaceShowNone
	}

	r.opts = render.Options{
		Cols:         cols,
		TabSize:      int(cmd.Int("tabsize")),
		LineNumbers:  cmd.Bool("line-numbers"),
		Highlight:    cmd.Bool("highlight"),
		Whitespace:   whitespace,
		Truncate:     cmd.Bool("truncate"),
		StripCR:      cmd.Bool("strip-trailing-cr"),
		Colors:       colors,
		Context:      !cmd.Bool("whole-file"),
		ContextLines: int(cmd.Int("unified")),
	}
	r.head = int(cmd.Int("head"))
	r.recursive = cmd.Bool("recursive")
	r.reportIdentical = cmd.Bool("report-identical-files")
	r.noHeaders = cmd.Bool("no-headers")
	r.showPerms = cmd.Bool("permissions")

	return nil
}

// terminalCols reads the width of the terminal behind f, defaulting to
// 80 when f is not a terminal.
func terminalCols(f *os.File) int {
	if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}
