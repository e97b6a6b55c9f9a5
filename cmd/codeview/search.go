package main

import (
	"context"
	"errors"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/arjunmahishi/codeview/codeview"
	"github.com/arjunmahishi/codeview/output"
)

func searchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "regex search with enclosing symbols",
		ArgsUsage: "PATTERN [PATH]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "ignore-case",
				Aliases: []string{"i"},
				Usage:   "case-insensitive matching",
			},
			&cli.IntFlag{Name: "depth", Usage: "directory recursion depth (default: unlimited)"},
			&cli.StringSliceFlag{Name: "ext", Usage: "only files with these extensions"},
			&cli.IntFlag{
				Name:  "max-results",
				Usage: "maximum number of matches to show, 0 for all (default: 100 for directories)",
			},
			jsonFlag(),
			jobsFlag(),
			maxBytesFlag(),
		},
		Action: runSearch,
	}
}

func runSearch(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() == 0 {
		return errors.New("PATTERN is required")
	}

	opts := codeview.SearchOptions{
		Pattern:    cmd.Args().Get(0),
		IgnoreCase: cmd.Bool("ignore-case"),
		Path:       cmd.Args().Get(1),
		MaxResults: maxResults(cmd),
		Walk: codeview.WalkOptions{
			Depth:      depth(cmd),
			Ext:        extensions(cmd),
			IgnoreDirs: settings.IgnoreDirs,
			MaxBytes:   maxBytes(cmd),
			Jobs:       jobs(cmd),
		},
	}

	results, overflow, err := codeview.Search(ctx, opts)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return jsonOut(cmd).Search(results, overflow)
	}
	return output.SearchResults(os.Stdout, results, overflow)
}

// maxResults is nil unless the flag was given, leaving the per-path default
// to codeview.Search.
func maxResults(cmd *cli.Command) *int {
	if !cmd.IsSet("max-results") {
		return nil
	}
	n := cmd.Int("max-results")
	return &n
}

func linesCommand() *cli.Command {
	return &cli.Command{
		Name:      "lines",
		Usage:     "print a line range with its enclosing symbols",
		ArgsUsage: "FILE START-END",
		Flags:     []cli.Flag{jsonFlag()},
		Action:    runLines,
	}
}

func runLines(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 2 {
		return errors.New("FILE and START-END are required")
	}

	r, err := codeview.Lines(ctx, cmd.Args().Get(0), cmd.Args().Get(1))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return jsonOut(cmd).LineRange(r)
	}
	return output.LineRange(os.Stdout, r)
}
