package main

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/arjunmahishi/codeview/codeview"
	"github.com/arjunmahishi/codeview/output"
)

func viewCommand() *cli.Command {
	return &cli.Command{
		Name:      "view",
		Usage:     "show the interface of files or expand symbols",
		ArgsUsage: "PATH [SYMBOL...]",
		Description: "Without symbols, print every top-level item with bodies collapsed.\n" +
			"With symbols, print each matching item in full.\n\n" +
			"Examples:\n" +
			"  codeview view src/                      # interface of a tree\n" +
			"  codeview view src/lib.rs Config new     # expand two symbols\n" +
			"  codeview view src/ --signatures Server  # one container, bodies collapsed\n" +
			"  codeview view src/ --stats              # counts only",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "pub", Usage: "only public items"},
			&cli.BoolFlag{Name: "fns", Usage: "only functions and methods"},
			&cli.BoolFlag{Name: "types", Usage: "only struct, enum, trait, type alias and class items"},
			&cli.BoolFlag{Name: "no-tests", Usage: "drop a mod named tests"},
			&cli.IntFlag{Name: "depth", Usage: "directory recursion depth (default: unlimited)"},
			&cli.StringSliceFlag{Name: "ext", Usage: "only files with these extensions"},
			&cli.StringFlag{Name: "signatures", Usage: "render this container with member bodies collapsed"},
			&cli.StringFlag{Name: "expand", Usage: "comma separated members kept in full with --signatures"},
			&cli.IntFlag{Name: "max-lines", Usage: "truncate each expanded item after this many lines"},
			&cli.BoolFlag{Name: "list-symbols", Usage: "one line per item"},
			&cli.BoolFlag{Name: "stats", Usage: "show line, byte and item counts instead of content"},
			jsonFlag(),
			jobsFlag(),
			maxBytesFlag(),
		},
		Action: runView,
	}
}

func runView(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() == 0 {
		return errors.New("PATH is required")
	}
	args := cmd.Args().Slice()

	opts := codeview.ViewOptions{
		Path:       args[0],
		Symbols:    args[1:],
		Signatures: cmd.String("signatures"),
		Keep:       splitList(cmd.String("expand")),
		Filter: codeview.Filter{
			Pub:     cmd.Bool("pub"),
			Fns:     cmd.Bool("fns"),
			Types:   cmd.Bool("types"),
			NoTests: cmd.Bool("no-tests"),
		},
		Walk: codeview.WalkOptions{
			Depth:      depth(cmd),
			Ext:        extensions(cmd),
			IgnoreDirs: settings.IgnoreDirs,
			MaxBytes:   maxBytes(cmd),
			Jobs:       jobs(cmd),
		},
	}

	files, err := codeview.View(ctx, opts)
	if err != nil {
		return err
	}

	asJSON := cmd.Bool("json")
	switch {
	case cmd.Bool("stats"):
		stats := output.GatherStats(files)
		if asJSON {
			return jsonOut(cmd).Stats(stats)
		}
		return output.PlainStats(os.Stdout, stats)
	case asJSON:
		return jsonOut(cmd).Files(files)
	case cmd.Bool("list-symbols"):
		return output.ListSymbols(os.Stdout, files)
	}

	maxLines := settings.MaxLines
	if cmd.IsSet("max-lines") {
		maxLines = cmd.Int("max-lines")
	}
	return output.Plain(os.Stdout, files, output.PlainOptions{
		Expand:   opts.Mode() != codeview.InterfaceMode,
		MaxLines: maxLines,
	})
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
