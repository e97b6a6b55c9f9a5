package main

import (
	"context"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/arjunmahishi/codeview/config"
	_ "github.com/arjunmahishi/codeview/lang" // Register languages
	"github.com/arjunmahishi/codeview/output"
)

// settings is loaded before any subcommand runs.
var settings = config.Default()

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	app := &cli.Command{
		Name:  "codeview",
		Usage: "view, search and edit code by symbol with tree-sitter",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to a TOML config file (default .codeview.toml)",
			},
			&cli.BoolFlag{
				Name:  "compact",
				Usage: "write JSON on a single line",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log debug details to stderr",
			},
		},
		Before: loadSettings,
		Commands: []*cli.Command{
			viewCommand(),
			searchCommand(),
			linesCommand(),
			replaceCommand(),
			replaceBodyCommand(),
			deleteCommand(),
			batchCommand(),
			skillCommand(),
			exampleBatchCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		_ = output.NewJSON(os.Stderr, true).Error(err)
		os.Exit(1)
	}
}

func loadSettings(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return ctx, err
	}
	settings = cfg

	level, _ := cfg.Level()
	if cmd.Bool("verbose") {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	log.Debug().Int("jobs", cfg.Jobs).Int64("max_bytes", cfg.MaxBytes).Msg("settings loaded")
	return log.Logger.WithContext(ctx), nil
}

func jobsFlag() cli.Flag {
	return &cli.IntFlag{
		Name:    "jobs",
		Aliases: []string{"j"},
		Value:   runtime.NumCPU(),
		Usage:   "number of parallel workers",
	}
}

func maxBytesFlag() cli.Flag {
	return &cli.Int64Flag{
		Name:  "max-bytes",
		Value: config.DefaultMaxBytes,
		Usage: "skip files larger than this",
	}
}

func jsonFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "json",
		Usage: "JSON output instead of plain text",
	}
}

// jobs prefers the flag, then the config file.
func jobs(cmd *cli.Command) int {
	if cmd.IsSet("jobs") || settings.Jobs == 0 {
		return cmd.Int("jobs")
	}
	return settings.Jobs
}

func maxBytes(cmd *cli.Command) int64 {
	if cmd.IsSet("max-bytes") {
		return cmd.Int64("max-bytes")
	}
	return settings.MaxBytes
}

func extensions(cmd *cli.Command) []string {
	if cmd.IsSet("ext") {
		return cmd.StringSlice("ext")
	}
	return settings.Ext
}

func depth(cmd *cli.Command) *int {
	if !cmd.IsSet("depth") {
		return nil
	}
	d := cmd.Int("depth")
	return &d
}

func jsonOut(cmd *cli.Command) *output.JSONWriter {
	return output.NewJSON(os.Stdout, cmd.Bool("compact"))
}
