package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/arjunmahishi/codeview/codeview"
	"github.com/arjunmahishi/codeview/output"
	"github.com/arjunmahishi/codeview/types"
)

func editFlags(withContent bool) []cli.Flag {
	flags := []cli.Flag{
		&cli.BoolFlag{
			Name:  "dry-run",
			Usage: "print a unified diff instead of writing the file",
		},
		jsonFlag(),
	}
	if withContent {
		flags = append(flags,
			&cli.StringFlag{
				Name:    "content",
				Aliases: []string{"c"},
				Usage:   "new text (default: read from stdin)",
			},
			&cli.StringFlag{
				Name:  "content-file",
				Usage: "read the new text from this file",
			},
		)
	}
	return flags
}

func replaceCommand() *cli.Command {
	return &cli.Command{
		Name:      "replace",
		Usage:     "replace a whole symbol, attributes included",
		ArgsUsage: "FILE SYMBOL",
		Flags:     editFlags(true),
		Action:    symbolEdit(types.ActionReplace),
	}
}

func replaceBodyCommand() *cli.Command {
	return &cli.Command{
		Name:      "replace-body",
		Usage:     "replace the body of a symbol, keeping its signature",
		ArgsUsage: "FILE SYMBOL",
		Description: "The new body is given without braces and is re-indented to fit.\n\n" +
			"Examples:\n" +
			"  codeview replace-body src/lib.rs add -c 'a * b'\n" +
			"  echo 'return x' | codeview replace-body app.py handler",
		Flags:  editFlags(true),
		Action: symbolEdit(types.ActionReplaceBody),
	}
}

func deleteCommand() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "delete a symbol, attributes included",
		ArgsUsage: "FILE SYMBOL",
		Flags:     editFlags(false),
		Action:    symbolEdit(types.ActionDelete),
	}
}

func batchCommand() *cli.Command {
	return &cli.Command{
		Name:      "batch",
		Usage:     "apply several edits to one file atomically",
		ArgsUsage: "FILE",
		Description: "Edits are read from a JSON or YAML file shaped like the output of\n" +
			"`codeview example-batch`. Either every edit is applied or none.",
		Flags: append(editFlags(false), &cli.StringFlag{
			Name:     "edits",
			Aliases:  []string{"e"},
			Usage:    "batch file (.json, .yaml or .yml)",
			Required: true,
		}),
		Action: runBatch,
	}
}

func symbolEdit(action types.EditAction) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		if cmd.NArg() != 2 {
			return errors.New("FILE and SYMBOL are required")
		}

		desc := types.EditDescriptor{
			Symbol: cmd.Args().Get(1),
			Action: action,
		}
		if action != types.ActionDelete {
			content, err := readContent(cmd, os.Stdin)
			if err != nil {
				return err
			}
			desc.Content = content
		}

		return runEdit(ctx, cmd, cmd.Args().Get(0), []types.EditDescriptor{desc})
	}
}

func runBatch(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 1 {
		return errors.New("FILE is required")
	}

	batch, err := loadBatch(cmd.String("edits"))
	if err != nil {
		return err
	}
	return runEdit(ctx, cmd, cmd.Args().Get(0), batch.Edits)
}

func runEdit(ctx context.Context, cmd *cli.Command, file string, edits []types.EditDescriptor) error {
	dryRun := cmd.Bool("dry-run")
	res, err := codeview.Edit(ctx, codeview.EditOptions{
		File:   file,
		Edits:  edits,
		DryRun: dryRun,
	})
	if err != nil {
		return err
	}

	if dryRun {
		return output.Diff(os.Stdout, filepath.ToSlash(file), res.Before, res.After)
	}
	if cmd.Bool("json") {
		return jsonOut(cmd).EditResults(res.Results)
	}
	return output.PlainEditResults(os.Stdout, file, res.Results)
}

// readContent takes the new text from --content, --content-file or stdin,
// in that order. Text read from a file or stdin loses one trailing newline.
func readContent(cmd *cli.Command, stdin io.Reader) (string, error) {
	if cmd.IsSet("content") && cmd.IsSet("content-file") {
		return "", errors.New("use --content or --content-file, not both")
	}
	if cmd.IsSet("content") {
		return cmd.String("content"), nil
	}
	if path := cmd.String("content-file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return strings.TrimSuffix(string(data), "\n"), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimSuffix(string(data), "\n"), nil
}

// loadBatch decodes a batch file, picking the format from its extension.
func loadBatch(path string) (types.EditBatch, error) {
	var batch types.EditBatch
	data, err := os.ReadFile(path)
	if err != nil {
		return batch, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &batch)
	default:
		err = json.Unmarshal(data, &batch)
	}
	if err != nil {
		return batch, fmt.Errorf("parse batch file %s: %w", path, err)
	}
	return batch, nil
}
