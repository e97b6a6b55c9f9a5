package main

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/urfave/cli/v3"
)

//go:embed SKILL.md
var skillText string

//go:embed example_batch.json
var exampleBatchText string

func skillCommand() *cli.Command {
	return &cli.Command{
		Name:  "skill",
		Usage: "print SKILL.md for agent configs",
		Description: "Print the agent usage guide for codeview.\n\n" +
			"Examples:\n" +
			"  codeview skill                    # print full SKILL.md\n" +
			"  codeview skill > my-agent.skill   # save to file",
		Action: func(_ context.Context, _ *cli.Command) error {
			fmt.Print(skillText)
			return nil
		},
	}
}

func exampleBatchCommand() *cli.Command {
	return &cli.Command{
		Name:  "example-batch",
		Usage: "print an example batch edit file",
		Description: "Examples:\n" +
			"  codeview example-batch > edits.json\n" +
			"  codeview batch src/lib.rs --edits edits.json --dry-run",
		Action: func(_ context.Context, _ *cli.Command) error {
			fmt.Print(exampleBatchText)
			return nil
		},
	}
}
