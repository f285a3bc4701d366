package main

import (
	"go.abhg.dev/gmoji/internal/text"
	"go.abhg.dev/komplete"
)

type completionCmd struct {
	*komplete.Command `embed:""`
}

func (c *completionCmd) Help() string {
	return text.Dedent(`
		To set up shell completion, eval the output of this command
		from your shell's rc file.
		For example:

			# bash
			eval "$(gmoji completion bash)"

			# zsh
			eval "$(gmoji completion zsh)"

			# fish
			eval "$(gmoji completion fish)"

		If shell name is not provided, the current shell is guessed
		using a heuristic.
	`)
}
