package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/KostasZigo/gitlet/internal/repository"
)

// usageError is a refusal raised by the CLI itself before any repository work.
type usageError string

func (e usageError) Error() string {
	return string(e)
}

const (
	errNoCommand         usageError = "Please enter a command."
	errUnknownCommand    usageError = "No command with that name exists."
	errIncorrectOperands usageError = "Incorrect operands."
)

// exactArgs validates command receives exactly n positional arguments.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n || cmd.ArgsLenAtDash() != -1 {
			return errIncorrectOperands
		}
		return nil
	}
}

// maximumArgs validates command receives at most n positional arguments.
func maximumArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) > n || cmd.ArgsLenAtDash() != -1 {
			return errIncorrectOperands
		}
		return nil
	}
}

// openRepository opens the repository rooted at the current directory.
func openRepository() (*repository.Repository, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return repository.Open(dir)
}
