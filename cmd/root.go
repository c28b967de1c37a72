package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/KostasZigo/gitlet/internal/repository"
)

var verbose bool

// rootCmd defines the base command for the gitlet CLI.
// All subcommands (init, add, commit, etc.) register under this root.
// Uses cobra for command parsing, flag handling, and help generation.
var rootCmd = &cobra.Command{
	Use:   "gitlet",
	Short: "A miniature version-control system in GO",
	Long: `Gitlet is a miniature version-control system developed in GO. It tracks a
working directory with content-addressed blobs and commits, a staging area,
branches, and three-way merges with conflict markers.`,
	Args:              cobra.ArbitraryArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: configureLogging,
	RunE:              runRoot,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug details to stderr")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetFlagErrorFunc(func(*cobra.Command, error) error {
		return errIncorrectOperands
	})
}

// runRoot is reached when no subcommand matched the first argument.
func runRoot(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return errNoCommand
	}
	return errUnknownCommand
}

// configureLogging routes slog to stderr, at debug level when --verbose is set.
func configureLogging(cmd *cobra.Command, args []string) error {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
	return nil
}

// Execute runs the root command and handles exit codes.
// Called from main.go to start CLI execution.
// Refusals print their message on stdout and exit 0; failures exit 1.
func Execute() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}

	if message, ok := userMessage(err); ok {
		fmt.Fprintln(rootCmd.OutOrStdout(), message)
		return
	}

	fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
	os.Exit(1)
}

// userMessage extracts the message of an expected refusal.
func userMessage(err error) (string, bool) {
	var userErr *repository.UserError
	if errors.As(err, &userErr) {
		return userErr.Error(), true
	}
	var usageErr usageError
	if errors.As(err, &usageErr) {
		return usageErr.Error(), true
	}
	return "", false
}
