package cmd

import (
	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show the history of the current branch",
	Long: `Show the current commit and its ancestors along first parents, newest first.
Merge commits list both parents abbreviated.`,
	Args: exactArgs(0),
	RunE: runLog,
}

var globalLogCmd = &cobra.Command{
	Use:   "global-log",
	Short: "Show every commit ever made",
	Long:  `Show every commit in the repository, including those no branch reaches, ordered by id.`,
	Args:  exactArgs(0),
	RunE:  runGlobalLog,
}

func init() {
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(globalLogCmd)
}

func runLog(cmd *cobra.Command, args []string) error {
	repo, err := openRepository()
	if err != nil {
		return err
	}
	history, err := repo.Log()
	if err != nil {
		return err
	}
	for _, commit := range history {
		printCommit(cmd.OutOrStdout(), commit)
	}
	return nil
}

func runGlobalLog(cmd *cobra.Command, args []string) error {
	repo, err := openRepository()
	if err != nil {
		return err
	}
	commits, err := repo.GlobalLog()
	if err != nil {
		return err
	}
	for _, commit := range commits {
		printCommit(cmd.OutOrStdout(), commit)
	}
	return nil
}
