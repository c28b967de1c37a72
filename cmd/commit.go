package cmd

import (
	"github.com/spf13/cobra"

	"github.com/KostasZigo/gitlet/internal/repository"
)

var commitCmd = &cobra.Command{
	Use:   "commit <message>",
	Short: "Record the staged changes",
	Long: `Create a commit from the current commit's files with the staged additions and
removals applied, and advance the current branch to it. The message is one
operand; quote it when it contains spaces.`,
	Args: commitArgs,
	RunE: runCommit,
}

func init() {
	rootCmd.AddCommand(commitCmd)
}

// commitArgs reports a missing message before an operand count mismatch.
func commitArgs(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return repository.ErrEmptyMessage
	}
	return exactArgs(1)(cmd, args)
}

func runCommit(cmd *cobra.Command, args []string) error {
	repo, err := openRepository()
	if err != nil {
		return err
	}
	_, err = repo.Commit(args[0])
	return err
}
