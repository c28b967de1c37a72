package cmd

import (
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset <commit id>",
	Short: "Move the current branch to a commit",
	Long: `Check out every file of the given commit, remove tracked files it lacks, clear
the staging area and point the current branch at the commit.`,
	Args: exactArgs(1),
	RunE: runReset,
}

func init() {
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, args []string) error {
	repo, err := openRepository()
	if err != nil {
		return err
	}
	return repo.Reset(args[0])
}
