package cmd

import (
	"github.com/spf13/cobra"
)

var branchCmd = &cobra.Command{
	Use:   "branch <name>",
	Short: "Create a branch at the current commit",
	Long:  `Create a branch pointing at the current commit. The current branch does not change.`,
	Args:  exactArgs(1),
	RunE:  runBranch,
}

var rmBranchCmd = &cobra.Command{
	Use:   "rm-branch <name>",
	Short: "Delete a branch pointer",
	Long:  `Delete a branch. Commits made on it are kept.`,
	Args:  exactArgs(1),
	RunE:  runRmBranch,
}

func init() {
	rootCmd.AddCommand(branchCmd)
	rootCmd.AddCommand(rmBranchCmd)
}

func runBranch(cmd *cobra.Command, args []string) error {
	repo, err := openRepository()
	if err != nil {
		return err
	}
	return repo.Branch(args[0])
}

func runRmBranch(cmd *cobra.Command, args []string) error {
	repo, err := openRepository()
	if err != nil {
		return err
	}
	return repo.RemoveBranch(args[0])
}
