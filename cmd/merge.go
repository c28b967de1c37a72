package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KostasZigo/gitlet/internal/repository"
)

var mergeCmd = &cobra.Command{
	Use:   "merge <branch>",
	Short: "Merge a branch into the current branch",
	Long: `Three-way merge of the given branch into the current one, relative to their
latest common ancestor. Conflicting files are written with conflict markers and
committed as they are; resolve them in a follow-up commit.`,
	Args: exactArgs(1),
	RunE: runMerge,
}

func init() {
	rootCmd.AddCommand(mergeCmd)
}

func runMerge(cmd *cobra.Command, args []string) error {
	repo, err := openRepository()
	if err != nil {
		return err
	}
	result, err := repo.Merge(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case result.Outcome == repository.MergeUpToDate:
		fmt.Fprintln(out, "Given branch is an ancestor of the current branch.")
	case result.Outcome == repository.MergeFastForward:
		fmt.Fprintln(out, "Current branch fast-forwarded.")
	case result.HasConflicts():
		fmt.Fprintln(out, "Encountered a merge conflict.")
	}
	return nil
}
