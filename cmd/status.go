package cmd

import (
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show branches, staged changes and working tree changes",
	Args:  exactArgs(0),
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	repo, err := openRepository()
	if err != nil {
		return err
	}
	status, err := repo.Status()
	if err != nil {
		return err
	}
	printStatus(cmd.OutOrStdout(), status)
	return nil
}
