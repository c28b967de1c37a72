package cmd

import (
	"github.com/spf13/cobra"
)

var checkoutCmd = newCheckoutCmd()

// newCheckoutCmd builds the checkout command. The position of "--" is kept in
// the command's flag set, so every execution context needs its own instance.
func newCheckoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkout [<commit id>] -- <file> | checkout <branch>",
		Short: "Restore files or switch branches",
		Long: `Restore a file, or switch the working tree to a branch.

  gitlet checkout -- <file>               restore file from the current commit
  gitlet checkout <commit id> -- <file>   restore file from the given commit
  gitlet checkout <branch>                switch to the branch

Commit ids may be abbreviated. Restoring a file never changes the staging area.`,
		Args: checkoutArgs,
		RunE: runCheckout,
	}
}

func init() {
	rootCmd.AddCommand(checkoutCmd)
}

// checkoutArgs accepts exactly the three operand shapes, told apart by the
// position of the "--" separator.
func checkoutArgs(cmd *cobra.Command, args []string) error {
	dash := cmd.ArgsLenAtDash()
	switch {
	case len(args) == 1 && dash == -1,
		len(args) == 1 && dash == 0,
		len(args) == 2 && dash == 1:
		return nil
	default:
		return errIncorrectOperands
	}
}

func runCheckout(cmd *cobra.Command, args []string) error {
	repo, err := openRepository()
	if err != nil {
		return err
	}

	switch cmd.ArgsLenAtDash() {
	case 0:
		return repo.CheckoutFile(args[0])
	case 1:
		return repo.CheckoutCommitFile(args[0], args[1])
	default:
		return repo.CheckoutBranch(args[0])
	}
}
