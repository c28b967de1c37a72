package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KostasZigo/gitlet/internal/objects"
	"github.com/KostasZigo/gitlet/internal/repository"
	"github.com/KostasZigo/gitlet/utils"
)

var hashObjectCmd = &cobra.Command{
	Use:   "hash-object <filepath>",
	Short: "Compute object hash and optionally create and store a blob from a file",
	Long: `Compute the blob id for a file's content. Inside a repository the repository's
hash function is used. Optionally write the resulting blob into the object store.

Examples:
  # Compute hash without storing
  gitlet hash-object myfile.txt

  # Compute hash and store in .gitlet/blobs
  gitlet hash-object -w myfile.txt`,
	Args: exactArgs(1),
	RunE: runHashObject,
}

var writeFlag bool

func init() {
	rootCmd.AddCommand(hashObjectCmd)

	// Add flag using Cobra's flag system
	hashObjectCmd.Flags().BoolVarP(&writeFlag, "write", "w", false, "Write the object into the object store")
}

// runHashObject computes hash and optionally stores blob object.
func runHashObject(cmd *cobra.Command, args []string) error {
	repo, err := openRepository()
	if err != nil && (writeFlag || !errors.Is(err, repository.ErrNotInitialized)) {
		return err
	}

	hasher := utils.DefaultHasher
	if repo != nil {
		hasher = repo.Store().Hasher()
	}

	// Create blob from file's contents
	blob, err := objects.NewBlobFromFile(args[0], hasher)
	if err != nil {
		return err
	}

	// Print hash to stdout
	fmt.Fprintln(cmd.OutOrStdout(), blob.Hash())

	if writeFlag {
		if err := repo.Store().Store(blob); err != nil {
			return fmt.Errorf("failed to store object: %w", err)
		}
	}

	return nil
}
