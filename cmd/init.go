package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KostasZigo/gitlet/internal/config"
	"github.com/KostasZigo/gitlet/internal/constants"
	"github.com/KostasZigo/gitlet/internal/repository"
	"github.com/KostasZigo/gitlet/utils"
)

var initCmd = &cobra.Command{
	Use:   "init [directory]",
	Short: "Initialize a new Gitlet repository",
	Long: `The 'init' command sets up a new Gitlet repository in the current directory.
It creates a .gitlet directory holding the object store, branch references and
the staging area, and records the shared initial commit on the master branch.
If a repository already exists, the command will not overwrite existing data.`,
	Args: maximumArgs(1),
	RunE: runInit,
}

var hashAlgorithm string

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&hashAlgorithm, "hash", constants.DefaultHashAlgorithm,
		"Hash function for object ids (any multihash name, e.g. sha1, sha2-256)")
}

// runInit executes repository initialization at specified or current directory.
func runInit(cmd *cobra.Command, args []string) error {
	dirPath := "."
	if len(args) > 0 {
		dirPath = args[0]
	}

	cfg := config.Default()
	cfg.HashAlgorithm = hashAlgorithm

	if err := repository.InitRepository(dirPath, cfg); err != nil {
		return fmt.Errorf("failed to initialize repository - %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Initialized empty Gitlet repository in %s\n", utils.BuildDirPath(dirPath, constants.Gitlet))
	return nil
}
