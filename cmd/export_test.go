package cmd

import (
	"bytes"
	"os"
	"testing"

	"github.com/spf13/cobra"

	"github.com/KostasZigo/gitlet/internal/config"
	"github.com/KostasZigo/gitlet/internal/constants"
	"github.com/KostasZigo/gitlet/internal/repository"
)

// createTestRootCmd creates fresh root command with the given subcommand.
// Flag variables shared with the real commands are reset first.
func createTestRootCmd(cmd *cobra.Command) *cobra.Command {
	writeFlag = false
	hashAlgorithm = constants.DefaultHashAlgorithm

	testRootCmd := &cobra.Command{Use: "gitlet", SilenceUsage: true, SilenceErrors: true}
	testRootCmd.AddCommand(cmd)
	return testRootCmd
}

// captureStdout returns command stdout output as string.
func captureStdout(cmd *cobra.Command) *bytes.Buffer {
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	return &stdout
}

// captureStderr returns command stderr output as string.
func captureStderr(cmd *cobra.Command) *bytes.Buffer {
	var stderr bytes.Buffer
	cmd.SetErr(&stderr)
	return &stderr
}

// runCommand executes cmd under a fresh root and returns its stdout.
func runCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	testRootCmd := createTestRootCmd(cmd)
	stdout := captureStdout(testRootCmd)
	captureStderr(testRootCmd)

	testRootCmd.SetArgs(args)
	err := testRootCmd.Execute()
	return stdout.String(), err
}

// mustRunCommand executes cmd and fails the test on error.
func mustRunCommand(t *testing.T, cmd *cobra.Command, args ...string) string {
	t.Helper()

	output, err := runCommand(t, cmd, args...)
	if err != nil {
		t.Fatalf("%v failed: %v", args, err)
	}
	return output
}

// assertUserMessage verifies err is a refusal printed as want.
func assertUserMessage(t *testing.T, err error, want string) {
	t.Helper()

	if err == nil {
		t.Fatalf("Expected refusal %q, got nil", want)
	}
	message, ok := userMessage(err)
	if !ok {
		t.Fatalf("Expected refusal %q, got failure: %v", want, err)
	}
	if message != want {
		t.Errorf("Refusal = %q, want %q", message, want)
	}
}

// initTestRepo initializes a repository in a temp directory and changes into it.
func initTestRepo(t *testing.T) string {
	t.Helper()

	repoPath := t.TempDir()
	if err := repository.InitRepository(repoPath, config.Default()); err != nil {
		t.Fatalf("InitRepository failed: %v", err)
	}
	changeToRepoDir(t, repoPath)
	return repoPath
}

// changeToRepoDir changes working directory to repo path and registers cleanup.
func changeToRepoDir(t *testing.T, repoPath string) {
	t.Helper()

	oldDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get current directory: %v", err)
	}

	if err := os.Chdir(repoPath); err != nil {
		t.Fatalf("Failed to change to directory %s: %v", repoPath, err)
	}

	t.Cleanup(func() {
		os.Chdir(oldDir)
	})
}
