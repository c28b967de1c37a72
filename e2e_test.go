package main

import (
	"bytes"
	"compress/zlib"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/KostasZigo/gitlet/internal/config"
	"github.com/KostasZigo/gitlet/internal/constants"
	"github.com/KostasZigo/gitlet/testutils"
	"github.com/KostasZigo/gitlet/utils"
)

// sharedBinaryPath stores compiled gitlet binary path built once in TestMain.
// All E2E tests execute this binary to verify end-to-end behavior.
// Binary persists for test suite duration, cleaned up after all tests complete
var sharedBinaryPath string

// TestMain executes before all tests to build gitlet binary once.
// Binary stored in temporary directory, removed after test suite completes.
//
// Execution flow:
//  1. Create temporary directory for binary storage
//  2. Build gitlet binary with platform-specific extension
//  3. Store binary path in package-level sharedBinaryPath variable
//  4. Execute all Test* functions via m.Run()
//  5. Clean up temporary directory and binary
//  6. Exit with test suite status code
func TestMain(m *testing.M) {
	tempDir, err := os.MkdirTemp("", "gitlet-e2e-*")
	if err != nil {
		panic("Failed to create temp directory: " + err.Error())
	}

	binaryName := "gitlet"
	if runtime.GOOS == "windows" {
		binaryName += ".exe"
	}
	sharedBinaryPath = filepath.Join(tempDir, binaryName)

	buildCmd := exec.Command("go", "build", "-o", sharedBinaryPath, ".")
	if err := buildCmd.Run(); err != nil {
		os.RemoveAll(tempDir)
		panic("Failed to build binary: " + err.Error())
	}

	code := m.Run()
	os.RemoveAll(tempDir)
	os.Exit(code)
}

// runGitlet executes the binary in dir and returns stdout and the exit code.
func runGitlet(t *testing.T, dir string, args ...string) (string, int) {
	t.Helper()

	cmd := exec.Command(sharedBinaryPath, args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return stdout.String() + stderr.String(), exitErr.ExitCode()
	}
	if err != nil {
		t.Fatalf("Failed to run gitlet %v: %v", args, err)
	}
	return stdout.String(), 0
}

// mustGitlet runs the binary and fails the test on a non-zero exit code.
func mustGitlet(t *testing.T, dir string, args ...string) string {
	t.Helper()

	output, code := runGitlet(t, dir, args...)
	if code != 0 {
		t.Fatalf("gitlet %v exited with %d: %s", args, code, output)
	}
	return output
}

// setupTestRepo creates a temp directory and runs `gitlet init` in it.
func setupTestRepo(t *testing.T) string {
	t.Helper()

	repoPath := t.TempDir()
	mustGitlet(t, repoPath, constants.InitCmdName)
	return repoPath
}

// TestE2E_InitCommand verifies repository initialization creates correct structure.
func TestE2E_InitCommand(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping E2E test in short mode")
	}

	repoPath := t.TempDir()

	output := mustGitlet(t, repoPath, constants.InitCmdName)
	expectedMsg := fmt.Sprintf("Initialized empty Gitlet repository in %s\n", utils.BuildDirPath(".", constants.Gitlet))
	if !strings.Contains(output, expectedMsg) {
		t.Errorf("Expected output to contain %q, got: %s", expectedMsg, output)
	}
	testutils.AssertRepositoryStructure(t, repoPath)

	// Init again is a refusal: message on stdout, exit code 0
	output, code := runGitlet(t, repoPath, constants.InitCmdName)
	if code != 0 {
		t.Errorf("Expected exit code 0 for refusal, got %d", code)
	}
	expectedRefusal := "A Gitlet version-control system already exists in the current directory.\n"
	if output != expectedRefusal {
		t.Errorf("Output = %q, want %q", output, expectedRefusal)
	}
}

// TestE2E_HelpCommand verifies help output contains expected sections.
func TestE2E_HelpCommand(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping E2E test in short mode")
	}

	output := mustGitlet(t, t.TempDir(), "--help")

	expectedTexts := []string{
		"Gitlet is a miniature version-control system",
		"Available Commands:",
		constants.InitCmdName,
		constants.MergeCmdName,
		constants.GlobalLogCmdName,
		constants.HashObjectCmdName,
		"Flags:",
		"-h, --help",
	}

	for _, text := range expectedTexts {
		if !strings.Contains(output, text) {
			t.Errorf("Help output missing %q, got: %s", text, output)
		}
	}
}

// TestE2E_Refusals verifies messages printed for commands that cannot run.
func TestE2E_Refusals(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping E2E test in short mode")
	}

	emptyDir := t.TempDir()
	repoPath := setupTestRepo(t)

	testCases := []struct {
		name     string
		dir      string
		args     []string
		expected string
	}{
		{name: "no command", dir: emptyDir, args: nil, expected: "Please enter a command."},
		{name: "unknown command", dir: emptyDir, args: []string{"nonexistent"}, expected: "No command with that name exists."},
		{name: "not initialized", dir: emptyDir, args: []string{constants.StatusCmdName}, expected: "Not in an initialized Gitlet directory."},
		{name: "incorrect operands", dir: repoPath, args: []string{constants.AddCmdName}, expected: "Incorrect operands."},
		{name: "unknown flag", dir: repoPath, args: []string{constants.StatusCmdName, "--bogus"}, expected: "Incorrect operands."},
		{name: "no changes", dir: repoPath, args: []string{constants.CommitCmdName, "msg"}, expected: "No changes added to the commit."},
		{name: "missing file", dir: repoPath, args: []string{constants.AddCmdName, "nope.txt"}, expected: "File does not exist."},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			output, code := runGitlet(t, testCase.dir, testCase.args...)
			if code != 0 {
				t.Errorf("Expected exit code 0, got %d", code)
			}
			if output != testCase.expected+"\n" {
				t.Errorf("Output = %q, want %q", output, testCase.expected+"\n")
			}
		})
	}
}

// TestE2E_BranchAndMergeWorkflow drives a full branch, conflict and resolution cycle.
func TestE2E_BranchAndMergeWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping E2E test in short mode")
	}

	repoPath := setupTestRepo(t)

	testutils.CreateTestFile(t, repoPath, "notes.txt", []byte("base\n"))
	mustGitlet(t, repoPath, constants.AddCmdName, "notes.txt")
	mustGitlet(t, repoPath, constants.CommitCmdName, "base notes")
	mustGitlet(t, repoPath, constants.BranchCmdName, "feature")

	testutils.CreateTestFile(t, repoPath, "notes.txt", []byte("master\n"))
	mustGitlet(t, repoPath, constants.AddCmdName, "notes.txt")
	mustGitlet(t, repoPath, constants.CommitCmdName, "master notes")

	mustGitlet(t, repoPath, constants.CheckoutCmdName, "feature")
	testutils.AssertFileContent(t, repoPath, "notes.txt", "base\n")
	testutils.CreateTestFile(t, repoPath, "notes.txt", []byte("feature\n"))
	mustGitlet(t, repoPath, constants.AddCmdName, "notes.txt")
	mustGitlet(t, repoPath, constants.CommitCmdName, "feature notes")
	mustGitlet(t, repoPath, constants.CheckoutCmdName, "master")

	output := mustGitlet(t, repoPath, constants.MergeCmdName, "feature")
	if output != "Encountered a merge conflict.\n" {
		t.Errorf("Merge output = %q", output)
	}
	testutils.AssertFileContent(t, repoPath, "notes.txt",
		constants.ConflictStart+"master\n"+constants.ConflictSeparator+"feature\n"+constants.ConflictEnd)

	logOutput := mustGitlet(t, repoPath, constants.LogCmdName)
	if !strings.HasPrefix(logOutput, "===\ncommit ") || !strings.Contains(logOutput, "\nMerge: ") {
		t.Errorf("Expected merge commit at the top of the log, got:\n%s", logOutput)
	}
	if !strings.Contains(logOutput, "Merged feature into master.") {
		t.Errorf("Expected merge message in log, got:\n%s", logOutput)
	}

	found := mustGitlet(t, repoPath, constants.FindCmdName, "feature notes")
	featureID := strings.TrimSpace(found)
	if len(featureID) != constants.HashStringLength {
		t.Fatalf("Unexpected find output: %q", found)
	}

	// Restore the feature version through an abbreviated id and commit the resolution
	mustGitlet(t, repoPath, constants.CheckoutCmdName, featureID[:8], "--", "notes.txt")
	testutils.AssertFileContent(t, repoPath, "notes.txt", "feature\n")
	mustGitlet(t, repoPath, constants.AddCmdName, "notes.txt")
	mustGitlet(t, repoPath, constants.CommitCmdName, "resolve notes")

	status := mustGitlet(t, repoPath, constants.StatusCmdName)
	expectedStatus := "=== Branches ===\nfeature\n*master\n\n" +
		"=== Staged Files ===\n\n" +
		"=== Removed Files ===\n\n" +
		"=== Modifications Not Staged For Commit ===\n\n" +
		"=== Untracked Files ===\n\n"
	if status != expectedStatus {
		t.Errorf("Status mismatch:\ngot:\n%s\nwant:\n%s", status, expectedStatus)
	}

	output = mustGitlet(t, repoPath, constants.MergeCmdName, "feature")
	if output != "Given branch is an ancestor of the current branch.\n" {
		t.Errorf("Second merge output = %q", output)
	}
}

// TestE2E_HashObjectCommand_WithStorage verifies hash computation with storage.
func TestE2E_HashObjectCommand_WithStorage(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping E2E test in short mode")
	}

	repoPath := setupTestRepo(t)

	testFileName := "pokemon.txt"
	testFileContent := []byte("Pikachu\nCharmander\n")
	testutils.CreateTestFile(t, repoPath, testFileName, testFileContent)

	output := mustGitlet(t, repoPath, constants.HashObjectCmdName, "-w", testFileName)

	outputHash := strings.TrimSpace(output)
	expectedHash, err := utils.ComputeHash(testFileContent, utils.BlobObjectType)
	if err != nil {
		t.Fatalf("Failed to compute hash: %v", err)
	}
	if expectedHash != outputHash {
		t.Fatalf("Expected hash %s, got %s", expectedHash, outputHash)
	}

	blobsDir := config.NewRepositoryPaths(repoPath).Blobs
	objectPath := filepath.Join(blobsDir, outputHash[:constants.HashDirPrefixLength], outputHash[constants.HashDirPrefixLength:])
	testutils.AssertFileExists(t, objectPath)

	decompressedData := decompressObject(t, objectPath)
	expectedData := fmt.Sprintf("%s %d\x00%s", utils.BlobObjectType, len(testFileContent), testFileContent)
	if string(decompressedData) != expectedData {
		t.Errorf("Stored object = %q, want %q", decompressedData, expectedData)
	}
}

// TestE2E_VerboseLogging verifies --verbose sends debug logs to stderr only.
func TestE2E_VerboseLogging(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping E2E test in short mode")
	}

	repoPath := setupTestRepo(t)
	testutils.CreateTestFile(t, repoPath, "f.txt", []byte("f"))

	cmd := exec.Command(sharedBinaryPath, "--verbose", constants.AddCmdName, "f.txt")
	cmd.Dir = repoPath
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("add failed: %v\n%s", err, stderr.String())
	}

	if stdout.Len() != 0 {
		t.Errorf("Expected no stdout, got %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "level=DEBUG") {
		t.Errorf("Expected debug logs on stderr, got %q", stderr.String())
	}
}

// decompressObject reads a stored object and inflates it.
func decompressObject(t *testing.T, objectPath string) []byte {
	t.Helper()

	compressedData, err := os.ReadFile(objectPath)
	if err != nil {
		t.Fatalf("Failed to read object file: %v", err)
	}

	reader, err := zlib.NewReader(bytes.NewReader(compressedData))
	if err != nil {
		t.Fatalf("Failed to create zlib reader: %v", err)
	}
	defer reader.Close()

	var buffer bytes.Buffer
	if _, err := buffer.ReadFrom(reader); err != nil {
		t.Fatalf("Failed to decompress object: %v", err)
	}
	return buffer.Bytes()
}
