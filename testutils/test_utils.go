package testutils

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/KostasZigo/gitlet/internal/config"
	"github.com/KostasZigo/gitlet/internal/constants"
)

// RandomString generates a random hex string of n bytes
func RandomString(n int) string {
	bytes := make([]byte, n)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// RandomHash generates a random 40-character SHA-1 hash
func RandomHash() string {
	return RandomString(constants.HashByteLength)
}

// SetupTestRepoWithGitletDir creates a temporary directory with the .gitlet object namespaces.
// This is useful for tests that need the object store but not full initialization.
func SetupTestRepoWithGitletDir(t *testing.T) config.RepositoryPaths {
	t.Helper()

	paths := config.NewRepositoryPaths(t.TempDir())
	for _, dir := range paths.Directories() {
		if err := os.MkdirAll(dir, constants.DirPerms); err != nil {
			t.Fatalf("Failed to create %s: %v", dir, err)
		}
	}

	return paths
}

// CreateTestFile creates a file with given content in the specified directory.
// Parent directories of nested names are created as needed.
// Returns the full path to the created file.
func CreateTestFile(t *testing.T, dir, filename string, content []byte) string {
	t.Helper()

	filePath := filepath.Join(dir, filepath.FromSlash(filename))
	if err := os.MkdirAll(filepath.Dir(filePath), constants.DirPerms); err != nil {
		t.Fatalf("Failed to create parent directory of %s: %v", filename, err)
	}
	if err := os.WriteFile(filePath, content, constants.FilePerms); err != nil {
		t.Fatalf("Failed to create test file %s: %v", filename, err)
	}

	return filePath
}

// RemoveTestFile deletes a working tree file.
func RemoveTestFile(t *testing.T, dir, filename string) {
	t.Helper()

	if err := os.Remove(filepath.Join(dir, filepath.FromSlash(filename))); err != nil {
		t.Fatalf("Failed to remove test file %s: %v", filename, err)
	}
}

// AssertFileExists checks that a file exists at the given path.
// Fails the test if the file doesn't exist.
func AssertFileExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Expected file to exist at %s", path)
	}
}

// AssertFileNotExists checks that a file does NOT exist at the given path.
// Fails the test if the file exists.
func AssertFileNotExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); err == nil {
		t.Errorf("Expected file to NOT exist at %s", path)
	}
}

// AssertFileContent checks a working tree file holds exactly the expected bytes.
func AssertFileContent(t *testing.T, dir, filename, expected string) {
	t.Helper()

	content, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(filename)))
	if err != nil {
		t.Fatalf("Failed to read %s: %v", filename, err)
	}
	if string(content) != expected {
		t.Errorf("%s content = %q, want %q", filename, content, expected)
	}
}

// AssertDirExists checks that a directory exists at the given path.
// Fails the test if the directory doesn't exist.
func AssertDirExists(t *testing.T, path string) {
	t.Helper()

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Expected directory to exist at %s", path)
		return
	}
	if err != nil {
		t.Errorf("Failed to stat directory %s: %v", path, err)
		return
	}
	if !info.IsDir() {
		t.Errorf("Expected %s to be a directory, but it's a file", path)
	}
}

// AssertRepositoryStructure validates complete .gitlet directory structure.
// Verifies blobs/, commits/, refs/heads/ exist, HEAD names the default branch
// and the default branch ref exists.
func AssertRepositoryStructure(t *testing.T, repoPath string) {
	t.Helper()

	paths := config.NewRepositoryPaths(repoPath)
	for _, dir := range paths.Directories() {
		AssertDirExists(t, dir)
	}

	AssertFileExists(t, paths.Config)
	AssertFileExists(t, filepath.Join(paths.Heads, constants.DefaultBranch))
	AssertFileExists(t, paths.Head)

	content, err := os.ReadFile(paths.Head)
	if err != nil {
		t.Fatalf("Failed to read %s file: %v", constants.Head, err)
	}

	expectedContent := constants.DefaultRefPrefix + constants.DefaultBranch + "\n"
	if string(content) != expectedContent {
		t.Errorf("%s content = %q, want %q", constants.Head, content, expectedContent)
	}
}
