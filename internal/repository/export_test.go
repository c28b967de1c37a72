package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/KostasZigo/gitlet/internal/config"
	"github.com/KostasZigo/gitlet/internal/objects"
	"github.com/KostasZigo/gitlet/testutils"
)

// newTestRepository initializes and opens a repository in a temp directory.
// Its clock advances one minute per commit so consecutive commits never share a timestamp.
func newTestRepository(t *testing.T) (*Repository, string) {
	t.Helper()

	root := t.TempDir()
	if err := InitRepository(root, config.Default()); err != nil {
		t.Fatalf("InitRepository failed: %v", err)
	}

	repo, err := Open(root)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	clock := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}

	return repo, root
}

// writeAndAdd writes a working file and stages it.
func writeAndAdd(t *testing.T, repo *Repository, root, name, content string) {
	t.Helper()

	testutils.CreateTestFile(t, root, name, []byte(content))
	if err := repo.Add(name); err != nil {
		t.Fatalf("Add(%s) failed: %v", name, err)
	}
}

// mustCommit commits staged changes and fails the test on error.
func mustCommit(t *testing.T, repo *Repository, message string) *objects.Commit {
	t.Helper()

	commit, err := repo.Commit(message)
	if err != nil {
		t.Fatalf("Commit(%q) failed: %v", message, err)
	}
	return commit
}

// mustRun fails the test when a repository operation returns an error.
func mustRun(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}

// assertUserError verifies err is the expected refusal.
func assertUserError(t *testing.T, err error, want *UserError) {
	t.Helper()

	if !errors.Is(err, want) {
		t.Fatalf("Expected error %q, got: %v", want, err)
	}
}

// headCommit loads the commit the current branch points at.
func headCommit(t *testing.T, repo *Repository) *objects.Commit {
	t.Helper()

	st, err := repo.loadState()
	if err != nil {
		t.Fatalf("Failed to load repository state: %v", err)
	}
	return st.head
}

// assertTracks verifies a commit tracks name with exactly content.
func assertTracks(t *testing.T, repo *Repository, commit *objects.Commit, name, content string) {
	t.Helper()

	blobID, ok := commit.Files().Get(name)
	if !ok {
		t.Fatalf("Commit %s does not track %s", commit.Hash(), name)
	}
	blob, err := repo.Store().ReadBlob(blobID)
	if err != nil {
		t.Fatalf("Failed to read blob of %s: %v", name, err)
	}
	if string(blob.Content()) != content {
		t.Errorf("%s in commit = %q, want %q", name, blob.Content(), content)
	}
}

// writeFile changes a working file without staging it.
func writeFile(t *testing.T, root, name, content string) {
	t.Helper()

	testutils.CreateTestFile(t, root, name, []byte(content))
}
