package objects

import (
	"testing"
	"time"

	"github.com/KostasZigo/gitlet/internal/constants"
	"github.com/KostasZigo/gitlet/testutils"
	"github.com/KostasZigo/gitlet/utils"
)

// assertBlobHash verifies blob hash matches expected value for given content.
func assertBlobHash(t *testing.T, blob *Blob, content []byte) {
	t.Helper()

	expectedHash, err := utils.ComputeHash(content, utils.BlobObjectType)
	if err != nil {
		t.Fatalf("Hash computation failed: %v", err)
	}

	if blob.Hash() != expectedHash {
		t.Fatalf("Expected hash [%s], got [%s]", expectedHash, blob.Hash())
	}
}

// assertBlobContent verifies blob stores exact content and correct size.
func assertBlobContent(t *testing.T, blob *Blob, expectedContent []byte) {
	t.Helper()

	if blob.Size() != len(expectedContent) {
		t.Fatalf("Expected size %d, got %d", len(expectedContent), blob.Size())
	}

	if string(blob.Content()) != string(expectedContent) {
		t.Fatalf("Expected content [%q], got [%q]", expectedContent, blob.Content())
	}
}

// newTestStore creates an object store over a fresh .gitlet layout.
func newTestStore(t *testing.T) *ObjectStore {
	t.Helper()

	paths := testutils.SetupTestRepoWithGitletDir(t)
	return NewObjectStore(paths, utils.DefaultHasher, constants.DefaultCompression)
}

// testTimestamp returns a second-precision timestamp in a fixed non-UTC zone.
func testTimestamp() time.Time {
	return time.Now().In(time.FixedZone("EST", -5*3600)).Truncate(time.Second)
}

// createCommit creates commit and fails test on error.
func createCommit(t *testing.T, message, firstParent, secondParent string, files map[string]string) *Commit {
	t.Helper()

	commit, err := NewCommit(message, testTimestamp(), firstParent, secondParent, NewSnapshot(files), utils.DefaultHasher)
	if err != nil {
		t.Fatalf("Failed to create commit: %v", err)
	}

	return commit
}

// createAndStoreCommit creates commit, stores it, and returns commit.
func createAndStoreCommit(t *testing.T, store *ObjectStore, parentHash string) *Commit {
	t.Helper()

	files := map[string]string{
		testutils.RandomString(4) + ".txt": testutils.RandomHash(),
	}
	commit := createCommit(t, testutils.RandomString(20), parentHash, "", files)

	if err := store.Store(commit); err != nil {
		t.Fatalf("Failed to store commit: %v", err)
	}

	return commit
}

// assertCommitEqual verifies two commits match in all fields.
func assertCommitEqual(t *testing.T, actual, expected *Commit) {
	t.Helper()

	if actual.hash != expected.hash {
		t.Errorf("Hash mismatch: expected [%s], got [%s]", expected.hash, actual.hash)
	}

	if actual.message != expected.message {
		t.Errorf("Message mismatch: expected [%s], got [%s]", expected.message, actual.message)
	}

	if actual.firstParent != expected.firstParent || actual.secondParent != expected.secondParent {
		t.Errorf("Parents mismatch: expected %v, got %v", expected.Parents(), actual.Parents())
	}

	if !actual.timestamp.Equal(expected.timestamp) {
		t.Errorf("Timestamp mismatch: expected [%s], got [%s]",
			expected.timestamp.Format(constants.LogDateLayout),
			actual.timestamp.Format(constants.LogDateLayout))
	}

	_, expectedOffset := expected.timestamp.Zone()
	_, actualOffset := actual.timestamp.Zone()
	if actualOffset != expectedOffset {
		t.Errorf("Timezone offset mismatch: expected %d, got %d", expectedOffset, actualOffset)
	}
}
