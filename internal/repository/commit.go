package repository

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/KostasZigo/gitlet/internal/objects"
)

// Commit snapshots the head commit's files with the staged changes applied
// and advances the current branch to the new commit.
func (r *Repository) Commit(message string) (*objects.Commit, error) {
	if strings.TrimSpace(message) == "" {
		return nil, ErrEmptyMessage
	}

	st, err := r.loadState()
	if err != nil {
		return nil, err
	}
	if st.staging.IsEmpty() {
		return nil, ErrNoChanges
	}

	return r.commit(st, message, "")
}

// commit records the staged changes on top of st.head. Merge commits pass
// the merged-in head as secondParent and may have nothing staged.
func (r *Repository) commit(st *state, message, secondParent string) (*objects.Commit, error) {
	files := st.head.Files().Apply(st.staging.Additions(), st.staging.RemovedPaths())

	commit, err := objects.NewCommit(message, r.now(), st.head.Hash(), secondParent, files, r.store.Hasher())
	if err != nil {
		return nil, err
	}
	if err := r.store.Store(commit); err != nil {
		return nil, fmt.Errorf("failed to store commit: %w", err)
	}
	if err := r.refs.Set(st.branch, commit.Hash()); err != nil {
		return nil, err
	}

	st.head = commit
	st.staging.Clear()
	if err := r.saveStaging(st); err != nil {
		return nil, err
	}

	slog.Debug("Created commit",
		"branch", st.branch,
		"hash", commit.Hash(),
		"parents", commit.Parents(),
		"files", files.Len())
	return commit, nil
}
