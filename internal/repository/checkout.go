package repository

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/KostasZigo/gitlet/internal/objects"
	"github.com/KostasZigo/gitlet/internal/refs"
	"github.com/KostasZigo/gitlet/utils"
)

// CheckoutFile restores a file to its version in the head commit.
// The staging area is left untouched.
func (r *Repository) CheckoutFile(name string) error {
	path, err := r.normalizePath(name)
	if err != nil {
		return err
	}
	st, err := r.loadState()
	if err != nil {
		return err
	}
	return r.restoreFile(st.head, path)
}

// CheckoutCommitFile restores a file to its version in the given commit.
// Abbreviated commit ids are accepted.
func (r *Repository) CheckoutCommitFile(commitID, name string) error {
	commit, err := r.resolveCommit(commitID)
	if err != nil {
		return err
	}
	path, err := r.normalizePath(name)
	if err != nil {
		return err
	}
	return r.restoreFile(commit, path)
}

func (r *Repository) restoreFile(commit *objects.Commit, path string) error {
	blobID, ok := commit.Files().Get(path)
	if !ok {
		return ErrFileNotInCommit
	}
	blob, err := r.store.ReadBlob(blobID)
	if err != nil {
		return fmt.Errorf("failed to load %s from commit %s: %w", path, commit.Hash(), err)
	}
	return r.writeWorkingFile(path, blob.Content())
}

// CheckoutBranch switches the working tree and HEAD to another branch.
func (r *Repository) CheckoutBranch(name string) error {
	st, err := r.loadState()
	if err != nil {
		return err
	}

	if !r.refs.Has(name) {
		return ErrNoSuchBranch
	}
	if name == st.branch {
		return ErrNoOpCheckout
	}

	target, err := r.branchHead(name)
	if err != nil {
		return err
	}
	if err := r.materializeCommit(st, target); err != nil {
		return err
	}
	if err := r.refs.SetCurrentBranch(name); err != nil {
		return err
	}

	slog.Debug("Switched branch", "from", st.branch, "to", name, "commit", target.Hash())
	return nil
}

// Reset checks out an arbitrary commit and moves the current branch to it.
func (r *Repository) Reset(commitID string) error {
	target, err := r.resolveCommit(commitID)
	if err != nil {
		return err
	}
	st, err := r.loadState()
	if err != nil {
		return err
	}

	if err := r.materializeCommit(st, target); err != nil {
		return err
	}
	if err := r.refs.Set(st.branch, target.Hash()); err != nil {
		return err
	}

	slog.Debug("Reset branch", "branch", st.branch, "commit", target.Hash())
	return nil
}

// materializeCommit makes the working tree match target and clears the
// staging area. Untracked files target would overwrite abort the operation
// before anything is written.
func (r *Repository) materializeCommit(st *state, target *objects.Commit) error {
	if err := r.checkUntrackedConflicts(st, target); err != nil {
		return err
	}

	// Load every blob first so a missing object aborts before the tree is touched
	entries := target.Files().Entries()
	contents := make([][]byte, len(entries))
	for i, entry := range entries {
		blob, err := r.store.ReadBlob(entry.Hash())
		if err != nil {
			return fmt.Errorf("failed to load %s from commit %s: %w", entry.Name(), target.Hash(), err)
		}
		contents[i] = blob.Content()
	}

	for i, entry := range entries {
		if err := r.writeWorkingFile(entry.Name(), contents[i]); err != nil {
			return err
		}
	}
	for _, path := range st.head.Files().Names() {
		if !target.Files().Has(path) {
			if err := r.deleteWorkingFile(path); err != nil {
				return err
			}
		}
	}

	st.head = target
	st.staging.Clear()
	return r.saveStaging(st)
}

// branchHead loads the commit a branch points at.
func (r *Repository) branchHead(name string) (*objects.Commit, error) {
	commitID, err := r.refs.Get(name)
	if errors.Is(err, refs.ErrBranchNotFound) || errors.Is(err, refs.ErrInvalidBranchName) {
		return nil, ErrBranchNotExist
	}
	if err != nil {
		return nil, err
	}
	commit, err := r.store.ReadCommit(commitID)
	if err != nil {
		return nil, fmt.Errorf("failed to load head commit of %s: %w", name, err)
	}
	return commit, nil
}

// resolveCommit loads a commit by full or abbreviated id.
func (r *Repository) resolveCommit(commitID string) (*objects.Commit, error) {
	hash, err := r.store.ResolvePrefix(utils.CommitObjectType, commitID)
	switch {
	case errors.Is(err, objects.ErrNotFound):
		return nil, ErrNoSuchCommit
	case errors.Is(err, objects.ErrAmbiguousID):
		return nil, ErrAmbiguousCommitID
	case err != nil:
		return nil, err
	}
	return r.store.ReadCommit(hash)
}
