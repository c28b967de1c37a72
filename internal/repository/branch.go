package repository

import (
	"errors"
	"log/slog"

	"github.com/KostasZigo/gitlet/internal/refs"
)

// Branch creates a branch pointing at the head commit. HEAD is not moved.
func (r *Repository) Branch(name string) error {
	if err := refs.ValidateBranchName(name); err != nil {
		return ErrInvalidBranchName
	}
	if r.refs.Has(name) {
		return ErrBranchExists
	}

	_, headID, err := r.refs.HeadCommit()
	if err != nil {
		return err
	}
	if err := r.refs.Set(name, headID); err != nil {
		return err
	}

	slog.Debug("Created branch", "branch", name, "commit", headID)
	return nil
}

// RemoveBranch deletes a branch pointer; its commits stay in the store.
func (r *Repository) RemoveBranch(name string) error {
	if !r.refs.Has(name) {
		return ErrBranchNotExist
	}
	current, err := r.refs.CurrentBranch()
	if err != nil {
		return err
	}
	if name == current {
		return ErrRemoveCurrentBranch
	}

	if err := r.refs.Delete(name); err != nil {
		if errors.Is(err, refs.ErrBranchNotFound) {
			return ErrBranchNotExist
		}
		return err
	}

	slog.Debug("Removed branch", "branch", name)
	return nil
}
