package repository

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/KostasZigo/gitlet/internal/objects"
	"github.com/KostasZigo/gitlet/internal/staging"
)

// Add stages the working tree version of a file.
// Adding a file identical to the head version unstages it instead.
func (r *Repository) Add(name string) error {
	path, err := r.normalizePath(name)
	if err != nil {
		return err
	}

	st, err := r.loadState()
	if err != nil {
		return err
	}

	content, err := r.readWorkingFile(path)
	if err != nil {
		return err
	}
	blob := objects.NewBlobWithHasher(content, r.store.Hasher())

	st.staging.StageAdd(path, blob.Hash(), st.head.Files())
	if _, staged := st.staging.Addition(path); staged {
		if err := r.store.Store(blob); err != nil {
			return fmt.Errorf("failed to store blob for %s: %w", path, err)
		}
		slog.Debug("Staged file for addition", "path", path, "blob", blob.Hash())
	} else {
		slog.Debug("File matches head version, unstaged", "path", path)
	}

	return r.saveStaging(st)
}

// Remove unstages a file, and when the head commit tracks it, stages its
// removal and deletes it from the working tree.
func (r *Repository) Remove(name string) error {
	path, err := r.normalizePath(name)
	if err != nil {
		return err
	}

	st, err := r.loadState()
	if err != nil {
		return err
	}

	tracked, err := st.staging.StageRemove(path, st.head.Files())
	if errors.Is(err, staging.ErrNothingToRemove) {
		return ErrNothingToRemove
	}
	if err != nil {
		return err
	}

	if err := r.saveStaging(st); err != nil {
		return err
	}

	if tracked {
		slog.Debug("Staged file for removal", "path", path)
		return r.deleteWorkingFile(path)
	}
	return nil
}
