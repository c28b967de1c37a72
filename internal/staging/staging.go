// Package staging holds the index of changes pending for the next commit.
package staging

import (
	"errors"
	"maps"
	"slices"

	"github.com/KostasZigo/gitlet/internal/objects"
)

// ErrNothingToRemove is returned when a file is neither staged nor tracked.
var ErrNothingToRemove = errors.New("file is neither staged nor tracked")

// StagingArea records pending additions (path -> blob id) and removals.
// Iteration is always in lexicographic path order.
type StagingArea struct {
	addition map[string]string
	removal  map[string]struct{}
}

// New returns an empty staging area.
func New() *StagingArea {
	return &StagingArea{
		addition: make(map[string]string),
		removal:  make(map[string]struct{}),
	}
}

// StageAdd stages blobID for path relative to the current commit's files.
// Staging the version the current commit already tracks unstages path instead.
func (s *StagingArea) StageAdd(path, blobID string, current *objects.Snapshot) {
	if tracked, ok := current.Get(path); ok && tracked == blobID {
		delete(s.addition, path)
	} else {
		s.addition[path] = blobID
	}
	delete(s.removal, path)
}

// StageRemove unstages path, or marks it for removal when the current commit tracks it.
// The returned flag reports whether the caller must delete path from the working tree.
func (s *StagingArea) StageRemove(path string, current *objects.Snapshot) (bool, error) {
	_, staged := s.addition[path]
	tracked := current.Has(path)
	if !staged && !tracked {
		return false, ErrNothingToRemove
	}

	delete(s.addition, path)
	if tracked {
		s.removal[path] = struct{}{}
	}
	return tracked, nil
}

// IsEmpty reports whether nothing is staged.
func (s *StagingArea) IsEmpty() bool {
	return len(s.addition) == 0 && len(s.removal) == 0
}

// Clear empties both additions and removals.
func (s *StagingArea) Clear() {
	clear(s.addition)
	clear(s.removal)
}

// Addition returns the blob id staged for path.
func (s *StagingArea) Addition(path string) (string, bool) {
	blobID, ok := s.addition[path]
	return blobID, ok
}

// IsStagedForRemoval reports whether path is marked for removal.
func (s *StagingArea) IsStagedForRemoval(path string) bool {
	_, ok := s.removal[path]
	return ok
}

// Additions returns a copy of the staged additions.
func (s *StagingArea) Additions() map[string]string {
	return maps.Clone(s.addition)
}

// AddedPaths returns staged addition paths, sorted.
func (s *StagingArea) AddedPaths() []string {
	return slices.Sorted(maps.Keys(s.addition))
}

// RemovedPaths returns paths staged for removal, sorted.
func (s *StagingArea) RemovedPaths() []string {
	return slices.Sorted(maps.Keys(s.removal))
}
