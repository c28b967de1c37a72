// Package refs stores branch pointers and the HEAD pointer naming the current branch.
package refs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/KostasZigo/gitlet/internal/config"
	"github.com/KostasZigo/gitlet/internal/constants"
	"github.com/KostasZigo/gitlet/utils"
)

var (
	// ErrBranchNotFound is returned when no ref file exists for a branch.
	ErrBranchNotFound = errors.New("branch not found")

	// ErrInvalidBranchName rejects names that cannot be stored as a ref file.
	ErrInvalidBranchName = errors.New("invalid branch name")
)

// RefStore manages branch name -> commit id mappings as files.
// Each branch is a file under refs/heads/ whose content is the commit id.
type RefStore struct {
	headsDir string
	headPath string
}

func NewRefStore(paths config.RepositoryPaths) *RefStore {
	return &RefStore{
		headsDir: paths.Heads,
		headPath: paths.Head,
	}
}

// ValidateBranchName reports names that would escape refs/heads or corrupt HEAD.
func ValidateBranchName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, "/\\\n\x00") || strings.HasPrefix(name, ".tmp-") {
		return fmt.Errorf("%w: %q", ErrInvalidBranchName, name)
	}
	return nil
}

func (r *RefStore) branchPath(name string) (string, error) {
	if err := ValidateBranchName(name); err != nil {
		return "", err
	}
	return filepath.Join(r.headsDir, name), nil
}

// Get resolves a branch name to the commit id it points at.
func (r *RefStore) Get(name string) (string, error) {
	path, err := r.branchPath(name)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrBranchNotFound, name)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read branch %s: %w", name, err)
	}

	commitID := strings.TrimSpace(string(data))
	if !utils.IsHexID(commitID) {
		return "", fmt.Errorf("branch %s holds invalid commit id %q", name, commitID)
	}
	return commitID, nil
}

// Has checks if a branch exists.
func (r *RefStore) Has(name string) bool {
	path, err := r.branchPath(name)
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Set points a branch at a commit, creating the branch when needed.
func (r *RefStore) Set(name, commitID string) error {
	path, err := r.branchPath(name)
	if err != nil {
		return err
	}
	if err := utils.SafeWrite(path, []byte(commitID+"\n"), constants.FilePerms); err != nil {
		return fmt.Errorf("failed to update branch %s: %w", name, err)
	}
	return nil
}

// Delete removes a branch pointer. Commits it pointed at are kept.
func (r *RefStore) Delete(name string) error {
	path, err := r.branchPath(name)
	if err != nil {
		return err
	}
	err = os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrBranchNotFound, name)
	}
	if err != nil {
		return fmt.Errorf("failed to delete branch %s: %w", name, err)
	}
	return nil
}

// List returns all branch names, sorted.
func (r *RefStore) List() ([]string, error) {
	entries, err := os.ReadDir(r.headsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".tmp-") {
			continue
		}
		names = append(names, entry.Name())
	}
	slices.Sort(names)
	return names, nil
}

// CurrentBranch reads the branch name HEAD refers to.
func (r *RefStore) CurrentBranch() (string, error) {
	data, err := os.ReadFile(r.headPath)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", constants.Head, err)
	}

	line := strings.TrimSpace(string(data))
	if !strings.HasPrefix(line, constants.DefaultRefPrefix) {
		return "", fmt.Errorf("invalid %s contents %q: expected a branch reference", constants.Head, line)
	}

	name := strings.TrimPrefix(line, constants.DefaultRefPrefix)
	if err := ValidateBranchName(name); err != nil {
		return "", fmt.Errorf("invalid %s contents: %w", constants.Head, err)
	}
	return name, nil
}

// SetCurrentBranch re-points HEAD at a branch.
func (r *RefStore) SetCurrentBranch(name string) error {
	if err := ValidateBranchName(name); err != nil {
		return err
	}
	content := constants.DefaultRefPrefix + name + "\n"
	if err := utils.SafeWrite(r.headPath, []byte(content), constants.FilePerms); err != nil {
		return fmt.Errorf("failed to update %s: %w", constants.Head, err)
	}
	return nil
}

// HeadCommit resolves HEAD to the current branch and its commit id.
func (r *RefStore) HeadCommit() (branch string, commitID string, err error) {
	branch, err = r.CurrentBranch()
	if err != nil {
		return "", "", err
	}
	commitID, err = r.Get(branch)
	if err != nil {
		return "", "", err
	}
	return branch, commitID, nil
}
