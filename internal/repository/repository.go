// Package repository implements the Gitlet commands on top of the object
// store, the staging index and the branch references.
package repository

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/KostasZigo/gitlet/internal/config"
	"github.com/KostasZigo/gitlet/internal/constants"
	"github.com/KostasZigo/gitlet/internal/objects"
	"github.com/KostasZigo/gitlet/internal/refs"
	"github.com/KostasZigo/gitlet/internal/staging"
)

// Repository is an opened Gitlet working tree.
// Every method is one complete read, validate, mutate, persist cycle.
type Repository struct {
	paths  config.RepositoryPaths
	config config.Config
	store  *objects.ObjectStore
	refs   *refs.RefStore
	now    func() time.Time
}

// InitRepository creates a repository at path with the initial commit on the default branch.
func InitRepository(path string, cfg config.Config) error {
	paths := config.NewRepositoryPaths(path)

	if err := checkRepositoryDoesNotExist(paths.Gitlet); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid repository configuration: %w", err)
	}
	hasher, err := cfg.Hasher()
	if err != nil {
		return err
	}

	// Track if initialization of gitlet directories and files was successful
	// Default value: false
	var initSuccess bool

	// Defer a func to clean up any directories/files in the case that
	// repository initialization failed (not all directories/files were created successfully).
	// If all resources got created successfully initSuccess is true, and the clean-up
	//  is not executed
	defer func() {
		if !initSuccess {
			cleanupRepository(paths.Gitlet)
		}
	}()

	// Create all gitlet directories
	for _, directory := range paths.Directories() {
		if err := os.MkdirAll(directory, constants.DirPerms); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", directory, err)
		}
	}

	if err := cfg.Save(paths.Config); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	initialCommit, err := objects.NewInitialCommit(hasher)
	if err != nil {
		return err
	}
	if err := objects.NewObjectStore(paths, hasher, cfg.Compression).Store(initialCommit); err != nil {
		return fmt.Errorf("failed to store initial commit: %w", err)
	}

	refStore := refs.NewRefStore(paths)
	if err := refStore.Set(constants.DefaultBranch, initialCommit.Hash()); err != nil {
		return err
	}
	// HEAD pointing to the default branch
	if err := refStore.SetCurrentBranch(constants.DefaultBranch); err != nil {
		return fmt.Errorf("failed to create HEAD file: %w", err)
	}

	if err := staging.New().Save(paths.Index); err != nil {
		return err
	}

	slog.Debug("Initialized repository",
		"path", paths.Gitlet,
		"hash", hasher.Name(),
		"initialCommit", initialCommit.Hash())

	initSuccess = true
	return nil
}

func checkRepositoryDoesNotExist(path string) error {
	_, err := os.Stat(path)

	// If path doesn't exist there is no error
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to check repository path: %w", err)
	}

	return ErrAlreadyInitialized
}

// Removes the entire .gitlet directory if it exists
func cleanupRepository(gitletDir string) {
	if _, err := os.Stat(gitletDir); err == nil {
		slog.Debug("Cleaning up partial repository initialization",
			"path", gitletDir)

		if err := os.RemoveAll(gitletDir); err != nil {
			slog.Warn("Failed to cleanup repository directory",
				"path", gitletDir,
				"error", err)
		} else {
			slog.Debug("Successfully cleaned up repository directory",
				"path", gitletDir)
		}
	}
}

// Open loads the repository whose working tree root is path.
func Open(path string) (*Repository, error) {
	paths := config.NewRepositoryPaths(path)

	info, err := os.Stat(paths.Gitlet)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && !info.IsDir()) {
		return nil, ErrNotInitialized
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check repository path: %w", err)
	}

	cfg, err := config.Load(paths.Config)
	if err != nil {
		return nil, err
	}
	hasher, err := cfg.Hasher()
	if err != nil {
		return nil, err
	}

	return &Repository{
		paths:  paths,
		config: cfg,
		store:  objects.NewObjectStore(paths, hasher, cfg.Compression),
		refs:   refs.NewRefStore(paths),
		now:    time.Now,
	}, nil
}

// Paths returns the on-disk layout of the repository.
func (r *Repository) Paths() config.RepositoryPaths {
	return r.paths
}

// Store returns the repository's object store.
func (r *Repository) Store() *objects.ObjectStore {
	return r.store
}

// state is the mutable repository state every command starts from.
type state struct {
	branch  string
	head    *objects.Commit
	staging *staging.StagingArea
}

func (r *Repository) loadState() (*state, error) {
	branch, headID, err := r.refs.HeadCommit()
	if err != nil {
		return nil, err
	}
	head, err := r.store.ReadCommit(headID)
	if err != nil {
		return nil, fmt.Errorf("failed to load head commit of %s: %w", branch, err)
	}
	stagingArea, err := staging.Load(r.paths.Index)
	if err != nil {
		return nil, err
	}
	return &state{branch: branch, head: head, staging: stagingArea}, nil
}

func (r *Repository) saveStaging(st *state) error {
	return st.staging.Save(r.paths.Index)
}
