package config

import (
	"path/filepath"

	"github.com/KostasZigo/gitlet/internal/constants"
)

// RepositoryPaths locates every piece of on-disk repository state.
// It is built once per repository root and passed to the stores that need it,
// so several repositories can be open side by side.
type RepositoryPaths struct {
	Root    string // Working tree root
	Gitlet  string // .gitlet metadata directory
	Blobs   string // Blob namespace of the object store
	Commits string // Commit namespace of the object store
	Refs    string
	Heads   string // One file per branch
	Head    string // Current branch pointer
	Index   string // Staging area record
	Config  string
}

// NewRepositoryPaths derives the metadata layout for a working tree root.
func NewRepositoryPaths(root string) RepositoryPaths {
	gitletDir := filepath.Join(root, constants.Gitlet)
	return RepositoryPaths{
		Root:    root,
		Gitlet:  gitletDir,
		Blobs:   filepath.Join(gitletDir, constants.Blobs),
		Commits: filepath.Join(gitletDir, constants.Commits),
		Refs:    filepath.Join(gitletDir, constants.Refs),
		Heads:   filepath.Join(gitletDir, constants.Refs, constants.Heads),
		Head:    filepath.Join(gitletDir, constants.Head),
		Index:   filepath.Join(gitletDir, constants.Index),
		Config:  filepath.Join(gitletDir, constants.Config),
	}
}

// Directories lists the directories a repository needs, parents first.
func (p RepositoryPaths) Directories() []string {
	return []string{p.Gitlet, p.Blobs, p.Commits, p.Refs, p.Heads}
}
