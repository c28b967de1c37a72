package repository

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/KostasZigo/gitlet/internal/constants"
	"github.com/KostasZigo/gitlet/internal/objects"
)

// normalizePath turns a user supplied path into the slash-separated path
// relative to the working tree root that commits and the index store.
func (r *Repository) normalizePath(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, "\n\x00") {
		return "", ErrFileNotExist
	}

	path := filepath.Clean(filepath.FromSlash(name))
	if filepath.IsAbs(path) {
		root, err := filepath.Abs(r.paths.Root)
		if err != nil {
			return "", fmt.Errorf("failed to resolve repository root: %w", err)
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return "", ErrPathOutsideRepository
		}
		path = rel
	}

	if path == "." || path == ".." || strings.HasPrefix(path, ".."+string(filepath.Separator)) {
		return "", ErrPathOutsideRepository
	}
	path = filepath.ToSlash(path)
	if path == constants.Gitlet || strings.HasPrefix(path, constants.Gitlet+"/") {
		return "", ErrPathOutsideRepository
	}
	return path, nil
}

func (r *Repository) absPath(path string) string {
	return filepath.Join(r.paths.Root, filepath.FromSlash(path))
}

// workingFiles lists every regular file of the working tree, sorted.
func (r *Repository) workingFiles() ([]string, error) {
	var files []string

	err := filepath.WalkDir(r.paths.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path == r.paths.Gitlet {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(r.paths.Root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if strings.ContainsRune(rel, '\n') {
			slog.Debug("Skipping file with newline in name", "path", rel)
			return nil
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan working tree: %w", err)
	}

	slices.Sort(files)
	return files, nil
}

// readWorkingFile returns a file's content; a missing file or a directory is ErrFileNotExist.
func (r *Repository) readWorkingFile(path string) ([]byte, error) {
	absPath := r.absPath(path)

	info, err := os.Stat(absPath)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && !info.Mode().IsRegular()) {
		return nil, ErrFileNotExist
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	content, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return content, nil
}

// workingBlobID hashes a working tree file the way add would store it.
func (r *Repository) workingBlobID(path string) (string, bool, error) {
	content, err := r.readWorkingFile(path)
	if errors.Is(err, ErrFileNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return objects.NewBlobWithHasher(content, r.store.Hasher()).Hash(), true, nil
}

func (r *Repository) writeWorkingFile(path string, content []byte) error {
	absPath := r.absPath(path)
	if err := os.MkdirAll(filepath.Dir(absPath), constants.DirPerms); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(absPath, content, constants.FilePerms); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func (r *Repository) deleteWorkingFile(path string) error {
	err := os.Remove(r.absPath(path))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}
	return nil
}

// untrackedFiles lists working tree files neither tracked by head nor staged for addition.
func (r *Repository) untrackedFiles(st *state) ([]string, error) {
	files, err := r.workingFiles()
	if err != nil {
		return nil, err
	}

	var untracked []string
	for _, path := range files {
		if _, staged := st.staging.Addition(path); staged || st.head.Files().Has(path) {
			continue
		}
		untracked = append(untracked, path)
	}
	return untracked, nil
}

// checkUntrackedConflicts refuses to let target overwrite untracked work.
func (r *Repository) checkUntrackedConflicts(st *state, target *objects.Commit) error {
	untracked, err := r.untrackedFiles(st)
	if err != nil {
		return err
	}
	for _, path := range untracked {
		if target.Files().Has(path) {
			slog.Debug("Untracked file would be overwritten", "path", path, "target", target.Hash())
			return ErrUntrackedFileConflict
		}
	}
	return nil
}
