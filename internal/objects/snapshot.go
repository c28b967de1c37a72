package objects

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// FileEntry is one tracked file in a snapshot
type FileEntry struct {
	name string
	hash string // Blob id of the file's content
}

func NewFileEntry(name, hash string) FileEntry {
	return FileEntry{name: name, hash: hash}
}

func (e FileEntry) Name() string {
	return e.name
}

func (e FileEntry) Hash() string {
	return e.hash
}

// Snapshot is the complete set of tracked files of a commit.
// Entries are kept sorted by name and never mutated after construction.
type Snapshot struct {
	entries []FileEntry
}

// NewSnapshot creates a snapshot from a path -> blob id mapping
func NewSnapshot(files map[string]string) *Snapshot {
	entries := make([]FileEntry, 0, len(files))
	for _, name := range slices.Sorted(maps.Keys(files)) {
		entries = append(entries, FileEntry{name: name, hash: files[name]})
	}
	return &Snapshot{entries: entries}
}

// EmptySnapshot tracks no files; the initial commit carries it.
func EmptySnapshot() *Snapshot {
	return &Snapshot{}
}

func compareFileEntry(entry FileEntry, name string) int {
	return strings.Compare(entry.name, name)
}

// Get returns the blob id tracked for name
func (s *Snapshot) Get(name string) (string, bool) {
	i, found := slices.BinarySearchFunc(s.entries, name, compareFileEntry)
	if !found {
		return "", false
	}
	return s.entries[i].hash, true
}

// Has reports whether name is tracked
func (s *Snapshot) Has(name string) bool {
	_, found := s.Get(name)
	return found
}

// Entries returns all entries sorted by name
func (s *Snapshot) Entries() []FileEntry {
	return slices.Clone(s.entries)
}

// Names returns tracked file names in ascending order
func (s *Snapshot) Names() []string {
	names := make([]string, len(s.entries))
	for i, entry := range s.entries {
		names[i] = entry.name
	}
	return names
}

func (s *Snapshot) Len() int {
	return len(s.entries)
}

// Map returns a mutable copy of the snapshot as path -> blob id
func (s *Snapshot) Map() map[string]string {
	files := make(map[string]string, len(s.entries))
	for _, entry := range s.entries {
		files[entry.name] = entry.hash
	}
	return files
}

// Apply derives the next snapshot: additions overwrite, removals delete.
func (s *Snapshot) Apply(additions map[string]string, removals []string) *Snapshot {
	files := s.Map()
	maps.Copy(files, additions)
	for _, name := range removals {
		delete(files, name)
	}
	return NewSnapshot(files)
}

func (s *Snapshot) String() string {
	return fmt.Sprintf("Snapshot{files: %d}", len(s.entries))
}
