package repository

import (
	"slices"
)

// ModificationKind describes how an unstaged working file differs.
type ModificationKind string

const (
	Modified ModificationKind = "modified"
	Deleted  ModificationKind = "deleted"
)

// Modification is a working tree change not staged for commit.
type Modification struct {
	Path string
	Kind ModificationKind
}

// Status summarizes branches, the staging area and the working tree.
// Every list is sorted.
type Status struct {
	CurrentBranch string
	Branches      []string
	Staged        []string
	Removed       []string
	Modifications []Modification
	Untracked     []string
}

// Status compares the working tree against the head commit and the staging area.
func (r *Repository) Status() (*Status, error) {
	st, err := r.loadState()
	if err != nil {
		return nil, err
	}
	branches, err := r.refs.List()
	if err != nil {
		return nil, err
	}
	workingFiles, err := r.workingFiles()
	if err != nil {
		return nil, err
	}

	status := &Status{
		CurrentBranch: st.branch,
		Branches:      branches,
		Staged:        st.staging.AddedPaths(),
		Removed:       st.staging.RemovedPaths(),
	}

	// Candidates for unstaged modifications: tracked or staged files
	candidates := st.head.Files().Names()
	candidates = append(candidates, status.Staged...)
	slices.Sort(candidates)
	candidates = slices.Compact(candidates)

	for _, path := range candidates {
		workingID, exists, err := r.workingBlobID(path)
		if err != nil {
			return nil, err
		}

		expected, staged := st.staging.Addition(path)
		if !staged {
			if st.staging.IsStagedForRemoval(path) {
				continue
			}
			expected, _ = st.head.Files().Get(path)
		}

		switch {
		case !exists:
			status.Modifications = append(status.Modifications, Modification{Path: path, Kind: Deleted})
		case workingID != expected:
			status.Modifications = append(status.Modifications, Modification{Path: path, Kind: Modified})
		}
	}

	// Files staged for removal but present again count as untracked
	for _, path := range workingFiles {
		_, staged := st.staging.Addition(path)
		tracked := st.head.Files().Has(path) && !st.staging.IsStagedForRemoval(path)
		if !staged && !tracked {
			status.Untracked = append(status.Untracked, path)
		}
	}

	return status, nil
}
