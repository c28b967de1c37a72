package repository

import (
	"bytes"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/KostasZigo/gitlet/internal/constants"
	"github.com/KostasZigo/gitlet/internal/objects"
)

// MergeOutcome tells how a merge was resolved.
type MergeOutcome int

const (
	// MergeCommitted means a merge commit with two parents was created.
	MergeCommitted MergeOutcome = iota

	// MergeUpToDate means the given branch is an ancestor of the current one.
	MergeUpToDate

	// MergeFastForward means the current branch was advanced to the given branch.
	MergeFastForward
)

// MergeResult reports the outcome of Merge. Conflicts are not errors.
type MergeResult struct {
	Outcome MergeOutcome

	// Commit is the new merge commit, or the fast-forwarded head.
	Commit *objects.Commit

	// Conflicts lists files written with conflict markers.
	Conflicts []string
}

// HasConflicts reports whether any file needs manual resolution.
func (m *MergeResult) HasConflicts() bool {
	return len(m.Conflicts) > 0
}

type mergeActionKind int

const (
	takeTarget mergeActionKind = iota
	removeFile
	conflictFile
)

// mergeAction is one working tree change the three-way merge decided on.
type mergeAction struct {
	kind    mergeActionKind
	path    string
	content []byte // For takeTarget and conflictFile
	blob    *objects.Blob
}

// Merge merges the given branch into the current one.
func (r *Repository) Merge(branchName string) (*MergeResult, error) {
	st, err := r.loadState()
	if err != nil {
		return nil, err
	}

	if !st.staging.IsEmpty() {
		return nil, ErrUncommittedChanges
	}
	if !r.refs.Has(branchName) {
		return nil, ErrBranchNotExist
	}
	if branchName == st.branch {
		return nil, ErrSelfMerge
	}
	target, err := r.branchHead(branchName)
	if err != nil {
		return nil, err
	}
	graph := newCommitGraph(r.store)
	splitID, err := graph.splitPoint(st.head.Hash(), target.Hash())
	if err != nil {
		return nil, err
	}
	slog.Debug("Found split point", "current", st.head.Hash(), "target", target.Hash(), "split", splitID)

	switch splitID {
	case target.Hash():
		return &MergeResult{Outcome: MergeUpToDate, Commit: st.head}, nil
	case st.head.Hash():
		if err := r.materializeCommit(st, target); err != nil {
			return nil, err
		}
		if err := r.refs.Set(st.branch, target.Hash()); err != nil {
			return nil, err
		}
		slog.Debug("Fast-forwarded branch", "branch", st.branch, "commit", target.Hash())
		return &MergeResult{Outcome: MergeFastForward, Commit: target}, nil
	}

	split, err := graph.commit(splitID)
	if err != nil {
		return nil, err
	}

	actions, err := r.planMerge(split.Files(), st.head.Files(), target.Files())
	if err != nil {
		return nil, err
	}
	if err := r.checkMergeOverwrites(st, actions); err != nil {
		return nil, err
	}

	result := &MergeResult{Outcome: MergeCommitted}
	for _, action := range actions {
		switch action.kind {
		case takeTarget, conflictFile:
			if err := r.store.Store(action.blob); err != nil {
				return nil, fmt.Errorf("failed to store merged %s: %w", action.path, err)
			}
			if err := r.writeWorkingFile(action.path, action.content); err != nil {
				return nil, err
			}
			st.staging.StageAdd(action.path, action.blob.Hash(), st.head.Files())
			if action.kind == conflictFile {
				result.Conflicts = append(result.Conflicts, action.path)
			}
		case removeFile:
			if err := r.deleteWorkingFile(action.path); err != nil {
				return nil, err
			}
			if _, err := st.staging.StageRemove(action.path, st.head.Files()); err != nil {
				return nil, fmt.Errorf("failed to stage removal of %s: %w", action.path, err)
			}
		}
	}

	message := fmt.Sprintf("Merged %s into %s.", branchName, st.branch)
	commit, err := r.commit(st, message, target.Hash())
	if err != nil {
		return nil, err
	}
	result.Commit = commit

	if result.HasConflicts() {
		slog.Debug("Merge produced conflicts", "files", result.Conflicts)
	}
	return result, nil
}

// planMerge classifies every file of the three snapshots and loads the
// content each change needs. Nothing is written here.
func (r *Repository) planMerge(split, current, target *objects.Snapshot) ([]mergeAction, error) {
	names := make(map[string]struct{})
	for _, snapshot := range []*objects.Snapshot{split, current, target} {
		for _, name := range snapshot.Names() {
			names[name] = struct{}{}
		}
	}

	var actions []mergeAction
	for _, path := range slices.Sorted(maps.Keys(names)) {
		splitID, _ := split.Get(path)
		currentID, _ := current.Get(path)
		targetID, _ := target.Get(path)

		switch {
		case currentID == targetID:
			// Unchanged, changed identically, or deleted on both sides
		case splitID == currentID && targetID == "":
			actions = append(actions, mergeAction{kind: removeFile, path: path})
		case splitID == currentID:
			blob, err := r.store.ReadBlob(targetID)
			if err != nil {
				return nil, fmt.Errorf("failed to load %s from target: %w", path, err)
			}
			actions = append(actions, mergeAction{kind: takeTarget, path: path, content: blob.Content(), blob: blob})
		case splitID == targetID:
			// Only the current branch changed the file
		default:
			content, err := r.conflictContent(currentID, targetID)
			if err != nil {
				return nil, fmt.Errorf("failed to build conflict for %s: %w", path, err)
			}
			blob := objects.NewBlobWithHasher(content, r.store.Hasher())
			actions = append(actions, mergeAction{kind: conflictFile, path: path, content: content, blob: blob})
		}
	}
	return actions, nil
}

// checkMergeOverwrites refuses the merge when an action would write over
// untracked work. Files the merge leaves alone may stay untracked.
func (r *Repository) checkMergeOverwrites(st *state, actions []mergeAction) error {
	untracked, err := r.untrackedFiles(st)
	if err != nil {
		return err
	}
	for _, action := range actions {
		if action.kind == removeFile {
			continue
		}
		if slices.Contains(untracked, action.path) {
			slog.Debug("Untracked file would be overwritten by merge", "path", action.path)
			return ErrUntrackedFileConflict
		}
	}
	return nil
}

// conflictContent joins both versions between conflict markers.
// A deleted side contributes empty content.
func (r *Repository) conflictContent(currentID, targetID string) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(constants.ConflictStart)
	if err := r.appendBlob(&buf, currentID); err != nil {
		return nil, err
	}
	buf.WriteString(constants.ConflictSeparator)
	if err := r.appendBlob(&buf, targetID); err != nil {
		return nil, err
	}
	buf.WriteString(constants.ConflictEnd)

	return buf.Bytes(), nil
}

func (r *Repository) appendBlob(buf *bytes.Buffer, blobID string) error {
	if blobID == "" {
		return nil
	}
	blob, err := r.store.ReadBlob(blobID)
	if err != nil {
		return err
	}
	buf.Write(blob.Content())
	return nil
}
