package repository

import (
	"github.com/KostasZigo/gitlet/internal/objects"
	"github.com/KostasZigo/gitlet/utils"
)

// Log returns the head commit and its first-parent ancestors, newest first.
func (r *Repository) Log() ([]*objects.Commit, error) {
	_, headID, err := r.refs.HeadCommit()
	if err != nil {
		return nil, err
	}

	graph := newCommitGraph(r.store)

	var history []*objects.Commit
	for id := headID; id != ""; {
		commit, err := graph.commit(id)
		if err != nil {
			return nil, err
		}
		history = append(history, commit)
		id = commit.FirstParent()
	}
	return history, nil
}

// GlobalLog returns every commit ever made, ordered by id.
func (r *Repository) GlobalLog() ([]*objects.Commit, error) {
	hashes, err := r.store.List(utils.CommitObjectType)
	if err != nil {
		return nil, err
	}

	commits := make([]*objects.Commit, 0, len(hashes))
	for _, hash := range hashes {
		commit, err := r.store.ReadCommit(hash)
		if err != nil {
			return nil, err
		}
		commits = append(commits, commit)
	}
	return commits, nil
}

// Find returns the ids of all commits whose message equals message exactly.
func (r *Repository) Find(message string) ([]string, error) {
	commits, err := r.GlobalLog()
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, commit := range commits {
		if commit.Message() == message {
			ids = append(ids, commit.Hash())
		}
	}
	if len(ids) == 0 {
		return nil, ErrNoCommitWithMessage
	}
	return ids, nil
}
