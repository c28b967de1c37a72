package repository

import (
	"fmt"

	"github.com/KostasZigo/gitlet/internal/objects"
)

// commitGraph walks the commit DAG by id. Commits are loaded from the store
// on first use and memoized, so nodes reference each other only by id.
type commitGraph struct {
	store *objects.ObjectStore
	nodes map[string]*objects.Commit
}

func newCommitGraph(store *objects.ObjectStore) *commitGraph {
	return &commitGraph{
		store: store,
		nodes: make(map[string]*objects.Commit),
	}
}

func (g *commitGraph) commit(id string) (*objects.Commit, error) {
	if commit, ok := g.nodes[id]; ok {
		return commit, nil
	}
	commit, err := g.store.ReadCommit(id)
	if err != nil {
		return nil, fmt.Errorf("failed to load commit %s: %w", id, err)
	}
	g.nodes[id] = commit
	return commit, nil
}

// ancestors returns id and every commit reachable from it through either parent.
func (g *commitGraph) ancestors(id string) (map[string]struct{}, error) {
	seen := map[string]struct{}{id: {}}
	queue := []string{id}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		commit, err := g.commit(current)
		if err != nil {
			return nil, err
		}
		for _, parent := range commit.Parents() {
			if _, ok := seen[parent]; !ok {
				seen[parent] = struct{}{}
				queue = append(queue, parent)
			}
		}
	}
	return seen, nil
}

// splitPoint returns a lowest common ancestor of two commits: a common
// ancestor that no other common ancestor descends from. When criss-cross
// histories leave several, the one nearest current by parent edges wins.
func (g *commitGraph) splitPoint(currentID, targetID string) (string, error) {
	targetAncestors, err := g.ancestors(targetID)
	if err != nil {
		return "", err
	}

	// Breadth-first order from current, keeping only shared commits
	var common []string
	seen := map[string]struct{}{currentID: {}}
	queue := []string{currentID}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		if _, ok := targetAncestors[id]; ok {
			common = append(common, id)
		}

		commit, err := g.commit(id)
		if err != nil {
			return "", err
		}
		for _, parent := range commit.Parents() {
			if _, ok := seen[parent]; !ok {
				seen[parent] = struct{}{}
				queue = append(queue, parent)
			}
		}
	}

	// Every proper ancestor of a common ancestor is itself common, so it is
	// the parent of some common commit.
	dominated := make(map[string]struct{})
	for _, id := range common {
		commit, err := g.commit(id)
		if err != nil {
			return "", err
		}
		for _, parent := range commit.Parents() {
			dominated[parent] = struct{}{}
		}
	}

	for _, id := range common {
		if _, ok := dominated[id]; !ok {
			return id, nil
		}
	}

	// Every history starts at the shared initial commit
	return "", fmt.Errorf("commits %s and %s have no common ancestor", currentID, targetID)
}
