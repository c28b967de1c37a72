package cmd

import (
	"fmt"
	"io"

	"github.com/KostasZigo/gitlet/internal/constants"
	"github.com/KostasZigo/gitlet/internal/objects"
	"github.com/KostasZigo/gitlet/internal/repository"
)

func shortHash(hash string) string {
	return hash[:min(len(hash), constants.ShortHashLength)]
}

// printCommit writes one log entry. Dates are shown in the zone the commit was made in.
func printCommit(w io.Writer, commit *objects.Commit) {
	fmt.Fprintln(w, "===")
	fmt.Fprintf(w, "commit %s\n", commit.Hash())
	if commit.IsMergeCommit() {
		fmt.Fprintf(w, "Merge: %s %s\n", shortHash(commit.FirstParent()), shortHash(commit.SecondParent()))
	}
	fmt.Fprintf(w, "Date: %s\n", commit.Timestamp().Format(constants.LogDateLayout))
	fmt.Fprintln(w, commit.Message())
	fmt.Fprintln(w)
}

func printSection(w io.Writer, title string, lines []string) {
	fmt.Fprintf(w, "=== %s ===\n", title)
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w)
}

// printStatus writes the five status sections in their fixed order.
func printStatus(w io.Writer, status *repository.Status) {
	branches := make([]string, len(status.Branches))
	for i, branch := range status.Branches {
		if branch == status.CurrentBranch {
			branch = "*" + branch
		}
		branches[i] = branch
	}

	modifications := make([]string, len(status.Modifications))
	for i, modification := range status.Modifications {
		modifications[i] = fmt.Sprintf("%s (%s)", modification.Path, modification.Kind)
	}

	printSection(w, "Branches", branches)
	printSection(w, "Staged Files", status.Staged)
	printSection(w, "Removed Files", status.Removed)
	printSection(w, "Modifications Not Staged For Commit", modifications)
	printSection(w, "Untracked Files", status.Untracked)
}
