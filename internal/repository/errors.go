package repository

// UserError is an expected refusal of a command: bad operands, missing
// files, unknown branches and the like. The CLI prints its message and exits
// successfully; every other error is treated as a failure of the tool itself.
type UserError struct {
	message string
}

func newUserError(message string) *UserError {
	return &UserError{message: message}
}

func (e *UserError) Error() string {
	return e.message
}

// Sentinel refusals. Compare with errors.Is.
var (
	ErrAlreadyInitialized    = newUserError("A Gitlet version-control system already exists in the current directory.")
	ErrNotInitialized        = newUserError("Not in an initialized Gitlet directory.")
	ErrFileNotExist          = newUserError("File does not exist.")
	ErrPathOutsideRepository = newUserError("File is outside the repository.")
	ErrEmptyMessage          = newUserError("Please enter a commit message.")
	ErrNoChanges             = newUserError("No changes added to the commit.")
	ErrNothingToRemove       = newUserError("No reason to remove the file.")
	ErrNoCommitWithMessage   = newUserError("Found no commit with that message.")
	ErrNoSuchCommit          = newUserError("No commit with that id exists.")
	ErrAmbiguousCommitID     = newUserError("Commit id is ambiguous; use more characters.")
	ErrFileNotInCommit       = newUserError("File does not exist in that commit.")
	ErrNoSuchBranch          = newUserError("No such branch exists.")
	ErrNoOpCheckout          = newUserError("No need to checkout the current branch.")
	ErrUntrackedFileConflict = newUserError("There is an untracked file in the way; delete it, or add and commit it first.")
	ErrInvalidBranchName     = newUserError("Invalid branch name.")
	ErrBranchExists          = newUserError("A branch with that name already exists.")
	ErrBranchNotExist        = newUserError("A branch with that name does not exist.")
	ErrRemoveCurrentBranch   = newUserError("Cannot remove the current branch.")
	ErrUncommittedChanges    = newUserError("You have uncommitted changes.")
	ErrSelfMerge             = newUserError("Cannot merge a branch with itself.")
)
