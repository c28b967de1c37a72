package constants

import "os"

// Command name constants used in tests and error messages.
// Cobra Use fields remain inline for CLI discoverability.
const (
	InitCmdName       = "init"
	AddCmdName        = "add"
	CommitCmdName     = "commit"
	RmCmdName         = "rm"
	LogCmdName        = "log"
	GlobalLogCmdName  = "global-log"
	FindCmdName       = "find"
	StatusCmdName     = "status"
	CheckoutCmdName   = "checkout"
	BranchCmdName     = "branch"
	RmBranchCmdName   = "rm-branch"
	ResetCmdName      = "reset"
	MergeCmdName      = "merge"
	HashObjectCmdName = "hash-object"
)

// Repository directory and file names define the gitlet metadata structure.
const (
	// Gitlet is the repository metadata directory.
	Gitlet = ".gitlet"

	// Blobs stores content-addressable file payloads.
	Blobs = "blobs"

	// Commits stores content-addressable commit records.
	Commits = "commits"

	// Refs contains branch references.
	Refs = "refs"

	// Heads stores branch pointers under refs/.
	Heads = "heads"

	// Head names the current branch.
	Head = "HEAD"

	// Index is the staging area record.
	Index = "index"

	// Config is the ini-formatted repository configuration.
	Config = "config"
)

// Default repository values.
const (
	// DefaultBranch is the initial branch name for new repositories.
	DefaultBranch = "master"

	// DefaultRefPrefix is prepended to branch names in HEAD file.
	DefaultRefPrefix = "ref: refs/heads/"

	// InitialCommitMessage is the fixed message of every repository's root commit.
	InitialCommitMessage = "initial commit"

	// DefaultHashAlgorithm names the multihash function used for object ids.
	DefaultHashAlgorithm = "sha1"

	// DefaultCompression is the zlib level written to new configs (zlib.DefaultCompression).
	DefaultCompression = -1
)

// File system permissions for created files and directories.
const (
	// DirPerms grants read/write/execute to owner, read/execute to others (rwxr-xr-x).
	DirPerms os.FileMode = 0755

	// FilePerms grants read/write to owner, read-only to others (rw-r--r--).
	FilePerms os.FileMode = 0644
)

// Cryptographic hash properties.
const (
	// HashByteLength is byte length of SHA-1 hash (20 bytes).
	HashByteLength = 20

	// HashStringLength is hex string length of SHA-1 hash (40 characters).
	HashStringLength = 40

	// HashDirPrefixLength is subdirectory prefix length under blobs/ and commits/ (2 characters).
	HashDirPrefixLength = 2

	// ShortHashLength is the abbreviated id length printed for merge parents.
	ShortHashLength = 7
)

// Object type prefixes used in object headers and commit content.
const (
	// BlobPrefix identifies blob objects in headers ("blob <size>\0").
	BlobPrefix = "blob "

	// CommitPrefix identifies commit objects in headers ("commit <size>\0").
	CommitPrefix = "commit "

	// CommitParentPrefix marks parent commit lines in commit objects.
	CommitParentPrefix = "parent "

	// CommitTimestampPrefix marks the timestamp line in commit objects.
	CommitTimestampPrefix = "timestamp "

	// CommitFilePrefix marks tracked file lines in commit objects.
	CommitFilePrefix = "file "
)

// Object format constants.
const (
	// NullByte separates header from content in Gitlet objects.
	NullByte = '\x00'
)

// Conflict markers written into files that both sides of a merge changed.
const (
	ConflictStart     = "<<<<<<< HEAD\n"
	ConflictSeparator = "=======\n"
	ConflictEnd       = ">>>>>>>\n"
)

// Time conversion constants for timezone formatting.
const (
	SecondsPerHour   = 3600
	SecondsPerMinute = 60

	// LogDateLayout formats commit dates in log output.
	LogDateLayout = "Mon Jan 2 15:04:05 2006 -0700"
)
