package objects

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/KostasZigo/gitlet/internal/constants"
	"github.com/KostasZigo/gitlet/utils"
)

// ErrMalformedCommit marks commit content that cannot be parsed.
var ErrMalformedCommit = errors.New("malformed commit")

// Represents a snapshot of the repository
type Commit struct {
	hash         string
	message      string
	timestamp    time.Time
	firstParent  string
	secondParent string
	files        *Snapshot
}

// NewCommit builds a commit and computes its id with hasher.
// secondParent is only set for merge commits.
func NewCommit(message string, timestamp time.Time, firstParent, secondParent string, files *Snapshot, hasher utils.Hasher) (*Commit, error) {
	if secondParent != "" && firstParent == "" {
		return nil, fmt.Errorf("commit with second parent %s has no first parent", secondParent)
	}
	if files == nil {
		files = EmptySnapshot()
	}

	commit := &Commit{
		message:      message,
		timestamp:    timestamp.Truncate(time.Second),
		firstParent:  firstParent,
		secondParent: secondParent,
		files:        files,
	}

	hash, err := hasher.Sum(commit.Content(), utils.CommitObjectType)
	if err != nil {
		return nil, fmt.Errorf("failed to compute hash for commit: %w", err)
	}
	commit.hash = hash
	return commit, nil
}

// NewInitialCommit creates the parentless root commit.
// Message and timestamp are fixed so every repository shares its id.
func NewInitialCommit(hasher utils.Hasher) (*Commit, error) {
	return NewCommit(constants.InitialCommitMessage, time.Unix(0, 0).UTC(), "", "", EmptySnapshot(), hasher)
}

func buildCommitContent(message string, timestamp time.Time, firstParent, secondParent string, files *Snapshot) []byte {
	var buf bytes.Buffer

	// Parent references
	for _, parent := range []string{firstParent, secondParent} {
		if parent != "" {
			fmt.Fprintf(&buf, "%s%s\n", constants.CommitParentPrefix, parent)
		}
	}

	_, timeZoneOffset := timestamp.Zone()
	fmt.Fprintf(&buf, "%s%d %s\n", constants.CommitTimestampPrefix, timestamp.Unix(), calculateTimezone(timeZoneOffset))

	// Tracked files, already sorted by name
	for _, entry := range files.entries {
		fmt.Fprintf(&buf, "%s%s %s\n", constants.CommitFilePrefix, entry.hash, entry.name)
	}

	// Blank line before message
	buf.WriteByte('\n')

	buf.WriteString(message)
	buf.WriteByte('\n')

	return buf.Bytes()
}

func calculateTimezone(offset int) string {
	// offset is in seconds, convert to ±HHMM format
	sign := '+'
	if offset < 0 {
		sign = '-'
		offset = -offset
	}
	hours := offset / constants.SecondsPerHour
	minutes := (offset % constants.SecondsPerHour) / constants.SecondsPerMinute

	return fmt.Sprintf("%c%02d%02d", sign, hours, minutes)
}

func parseTimezone(zone string) (*time.Location, error) {
	if len(zone) != 5 || (zone[0] != '+' && zone[0] != '-') {
		return nil, fmt.Errorf("invalid timezone %q", zone)
	}
	hours, err := strconv.Atoi(zone[1:3])
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", zone, err)
	}
	minutes, err := strconv.Atoi(zone[3:5])
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", zone, err)
	}

	offset := hours*constants.SecondsPerHour + minutes*constants.SecondsPerMinute
	if zone[0] == '-' {
		offset = -offset
	}
	if offset == 0 {
		return time.UTC, nil
	}
	return time.FixedZone("", offset), nil
}

// ParseCommit decodes commit content written by Content and recomputes its id.
func ParseCommit(content []byte, hasher utils.Hasher) (*Commit, error) {
	header, message, found := bytes.Cut(content, []byte("\n\n"))
	if !found {
		// An empty header cannot happen: the timestamp line is mandatory
		return nil, fmt.Errorf("%w: missing message separator", ErrMalformedCommit)
	}

	var (
		parents      []string
		timestamp    time.Time
		hasTimestamp bool
		files        = make(map[string]string)
	)

	scanner := bufio.NewScanner(bytes.NewReader(header))
	scanner.Buffer(make([]byte, 0, 64*1024), len(header)+1)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, constants.CommitParentPrefix):
			parents = append(parents, strings.TrimPrefix(line, constants.CommitParentPrefix))

		case strings.HasPrefix(line, constants.CommitTimestampPrefix):
			fields := strings.Fields(strings.TrimPrefix(line, constants.CommitTimestampPrefix))
			if len(fields) != 2 {
				return nil, fmt.Errorf("%w: bad timestamp line %q", ErrMalformedCommit, line)
			}
			seconds, err := strconv.ParseInt(fields[0], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: bad timestamp %q: %w", ErrMalformedCommit, fields[0], err)
			}
			location, err := parseTimezone(fields[1])
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrMalformedCommit, err)
			}
			timestamp = time.Unix(seconds, 0).In(location)
			hasTimestamp = true

		case strings.HasPrefix(line, constants.CommitFilePrefix):
			// file <hash> <name>, where name may itself contain spaces
			hash, name, ok := strings.Cut(strings.TrimPrefix(line, constants.CommitFilePrefix), " ")
			if !ok || hash == "" || name == "" {
				return nil, fmt.Errorf("%w: bad file line %q", ErrMalformedCommit, line)
			}
			files[name] = hash

		default:
			return nil, fmt.Errorf("%w: unexpected line %q", ErrMalformedCommit, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedCommit, err)
	}

	if !hasTimestamp {
		return nil, fmt.Errorf("%w: missing timestamp", ErrMalformedCommit)
	}
	if len(parents) > 2 {
		return nil, fmt.Errorf("%w: %d parents", ErrMalformedCommit, len(parents))
	}
	parents = append(parents, "", "")

	return NewCommit(strings.TrimSuffix(string(message), "\n"), timestamp, parents[0], parents[1], NewSnapshot(files), hasher)
}

func (c *Commit) Hash() string {
	return c.hash
}

func (c *Commit) Type() utils.ObjectType {
	return utils.CommitObjectType
}

func (c *Commit) Message() string {
	return c.message
}

func (c *Commit) Timestamp() time.Time {
	return c.timestamp
}

// FirstParent returns the parent on the branch the commit was made on, or "".
func (c *Commit) FirstParent() string {
	return c.firstParent
}

// SecondParent returns the merged-in parent, or "" for ordinary commits.
func (c *Commit) SecondParent() string {
	return c.secondParent
}

// Parents returns every parent id, first parent first.
func (c *Commit) Parents() []string {
	parents := make([]string, 0, 2)
	for _, parent := range []string{c.firstParent, c.secondParent} {
		if parent != "" {
			parents = append(parents, parent)
		}
	}
	return parents
}

// Files returns the full tracked-file snapshot.
func (c *Commit) Files() *Snapshot {
	return c.files
}

func (c *Commit) Content() []byte {
	return buildCommitContent(c.message, c.timestamp, c.firstParent, c.secondParent, c.files)
}

func (c *Commit) Size() int {
	return len(c.Content())
}

func (c *Commit) Header() string {
	return fmt.Sprintf("commit %d\x00", c.Size())
}

func (c *Commit) Data() []byte {
	return append([]byte(c.Header()), c.Content()...)
}

func (c *Commit) IsInitialCommit() bool {
	return c.firstParent == ""
}

func (c *Commit) IsMergeCommit() bool {
	return c.secondParent != ""
}

func (c *Commit) String() string {
	return fmt.Sprintf("Commit{hash: %s, parents: %v, files: %d, message: %q}",
		c.hash, c.Parents(), c.files.Len(), c.message)
}
