package staging

import (
	"bytes"
	"crypto/sha1"
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/KostasZigo/gitlet/internal/constants"
	"github.com/KostasZigo/gitlet/utils"
)

// Index file layout:
//
//	"GLIX" | version u32 | entry count u32 | entries | sha1 of everything before
//
// Each entry is a kind byte, a u16-length-prefixed blob id (empty for
// removals) and a NUL-terminated path. Entries are written sorted by kind,
// then path, so equal staging areas encode to equal bytes.
const (
	indexSignature = "GLIX"
	indexVersion   = 1
	headerLength   = 12
	checksumLength = sha1.Size

	entryAddition byte = 'A'
	entryRemoval  byte = 'R'
)

// ErrCorruptIndex marks an index file that fails validation.
var ErrCorruptIndex = errors.New("corrupt staging index")

// MarshalBinary encodes the staging area in index format.
func (s *StagingArea) MarshalBinary() ([]byte, error) {
	var buffer []byte

	buffer = append(buffer, indexSignature...)
	buffer = binary.BigEndian.AppendUint32(buffer, indexVersion)
	buffer = binary.BigEndian.AppendUint32(buffer, uint32(len(s.addition)+len(s.removal)))

	appendEntry := func(kind byte, path, blobID string) error {
		if strings.IndexByte(path, 0) >= 0 {
			return fmt.Errorf("path %q contains a NUL byte", path)
		}
		buffer = append(buffer, kind)
		buffer = binary.BigEndian.AppendUint16(buffer, uint16(len(blobID)))
		buffer = append(buffer, blobID...)
		buffer = append(buffer, path...)
		buffer = append(buffer, 0x00)
		return nil
	}

	for _, path := range s.AddedPaths() {
		if err := appendEntry(entryAddition, path, s.addition[path]); err != nil {
			return nil, err
		}
	}
	for _, path := range s.RemovedPaths() {
		if err := appendEntry(entryRemoval, path, ""); err != nil {
			return nil, err
		}
	}

	checksum := sha1.Sum(buffer)
	return append(buffer, checksum[:]...), nil
}

// UnmarshalBinary replaces the staging area with decoded index data.
func (s *StagingArea) UnmarshalBinary(data []byte) error {
	if len(data) < headerLength+checksumLength {
		return fmt.Errorf("%w: file is too short", ErrCorruptIndex)
	}

	content := data[:len(data)-checksumLength]
	checksum := sha1.Sum(content)
	if !bytes.Equal(checksum[:], data[len(data)-checksumLength:]) {
		return fmt.Errorf("%w: checksum mismatch", ErrCorruptIndex)
	}

	if string(content[:4]) != indexSignature {
		return fmt.Errorf("%w: invalid header", ErrCorruptIndex)
	}
	if version := binary.BigEndian.Uint32(content[4:8]); version != indexVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrCorruptIndex, version)
	}
	entryCount := binary.BigEndian.Uint32(content[8:12])

	addition := make(map[string]string)
	removal := make(map[string]struct{})
	offset := headerLength

	for i := uint32(0); i < entryCount; i++ {
		if offset+3 > len(content) {
			return fmt.Errorf("%w: truncated entry %d", ErrCorruptIndex, i)
		}
		kind := content[offset]
		idLength := int(binary.BigEndian.Uint16(content[offset+1:]))
		offset += 3

		if offset+idLength > len(content) {
			return fmt.Errorf("%w: truncated id in entry %d", ErrCorruptIndex, i)
		}
		blobID := string(content[offset : offset+idLength])
		offset += idLength

		end := bytes.IndexByte(content[offset:], 0)
		if end == -1 {
			return fmt.Errorf("%w: unterminated path in entry %d", ErrCorruptIndex, i)
		}
		path := string(content[offset : offset+end])
		offset += end + 1

		switch kind {
		case entryAddition:
			addition[path] = blobID
		case entryRemoval:
			removal[path] = struct{}{}
		default:
			return fmt.Errorf("%w: unknown entry kind %q", ErrCorruptIndex, kind)
		}
	}

	if offset != len(content) {
		return fmt.Errorf("%w: %d trailing bytes", ErrCorruptIndex, len(content)-offset)
	}

	s.addition = addition
	s.removal = removal
	return nil
}

// Load reads the staging area from path. A missing file is an empty staging area.
func Load(path string) (*StagingArea, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read staging index: %w", err)
	}

	stagingArea := New()
	if err := stagingArea.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return stagingArea, nil
}

// Save atomically writes the staging area to path.
func (s *StagingArea) Save(path string) error {
	data, err := s.MarshalBinary()
	if err != nil {
		return fmt.Errorf("failed to encode staging index: %w", err)
	}
	if err := utils.SafeWrite(path, data, constants.FilePerms); err != nil {
		return fmt.Errorf("failed to write staging index: %w", err)
	}
	return nil
}
