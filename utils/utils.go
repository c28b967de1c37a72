package utils

import (
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/multiformats/go-multihash"
)

type ObjectType string

const (
	BlobObjectType   ObjectType = "blob"
	CommitObjectType ObjectType = "commit"
)

func (ot ObjectType) IsValid() bool {
	switch ot {
	case BlobObjectType, CommitObjectType:
		return true
	default:
		return false
	}
}

// Hasher computes object ids with a multihash function.
// Ids are the lowercase hex digest, without the multihash prefix.
type Hasher struct {
	code uint64
	name string
}

// DefaultHasher hashes with SHA-1, giving 40-character ids.
var DefaultHasher = Hasher{code: multihash.SHA1, name: "sha1"}

// NewHasher resolves a multihash function name such as "sha1" or "sha2-256".
func NewHasher(name string) (Hasher, error) {
	code, ok := multihash.Names[name]
	if !ok || code == multihash.IDENTITY {
		return Hasher{}, fmt.Errorf("unknown hash algorithm: %s", name)
	}
	// Probe once so unregistered functions fail at configuration time
	if _, err := multihash.Sum(nil, code, -1); err != nil {
		return Hasher{}, fmt.Errorf("unsupported hash algorithm %s: %w", name, err)
	}
	return Hasher{code: code, name: name}, nil
}

// Name returns the multihash name of the hash function.
func (h Hasher) Name() string {
	return h.name
}

// Sum calculates the id for Object content
func (h Hasher) Sum(content []byte, objectType ObjectType) (string, error) {
	if !objectType.IsValid() {
		return "", fmt.Errorf("invalid object type: %s - hash not computed", objectType)
	}

	// format: "ObjectType <size>\0<content>"
	header := fmt.Sprintf("%v %d\x00", objectType, len(content))
	data := append([]byte(header), content...)

	mh, err := multihash.Sum(data, h.code, -1)
	if err != nil {
		return "", fmt.Errorf("failed to compute %s digest: %w", h.name, err)
	}
	decoded, err := multihash.Decode(mh)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s multihash: %w", h.name, err)
	}
	return hex.EncodeToString(decoded.Digest), nil
}

// ComputeHash calculates SHA-1 hash for Object content
func ComputeHash(content []byte, objectType ObjectType) (string, error) {
	return DefaultHasher.Sum(content, objectType)
}

// IsHexID reports whether s is a non-empty lowercase hex string.
func IsHexID(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f') {
			return false
		}
	}
	return true
}

// BuildDirPath constructs os-agnostic display direcotry path with trailing separator preserving all components.
// Unlike filepath.Join, does not normalize "." or remove redundant separators.
func BuildDirPath(dirs ...string) string {
	return strings.Join(dirs, string(filepath.Separator)) + string(filepath.Separator)
}
