package objects

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zlib"
	"go.uber.org/multierr"

	"github.com/KostasZigo/gitlet/internal/config"
	"github.com/KostasZigo/gitlet/internal/constants"
	"github.com/KostasZigo/gitlet/utils"
)

var (
	// ErrNotFound is returned when no object with the requested id is stored.
	ErrNotFound = errors.New("object not found")

	// ErrAmbiguousID is returned when an abbreviated id matches several objects.
	ErrAmbiguousID = errors.New("ambiguous object id")
)

// ObjectStore manages storage of Gitlet objects.
// Blobs and commits live in separate directories so each kind has its own namespace.
type ObjectStore struct {
	blobsDir    string
	commitsDir  string
	hasher      utils.Hasher
	compression int
}

func NewObjectStore(paths config.RepositoryPaths, hasher utils.Hasher, compression int) *ObjectStore {
	return &ObjectStore{
		blobsDir:    paths.Blobs,
		commitsDir:  paths.Commits,
		hasher:      hasher,
		compression: compression,
	}
}

// Hasher returns the id function objects in this store are addressed by.
func (store *ObjectStore) Hasher() utils.Hasher {
	return store.hasher
}

func (store *ObjectStore) kindDir(objectType utils.ObjectType) (string, error) {
	switch objectType {
	case utils.BlobObjectType:
		return store.blobsDir, nil
	case utils.CommitObjectType:
		return store.commitsDir, nil
	default:
		return "", fmt.Errorf("invalid object type: %s", objectType)
	}
}

// objectPath returns <kind dir>/<first 2 chars>/<rest>
func (store *ObjectStore) objectPath(objectType utils.ObjectType, hash string) (string, error) {
	dir, err := store.kindDir(objectType)
	if err != nil {
		return "", err
	}
	if len(hash) <= constants.HashDirPrefixLength || !utils.IsHexID(hash) {
		return "", fmt.Errorf("%w: invalid %s id %q", ErrNotFound, objectType, hash)
	}
	return filepath.Join(dir, hash[:constants.HashDirPrefixLength], hash[constants.HashDirPrefixLength:]), nil
}

// Store saves an object under its kind's directory.
// Returns nil if object already exists
func (store *ObjectStore) Store(object Object) error {
	hash := object.Hash()

	objectFile, err := store.objectPath(object.Type(), hash)
	if err != nil {
		return err
	}

	// Check if object already exists (content-addressable)
	_, err = os.Stat(objectFile)
	if err == nil {
		slog.Debug("Object with this hash already exists",
			"type", object.Type(),
			"hash", hash)
		return nil
	}
	if !(errors.Is(err, fs.ErrNotExist)) {
		return err
	}

	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(objectFile), constants.DirPerms); err != nil {
		return fmt.Errorf("failed to create object directory: %w", err)
	}

	// Compress object content
	compressedData, err := store.compressObject(object)
	if err != nil {
		return fmt.Errorf("failed to compress object: %w", err)
	}

	if err := utils.SafeWrite(objectFile, compressedData, constants.FilePerms); err != nil {
		return fmt.Errorf("failed to write object file: %w", err)
	}

	slog.Debug("Stored object", "type", object.Type(), "hash", hash)
	return nil
}

func (store *ObjectStore) compressObject(object Object) ([]byte, error) {
	data := object.Data()

	var buffer bytes.Buffer
	// Create a new writer that compresses and writes data to the buffer
	writer, err := zlib.NewWriterLevel(&buffer, store.compression)
	if err != nil {
		return nil, err
	}

	if _, err := writer.Write(data); err != nil {
		return nil, multierr.Append(err, writer.Close())
	}

	// Call Close in order to flush any buffered data
	if err := writer.Close(); err != nil {
		return nil, err
	}

	return buffer.Bytes(), nil
}

// readObject returns the content of an object after checking its header.
func (store *ObjectStore) readObject(objectType utils.ObjectType, hash string) (_ []byte, retErr error) {
	objectFile, err := store.objectPath(objectType, hash)
	if err != nil {
		return nil, err
	}

	// Read compressed file
	compressedData, err := os.ReadFile(objectFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s %s: %w", ErrNotFound, objectType, hash, err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read object file %s: %w", hash, err)
	}

	// Decompress
	reader, err := zlib.NewReader(bytes.NewReader(compressedData))
	if err != nil {
		return nil, fmt.Errorf("failed to create new reader for decompressed data: %w", err)
	}
	defer func() {
		retErr = multierr.Append(retErr, reader.Close())
	}()

	var buffer bytes.Buffer
	if _, err := buffer.ReadFrom(reader); err != nil {
		return nil, fmt.Errorf("failed to read decompressed data: %w", err)
	}

	data := buffer.Bytes()

	// Find null byte separator
	nullByteIndex := bytes.IndexByte(data, constants.NullByte)
	if nullByteIndex == -1 {
		return nil, fmt.Errorf("invalid object format: no null byte found")
	}

	header := string(data[:nullByteIndex])
	prefix := string(objectType) + " "
	if !strings.HasPrefix(header, prefix) {
		return nil, fmt.Errorf("invalid object header %q: expected %s object", header, objectType)
	}
	size, err := strconv.Atoi(strings.TrimPrefix(header, prefix))
	if err != nil {
		return nil, fmt.Errorf("invalid object header %q: %w", header, err)
	}

	// Extract content (after null byte)
	content := data[nullByteIndex+1:]
	if len(content) != size {
		return nil, fmt.Errorf("object %s size mismatch: header says %d, content has %d", hash, size, len(content))
	}

	return content, nil
}

// ReadBlob reads a blob from storage by hash
func (store *ObjectStore) ReadBlob(hash string) (*Blob, error) {
	content, err := store.readObject(utils.BlobObjectType, hash)
	if err != nil {
		return nil, err
	}

	blob := NewBlobWithHasher(content, store.hasher)
	if blob.Hash() != hash {
		return nil, fmt.Errorf("hash mismatch: expected %s, got %s", hash, blob.Hash())
	}

	return blob, nil
}

// ReadCommit reads a commit from storage by hash
func (store *ObjectStore) ReadCommit(hash string) (*Commit, error) {
	content, err := store.readObject(utils.CommitObjectType, hash)
	if err != nil {
		return nil, err
	}

	commit, err := ParseCommit(content, store.hasher)
	if err != nil {
		return nil, fmt.Errorf("failed to parse commit %s: %w", hash, err)
	}
	if commit.Hash() != hash {
		return nil, fmt.Errorf("hash mismatch: expected %s, got %s", hash, commit.Hash())
	}

	return commit, nil
}

// Exists checks if an object exists in storage
func (store *ObjectStore) Exists(objectType utils.ObjectType, hash string) bool {
	objectFile, err := store.objectPath(objectType, hash)
	if err != nil {
		return false
	}
	_, err = os.Stat(objectFile)
	return err == nil
}

// List returns the ids of every stored object of a kind, sorted.
func (store *ObjectStore) List(objectType utils.ObjectType) ([]string, error) {
	dir, err := store.kindDir(objectType)
	if err != nil {
		return nil, err
	}

	fanout, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s objects: %w", objectType, err)
	}

	var hashes []string
	for _, prefixDir := range fanout {
		if !prefixDir.IsDir() || len(prefixDir.Name()) != constants.HashDirPrefixLength {
			continue
		}
		entries, err := os.ReadDir(filepath.Join(dir, prefixDir.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to list %s objects: %w", objectType, err)
		}
		for _, entry := range entries {
			// Skips leftovers of interrupted atomic writes
			if !entry.Type().IsRegular() || strings.HasPrefix(entry.Name(), ".") {
				continue
			}
			hashes = append(hashes, prefixDir.Name()+entry.Name())
		}
	}

	slices.Sort(hashes)
	return hashes, nil
}

// ResolvePrefix expands an abbreviated id to the single stored id it prefixes.
func (store *ObjectStore) ResolvePrefix(objectType utils.ObjectType, prefix string) (string, error) {
	prefix = strings.ToLower(prefix)
	if !utils.IsHexID(prefix) {
		return "", fmt.Errorf("%w: invalid %s id %q", ErrNotFound, objectType, prefix)
	}

	if store.Exists(objectType, prefix) {
		return prefix, nil
	}

	hashes, err := store.List(objectType)
	if err != nil {
		return "", err
	}

	var match string
	for _, hash := range hashes {
		if !strings.HasPrefix(hash, prefix) {
			continue
		}
		if match != "" {
			return "", fmt.Errorf("%w: %s", ErrAmbiguousID, prefix)
		}
		match = hash
	}

	if match == "" {
		return "", fmt.Errorf("%w: %s %s", ErrNotFound, objectType, prefix)
	}
	return match, nil
}
