package objects

import (
	"fmt"
	"os"

	"github.com/KostasZigo/gitlet/utils"
)

type Blob struct {
	content []byte
	hash    string
}

// NewBlob creates a blob hashed with the default SHA-1 function.
func NewBlob(content []byte) *Blob {
	return NewBlobWithHasher(content, utils.DefaultHasher)
}

// NewBlobWithHasher creates a blob whose id is computed by hasher.
func NewBlobWithHasher(content []byte, hasher utils.Hasher) *Blob {
	hash, _ := hasher.Sum(content, utils.BlobObjectType)
	return &Blob{
		content: content,
		hash:    hash,
	}
}

func NewBlobFromFile(filepath string, hasher utils.Hasher) (*Blob, error) {
	content, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filepath, err)
	}
	return NewBlobWithHasher(content, hasher), nil
}

func (b *Blob) Hash() string {
	return b.hash
}

func (b *Blob) Type() utils.ObjectType {
	return utils.BlobObjectType
}

func (b *Blob) Content() []byte {
	return b.content
}

func (b *Blob) Size() int {
	return len(b.content)
}

func (b *Blob) Header() string {
	return fmt.Sprintf("blob %d\x00", b.Size())
}

func (b *Blob) Data() []byte {
	header := b.Header()
	data := append([]byte(header), b.Content()...)
	return data
}

func (b *Blob) String() string {
	return fmt.Sprintf("Blob{hash: %s, size: %d bytes}", b.hash, b.Size())
}
