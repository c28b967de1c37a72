package objects

import "github.com/KostasZigo/gitlet/utils"

// Object represents any Gitlet object that can be stored
// Blobs and commits both implement this interface
type Object interface {
	// Hash returns the digest of the object's framed data
	Hash() string

	// Type selects the object store namespace
	Type() utils.ObjectType

	// Data returns the complete object data including header
	// Format: "<type> <size>\0<content>"
	Data() []byte
}
