package merkle

import (
	"fmt"
	"hash"

	"golang.org/x/crypto/blake2b"
)

// LeafPrefix and NodePrefix domain-separate leaf hashes from inner-node
// hashes, so an inner-node digest can never be substituted for a leaf.
const (
	LeafPrefix = 0
	NodePrefix = 1
)

// Hasher computes leaf and inner-node digests on top of a caller-supplied
// hash.Hash. It reuses the underlying hash state between calls, so a single
// Hasher must not be shared across goroutines; independent Hashers need no
// coordination.
type Hasher struct {
	baseHasher hash.Hash
}

// NewHasher wraps baseHasher into a domain-separated tree hasher.
func NewHasher(baseHasher hash.Hash) *Hasher {
	return &Hasher{baseHasher: baseHasher}
}

// NewDefaultHasher returns a Hasher over BLAKE2b-512.
func NewDefaultHasher() *Hasher {
	h, err := blake2b.New512(nil)
	if err != nil {
		panic(fmt.Sprintf("merkle: creating BLAKE2b hasher: %v", err))
	}
	return NewHasher(h)
}

// Size returns the number of bytes in a digest produced by this Hasher.
func (h *Hasher) Size() int {
	return h.baseHasher.Size()
}

// HashLeaf computes H(LeafPrefix || content).
func (h *Hasher) HashLeaf(content []byte) Digest {
	b := h.baseHasher
	b.Reset()

	data := make([]byte, 0, 1+len(content))
	data = append(data, LeafPrefix)
	data = append(data, content...)
	//nolint:errcheck
	b.Write(data)
	return b.Sum(nil)
}

// HashNode computes H(NodePrefix || left || right). Order is preserved:
// HashNode(a, b) and HashNode(b, a) differ in general.
//
// Note this single Write seems a little faster than calling several Write()s
// on the underlying Hash function (see:
// https://github.com/google/trillian/pull/1503).
func (h *Hasher) HashNode(left, right Digest) Digest {
	b := h.baseHasher
	b.Reset()

	data := make([]byte, 0, 1+len(left)+len(right))
	data = append(data, NodePrefix)
	data = append(data, left...)
	data = append(data, right...)
	//nolint:errcheck
	b.Write(data)
	return b.Sum(nil)
}
