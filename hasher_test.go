package merkle

import (
	"crypto/sha256"
	"hash"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/blake2b"
)

func sum(newHash func() hash.Hash, data ...[]byte) []byte {
	h := newHash()
	for _, d := range data {
		h.Write(d)
	}
	return h.Sum(nil)
}

func blake2b512New() hash.Hash {
	h, err := blake2b.New512(nil)
	if err != nil {
		panic(err)
	}
	return h
}

func TestHasher_HashLeaf(t *testing.T) {
	defaultContent := []byte("a blockchain is a chain of blocks")

	tests := []struct {
		name    string
		newHash func() hash.Hash
		content []byte
		want    []byte
	}{
		{"empty leaf, sha256", sha256.New, []byte{}, sum(sha256.New, []byte{LeafPrefix})},
		{"leaf with data, sha256", sha256.New, defaultContent, sum(sha256.New, []byte{LeafPrefix}, defaultContent)},
		{"leaf with data, blake2b", blake2b512New, defaultContent, sum(blake2b512New, []byte{LeafPrefix}, defaultContent)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHasher(tt.newHash())
			assert.Equal(t, Digest(tt.want), h.HashLeaf(tt.content))
		})
	}
}

func TestHasher_HashNode(t *testing.T) {
	h := NewHasher(sha256.New())
	left := h.HashLeaf([]byte("left"))
	right := h.HashLeaf([]byte("right"))

	want := sum(sha256.New, []byte{NodePrefix}, left, right)
	got := h.HashNode(left, right)
	require.Equal(t, Digest(want), got)

	// swapping the children must change the parent
	swapped := h.HashNode(right, left)
	assert.False(t, got.Equal(swapped))
}

func TestHasher_DomainSeparation(t *testing.T) {
	h := NewHasher(sha256.New())
	left := h.HashLeaf([]byte("left"))
	right := h.HashLeaf([]byte("right"))

	// hashing the concatenated children as a leaf must not collide with the
	// inner-node hash of the same children
	node := h.HashNode(left, right)
	leaf := h.HashLeaf(append(append(Digest{}, left...), right...))
	assert.False(t, node.Equal(leaf))
}

func TestHasher_Size(t *testing.T) {
	assert.Equal(t, sha256.Size, NewHasher(sha256.New()).Size())
	assert.Equal(t, blake2b.Size, NewDefaultHasher().Size())
}

func TestDefaultHasherIsBlake2b512(t *testing.T) {
	content := []byte("abc")
	want := sum(blake2b512New, []byte{LeafPrefix}, content)
	assert.Equal(t, Digest(want), NewDefaultHasher().HashLeaf(content))
}
