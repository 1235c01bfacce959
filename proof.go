package merkle

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformedProof reports a proof whose shape contradicts its own declared
// leaf count or index. It is distinct from a well-formed proof that simply
// does not match the root, which Verify reports as a plain false.
var ErrMalformedProof = errors.New("merkle: malformed proof")

// Proof is a self-contained inclusion proof for a single leaf: the sibling
// digests from the leaf's level up to (but not including) the root, the leaf
// count of the tree, the leaf's position, and the leaf content itself so a
// verifier can hash it independently. A Proof carries no reference back to
// the tree it came from and is immutable after construction.
type Proof[T Content] struct {
	// sibling digests in bottom-up order; levels where the path node was
	// the carried-up tail contribute no entry.
	hashes      []Digest
	numOfLeaves int
	leafIndex   int
	leafContent T
}

// NewProof constructs an inclusion proof from its parts. Prove is the usual
// source; NewProof exists for rebuilding transported proofs.
func NewProof[T Content](hashes []Digest, numOfLeaves, leafIndex int, leafContent T) Proof[T] {
	return Proof[T]{
		hashes:      hashes,
		numOfLeaves: numOfLeaves,
		leafIndex:   leafIndex,
		leafContent: leafContent,
	}
}

// Hashes returns the sibling digests in bottom-up order.
func (p Proof[T]) Hashes() []Digest {
	return p.hashes
}

// NumOfLeaves returns the leaf count of the tree the proof was built from.
func (p Proof[T]) NumOfLeaves() int {
	return p.numOfLeaves
}

// LeafIndex returns the zero-based position of the proven leaf.
func (p Proof[T]) LeafIndex() int {
	return p.leafIndex
}

// LeafContent returns the proven leaf value.
func (p Proof[T]) LeafContent() T {
	return p.leafContent
}

// Verify recomputes the root implied by the proof and compares it to root by
// byte equality. A well-formed proof that does not match yields (false, nil).
// ErrMalformedProof is returned when the proof's shape is inconsistent with
// its own leaf count, before any hashing happens.
//
// The ascent replays the level widths of a tree with NumOfLeaves leaves,
// which tells the verifier at which levels the path node was the carried-up
// tail and therefore consumed no sibling.
func (p Proof[T]) Verify(h *Hasher, root Digest) (bool, error) {
	if p.numOfLeaves < 1 {
		return false, fmt.Errorf("%w: num of leaves %d", ErrMalformedProof, p.numOfLeaves)
	}
	if p.leafIndex < 0 || p.leafIndex >= p.numOfLeaves {
		return false, fmt.Errorf("%w: leaf index %d, %d leaves", ErrMalformedProof, p.leafIndex, p.numOfLeaves)
	}
	if want := siblingCount(p.numOfLeaves, p.leafIndex); len(p.hashes) != want {
		return false, fmt.Errorf("%w: %d sibling hashes, want %d", ErrMalformedProof, len(p.hashes), want)
	}

	current := h.HashLeaf(p.leafContent.Bytes())
	hashes := p.hashes
	idx, width := p.leafIndex, p.numOfLeaves
	for width > 1 {
		if !(idx == width-1 && width%2 == 1) {
			sibling := hashes[0]
			hashes = hashes[1:]
			if idx%2 == 0 {
				current = h.HashNode(current, sibling)
			} else {
				current = h.HashNode(sibling, current)
			}
		}
		idx /= 2
		width = (width + 1) / 2
	}
	return current.Equal(root), nil
}

// siblingCount walks the level widths of a tree with numOfLeaves leaves and
// counts the levels at which the node tracked from leafIndex has a sibling.
// The carried-up tail sits at position width-1 of an odd-width level and has
// none; everywhere else the node is half of a pair.
func siblingCount(numOfLeaves, leafIndex int) int {
	count := 0
	idx, width := leafIndex, numOfLeaves
	for width > 1 {
		if !(idx == width-1 && width%2 == 1) {
			count++
		}
		idx /= 2
		width = (width + 1) / 2
	}
	return count
}

type proofJSON struct {
	Hashes      []Digest `json:"hashes"`
	NumOfLeaves int      `json:"num_of_leaves"`
	LeafIndex   int      `json:"leaf_index"`
	LeafContent []byte   `json:"leaf_content"`
}

// MarshalJSON encodes the proof with hex sibling digests and the leaf
// content bytes in base64.
func (p Proof[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(proofJSON{
		Hashes:      p.hashes,
		NumOfLeaves: p.numOfLeaves,
		LeafIndex:   p.leafIndex,
		LeafContent: p.leafContent.Bytes(),
	})
}

// ProofFromJSON rebuilds a typed proof from the encoding produced by
// MarshalJSON. The decode hook restores the caller's leaf type from the
// serialized content bytes.
func ProofFromJSON[T Content](data []byte, decode func([]byte) (T, error)) (Proof[T], error) {
	var raw proofJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return Proof[T]{}, err
	}
	content, err := decode(raw.LeafContent)
	if err != nil {
		return Proof[T]{}, err
	}
	return NewProof(raw.Hashes, raw.NumOfLeaves, raw.LeafIndex, content), nil
}
