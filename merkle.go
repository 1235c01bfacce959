// Package merkle computes Merkle roots over ordered leaf sequences and
// produces and verifies compact inclusion proofs for single leaves.
//
// Levels are built by hashing adjacent digests in pairs, left to right; when
// a level has an odd count, the trailing digest is carried up unchanged
// rather than paired with itself. Construction and verification apply the
// same rule, so a proof generated by Prove validates against the root
// computed by Root for the same leaf sequence.
package merkle

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyInput      = errors.New("merkle: no leaves given")
	ErrIndexOutOfRange = errors.New("merkle: leaf index out of range")
)

// Tree computes roots and inclusion proofs over leaves of type T. It carries
// only hashing configuration: no leaf state is retained between calls, and
// every call returns a fresh value.
type Tree[T Content] struct {
	hasher *Hasher
}

// Option configures a Tree created by New.
type Option func(*treeOpts)

type treeOpts struct {
	hasher *Hasher
}

// WithHasher overrides the default BLAKE2b-512 hasher.
func WithHasher(h *Hasher) Option {
	return func(o *treeOpts) {
		o.hasher = h
	}
}

// New returns a Tree for leaves of type T, hashing with BLAKE2b-512 unless
// overridden via setters.
func New[T Content](setters ...Option) *Tree[T] {
	var o treeOpts
	for _, setter := range setters {
		setter(&o)
	}
	if o.hasher == nil {
		o.hasher = NewDefaultHasher()
	}
	return &Tree[T]{hasher: o.hasher}
}

// Hasher returns the tree's hasher, e.g. for verifying proofs produced by
// this tree.
func (t *Tree[T]) Hasher() *Hasher {
	return t.hasher
}

// Root hashes every leaf to form the bottom level, then reduces the levels
// pairwise until a single digest remains. Identical leaf sequences always
// yield the identical root. The single-leaf root is that leaf's hash.
func (t *Tree[T]) Root(leaves []T) (Digest, error) {
	if len(leaves) == 0 {
		return nil, ErrEmptyInput
	}
	level := t.hashLeaves(leaves)
	for len(level) > 1 {
		level = t.nextLevel(level)
	}
	return level[0], nil
}

// Prove rebuilds the tree exactly as Root does and records, level by level,
// the sibling of the node on the path from leaves[leafIndex] up to the root:
// the next digest when the path node sits at an even position, the previous
// one when odd. At a level where the path node is the unpaired tail it has
// no sibling and nothing is recorded.
func (t *Tree[T]) Prove(leaves []T, leafIndex int) (Proof[T], error) {
	if len(leaves) == 0 {
		return Proof[T]{}, ErrEmptyInput
	}
	if leafIndex < 0 || leafIndex >= len(leaves) {
		return Proof[T]{}, fmt.Errorf("%w: index %d, %d leaves", ErrIndexOutOfRange, leafIndex, len(leaves))
	}

	var hashes []Digest
	idx := leafIndex
	for level := t.hashLeaves(leaves); len(level) > 1; level = t.nextLevel(level) {
		switch {
		case idx == len(level)-1 && len(level)%2 == 1:
			// the carried-up tail has no sibling at this level
		case idx%2 == 0:
			hashes = append(hashes, level[idx+1])
		default:
			hashes = append(hashes, level[idx-1])
		}
		idx /= 2
	}
	return NewProof(hashes, len(leaves), leafIndex, leaves[leafIndex]), nil
}

func (t *Tree[T]) hashLeaves(leaves []T) []Digest {
	level := make([]Digest, len(leaves))
	for i, leaf := range leaves {
		level[i] = t.hasher.HashLeaf(leaf.Bytes())
	}
	return level
}

func (t *Tree[T]) nextLevel(level []Digest) []Digest {
	next := make([]Digest, 0, (len(level)+1)/2)
	for i := 0; i+1 < len(level); i += 2 {
		next = append(next, t.hasher.HashNode(level[i], level[i+1]))
	}
	if len(level)%2 == 1 {
		next = append(next, level[len(level)-1])
	}
	return next
}
