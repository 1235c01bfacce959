package merkle

// Content is the capability a leaf type provides: expose the bytes the tree
// commits to. Any concrete type with a byte serialization can be a leaf; the
// tree never retains leaves past the call that received them.
type Content interface {
	Bytes() []byte
}

// Bytes adapts a raw byte slice to Content.
type Bytes []byte

func (b Bytes) Bytes() []byte { return b }

// String adapts a string to Content.
type String string

func (s String) Bytes() []byte { return []byte(s) }
