package merkle

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
)

// Digest is the output of the tree's hash function. Digests are compared by
// byte equality; the canonical display encoding is lowercase hex.
type Digest []byte

// Equal reports whether d and other are byte-wise equal.
func (d Digest) Equal(other Digest) bool {
	return bytes.Equal(d, other)
}

func (d Digest) String() string {
	return hex.EncodeToString(d)
}

// MarshalJSON encodes the digest as its hex string.
func (d Digest) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes the hex string produced by MarshalJSON.
func (d *Digest) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return err
	}
	*d = raw
	return nil
}
