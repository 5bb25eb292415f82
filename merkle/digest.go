package merkle

import (
	"encoding/hex"
	"fmt"
)

// DigestLen is the width, in bytes, of every digest produced by this
// package regardless of which hash.Hash implementation is injected. The
// hash output's width is not checked: a longer output is truncated to
// DigestLen bytes, and a shorter one leaves the remaining bytes zero.
const DigestLen = 32

// Digest is a fixed-width node or root digest. The zero Digest is the
// all-zero value; it is not itself the output of any hash and only ever
// appears as a caller-supplied placeholder.
type Digest [DigestLen]byte

// String renders the digest as 64 lowercase hex characters, no prefix and
// no separators.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// ParseDigest parses the hex form produced by String. It rejects any input
// that does not decode to exactly DigestLen bytes.
func ParseDigest(s string) (Digest, error) {
	var d Digest
	b, err := hex.DecodeString(s)
	if err != nil {
		return d, fmt.Errorf("merkle: parse digest: %w", err)
	}
	if len(b) != DigestLen {
		return d, fmt.Errorf("%w: digest must be %d bytes, got %d", ErrInvalidArgs, DigestLen, len(b))
	}
	copy(d[:], b)
	return d, nil
}

// Bytes returns a copy of the digest's raw bytes.
func (d Digest) Bytes() []byte {
	out := make([]byte, DigestLen)
	copy(out, d[:])
	return out
}

// MarshalBinary implements encoding.BinaryMarshaler, which fxamacker/cbor
// uses in preference to the array-of-bytes default encoding for a fixed
// size byte array, giving a compact CBOR byte string instead.
func (d Digest) MarshalBinary() ([]byte, error) {
	return d.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (d *Digest) UnmarshalBinary(b []byte) error {
	if len(b) != DigestLen {
		return fmt.Errorf("%w: digest must be %d bytes, got %d", ErrInvalidArgs, DigestLen, len(b))
	}
	copy(d[:], b)
	return nil
}
