package merkle

import (
	"encoding/binary"
	"hash"
)

// nodeHasher sequences a hash.Hash through the node wire format: an 8-byte
// little-endian locality tag, a 4-byte little-endian length tag, the node's
// payload, and zero padding out to NodeSize. Little-endian is mandated
// (rather than the big-endian convention used elsewhere in this codebase's
// ancestry) because it matches the locality tag's original in-memory
// layout on the reference platform, and the compatibility anchors are
// fixed to it.
type nodeHasher struct {
	h hash.Hash
}

func newNodeHasher(h hash.Hash) *nodeHasher {
	return &nodeHasher{h: h}
}

// init begins a new node's hash: locality identifies the node (its aligned
// byte offset within the level OR'd with the level index), length is the
// number of real payload bytes the node will hold, capped internally at
// NodeSize.
func (n *nodeHasher) init(locality, length uint64) {
	n.h.Reset()

	var localityTag [8]byte
	binary.LittleEndian.PutUint64(localityTag[:], locality)
	n.h.Write(localityTag[:])

	l := length
	if l > NodeSize {
		l = NodeSize
	}
	var lengthTag [4]byte
	binary.LittleEndian.PutUint32(lengthTag[:], uint32(l))
	n.h.Write(lengthTag[:])
}

// update writes as much of data as fits before the node boundary implied by
// offset (the level-relative byte offset data begins at), returning the
// number of bytes consumed. Used by the streaming builder, which may see a
// node's payload split across many calls.
func (n *nodeHasher) update(data []byte, offset uint64) int {
	max := NodeSize - int(offset%NodeSize)
	chunk := len(data)
	if chunk > max {
		chunk = max
	}
	n.h.Write(data[:chunk])
	return chunk
}

// absorb writes all of data to the node's hash in one call. Used where the
// whole payload is already contiguous, such as range verification.
func (n *nodeHasher) absorb(data []byte) {
	n.h.Write(data)
}

// finalEmpty computes the distinguished digest for a level whose length is
// zero: locality 0 and length tag 0, with no payload and no zero padding
// after the tags. This is the one case where a node absorbs fewer than
// NodeSize bytes after its tags, per the wire format's empty-blob case.
func (n *nodeHasher) finalEmpty() Digest {
	n.init(0, 0)
	var d Digest
	copy(d[:], n.h.Sum(nil))
	return d
}

// final pads the node out to NodeSize bytes and returns its digest.
// consumed is the level-relative offset immediately after the payload
// written so far; consumed % NodeSize is how many payload bytes the node
// has actually absorbed.
func (n *nodeHasher) final(consumed uint64) Digest {
	if rem := consumed % NodeSize; rem != 0 {
		var pad [NodeSize]byte
		n.h.Write(pad[:NodeSize-rem])
	}
	var d Digest
	copy(d[:], n.h.Sum(nil))
	return d
}
