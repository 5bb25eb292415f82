package merkle

import (
	"bytes"
	"fmt"
	"hash"
)

// Verify checks that data[offset:offset+length] is consistent with root,
// given the auxiliary tree buffer Create/CreateFinal produced alongside it.
// It re-derives digests only for the nodes that cover the requested range
// at every level, rounding the range outward to node boundaries as it
// ascends, so it never touches nodes outside the requested window.
//
// data must hold the full dataLen bytes of the original blob (Verify never
// needs more than the range being checked plus, at worst, the rest of the
// last touched node, but callers are expected to pass the real content for
// any byte position it reads). tree must be at least TreeLength(dataLen)
// bytes, unless dataLen fits in a single node, in which case tree may be
// nil.
func Verify(newHash func() hash.Hash, data []byte, dataLen uint64, tree []byte, treeCap uint64, offset, length uint64, root Digest) error {
	if data == nil && dataLen > 0 {
		return ErrInvalidArgs
	}
	if tree == nil && dataLen > NodeSize {
		return ErrInvalidArgs
	}
	if offset > dataLen || length > dataLen-offset {
		return ErrOutOfRange
	}
	if treeCap < TreeLength(dataLen) {
		return ErrBufferTooSmall
	}

	h := newNodeHasher(newHash())

	level := uint64(0)
	curData, curDataLen, curTree := data, dataLen, tree
	curOffset, curLength := offset, length

	for curDataLen > NodeSize {
		// Widen the range to whole nodes, but not past the level's end, so
		// that the digest range carried up to the next level covers every
		// node checked here.
		if curLength > 0 {
			end := roundup(curOffset+curLength, NodeSize)
			if end > curDataLen {
				end = curDataLen
			}
			curOffset -= curOffset % NodeSize
			curLength = end - curOffset
		}
		if err := verifyLevel(h, curData, curDataLen, curTree, curOffset, curLength, level); err != nil {
			return fmt.Errorf("level %d: %w", level, err)
		}
		na := nextAligned(curDataLen)
		curData = curTree
		curTree = curTree[na:]
		curDataLen = na
		curOffset /= DigestsPerNode
		curLength /= DigestsPerNode
		level++
	}

	// curDataLen is now the top level's length exactly as CreateInit/
	// CreateFinal define it: the real dataLen when there was only ever one
	// level, or otherwise the aligned length nextAligned already rounded up
	// to a multiple of NodeSize (so exactly NodeSize, per CreateInit's loop
	// terminating as soon as a level's length drops to NodeSize or below).
	// This must be the same quantity Create used as the top level's length
	// tag and payload size, not the unaligned nextLen digest-byte count.
	return verifyRoot(h, curData, curDataLen, level, root)
}

// verifyLevel recomputes the digest of every node that overlaps
// [offset, offset+length) within a level of the given length, and compares
// each against the corresponding digest stored in tree.
func verifyLevel(h *nodeHasher, data []byte, dataLen uint64, tree []byte, offset, length, level uint64) error {
	if data == nil || dataLen <= NodeSize || tree == nil {
		return ErrInvalidArgs
	}
	if offset > dataLen || length > dataLen-offset {
		return ErrOutOfRange
	}

	alignedOffset := offset - offset%NodeSize
	alignedEnd := roundup(alignedOffset+length, NodeSize)
	expectedOff := alignedOffset / DigestsPerNode

	for pos := alignedOffset; pos < alignedEnd; pos += NodeSize {
		nodeLen := dataLen - pos
		if nodeLen > NodeSize {
			nodeLen = NodeSize
		}
		h.init(pos|level, nodeLen)
		h.absorb(data[pos : pos+nodeLen])
		actual := h.final(nodeLen)

		expected := tree[expectedOff : expectedOff+DigestLen]
		if !bytes.Equal(actual[:], expected) {
			return ErrIODataIntegrity
		}
		expectedOff += DigestLen
	}
	return nil
}

// verifyRoot compares the hash of the top level's remaining data (rootLen
// bytes, at most one node's worth) against the caller-supplied root.
func verifyRoot(h *nodeHasher, data []byte, rootLen uint64, level uint64, root Digest) error {
	if data == nil && rootLen != 0 {
		return ErrInvalidArgs
	}
	if rootLen > NodeSize {
		return ErrInvalidArgs
	}

	var actual Digest
	if rootLen == 0 {
		actual = h.finalEmpty()
	} else {
		h.init(level, rootLen)
		h.absorb(data[:rootLen])
		actual = h.final(rootLen)
	}

	if actual != root {
		return ErrIODataIntegrity
	}
	return nil
}
