package rootlog

import (
	"errors"
	"fmt"
	"hash"

	"github.com/benvalle33/blockmerkle/merkle"
	"github.com/benvalle33/blockmerkle/mmr"
)

// ErrIndexOutOfRange is returned when an operation names a leaf index that
// has not (yet) been appended to the log.
var ErrIndexOutOfRange = errors.New("rootlog: leaf index out of range")

// ErrVerificationFailed is returned when a caller supplied inclusion proof
// does not reproduce the expected log root.
var ErrVerificationFailed = errors.New("rootlog: inclusion proof does not verify")

// Log is an append-only history of sealed block roots, backed by a Merkle
// Mountain Range. Each Append adds exactly one leaf; the log never shrinks
// or rewrites existing leaves.
//
// Log is not safe for concurrent use; callers that append and read
// concurrently must serialize their own access.
type Log struct {
	newHash func() hash.Hash
	store   memoryStore
	mmrSize uint64
}

// New returns an empty Log that hashes MMR nodes with newHash().
func New(newHash func() hash.Hash) *Log {
	return &Log{newHash: newHash}
}

// Len returns the number of leaves (sealed block roots) appended so far.
func (l *Log) Len() uint64 {
	return mmr.LeafCount(l.mmrSize)
}

// Size returns the current MMR size (the position after the last appended
// node, leaf or interior). InclusionProof results and Root are only
// meaningful together when compared at the same Size.
func (l *Log) Size() uint64 {
	return l.mmrSize
}

// Append records root as the next leaf in the log and returns its leaf
// index (0 based, in append order).
func (l *Log) Append(root merkle.Digest) (uint64, error) {
	leafIndex := mmr.LeafCount(l.mmrSize)
	newSize, err := mmr.AddHashedLeaf(&l.store, l.newHash(), root.Bytes())
	if err != nil {
		return 0, fmt.Errorf("rootlog: append: %w", err)
	}
	l.mmrSize = newSize
	return leafIndex, nil
}

// Root returns the current accumulator root: the bagging of every mountain
// peak in the log's MMR into a single digest. It changes on every Append.
func (l *Log) Root() (merkle.Digest, error) {
	var d merkle.Digest
	if l.mmrSize == 0 {
		return d, nil
	}
	root, err := mmr.GetRoot(l.mmrSize, &l.store, l.newHash())
	if err != nil {
		return d, fmt.Errorf("rootlog: root: %w", err)
	}
	copy(d[:], root)
	return d, nil
}

// InclusionProof returns the path of sibling digests needed to reproduce
// Log.Root() from the leaf at leafIndex, at the log's current Size.
func (l *Log) InclusionProof(leafIndex uint64) ([][]byte, error) {
	if leafIndex >= mmr.LeafCount(l.mmrSize) {
		return nil, ErrIndexOutOfRange
	}
	nodeIndex := mmr.MMRIndex(leafIndex)
	proof, err := mmr.InclusionProofBagged(l.mmrSize, &l.store, l.newHash(), nodeIndex)
	if err != nil {
		return nil, fmt.Errorf("rootlog: inclusion proof: %w", err)
	}
	return proof, nil
}

// VerifyInclusion checks that leafRoot, at leafIndex, is included under
// root via proof (as returned by InclusionProof at the mmr size the proof
// and root were produced from).
func VerifyInclusion(newHash func() hash.Hash, mmrSize uint64, leafRoot merkle.Digest, leafIndex uint64, proof [][]byte, root merkle.Digest) error {
	nodeIndex := mmr.MMRIndex(leafIndex)
	if !mmr.VerifyInclusionBagged(mmrSize, newHash(), leafRoot.Bytes(), nodeIndex, proof, root.Bytes()) {
		return ErrVerificationFailed
	}
	return nil
}
