package nodecache

import (
	"fmt"

	"github.com/benvalle33/blockmerkle/bloom"
	"github.com/benvalle33/blockmerkle/merkle"
)

// DefaultBitsPerElement is the bits-per-element sizing used by NewVerifiedSet
// unless a caller picks their own with NewVerifiedSetSized. 10 bits per
// element gives roughly a 1% false positive rate for the blocked filter
// bloom implements.
const DefaultBitsPerElement = 10

// VerifiedSet records which merkle node digests have already been verified
// against their expected value, using one region of the bloom package's
// blocked Bloom filter per VerifiedSet.
//
// A VerifiedSet is sized for an expected number of elements up front, the
// same way bloom.InitV1 requires; inserting substantially more elements than
// it was sized for degrades the false positive rate but never causes
// incorrect Seen==false verdicts.
type VerifiedSet struct {
	region []byte
}

// NewVerifiedSet returns a VerifiedSet sized for expectedNodes digests at
// DefaultBitsPerElement bits per element, with k=4 hash functions per
// filter.
func NewVerifiedSet(expectedNodes uint64) (*VerifiedSet, error) {
	return NewVerifiedSetSized(expectedNodes, DefaultBitsPerElement, 4)
}

// NewVerifiedSetSized returns a VerifiedSet with an explicit sizing; see
// bloom.InitV1 for the meaning of bitsPerElement and k.
func NewVerifiedSetSized(expectedNodes, bitsPerElement uint64, k uint8) (*VerifiedSet, error) {
	if expectedNodes == 0 {
		expectedNodes = 1
	}
	mBits := bloom.MBitsSafeCast(bloom.MBitsV1(expectedNodes, bitsPerElement))
	region := make([]byte, bloom.RegionBytesV1(mBits))
	if err := bloom.InitV1(region, expectedNodes, bitsPerElement, k); err != nil {
		return nil, fmt.Errorf("nodecache: %w", err)
	}
	return &VerifiedSet{region: region}, nil
}

// MarkSeen records that digest has been verified. filterIdx selects one of
// the four independent parallel filters bloom packs into the same region,
// letting a caller keep, for example, per-tree-level memoization without
// allocating a separate VerifiedSet per level.
func (v *VerifiedSet) MarkSeen(filterIdx uint8, digest merkle.Digest) error {
	if err := bloom.InsertV1(v.region, filterIdx, digest[:]); err != nil {
		return fmt.Errorf("nodecache: mark seen: %w", err)
	}
	return nil
}

// Seen reports whether digest may have already been verified. false is a
// definite answer: digest has never been passed to MarkSeen. true only
// means "maybe" and must not be treated as a substitute for verification.
func (v *VerifiedSet) Seen(filterIdx uint8, digest merkle.Digest) (bool, error) {
	ok, err := bloom.MaybeContainsV1(v.region, filterIdx, digest[:])
	if err != nil {
		return false, fmt.Errorf("nodecache: seen: %w", err)
	}
	return ok, nil
}

// Bytes returns the VerifiedSet's underlying region, in the exact wire
// format bloom.InitV1 lays out (header plus four filter bitsets), so a
// caller can persist it across process invocations with LoadVerifiedSet.
func (v *VerifiedSet) Bytes() []byte {
	return v.region
}

// LoadVerifiedSet wraps a region previously returned by Bytes, without
// re-parsing or re-validating its header beyond what bloom.MaybeContainsV1
// and bloom.InsertV1 already do on every call.
func LoadVerifiedSet(region []byte) *VerifiedSet {
	return &VerifiedSet{region: region}
}
