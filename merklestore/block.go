package merklestore

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"hash"

	"github.com/google/uuid"
	"github.com/veraison/go-cose"

	"github.com/benvalle33/blockmerkle/merkle"
	"github.com/benvalle33/blockmerkle/nodecache"
)

// FullRange, passed as length to OpenAndVerify, means "verify from offset
// through the end of the manifest's data" rather than a literal zero-length
// range. A caller that genuinely wants the (always-trivially-true)
// zero-length check should pass a non-sentinel 0 by way of offset==dataLen.
const FullRange = ^uint64(0)

// cacheFilterIdx is the nodecache.VerifiedSet filter selector OpenAndVerify
// uses for its whole-manifest-range memoization. It has no relationship to
// merkle tree levels; OpenAndVerify only ever memoizes at this one
// granularity.
const cacheFilterIdx = 0

// SealBlock builds the merkle tree for data, stores the data and its tree
// buffer, seals a Manifest describing them, stores the sealed manifest under
// manifestKey, and returns the Manifest it sealed.
//
// nowUnixMilli is passed in rather than read from the clock so callers (and
// tests) control exactly what SealedAtUnixMilli records.
func SealBlock(
	ctx context.Context,
	store ObjectReaderWriter,
	signer cose.Signer,
	keyID string,
	newHash func() hash.Hash,
	manifestKey, dataKey, treeKey string,
	data []byte,
	nowUnixMilli int64,
) (Manifest, error) {
	dataLen := uint64(len(data))
	tree := make([]byte, merkle.TreeLength(dataLen))
	root, err := merkle.Create(newHash, data, tree)
	if err != nil {
		return Manifest{}, fmt.Errorf("merklestore: create tree: %w", err)
	}

	if err := store.Put(ctx, dataKey, data); err != nil {
		return Manifest{}, fmt.Errorf("merklestore: store data: %w", err)
	}
	if len(tree) > 0 {
		if err := store.Put(ctx, treeKey, tree); err != nil {
			return Manifest{}, fmt.Errorf("merklestore: store tree: %w", err)
		}
	} else {
		treeKey = ""
	}

	m := Manifest{
		ID:                uuid.New(),
		DataLen:           dataLen,
		Root:              root,
		TreeKey:           treeKey,
		DataKey:           dataKey,
		SealedAtUnixMilli: nowUnixMilli,
	}

	sealed, err := Seal(signer, keyID, m)
	if err != nil {
		return Manifest{}, err
	}
	if err := store.Put(ctx, manifestKey, sealed); err != nil {
		return Manifest{}, fmt.Errorf("merklestore: store sealed manifest: %w", err)
	}
	return m, nil
}

// OpenAndVerify fetches the sealed manifest at manifestKey, checks its
// signature with verifier, fetches its data and tree objects, and calls
// merkle.Verify for the requested [offset, offset+length) range against the
// manifest's root. Pass FullRange as length to verify from offset through
// the end of the manifest's data.
//
// cache, if non-nil, is consulted before re-hashing and updated after a
// successful verify, so that a repeated OpenAndVerify call for the exact
// same manifest root and range skips both the object fetches and the
// hashing pass entirely. Because a nodecache.VerifiedSet only records
// digests, not (digest, range) pairs, the memoized key folds the root and
// the requested range together; see verifiedRangeKey. A Seen hit is taken
// as already verified, so a Bloom filter false positive returns the
// manifest without any verification of the requested range.
func OpenAndVerify(
	ctx context.Context,
	store ObjectReaderWriter,
	verifier cose.Verifier,
	newHash func() hash.Hash,
	manifestKey string,
	offset, length uint64,
	cache *nodecache.VerifiedSet,
) (Manifest, error) {
	sealed, err := store.Get(ctx, manifestKey)
	if err != nil {
		return Manifest{}, err
	}
	m, err := VerifySeal(verifier, sealed)
	if err != nil {
		return Manifest{}, err
	}

	if length == FullRange {
		if offset > m.DataLen {
			return Manifest{}, fmt.Errorf("merklestore: verify: offset %d exceeds data length %d", offset, m.DataLen)
		}
		length = m.DataLen - offset
	}

	key := verifiedRangeKey(m.Root, offset, length)
	if cache != nil {
		if seen, err := cache.Seen(cacheFilterIdx, key); err == nil && seen {
			return m, nil
		}
	}

	data, err := store.Get(ctx, m.DataKey)
	if err != nil {
		return Manifest{}, fmt.Errorf("merklestore: fetch data: %w", err)
	}

	var tree []byte
	treeCap := merkle.TreeLength(m.DataLen)
	if treeCap > 0 {
		tree, err = store.Get(ctx, m.TreeKey)
		if err != nil {
			return Manifest{}, fmt.Errorf("merklestore: fetch tree: %w", err)
		}
	}

	if err := merkle.Verify(newHash, data, m.DataLen, tree, uint64(len(tree)), offset, length, m.Root); err != nil {
		return Manifest{}, fmt.Errorf("merklestore: verify: %w", err)
	}

	if cache != nil {
		_ = cache.MarkSeen(cacheFilterIdx, key)
	}
	return m, nil
}

// verifiedRangeKey folds a manifest root and a verified [offset, offset+
// length) range into a single 32-byte value suitable as a
// nodecache.VerifiedSet element, since the set itself only stores plain
// digests.
func verifiedRangeKey(root merkle.Digest, offset, length uint64) merkle.Digest {
	var tag [16]byte
	binary.LittleEndian.PutUint64(tag[0:8], offset)
	binary.LittleEndian.PutUint64(tag[8:16], length)

	h := sha256.New()
	h.Write(root[:])
	h.Write(tag[:])

	var key merkle.Digest
	copy(key[:], h.Sum(nil))
	return key
}
