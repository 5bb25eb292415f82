package merklestore

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"

	"github.com/benvalle33/blockmerkle/merkle"
)

// Manifest describes one sealed block: enough for a caller to fetch its
// tree buffer and call merkle.Verify against Root without recomputing the
// whole tree.
//
// Field tags use CBOR's keyasint encoding, matched to small integer keys the
// way rootsigner.go's MMRState does, so the encoded form stays compact and
// stable across additions of new optional fields.
type Manifest struct {
	// ID identifies this sealed block independent of where its bytes live.
	ID uuid.UUID `cbor:"1,keyasint"`

	// DataLen is the length in bytes of the original data blob.
	DataLen uint64 `cbor:"2,keyasint"`

	// Root is the merkle.Digest Create/CreateFinal produced over the whole
	// blob.
	Root merkle.Digest `cbor:"3,keyasint"`

	// TreeKey names the object holding the auxiliary tree buffer under the
	// same ObjectReaderWriter this manifest itself is stored under. Empty
	// when DataLen fits in a single node, since Verify needs no tree buffer
	// in that case.
	TreeKey string `cbor:"4,keyasint"`

	// DataKey names the object holding the original data blob.
	DataKey string `cbor:"5,keyasint"`

	// SealedAtUnixMilli is the wall clock time the manifest was sealed, in
	// unix milliseconds.
	SealedAtUnixMilli int64 `cbor:"6,keyasint"`
}

var cborEncMode = func() cbor.EncMode {
	opts := cbor.CanonicalEncOptions()
	mode, err := opts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("merklestore: invalid cbor encoding options: %v", err))
	}
	return mode
}()

// MarshalManifest encodes m using a canonical (deterministic) CBOR encoding,
// so that two calls encoding an identical Manifest always produce identical
// bytes.
func MarshalManifest(m Manifest) ([]byte, error) {
	b, err := cborEncMode.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("merklestore: marshal manifest: %w", err)
	}
	return b, nil
}

// UnmarshalManifest decodes a Manifest previously produced by
// MarshalManifest or embedded as a COSE_Sign1 payload.
func UnmarshalManifest(b []byte) (Manifest, error) {
	var m Manifest
	if err := cbor.Unmarshal(b, &m); err != nil {
		return Manifest{}, fmt.Errorf("merklestore: unmarshal manifest: %w", err)
	}
	return m, nil
}
