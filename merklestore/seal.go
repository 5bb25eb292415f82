package merklestore

import (
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/veraison/go-cose"
)

// ErrSealVerificationFailed is returned by VerifySeal when the COSE_Sign1
// signature does not check out, or the envelope does not carry the shape
// Seal produces.
var ErrSealVerificationFailed = errors.New("merklestore: seal verification failed")

// KeyIDHeader is the COSE protected header label Seal uses to record which
// key produced a signature, mirroring the "kid" claim rootsigner.go binds
// into its CWT headers, without pulling in that package's CWT/CNF claim
// machinery.
const KeyIDHeader = cose.HeaderLabelKeyID

// Seal wraps a Manifest's canonical CBOR encoding in a COSE_Sign1 envelope
// signed with signer, and tags the envelope with keyID so a verifier knows
// which key to check it against.
//
// Callers should Seal after DataKey and TreeKey (and, for large blocks,
// TreeKey's contents) are already durably stored: Seal only produces bytes,
// it does not itself write anything to an ObjectReaderWriter.
func Seal(signer cose.Signer, keyID string, m Manifest) ([]byte, error) {
	payload, err := MarshalManifest(m)
	if err != nil {
		return nil, err
	}

	msg := cose.Sign1Message{
		Headers: cose.Headers{
			Protected: cose.ProtectedHeader{
				cose.HeaderLabelAlgorithm: signer.Algorithm(),
				KeyIDHeader:               []byte(keyID),
			},
		},
		Payload: payload,
	}
	if err := msg.Sign(rand.Reader, nil, signer); err != nil {
		return nil, fmt.Errorf("merklestore: sign manifest: %w", err)
	}

	sealed, err := msg.MarshalCBOR()
	if err != nil {
		return nil, fmt.Errorf("merklestore: marshal sealed manifest: %w", err)
	}
	return sealed, nil
}

// VerifySeal checks sealed against verifier and, on success, decodes the
// embedded Manifest.
func VerifySeal(verifier cose.Verifier, sealed []byte) (Manifest, error) {
	var msg cose.Sign1Message
	if err := msg.UnmarshalCBOR(sealed); err != nil {
		return Manifest{}, fmt.Errorf("%w: malformed envelope: %v", ErrSealVerificationFailed, err)
	}
	if err := msg.Verify(nil, verifier); err != nil {
		return Manifest{}, fmt.Errorf("%w: %v", ErrSealVerificationFailed, err)
	}
	return UnmarshalManifest(msg.Payload)
}

// KeyID extracts the KeyIDHeader value Seal recorded in sealed's protected
// headers, without verifying the signature, so a caller can look up the
// right verifying key before calling VerifySeal.
func KeyID(sealed []byte) (string, error) {
	var msg cose.Sign1Message
	if err := msg.UnmarshalCBOR(sealed); err != nil {
		return "", fmt.Errorf("%w: malformed envelope: %v", ErrSealVerificationFailed, err)
	}
	kid, ok := msg.Headers.Protected[KeyIDHeader]
	if !ok {
		return "", fmt.Errorf("%w: no key id header", ErrSealVerificationFailed)
	}
	kidBytes, ok := kid.([]byte)
	if !ok {
		return "", fmt.Errorf("%w: key id header has unexpected type", ErrSealVerificationFailed)
	}
	return string(kidBytes), nil
}
