// Package merklestore persists sealed blocks: a block's data and the
// auxiliary tree buffer needed to Verify sub-ranges of it later are stored
// as objects of their own, and a CBOR manifest records the block's data
// length, the merkle.Digest root Create/CreateFinal produced for it, and
// the keys of those objects. The manifest can be wrapped in a COSE_Sign1
// envelope so that its origin and integrity can be checked without trusting
// whatever transport carried it.
//
// Manifests and tree buffers are addressed through the ObjectReaderWriter
// interface, which has an in-memory implementation for tests and an Azure
// Blob Storage implementation for production use.
package merklestore
