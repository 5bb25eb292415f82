// Package merkle implements a fixed-node-size Merkle tree over an
// arbitrary-length byte blob: it derives a single root digest that commits
// to the whole blob, emits an auxiliary tree of intermediate digests sized
// to the blob, and later verifies aligned sub-ranges of the blob against
// the root without rehashing unrelated regions.
//
// # Shape
//
// The blob is level 0. Level 0 is split into NodeSize-byte nodes; each
// node's digest becomes one DigestLen-byte element of level 1. Level 1 is
// itself split into NodeSize-byte nodes of digests, hashed into level 2,
// and so on until a level fits in a single node — that level's node digest
// is the root and is never itself written into the tree buffer.
//
//	level 2:                     root (returned, not stored)
//	level 1:        d0  d1  d2  ...  dn        (stored in tree[])
//	level 0:  [node][node][node] ... [node]    (the data blob)
//
// # Node hash
//
// Every node, at every level, hashes the same three things in order: an
// 8-byte little-endian locality tag (the node's byte offset within its
// level, OR'd with the level index — safe because the offset is always
// NodeSize-aligned), a 4-byte little-endian length tag (the number of real
// payload bytes in this node, capped at NodeSize), the payload itself, and
// zero padding out to NodeSize bytes.
//
// The hash primitive is an external collaborator: callers supply a
// constructor for a standard library hash.Hash (crypto/sha256.New is the
// expected default), never a concrete algorithm baked into this package.
//
// # Streaming
//
// CreateInit/CreateUpdate/CreateFinal let a caller feed data in any
// chunking, including one byte at a time, and always obtain the same root
// as one-shot Create. Verify never needs the whole blob: it re-derives only
// the digests on the path from the requested range to the root.
package merkle
