// Package rootlog maintains an append-only history of the roots produced by
// merkle.Create/CreateFinal for successive blocks of block-addressable data.
//
// Each sealed block contributes exactly one leaf: the merkle.Digest root
// computed over that block. rootlog arranges those leaves into a Merkle
// Mountain Range (see the mmr package this is built on), so that:
//
//   - the log itself has a single accumulator root that changes with every
//     Append, letting a verifier check the whole log's integrity cheaply,
//   - any previously appended block root can be shown, with a compact
//     inclusion proof, to be a permanent member of the log without needing
//     the rest of the log's leaves,
//   - the log is never rewritten: Append only ever extends it.
//
// This is the mechanism a caller uses to make individual block roots
// independently, publicly checkable over time, rather than trusting a single
// mutable "latest root" value.
package rootlog
