// Package nodecache memoizes which merkle node digests a caller has already
// verified, so a repeated Verify covering an overlapping range doesn't redo
// hashing work it has already paid for.
//
// The memo is a probabilistic set (a 4-way blocked Bloom filter, see the
// bloom package this is built on): a false negative never happens (a digest
// once marked Seen is always reported Seen), but a false positive can, at a
// tunable rate set by the filter's sizing. A Seen answer of true therefore
// does not prove a digest was verified; a caller that skips hashing on a
// true answer skips it on every false positive too.
//
// merklestore.OpenAndVerify is the caller: it folds the manifest root and
// the requested range into a single element (see verifiedRangeKey there)
// and consults a VerifiedSet before touching the data or tree objects at
// all, so a repeated open-and-verify of an already-checked range skips both
// the fetch and the hash. cmd/merkleseal persists a VerifiedSet's Bytes
// across invocations the same way it persists rootlog state.
package nodecache
