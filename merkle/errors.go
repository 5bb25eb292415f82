package merkle

import "errors"

// Sentinel errors returned by this package. Wrapping frames use fmt.Errorf's
// %w so callers can compare with errors.Is rather than string matching.
var (
	// ErrInvalidArgs is returned when a caller-supplied argument is
	// structurally nonsensical: a required buffer is nil, or a length
	// parameter is out of the domain the callee accepts.
	ErrInvalidArgs = errors.New("merkle: invalid arguments")

	// ErrOutOfRange is returned when an offset/length pair falls outside
	// the bounds of the data or level it addresses.
	ErrOutOfRange = errors.New("merkle: out of range")

	// ErrBufferTooSmall is returned when a caller-supplied tree buffer is
	// smaller than TreeLength requires.
	ErrBufferTooSmall = errors.New("merkle: buffer too small")

	// ErrBadState is returned when an operation is invoked against a
	// Builder in a state that does not permit it (e.g. CreateUpdate
	// before CreateInit, or CreateFinal called twice).
	ErrBadState = errors.New("merkle: bad state")

	// ErrNoMemory is reserved for allocation failure while constructing
	// the per-level state chain. The Go runtime does not surface
	// allocation failure as a recoverable error the way the original C
	// implementation's AllocChecker does, so this package never returns
	// it in practice; it is kept so the error taxonomy stays complete for
	// callers porting code from that original.
	ErrNoMemory = errors.New("merkle: no memory")

	// ErrIODataIntegrity is returned by Verify when a recomputed digest
	// does not match the digest stored in the tree, or does not match the
	// caller-supplied root.
	ErrIODataIntegrity = errors.New("merkle: data integrity check failed")
)
