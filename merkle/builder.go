package merkle

import (
	"fmt"
	"hash"
)

type builderState int

const (
	stateFresh builderState = iota
	stateOpen
	stateClosed
)

// levelState is the running state of one level of the tree: how far into
// the level's data has been absorbed, the hasher for whatever node is
// currently in progress, and the location of this level's own output
// (the region of the tree buffer holding the digests this level produces)
// once that region has been computed by CreateInit.
type levelState struct {
	level  uint64
	length uint64
	offset uint64
	hasher *nodeHasher

	// hasNext is false only for the top level, which never writes its
	// output into the tree buffer.
	hasNext bool

	lastDigest Digest
}

// Builder streams a blob of known total length through CreateInit,
// CreateUpdate (any number of times, any chunking), and CreateFinal,
// producing the same root and tree buffer contents as one-shot Create.
//
// A Builder progresses Fresh -> Open -> Closed and cannot be reused after
// CreateFinal; construct a new Builder for the next tree.
type Builder struct {
	newHash func() hash.Hash
	levels  []levelState
	state   builderState
}

// NewBuilder returns a Fresh Builder that hashes nodes with newHash().
// newHash is called once per level of the tree during CreateInit.
func NewBuilder(newHash func() hash.Hash) *Builder {
	return &Builder{newHash: newHash, state: stateFresh}
}

// CreateInit fixes the total length of data the Builder will absorb and the
// capacity of the tree buffer that will later be passed to CreateUpdate and
// CreateFinal. It may be called on a Fresh Builder, or repeated on a
// Builder that has never received CreateUpdate/CreateFinal.
func (b *Builder) CreateInit(dataLen, treeCap uint64) error {
	if b.state == stateClosed {
		return ErrBadState
	}
	if b.state == stateOpen && len(b.levels) > 0 && b.levels[0].offset != 0 {
		return ErrBadState
	}

	var levels []levelState
	length := dataLen
	lvl := uint64(0)
	remaining := treeCap

	for {
		ls := levelState{level: lvl, length: length}
		levels = append(levels, ls)
		if length <= NodeSize {
			break
		}
		na := nextAligned(length)
		if remaining < na {
			return ErrBufferTooSmall
		}
		levels[len(levels)-1].hasNext = true
		remaining -= na
		length = na
		lvl++
	}

	for i := range levels {
		levels[i].hasher = newNodeHasher(b.newHash())
	}

	b.levels = levels
	b.state = stateOpen
	return nil
}

// CreateUpdate absorbs the next chunk of data. tree must be non-nil unless
// the whole blob (as declared to CreateInit) fits in a single node. Calling
// CreateUpdate with an empty data slice is a no-op on an Open Builder; on a
// Fresh or Closed Builder it returns ErrBadState like any other call.
func (b *Builder) CreateUpdate(data []byte, tree []byte) error {
	if b.state != stateOpen {
		return ErrBadState
	}
	return b.updateLevel(0, data, tree)
}

func (b *Builder) updateLevel(idx int, data []byte, tree []byte) error {
	ls := &b.levels[idx]

	if len(data) == 0 {
		return nil
	}
	if ls.offset+uint64(len(data)) > ls.length {
		return fmt.Errorf("level %d: %w", idx, ErrOutOfRange)
	}
	if tree == nil && ls.length > NodeSize {
		return fmt.Errorf("level %d: %w", idx, ErrInvalidArgs)
	}

	in := data
	treeOff := (ls.offset - ls.offset%NodeSize) / DigestsPerNode
	var out, next []byte
	if ls.hasNext {
		out = tree[treeOff:]
		next = tree[nextAligned(ls.length):]
	}

	for len(in) > 0 {
		if ls.offset%NodeSize == 0 {
			ls.hasher.init(ls.offset|ls.level, ls.length-ls.offset)
		}
		chunk := ls.hasher.update(in, ls.offset)
		in = in[chunk:]
		ls.offset += uint64(chunk)

		if ls.offset%NodeSize != 0 && ls.offset != ls.length {
			break
		}
		digest := ls.hasher.final(ls.offset)
		ls.lastDigest = digest

		if !ls.hasNext {
			break
		}
		if treeOff%NodeSize == 0 {
			clear := out[:NodeSize]
			for i := range clear {
				clear[i] = 0
			}
		}
		copy(out[:DigestLen], digest[:])
		if err := b.updateLevel(idx+1, out[:DigestLen], next); err != nil {
			return err
		}
		out = out[DigestLen:]
		treeOff += DigestLen
	}
	return nil
}

// CreateFinal flushes any remaining state and writes the root digest to
// *out. The Builder transitions to Closed only on success.
func (b *Builder) CreateFinal(tree []byte, out *Digest) error {
	if b.state != stateOpen {
		return ErrBadState
	}
	if err := b.finalLevel(0, nil, tree, out); err != nil {
		return err
	}
	b.state = stateClosed
	return nil
}

func (b *Builder) finalLevel(idx int, data []byte, tree []byte, out *Digest) error {
	ls := &b.levels[idx]

	if idx == 0 && ls.offset != ls.length {
		return fmt.Errorf("level %d: %w", idx, ErrBadState)
	}
	if out == nil {
		return ErrInvalidArgs
	}
	if tree == nil && ls.length > NodeSize {
		return fmt.Errorf("level %d: %w", idx, ErrInvalidArgs)
	}

	if ls.length == 0 {
		ls.lastDigest = ls.hasher.finalEmpty()
	}

	var tail []byte
	if remaining := ls.length - ls.offset; remaining > 0 {
		tail = data[ls.offset : ls.offset+remaining]
	}
	if err := b.updateLevel(idx, tail, tree); err != nil {
		return err
	}

	if !ls.hasNext {
		*out = ls.lastDigest
		return nil
	}
	next := tree[nextAligned(ls.length):]
	return b.finalLevel(idx+1, tree, next, out)
}

// Create is the one-shot form: it builds the whole tree for data in a
// single call and returns the root. tree must be at least
// TreeLength(len(data)) bytes unless data fits in a single node.
func Create(newHash func() hash.Hash, data []byte, tree []byte) (Digest, error) {
	b := NewBuilder(newHash)
	var root Digest
	if err := b.CreateInit(uint64(len(data)), uint64(len(tree))); err != nil {
		return root, err
	}
	if err := b.CreateUpdate(data, tree); err != nil {
		return root, err
	}
	if err := b.CreateFinal(tree, &root); err != nil {
		return root, err
	}
	return root, nil
}
