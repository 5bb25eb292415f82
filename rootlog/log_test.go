package rootlog

import (
	"crypto/sha256"
	"testing"

	"github.com/benvalle33/blockmerkle/merkle"
	"github.com/stretchr/testify/require"
)

func sealedRoot(t *testing.T, seed byte) merkle.Digest {
	t.Helper()
	data := make([]byte, merkle.NodeSize+1)
	for i := range data {
		data[i] = seed
	}
	root, err := merkle.Create(sha256.New, data, make([]byte, merkle.TreeLength(uint64(len(data)))))
	require.NoError(t, err)
	return root
}

func TestAppendGrowsLenAndChangesRoot(t *testing.T) {
	l := New(sha256.New)
	require.Equal(t, uint64(0), l.Len())

	roots := make([]merkle.Digest, 0, 5)
	seen := map[merkle.Digest]bool{}
	for i := byte(0); i < 5; i++ {
		root := sealedRoot(t, i)
		idx, err := l.Append(root)
		require.NoError(t, err)
		require.Equal(t, uint64(i), idx)
		roots = append(roots, root)

		acc, err := l.Root()
		require.NoError(t, err)
		require.False(t, seen[acc], "accumulator root repeated after append %d", i)
		seen[acc] = true
	}
	require.Equal(t, uint64(5), l.Len())
	_ = roots
}

func TestInclusionProofRoundTrips(t *testing.T) {
	l := New(sha256.New)
	var roots []merkle.Digest
	for i := byte(0); i < 9; i++ {
		root := sealedRoot(t, i)
		_, err := l.Append(root)
		require.NoError(t, err)
		roots = append(roots, root)
	}
	mmrSize := l.mmrSize
	accRoot, err := l.Root()
	require.NoError(t, err)

	for leaf, root := range roots {
		proof, err := l.InclusionProof(uint64(leaf))
		require.NoError(t, err)
		err = VerifyInclusion(sha256.New, mmrSize, root, uint64(leaf), proof, accRoot)
		require.NoError(t, err, "leaf %d", leaf)
	}
}

func TestInclusionProofRejectsWrongLeaf(t *testing.T) {
	l := New(sha256.New)
	var roots []merkle.Digest
	for i := byte(0); i < 4; i++ {
		root := sealedRoot(t, i)
		_, err := l.Append(root)
		require.NoError(t, err)
		roots = append(roots, root)
	}
	mmrSize := l.mmrSize
	accRoot, err := l.Root()
	require.NoError(t, err)

	proof, err := l.InclusionProof(0)
	require.NoError(t, err)
	err = VerifyInclusion(sha256.New, mmrSize, roots[1], 0, proof, accRoot)
	require.ErrorIs(t, err, ErrVerificationFailed)
}

func TestInclusionProofOutOfRange(t *testing.T) {
	l := New(sha256.New)
	_, err := l.InclusionProof(0)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
}
