// Package merkletesting provides deterministic fixture generation for tests
// across the merkle, rootlog, and merklestore packages, adapted from
// mmrtesting's TestContext: a fixed seed drives repeatable pseudo-random
// data instead of a real time source or object storage emulator, so tests
// stay hermetic and their fixtures reproduce exactly from run to run.
package merkletesting

import (
	"math/rand"
	"testing"

	"github.com/benvalle33/blockmerkle/merklestore"
)

// TestConfig controls fixture generation the way mmrtesting.TestConfig
// controls a TestContext's blob naming and event timing.
type TestConfig struct {
	// Seed drives the deterministic RNG used by GenerateBlock. Two
	// TestContexts built with the same Seed produce byte-identical blocks.
	Seed int64

	// StartTimeUnixMilli is the first timestamp NextSealTime returns; each
	// later call advances it by one millisecond.
	StartTimeUnixMilli int64
}

// TestContext bundles a deterministic data generator with an in-memory
// object store, for tests that need many distinct blocks without hitting
// the filesystem or a real blob store.
type TestContext struct {
	T     *testing.T
	Store *merklestore.MemoryStore

	rng      *rand.Rand
	nextTime int64
}

// NewTestContext returns a TestContext seeded from cfg.
func NewTestContext(t *testing.T, cfg TestConfig) *TestContext {
	t.Helper()
	return &TestContext{
		T:        t,
		Store:    merklestore.NewMemoryStore(),
		rng:      rand.New(rand.NewSource(cfg.Seed)),
		nextTime: cfg.StartTimeUnixMilli,
	}
}

// GenerateBlock returns size pseudo-random bytes, deterministic given the
// TestContext's seed and the number of prior calls to GenerateBlock.
func (c *TestContext) GenerateBlock(size uint64) []byte {
	data := make([]byte, size)
	if _, err := c.rng.Read(data); err != nil {
		c.T.Fatalf("merkletesting: generate block: %v", err)
	}
	return data
}

// NextSealTime returns a strictly increasing unix millisecond timestamp,
// suitable for SealBlock's nowUnixMilli parameter across a sequence of
// blocks generated by the same TestContext.
func (c *TestContext) NextSealTime() int64 {
	t := c.nextTime
	c.nextTime++
	return t
}
