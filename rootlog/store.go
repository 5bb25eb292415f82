package rootlog

import (
	"fmt"
)

// memoryStore is an in-memory mmr.NodeAppender: every node value the mmr
// package ever produces (leaves and interior nodes alike) held in a single
// growable slice, indexed by zero based mmr index.
type memoryStore struct {
	nodes [][]byte
}

func (s *memoryStore) Get(i uint64) ([]byte, error) {
	if i >= uint64(len(s.nodes)) {
		return nil, fmt.Errorf("rootlog: node %d not present", i)
	}
	return s.nodes[i], nil
}

func (s *memoryStore) Append(value []byte) (uint64, error) {
	cp := make([]byte, len(value))
	copy(cp, value)
	s.nodes = append(s.nodes, cp)
	return uint64(len(s.nodes)), nil
}
