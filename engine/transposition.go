package engine

import (
	"cephalopod/board"
)

// Bound tags how a stored value relates to the true minimax value.
type Bound uint8

const (
	BoundExact Bound = iota
	BoundLower
	BoundUpper
)

func (b Bound) String() string {
	switch b {
	case BoundLower:
		return "lower"
	case BoundUpper:
		return "upper"
	default:
		return "exact"
	}
}

type TTEntry struct {
	Hash  uint64
	Depth int8
	Value float64
	Move  board.Move
	Bound Bound

	// Horizon is set when the subtree reached depth zero on a board that
	// still had empty cells.
	Horizon bool
}

type ttKey struct {
	hash  uint64
	depth int8
}

// TransTable memoizes node results for one top-level search. Entries are
// keyed by hash and remaining depth and are overwritten unconditionally.
// It is cleared before every search, so it never needs a replacement policy.
type TransTable struct {
	entries map[ttKey]TTEntry

	Probes uint64
	Hits   uint64
	Stores uint64
}

func NewTransTable() *TransTable {
	return &TransTable{entries: make(map[ttKey]TTEntry, 1<<12)}
}

func (tt *TransTable) Clear() {
	clear(tt.entries)
	tt.Probes, tt.Hits, tt.Stores = 0, 0, 0
}

func (tt *TransTable) Len() int { return len(tt.entries) }

// Get returns a stored result when it is usable under the window
// [alpha, beta]: exact values always are; a lower bound only when it already
// reaches beta, an upper bound only when it is already at or below alpha.
func (tt *TransTable) Get(hash uint64, depth int8, alpha, beta float64) (TTEntry, bool) {
	tt.Probes++
	entry, found := tt.entries[ttKey{hash: hash, depth: depth}]
	if !found {
		return TTEntry{}, false
	}
	ok := false
	switch entry.Bound {
	case BoundExact:
		ok = true
	case BoundLower:
		ok = entry.Value >= beta
	case BoundUpper:
		ok = entry.Value <= alpha
	}
	if !ok {
		return TTEntry{}, false
	}
	tt.Hits++
	return entry, true
}

// Put stores a result, replacing any entry with the same hash and depth.
func (tt *TransTable) Put(entry TTEntry) {
	tt.Stores++
	tt.entries[ttKey{hash: entry.Hash, depth: entry.Depth}] = entry
}

// boundFor picks the tag for a node value given the window it was searched
// with.
func boundFor(value, alphaOrig, betaOrig float64) Bound {
	switch {
	case value <= alphaOrig:
		return BoundUpper
	case value >= betaOrig:
		return BoundLower
	default:
		return BoundExact
	}
}
