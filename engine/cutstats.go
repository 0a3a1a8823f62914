package engine

import (
	"time"

	"github.com/rs/zerolog"
)

// SearchStats describes one ChooseMove or SearchDepth call.
type SearchStats struct {
	Nodes        uint64
	TTProbes     uint64
	TTHits       uint64
	TTStores     uint64
	BetaCutoffs  uint64
	AlphaCutoffs uint64

	// CompletedDepth is the deepest iteration that finished; the returned
	// move and Value come from it. Zero means no iteration finished.
	CompletedDepth int
	Value          float64
	Elapsed        time.Duration
	// TimedOut is set when an iteration was abandoned at the deadline.
	TimedOut bool
	// Fallback is set when no iteration finished and the move is the first
	// statically ordered root move.
	Fallback bool
	// Exhausted is set when the last iteration saw every line to the end of
	// the game.
	Exhausted bool
	Workers   int
}

func (s *SearchStats) add(o SearchStats) {
	s.Nodes += o.Nodes
	s.TTProbes += o.TTProbes
	s.TTHits += o.TTHits
	s.TTStores += o.TTStores
	s.BetaCutoffs += o.BetaCutoffs
	s.AlphaCutoffs += o.AlphaCutoffs
}

// NPS is nodes per second over Elapsed.
func (s SearchStats) NPS() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Nodes) / s.Elapsed.Seconds()
}

func (s SearchStats) MarshalZerologObject(e *zerolog.Event) {
	e.Int("depth", s.CompletedDepth).
		Float64("value", s.Value).
		Uint64("nodes", s.Nodes).
		Uint64("tt-probes", s.TTProbes).
		Uint64("tt-hits", s.TTHits).
		Uint64("tt-stores", s.TTStores).
		Uint64("beta-cutoffs", s.BetaCutoffs).
		Uint64("alpha-cutoffs", s.AlphaCutoffs).
		Dur("elapsed", s.Elapsed).
		Float64("nps", s.NPS()).
		Bool("timed-out", s.TimedOut).
		Bool("fallback", s.Fallback).
		Bool("exhausted", s.Exhausted).
		Int("workers", s.Workers)
}
