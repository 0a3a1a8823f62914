package engine

import (
	"cephalopod/board"

	"golang.org/x/exp/slices"
)

// MoveOrderingPolicy gives a static priority to a move about to be played
// by color. Higher scores are searched first. ScoreMove may apply moves to
// b but must leave it unchanged on return.
type MoveOrderingPolicy interface {
	ScoreMove(b *board.Board, m board.Move, color board.Color) float64
}

/*
	Static ordering scores used by SixCaptureOrdering:
	- making a six is searched before anything else
	- handing the opponent a six is searched last
	- a one boxed in by sixes can never be captured, so it gets a small bonus
	- otherwise the face value decides
*/
const (
	sixCaptureScore = 1_000_000
	sixReplyScore   = -1_000_000
	safeOneBonus    = 10
)

// SixCaptureOrdering prioritises six-captures and avoids moves that give the
// opponent one.
type SixCaptureOrdering struct {
	Mode board.CaptureMode
}

func (o SixCaptureOrdering) ScoreMove(b *board.Board, m board.Move, color board.Color) float64 {
	if m.Face == board.MaxPips {
		return sixCaptureScore
	}
	u := b.Apply(m, color)
	givesSix := board.HasCaptureOf(b, o.Mode, board.MaxPips)
	b.Undo(u)
	if givesSix {
		return sixReplyScore
	}
	if m.Face == 1 && boxedBySixes(b, int(m.Row), int(m.Col)) {
		return float64(m.Face) + safeOneBonus
	}
	return float64(m.Face)
}

// boxedBySixes reports whether every neighbour of (r,c) shows a six.
func boxedBySixes(b *board.Board, r, c int) bool {
	for _, nc := range b.Neighbors(r, c) {
		if b.At(nc.Row, nc.Col).Pips != board.MaxPips {
			return false
		}
	}
	return true
}

// CaptureOrdering favours high faces, sixes and larger captures.
type CaptureOrdering struct{}

func (CaptureOrdering) ScoreMove(_ *board.Board, m board.Move, _ board.Color) float64 {
	score := float64(m.Face) + 2*float64(m.CaptureCount())
	if m.Face == board.MaxPips {
		score += 5
	}
	return score
}

// NoOrdering keeps generation order.
type NoOrdering struct{}

func (NoOrdering) ScoreMove(*board.Board, board.Move, board.Color) float64 { return 0 }

type scoredMove struct {
	move    board.Move
	pv      bool
	killer  int
	history int
	static  float64
}

// compareScored sorts descending: previous best first, then killers, history and
// the static score.
func compareScored(a, b scoredMove) int {
	switch {
	case a.pv != b.pv:
		if a.pv {
			return -1
		}
		return 1
	case a.killer != b.killer:
		return b.killer - a.killer
	case a.history != b.history:
		return b.history - a.history
	case a.static > b.static:
		return -1
	case a.static < b.static:
		return 1
	}
	return 0
}

// orderMoves sorts moves in place for color at the given remaining depth.
// Ties keep generation order.
func (w *worker) orderMoves(moves []board.Move, color board.Color, depth int, pv board.Move) {
	if len(moves) < 2 {
		return
	}
	scored := w.scored[depth][:0]
	for _, m := range moves {
		sm := scoredMove{move: m, pv: m == pv}
		if w.killers != nil {
			sm.killer = w.killers.KillerRank(m, depth)
		}
		if w.history != nil {
			sm.history = w.history.Score(m)
		}
		sm.static = w.ordering.ScoreMove(w.board, m, color)
		scored = append(scored, sm)
	}
	slices.SortStableFunc(scored, compareScored)
	for i := range scored {
		moves[i] = scored[i].move
	}
	w.scored[depth] = scored
}
