package engine

import (
	"sort"

	"cephalopod/board"

	"github.com/samber/lo"
)

// Evaluator scores a position from perspective's point of view. Higher is
// better for perspective. Implementations must not modify the board.
type Evaluator interface {
	Evaluate(b *board.Board, perspective board.Color) float64
}

// EvalFunc adapts a plain function to Evaluator.
type EvalFunc func(b *board.Board, perspective board.Color) float64

func (f EvalFunc) Evaluate(b *board.Board, perspective board.Color) float64 {
	return f(b, perspective)
}

// Recognised weight names.
const (
	WeightPiece         = "piece"
	WeightSix           = "six"
	WeightCenter        = "center_bonus"
	WeightExposure      = "exposure_penalty"
	WeightOpponentReply = "opponent_reply_penalty"
	WeightSafePlacement = "safe_placement_bonus"
	WeightWin           = "win"
)

var KnownWeights = []string{
	WeightPiece, WeightSix, WeightCenter, WeightExposure,
	WeightOpponentReply, WeightSafePlacement, WeightWin,
}

// Weights is a named-float mapping. Missing keys weigh zero.
type Weights map[string]float64

// DefaultWeights is the plain material evaluation: one point per die and a
// bonus for each six.
func DefaultWeights() Weights {
	return Weights{WeightPiece: 1, WeightSix: 8}
}

func (w Weights) Clone() Weights {
	return Weights(lo.Assign(map[string]float64(w)))
}

// Unknown returns the keys no evaluator term reads, sorted.
func (w Weights) Unknown() []string {
	keys := lo.Filter(lo.Keys(map[string]float64(w)), func(k string, _ int) bool {
		return !lo.Contains(KnownWeights, k)
	})
	sort.Strings(keys)
	return keys
}

// WeightedEvaluator is a linear combination of board features. It is
// immutable and safe for concurrent use.
type WeightedEvaluator struct {
	piece    float64
	six      float64
	center   float64
	exposure float64
	reply    float64
	safe     float64
	win      float64
}

func NewWeightedEvaluator(w Weights) *WeightedEvaluator {
	return &WeightedEvaluator{
		piece:    w[WeightPiece],
		six:      w[WeightSix],
		center:   w[WeightCenter],
		exposure: w[WeightExposure],
		reply:    w[WeightOpponentReply],
		safe:     w[WeightSafePlacement],
		win:      w[WeightWin],
	}
}

// NewMaterialEvaluator evaluates with DefaultWeights.
func NewMaterialEvaluator() *WeightedEvaluator {
	return NewWeightedEvaluator(DefaultWeights())
}

func (e *WeightedEvaluator) Evaluate(b *board.Board, perspective board.Color) float64 {
	size := b.Size()
	mid := float64(size-1) / 2
	maxDist := 2 * mid

	// Cells any reply could capture; only needed by the threat terms.
	var threatened []bool
	bestReply := 0
	if e.reply != 0 || e.safe != 0 {
		threatened = make([]bool, size*size)
		for _, m := range board.EnumerateMoves(b) {
			if !m.IsCapture() {
				continue
			}
			bestReply = Max(bestReply, int(m.Face))
			for _, c := range m.Captured() {
				threatened[c.Row*size+c.Col] = true
			}
		}
	}

	var score float64
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			cell := b.At(r, c)
			if cell.Empty() {
				continue
			}
			sign := 1.0
			if cell.Owner != perspective {
				sign = -1
			}
			v := e.piece
			if cell.Pips == board.MaxPips {
				v += e.six
			}
			if e.center != 0 && maxDist > 0 {
				dist := Abs(float64(r)-mid) + Abs(float64(c)-mid)
				v += (1 - dist/maxDist) * e.center
			}
			if e.exposure != 0 {
				v -= float64(emptyNeighbours(b, r, c)) * e.exposure
			}
			if threatened != nil && sign > 0 && !threatened[r*size+c] {
				v += e.safe
			}
			score += sign * v
		}
	}

	score -= e.reply * float64(bestReply)

	if e.win != 0 && b.IsFull() {
		switch board.Winner(b) {
		case perspective:
			score += e.win
		case perspective.Opponent():
			score -= e.win
		}
	}
	return score
}

func emptyNeighbours(b *board.Board, r, c int) int {
	n := 0
	for _, nc := range b.Neighbors(r, c) {
		if b.At(nc.Row, nc.Col).Empty() {
			n++
		}
	}
	return n
}
