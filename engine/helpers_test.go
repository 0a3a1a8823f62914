package engine

import (
	"math"
	"testing"

	"cephalopod/board"

	"github.com/stretchr/testify/require"
	"lukechampine.com/frand"
)

func mustParse(t testing.TB, s string) *board.Board {
	t.Helper()
	b, err := board.ParseBoard(s)
	require.NoError(t, err)
	return b
}

func seededRNG(seed byte) *frand.RNG {
	key := make([]byte, 32)
	key[0] = seed
	return frand.NewCustom(key, 1024, 12)
}

func randomBoard(rng *frand.RNG, size, dice int) *board.Board {
	return randomBoardPips(rng, size, dice, 1)
}

// randomBoardPips places dice showing minPip or more.
func randomBoardPips(rng *frand.RNG, size, dice int, minPip int) *board.Board {
	b := board.New(size)
	for placed := 0; placed < dice; {
		r, c := rng.Intn(size), rng.Intn(size)
		if !b.At(r, c).Empty() {
			continue
		}
		owner := board.ColorA
		if rng.Intn(2) == 1 {
			owner = board.ColorB
		}
		b.Place(r, c, owner, uint8(minPip+rng.Intn(board.MaxPips-minPip+1)))
		placed++
	}
	return b
}

// plainMinimax is an unpruned reference search.
func plainMinimax(b *board.Board, eval Evaluator, mode board.CaptureMode, root, player board.Color, depth int) float64 {
	if depth == 0 || b.IsFull() {
		return eval.Evaluate(b, root)
	}
	maximizing := player == root
	best := math.Inf(1)
	if maximizing {
		best = math.Inf(-1)
	}
	for _, m := range board.GenerateMoves(b, mode) {
		u := b.Apply(m, player)
		v := plainMinimax(b, eval, mode, root, player.Opponent(), depth-1)
		b.Undo(u)
		if maximizing {
			best = math.Max(best, v)
		} else {
			best = math.Min(best, v)
		}
	}
	return best
}

func richWeights() Weights {
	return Weights{
		WeightPiece:    1,
		WeightSix:      8,
		WeightCenter:   0.5,
		WeightExposure: 0.25,
	}
}
