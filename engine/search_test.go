package engine

import (
	"context"
	"testing"
	"time"

	"cephalopod/board"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func quietSearcher(z *board.ZobristTable, options ...Option) *Searcher {
	return NewSearcher(z, append([]Option{WithLogger(zerolog.Nop())}, options...)...)
}

func TestAlphaBetaMatchesPlainMinimax(t *testing.T) {
	z := board.NewZobristTable(4, 11)
	rng := seededRNG(1)
	for _, weights := range []Weights{DefaultWeights(), richWeights()} {
		eval := NewWeightedEvaluator(weights)
		for i := 0; i < 15; i++ {
			b := randomBoard(rng, 4, 6+rng.Intn(5))
			color := board.ColorA
			if i%2 == 1 {
				color = board.ColorB
			}
			for depth := 1; depth <= 3; depth++ {
				want := plainMinimax(b.Clone(), eval, board.CaptureBest, color, color, depth)
				for _, tt := range []bool{true, false} {
					s := quietSearcher(z, WithEvaluator(eval), WithTransposition(tt))
					m, stats := s.SearchDepth(b, color, depth)
					require.InDelta(t, want, stats.Value, 1e-9, "board %s depth %d tt %v", b, depth, tt)
					require.Equal(t, depth, stats.CompletedDepth)
					require.NoError(t, board.CheckMove(b, m))
				}
			}
		}
	}
}

func TestTranspositionDoesNotChangeValue(t *testing.T) {
	z := board.NewZobristTable(5, 5)
	rng := seededRNG(9)
	for i := 0; i < 8; i++ {
		b := randomBoard(rng, 5, 12+rng.Intn(6))
		with := quietSearcher(z, WithWeights(richWeights()))
		without := quietSearcher(z, WithWeights(richWeights()), WithTransposition(false), WithKillers(false), WithHistory(false))
		_, a := with.SearchDepth(b, board.ColorB, 4)
		_, c := without.SearchDepth(b, board.ColorB, 4)
		require.InDelta(t, c.Value, a.Value, 1e-9, "board %s", b)
		require.Positive(t, a.TTStores)
		require.Zero(t, c.TTProbes)
	}
}

func TestBruteForceNearlyFullBoards(t *testing.T) {
	rng := seededRNG(21)
	for _, mode := range []board.CaptureMode{board.CaptureBest, board.CaptureAll} {
		for _, size := range []int{3, 5} {
			z := board.NewZobristTable(size, 2)
			for i := 0; i < 20; i++ {
				empty := 1 + rng.Intn(4)
				// High pips keep captures, and so the game tree, small.
				b := randomBoardPips(rng, size, size*size-empty, 4)
				color := board.ColorA
				if rng.Intn(2) == 1 {
					color = board.ColorB
				}
				eval := NewWeightedEvaluator(Weights{WeightPiece: 1, WeightSix: 8, WeightWin: 50})
				want := plainMinimax(b.Clone(), eval, mode, color, color, MaxDepth)
				s := quietSearcher(z, WithEvaluator(eval), WithCaptureMode(mode))
				m, stats := s.ChooseMove(context.Background(), b, color, 10*time.Second)
				require.InDelta(t, want, stats.Value, 1e-9, "board %s mode %v", b, mode)
				require.True(t, stats.Exhausted)
				require.False(t, stats.TimedOut)
				require.GreaterOrEqual(t, stats.CompletedDepth, empty)
				require.NoError(t, board.CheckMove(b, m))
			}
		}
	}
}

func TestEmptyBoardFirstMoveIsBare(t *testing.T) {
	z := board.NewZobristTable(5, board.DefaultZobristSeed)
	for _, color := range []board.Color{board.ColorA, board.ColorB} {
		s := quietSearcher(z, WithMaxDepth(2))
		m, stats := s.ChooseMove(context.Background(), board.New(5), color, 5*time.Second)
		require.Equal(t, uint8(1), m.Face)
		require.False(t, m.IsCapture())
		require.Empty(t, m.Captured())
		require.Equal(t, 2, stats.CompletedDepth)
	}
}

func TestDepthTwoTakesSafeSixCapture(t *testing.T) {
	z := board.NewZobristTable(5, board.DefaultZobristSeed)
	b := mustParse(t, ".B3.B3./...../...../...../.....")
	for _, ordering := range []MoveOrderingPolicy{SixCaptureOrdering{}, NoOrdering{}} {
		s := quietSearcher(z, WithOrdering(ordering))
		m, stats := s.SearchDepth(b, board.ColorA, 2)
		require.Equal(t, board.Move{Row: 0, Col: 2, Face: 6, Capture: board.CaptureLeft | board.CaptureRight}, m)
		require.Equal(t, 8.0, stats.Value)
	}
}

func TestChooseMoveLeavesBoardUntouched(t *testing.T) {
	z := board.NewZobristTable(5, 3)
	b := randomBoard(seededRNG(4), 5, 10)
	before := b.Clone()
	s := quietSearcher(z, WithMaxDepth(3))
	s.ChooseMove(context.Background(), b, board.ColorA, time.Second)
	require.True(t, before.Equal(b))
}

func TestChooseMoveFullBoard(t *testing.T) {
	z := board.NewZobristTable(2, 3)
	s := quietSearcher(z)
	m, stats := s.ChooseMove(context.Background(), mustParse(t, "A1B1/A1B6"), board.ColorA, time.Second)
	require.Equal(t, board.NoMove, m)
	require.True(t, m.IsNoMove())
	require.Zero(t, stats.CompletedDepth)
}

func TestChooseMoveRespectsDeadline(t *testing.T) {
	z := board.NewZobristTable(5, 3)
	s := quietSearcher(z, WithSafetyMargin(50*time.Millisecond), WithPollInterval(64))
	b := board.New(5)

	start := time.Now()
	m, stats := s.ChooseMove(context.Background(), b, board.ColorA, 300*time.Millisecond)
	elapsed := time.Since(start)

	require.Less(t, elapsed, 600*time.Millisecond)
	require.True(t, stats.TimedOut)
	require.False(t, stats.Fallback)
	require.GreaterOrEqual(t, stats.CompletedDepth, 1)
	require.NoError(t, board.CheckMove(b, m))

	// The reported value is the one of a complete search at that depth.
	_, fixed := quietSearcher(z).SearchDepth(b, board.ColorA, stats.CompletedDepth)
	require.InDelta(t, fixed.Value, stats.Value, 1e-9)
}

func TestChooseMoveCancelledContextFallsBack(t *testing.T) {
	z := board.NewZobristTable(5, 3)
	b := mustParse(t, ".B3.B3./...../...../...../.....")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := quietSearcher(z)
	m, stats := s.ChooseMove(ctx, b, board.ColorA, time.Minute)
	require.True(t, stats.Fallback)
	require.True(t, stats.TimedOut)
	require.Zero(t, stats.CompletedDepth)
	// the fallback is still the statically best move
	require.Equal(t, uint8(6), m.Face)
}

func TestParallelRootSearchMatchesSerial(t *testing.T) {
	z := board.NewZobristTable(5, 17)
	rng := seededRNG(33)
	for i := 0; i < 5; i++ {
		b := randomBoard(rng, 5, 10+rng.Intn(8))
		_, serial := quietSearcher(z, WithWeights(richWeights())).SearchDepth(b, board.ColorA, 3)
		m, par := quietSearcher(z, WithWeights(richWeights()), WithWorkers(3)).SearchDepth(b, board.ColorA, 3)
		require.InDelta(t, serial.Value, par.Value, 1e-9)
		require.Equal(t, 3, par.Workers)
		require.NoError(t, board.CheckMove(b, m))
	}
}

func TestSearcherReuse(t *testing.T) {
	z := board.NewZobristTable(4, 8)
	s := quietSearcher(z, WithWeights(richWeights()))
	b := randomBoard(seededRNG(5), 4, 7)
	_, first := s.SearchDepth(b, board.ColorA, 3)
	_, second := s.SearchDepth(b, board.ColorA, 3)
	require.InDelta(t, first.Value, second.Value, 1e-9)

	s.Reset()
	_, third := s.SearchDepth(b, board.ColorA, 3)
	require.InDelta(t, first.Value, third.Value, 1e-9)
}

func TestSearcherRejectsMismatchedBoard(t *testing.T) {
	s := quietSearcher(board.NewZobristTable(5, 1))
	require.Panics(t, func() { s.SearchDepth(board.New(4), board.ColorA, 1) })
	require.Panics(t, func() { NewSearcher(nil) })
}

func BenchmarkSearchDepth4(b *testing.B) {
	z := board.NewZobristTable(5, 1)
	pos := randomBoard(seededRNG(8), 5, 12)
	s := quietSearcher(z)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.SearchDepth(pos, board.ColorA, 4)
	}
}
