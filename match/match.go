package match

import (
	"context"
	"time"

	"cephalopod/board"
	"cephalopod/engine"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"
)

// Player picks a move for color. *engine.Searcher satisfies it.
type Player interface {
	ChooseMove(ctx context.Context, b *board.Board, color board.Color, budget time.Duration) (board.Move, engine.SearchStats)
}

// RandomPlayer plays a uniformly random policy move.
type RandomPlayer struct {
	Mode board.CaptureMode
}

func (p RandomPlayer) ChooseMove(_ context.Context, b *board.Board, _ board.Color, _ time.Duration) (board.Move, engine.SearchStats) {
	moves := board.GenerateMoves(b, p.Mode)
	if len(moves) == 0 {
		return board.NoMove, engine.SearchStats{}
	}
	return moves[frand.Intn(len(moves))], engine.SearchStats{}
}

// Record is one ply of a finished game.
type Record struct {
	Ply   int
	Color board.Color
	Move  board.Move
	Stats engine.SearchStats
}

type Result struct {
	Winner board.Color
	CountA int
	CountB int
	Final  *board.Board
	Moves  []Record
}

// Match plays one game between two players on an empty board.
type Match struct {
	Size    int
	PlayerA Player
	PlayerB Player
	// First is the color that opens; ColorA when unset.
	First  board.Color
	Budget time.Duration
	// RandomOpening plays the first ply at random.
	RandomOpening bool
	Logger        *zerolog.Logger
}

var ErrNoMove = errors.New("player returned no move on a board with empty cells")

func (m *Match) logger() *zerolog.Logger {
	if m.Logger != nil {
		return m.Logger
	}
	return &log.Logger
}

// Play runs the game to a full board. A move that breaks the rules ends the
// game with an error.
func (m *Match) Play(ctx context.Context) (Result, error) {
	size := m.Size
	if size == 0 {
		size = board.DefaultSize
	}
	color := m.First
	if color == board.NoColor {
		color = board.ColorA
	}
	b := board.New(size)
	res := Result{Final: b}

	for ply := 1; !b.IsFull(); ply++ {
		if err := ctx.Err(); err != nil {
			return res, errors.Wrap(err, "match interrupted")
		}
		var player Player = m.PlayerA
		if color == board.ColorB {
			player = m.PlayerB
		}
		if ply == 1 && m.RandomOpening {
			player = RandomPlayer{}
		}

		move, stats := player.ChooseMove(ctx, b, color, m.Budget)
		if move.IsNoMove() {
			return res, errors.Wrapf(ErrNoMove, "ply %d, %v to move", ply, color)
		}
		if err := board.CheckMove(b, move); err != nil {
			return res, errors.Wrapf(err, "ply %d, %v to move", ply, color)
		}
		b.Apply(move, color)
		res.Moves = append(res.Moves, Record{Ply: ply, Color: color, Move: move, Stats: stats})

		m.logger().Debug().
			Int("ply", ply).
			Str("color", color.String()).
			Str("move", move.String()).
			Int("depth", stats.CompletedDepth).
			Float64("value", stats.Value).
			Msg("move-played")
		color = color.Opponent()
	}

	res.Winner = board.Winner(b)
	res.CountA = b.Count(board.ColorA)
	res.CountB = b.Count(board.ColorB)
	m.logger().Info().
		Str("winner", res.Winner.String()).
		Int("count-a", res.CountA).
		Int("count-b", res.CountB).
		Int("plies", len(res.Moves)).
		Msg("game-over")
	return res, nil
}
