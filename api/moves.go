package api

import (
	"context"
	"sync"
	"time"

	"cephalopod/board"
	"cephalopod/config"
	"cephalopod/engine"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

type MoveArgs struct {
	Board string `json:"board" example:"...../..A2../.B3.../...../....."`
	Mode  string `json:"mode" enums:"best,all" default:"best"`
}

type ChooseArgs struct {
	Board    string             `json:"board"`
	Player   string             `json:"player" enums:"A,B" default:"A"`
	BudgetMs int                `json:"budget-ms" minimum:"1" default:"1000"`
	MaxDepth int                `json:"max-depth" minimum:"0" default:"0"`
	Weights  map[string]float64 `json:"weights,omitempty"`
}

type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type Move struct {
	Row      int     `json:"row"`
	Col      int     `json:"col"`
	Face     int     `json:"face"`
	Captured []Coord `json:"captured"`
	Notation string  `json:"notation"`
}

type Stats struct {
	Depth     int     `json:"depth"`
	Value     float64 `json:"value"`
	Nodes     uint64  `json:"nodes"`
	TTHits    uint64  `json:"tt-hits"`
	ElapsedMs int64   `json:"elapsed-ms"`
	TimedOut  bool    `json:"timed-out"`
	Fallback  bool    `json:"fallback"`
}

type Choice struct {
	// Move is nil when the board is full.
	Move  *Move `json:"move"`
	Stats Stats `json:"stats"`
}

const maxBudget = 60 * time.Second

func toMove(m board.Move) Move {
	return Move{
		Row:  int(m.Row),
		Col:  int(m.Col),
		Face: int(m.Face),
		Captured: lo.Map(m.Captured(), func(c board.Coord, _ int) Coord {
			return Coord{Row: c.Row, Col: c.Col}
		}),
		Notation: m.String(),
	}
}

// GetMoves lists the legal moves of a position.
func GetMoves(args MoveArgs) ([]Move, error) {
	b, err := board.ParseBoard(args.Board)
	if err != nil {
		return nil, err
	}
	mode, err := config.ParseCaptureMode(args.Mode)
	if err != nil {
		return nil, err
	}
	return lo.Map(board.GenerateMoves(b, mode), func(m board.Move, _ int) Move { return toMove(m) }), nil
}

// Engine answers choose requests. Zobrist tables are built once per board
// size and shared by every request.
type Engine struct {
	cfg config.Config

	mu      sync.Mutex
	zobrist map[int]*board.ZobristTable
}

func NewEngine(cfg config.Config) *Engine {
	return &Engine{cfg: cfg, zobrist: make(map[int]*board.ZobristTable)}
}

func (e *Engine) table(size int) *board.ZobristTable {
	e.mu.Lock()
	defer e.mu.Unlock()
	z, ok := e.zobrist[size]
	if !ok {
		z = board.NewZobristTable(size, e.cfg.Seed)
		e.zobrist[size] = z
	}
	return z
}

// ChooseMove searches the submitted position with a fresh searcher.
func (e *Engine) ChooseMove(ctx context.Context, args ChooseArgs) (Choice, error) {
	b, err := board.ParseBoard(args.Board)
	if err != nil {
		return Choice{}, err
	}
	color, err := board.ParseColor(lo.Ternary(args.Player == "", "A", args.Player))
	if err != nil {
		return Choice{}, err
	}
	budget := e.cfg.TimeBudget
	if args.BudgetMs > 0 {
		budget = time.Duration(args.BudgetMs) * time.Millisecond
	}
	if budget > maxBudget {
		return Choice{}, errors.Errorf("budget-ms must not exceed %d", maxBudget.Milliseconds())
	}

	cfg := e.cfg
	if args.Weights != nil {
		cfg.Weights = engine.Weights(args.Weights)
	}
	if args.MaxDepth > 0 {
		cfg.MaxDepth = args.MaxDepth
	}
	if err := cfg.Validate(); err != nil {
		return Choice{}, err
	}

	s := cfg.NewSearcher(e.table(b.Size()))
	m, stats := s.ChooseMove(ctx, b, color, budget)
	choice := Choice{Stats: Stats{
		Depth:     stats.CompletedDepth,
		Value:     stats.Value,
		Nodes:     stats.Nodes,
		TTHits:    stats.TTHits,
		ElapsedMs: stats.Elapsed.Milliseconds(),
		TimedOut:  stats.TimedOut,
		Fallback:  stats.Fallback,
	}}
	if !m.IsNoMove() {
		mv := toMove(m)
		choice.Move = &mv
	}
	return choice, nil
}
