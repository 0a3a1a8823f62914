package engine

import (
	"context"
	"math"
	"sync/atomic"
	"time"

	"cephalopod/board"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// MaxDepth bounds iterative deepening when no other limit applies.
const MaxDepth = 100

// errSearchAborted marks an iteration that hit the deadline. It never leaves
// the package.
var errSearchAborted = errors.New("search aborted at deadline")

// Searcher runs iterative-deepening alpha-beta for one side. A Searcher can
// be reused across moves but must not run two searches at once.
type Searcher struct {
	zobrist   *board.ZobristTable
	evaluator Evaluator
	ordering  MoveOrderingPolicy
	mode      board.CaptureMode

	useTT      bool
	useKillers bool
	useHistory bool

	safetyMargin time.Duration
	pollMask     uint64
	maxDepth     int
	workers      int
	logger       zerolog.Logger

	pool []*worker
}

// NewSearcher builds a searcher hashing with z. The table's size fixes the
// board size the searcher accepts.
func NewSearcher(z *board.ZobristTable, options ...Option) *Searcher {
	if z == nil {
		panic("engine: nil zobrist table")
	}
	s := &Searcher{
		zobrist:      z,
		useTT:        true,
		useKillers:   true,
		useHistory:   true,
		safetyMargin: DefaultSafetyMargin,
		pollMask:     DefaultPollInterval - 1,
		workers:      1,
		logger:       log.Logger,
	}
	for _, opt := range options {
		opt(s)
	}
	if s.evaluator == nil {
		s.evaluator = NewMaterialEvaluator()
	}
	if s.ordering == nil {
		s.ordering = SixCaptureOrdering{Mode: s.mode}
	}
	return s
}

// ChooseMove searches b for color until budget (less the safety margin) is
// spent, ctx is done, or the game tree is exhausted. It returns the best move
// of the deepest completed iteration, or board.NoMove if b has no empty cell.
// b is not modified.
func (s *Searcher) ChooseMove(ctx context.Context, b *board.Board, color board.Color, budget time.Duration) (board.Move, SearchStats) {
	var th TimeHandler
	th.initTimemanagement(ctx, budget, s.safetyMargin)
	s.logger.Debug().
		Str("color", color.String()).
		Dur("budget", budget).
		Time("deadline", th.Deadline()).
		Msg("search-started")
	depth := MaxDepth
	if s.maxDepth > 0 {
		depth = Min(depth, s.maxDepth)
	}
	return s.search(b, color, depth, &th)
}

// SearchDepth searches depth plies without a deadline. It stops earlier only
// when every line ends on a full board first.
func (s *Searcher) SearchDepth(b *board.Board, color board.Color, depth int) (board.Move, SearchStats) {
	var th TimeHandler
	th.initCustomDepth()
	return s.search(b, color, Min(depth, MaxDepth), &th)
}

// Reset forgets the history and killer tables, e.g. between games.
func (s *Searcher) Reset() {
	s.pool = nil
}

func (s *Searcher) search(b *board.Board, color board.Color, depth int, th *TimeHandler) (board.Move, SearchStats) {
	if b.Size() != s.zobrist.Size() {
		panic("engine: board size does not match zobrist table")
	}
	stats := SearchStats{Workers: s.workers}

	rootMoves := board.GenerateMoves(b, s.mode)
	if len(rootMoves) == 0 {
		stats.Elapsed = th.Elapsed()
		return board.NoMove, stats
	}

	var stop atomic.Bool
	workers := s.prepareWorkers(b, color, th, &stop)
	lead := workers[0]

	best := board.NoMove
	for d := 1; d <= depth; d++ {
		if th.TimeStatus() {
			stats.TimedOut = true
			break
		}
		for _, w := range workers {
			w.ensureDepth(d)
			w.horizon = false
		}
		lead.orderMoves(rootMoves, color, d, best)
		move, value, err := s.searchIteration(workers, rootMoves, d)
		if err != nil {
			stats.TimedOut = true
			break
		}
		best = move
		stats.CompletedDepth = d
		stats.Value = value
		s.logger.Debug().
			Int("depth", d).
			Float64("value", value).
			Str("move", move.String()).
			Uint64("nodes", s.nodes(workers)).
			Dur("elapsed", th.Elapsed()).
			Msg("deepening-iteratively")

		// Every line reached the end of the game: deeper iterations would
		// search the same tree.
		if !lo.SomeBy(workers, func(w *worker) bool { return w.horizon }) {
			stats.Exhausted = true
			break
		}
	}

	if best == board.NoMove {
		lead.orderMoves(rootMoves, color, 0, board.NoMove)
		best = rootMoves[0]
		stats.Fallback = true
	}

	for _, w := range workers {
		stats.add(w.stats)
		if w.tt != nil {
			stats.TTProbes += w.tt.Probes
			stats.TTHits += w.tt.Hits
			stats.TTStores += w.tt.Stores
		}
	}
	stats.Elapsed = th.Elapsed()
	s.logger.Debug().Object("stats", stats).Str("move", best.String()).Msg("search-finished")
	return best, stats
}

func (s *Searcher) nodes(workers []*worker) uint64 {
	return lo.SumBy(workers, func(w *worker) uint64 { return w.stats.Nodes })
}

// worker owns everything one goroutine mutates during a search.
type worker struct {
	s       *Searcher
	board   *board.Board
	hash    uint64
	root    board.Color
	tt      *TransTable
	killers *KillerStruct
	history *historyTable
	scored  [][]scoredMove
	moveBuf [][]board.Move

	time    *TimeHandler
	stop    *atomic.Bool
	stopped bool
	horizon bool
	stats   SearchStats

	evaluator Evaluator
	ordering  MoveOrderingPolicy
}

func (s *Searcher) prepareWorkers(b *board.Board, color board.Color, th *TimeHandler, stop *atomic.Bool) []*worker {
	for len(s.pool) < s.workers {
		s.pool = append(s.pool, &worker{s: s})
	}
	workers := s.pool[:s.workers]
	for _, w := range workers {
		w.reset(b, color, th, stop)
	}
	return workers
}

func (w *worker) reset(b *board.Board, color board.Color, th *TimeHandler, stop *atomic.Bool) {
	s := w.s
	w.board = b.Clone()
	w.root = color
	w.hash = s.zobrist.Hash(w.board, color)
	w.time = th
	w.stop = stop
	w.stopped = false
	w.horizon = false
	w.stats = SearchStats{}
	w.evaluator = s.evaluator
	w.ordering = s.ordering

	if s.useTT {
		if w.tt == nil {
			w.tt = NewTransTable()
		}
		w.tt.Clear()
	} else {
		w.tt = nil
	}

	if s.useKillers {
		if w.killers == nil {
			w.killers = NewKillers(0)
		}
		w.killers.ClearKillers()
	} else {
		w.killers = nil
	}

	if s.useHistory {
		if w.history == nil || w.history.size != b.Size() {
			w.history = newHistoryTable(b.Size())
		} else {
			w.history.age()
		}
	} else {
		w.history = nil
	}
	w.ensureDepth(0)
}

// ensureDepth grows the per-depth buffers to hold depth.
func (w *worker) ensureDepth(depth int) {
	for len(w.scored) < depth+1 {
		w.scored = append(w.scored, nil)
		w.moveBuf = append(w.moveBuf, nil)
	}
	if w.killers != nil {
		w.killers.ensure(depth)
	}
}

func (w *worker) poll() {
	if w.stop.Load() || w.time.TimeStatus() {
		w.stop.Store(true)
		w.stopped = true
	}
}

func (w *worker) apply(m board.Move, color board.Color) (board.Undo, uint64) {
	prev := w.hash
	w.hash = w.s.zobrist.Update(w.hash, w.board, m, color)
	return w.board.Apply(m, color), prev
}

func (w *worker) undo(u board.Undo, prevHash uint64) {
	w.board.Undo(u)
	w.hash = prevHash
}

func (w *worker) evaluate() float64 {
	return w.evaluator.Evaluate(w.board, w.root)
}

// minimax returns the value of the current position for the root player,
// searching depth plies with player to move.
func (w *worker) minimax(depth int, player board.Color, maximizing bool, alpha, beta float64) float64 {
	w.stats.Nodes++
	if w.stats.Nodes&w.s.pollMask == 0 {
		w.poll()
	}
	full := w.board.IsFull()
	if depth == 0 || w.stopped || full {
		if !full {
			w.horizon = true
		}
		return w.evaluate()
	}

	ttDepth := int8(depth)
	if w.tt != nil {
		if entry, ok := w.tt.Get(w.hash, ttDepth, alpha, beta); ok {
			w.horizon = w.horizon || entry.Horizon
			return entry.Value
		}
	}

	moves := board.GenerateMovesInto(w.board, w.s.mode, w.moveBuf[depth][:0])
	w.moveBuf[depth] = moves
	if len(moves) == 0 {
		return w.evaluate()
	}
	w.orderMoves(moves, player, depth, board.NoMove)

	outerHorizon := w.horizon
	w.horizon = false

	alphaOrig, betaOrig := alpha, beta
	bestMove := board.NoMove
	value := math.Inf(1)
	if maximizing {
		value = math.Inf(-1)
	}

	for _, m := range moves {
		u, prevHash := w.apply(m, player)
		score := w.minimax(depth-1, player.Opponent(), !maximizing, alpha, beta)
		w.undo(u, prevHash)
		if w.stopped {
			break
		}

		if maximizing {
			if score > value {
				value, bestMove = score, m
			}
			alpha = Max(alpha, value)
		} else {
			if score < value {
				value, bestMove = score, m
			}
			beta = Min(beta, value)
		}

		if alpha >= beta {
			if maximizing {
				w.stats.BetaCutoffs++
			} else {
				w.stats.AlphaCutoffs++
			}
			if w.killers != nil {
				w.killers.InsertKiller(m, depth)
			}
			if w.history != nil {
				w.history.Increment(m, depth)
			}
			break
		}
	}

	subtreeHorizon := w.horizon
	w.horizon = outerHorizon || subtreeHorizon
	if w.stopped {
		return w.evaluate()
	}
	if w.tt != nil {
		w.tt.Put(TTEntry{
			Hash:    w.hash,
			Depth:   ttDepth,
			Value:   value,
			Move:    bestMove,
			Bound:   boundFor(value, alphaOrig, betaOrig),
			Horizon: subtreeHorizon,
		})
	}
	return value
}

type rootResult struct {
	index int
	value float64
}

// searchRoot searches the root moves at the given indices with the root
// player maximizing. It fails with errSearchAborted if the deadline passed
// before every move was searched.
func (w *worker) searchRoot(moves []board.Move, indices []int, depth int) (rootResult, error) {
	res := rootResult{index: -1, value: math.Inf(-1)}
	alpha, beta := math.Inf(-1), math.Inf(1)
	for _, i := range indices {
		u, prevHash := w.apply(moves[i], w.root)
		score := w.minimax(depth-1, w.root.Opponent(), false, alpha, beta)
		w.undo(u, prevHash)
		if w.stopped {
			return res, errSearchAborted
		}
		if res.index < 0 || score > res.value {
			res.index, res.value = i, score
		}
		alpha = Max(alpha, score)
	}
	return res, nil
}
