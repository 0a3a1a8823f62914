package engine

import (
	"time"

	"cephalopod/board"

	"github.com/rs/zerolog"
)

const (
	DefaultSafetyMargin = 150 * time.Millisecond
	DefaultPollInterval = 1024

	maxPollInterval = 1 << 16
)

type Option func(*Searcher)

// WithEvaluator sets the leaf evaluator. The default is NewMaterialEvaluator.
func WithEvaluator(e Evaluator) Option {
	return func(s *Searcher) { s.evaluator = e }
}

// WithWeights evaluates with a WeightedEvaluator over w.
func WithWeights(w Weights) Option {
	return func(s *Searcher) { s.evaluator = NewWeightedEvaluator(w) }
}

// WithOrdering sets the static move ordering. The default is
// SixCaptureOrdering in the searcher's capture mode.
func WithOrdering(p MoveOrderingPolicy) Option {
	return func(s *Searcher) { s.ordering = p }
}

func WithCaptureMode(m board.CaptureMode) Option {
	return func(s *Searcher) { s.mode = m }
}

func WithTransposition(on bool) Option {
	return func(s *Searcher) { s.useTT = on }
}

func WithKillers(on bool) Option {
	return func(s *Searcher) { s.useKillers = on }
}

func WithHistory(on bool) Option {
	return func(s *Searcher) { s.useHistory = on }
}

func WithSafetyMargin(d time.Duration) Option {
	return func(s *Searcher) { s.safetyMargin = d }
}

// WithPollInterval sets how many nodes pass between clock checks. It is
// clamped to [1, maxPollInterval] and rounded up to a power of two.
func WithPollInterval(n int) Option {
	return func(s *Searcher) {
		n = Clamp(n, 1, maxPollInterval)
		p := 1
		for p < n {
			p <<= 1
		}
		s.pollMask = uint64(p - 1)
	}
}

// WithMaxDepth caps iterative deepening. Zero means MaxDepth; deepening also
// stops once the game tree is exhausted.
func WithMaxDepth(depth int) Option {
	return func(s *Searcher) { s.maxDepth = depth }
}

// WithWorkers splits the root moves over n goroutines.
func WithWorkers(n int) Option {
	return func(s *Searcher) { s.workers = Max(n, 1) }
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Searcher) { s.logger = l }
}
