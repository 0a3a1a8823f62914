package engine

import (
	"cephalopod/board"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// searchIteration runs one depth over the ordered root moves. With several
// workers the moves are dealt round-robin; each worker searches its share on
// its own board, transposition table, killers and history. The iteration
// only counts if every worker finished.
func (s *Searcher) searchIteration(workers []*worker, moves []board.Move, depth int) (board.Move, float64, error) {
	all := lo.Range(len(moves))
	if len(workers) == 1 {
		res, err := workers[0].searchRoot(moves, all, depth)
		if err != nil {
			return board.NoMove, 0, err
		}
		return moves[res.index], res.value, nil
	}

	results := make([]rootResult, len(workers))
	var g errgroup.Group
	for i, w := range workers {
		i, w := i, w
		share := lo.Filter(all, func(idx int, _ int) bool { return idx%len(workers) == i })
		if len(share) == 0 {
			results[i] = rootResult{index: -1}
			continue
		}
		g.Go(func() error {
			res, err := w.searchRoot(moves, share, depth)
			results[i] = res
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return board.NoMove, 0, err
	}

	best := rootResult{index: -1}
	for _, r := range results {
		if r.index < 0 {
			continue
		}
		if best.index < 0 || r.value > best.value || (r.value == best.value && r.index < best.index) {
			best = r
		}
	}
	return moves[best.index], best.value, nil
}
