package engine

import (
	"context"
	"time"
)

// TimeHandler decides when a search must stop. The deadline is the budget
// minus a safety margin; a context deadline or cancellation stops it too.
type TimeHandler struct {
	ctx              context.Context
	start            time.Time
	timeForMove      time.Time
	usingCustomDepth bool
}

func (th *TimeHandler) initTimemanagement(ctx context.Context, budget, margin time.Duration) {
	if ctx == nil {
		ctx = context.Background()
	}
	th.ctx = ctx
	th.start = time.Now()
	th.usingCustomDepth = false

	usable := budget - margin
	if usable <= 0 {
		// Budget smaller than the margin: spend half of it.
		usable = budget / 2
	}
	th.timeForMove = th.start.Add(usable)
	if d, ok := ctx.Deadline(); ok && d.Before(th.timeForMove) {
		th.timeForMove = d
	}
}

func (th *TimeHandler) initCustomDepth() {
	th.ctx = context.Background()
	th.start = time.Now()
	th.usingCustomDepth = true
}

// TimeStatus reports whether the search has to stop.
func (th *TimeHandler) TimeStatus() bool {
	if th.usingCustomDepth {
		return false
	}
	if th.ctx.Err() != nil {
		return true
	}
	return th.timeForMove.Before(time.Now())
}

func (th *TimeHandler) Deadline() time.Time { return th.timeForMove }

func (th *TimeHandler) Elapsed() time.Duration { return time.Since(th.start) }
