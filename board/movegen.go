package board

// CaptureMode selects how captures are offered for a cell.
type CaptureMode uint8

const (
	// CaptureBest offers exactly one move per empty cell: the largest
	// eligible subset, then the largest sum, earliest in enumeration order.
	CaptureBest CaptureMode = iota
	// CaptureAll offers every eligible subset as its own move. A bare
	// placement is only offered when no subset is eligible.
	CaptureAll
)

func (m CaptureMode) String() string {
	if m == CaptureAll {
		return "all"
	}
	return "best"
}

// subsets[n] lists index combinations of size >= 2 over n neighbours, by
// size and then lexicographically.
var subsets [5][][]int

func init() {
	for n := 2; n <= 4; n++ {
		for k := 2; k <= n; k++ {
			subsets[n] = append(subsets[n], combinations(n, k)...)
		}
	}
}

func combinations(n, k int) [][]int {
	var out [][]int
	idx := make([]int, k)
	var rec func(start, depth int)
	rec = func(start, depth int) {
		if depth == k {
			out = append(out, append([]int(nil), idx...))
			return
		}
		for i := start; i < n; i++ {
			idx[depth] = i
			rec(i+1, depth+1)
		}
	}
	rec(0, 0)
	return out
}

type neighbour struct {
	bit  uint8
	pips uint8
}

func (b *Board) occupiedNeighbours(r, c int, out *[4]neighbour) int {
	n := 0
	for bit, d := range directions {
		nr, nc := r+d.Row, c+d.Col
		if !b.inBounds(nr, nc) {
			continue
		}
		cell := b.cells[nr*b.size+nc]
		if cell.Empty() {
			continue
		}
		out[n] = neighbour{bit: 1 << bit, pips: cell.Pips}
		n++
	}
	return n
}

// BestMoveAt returns the move the capture policy selects for the empty cell
// (r,c).
func (b *Board) BestMoveAt(r, c int) Move {
	var nb [4]neighbour
	n := b.occupiedNeighbours(r, c, &nb)
	best := Move{Row: int8(r), Col: int8(c), Face: 1}
	bestSize, bestSum := 0, 0
	for _, set := range subsets[n] {
		sum := 0
		var mask uint8
		for _, i := range set {
			sum += int(nb[i].pips)
			mask |= nb[i].bit
		}
		if sum > MaxPips {
			continue
		}
		if len(set) > bestSize || (len(set) == bestSize && sum > bestSum) {
			bestSize, bestSum = len(set), sum
			best.Face, best.Capture = uint8(sum), mask
		}
	}
	return best
}

func (b *Board) allMovesAt(r, c int, out []Move) []Move {
	var nb [4]neighbour
	n := b.occupiedNeighbours(r, c, &nb)
	start := len(out)
	for _, set := range subsets[n] {
		sum := 0
		var mask uint8
		for _, i := range set {
			sum += int(nb[i].pips)
			mask |= nb[i].bit
		}
		if sum <= MaxPips {
			out = append(out, Move{Row: int8(r), Col: int8(c), Face: uint8(sum), Capture: mask})
		}
	}
	if len(out) == start {
		out = append(out, Move{Row: int8(r), Col: int8(c), Face: 1})
	}
	return out
}

// EnumerateMoves returns one move per empty cell in row-major order. Legality
// does not depend on the mover; the mover only owns the placed die.
func EnumerateMoves(b *Board) []Move {
	return GenerateMovesInto(b, CaptureBest, make([]Move, 0, len(b.cells)))
}

// EnumerateAllCaptures returns every legal capture choice per empty cell.
func EnumerateAllCaptures(b *Board) []Move {
	return GenerateMovesInto(b, CaptureAll, make([]Move, 0, len(b.cells)))
}

// GenerateMovesInto appends the moves for mode to dst and returns it.
func GenerateMovesInto(b *Board, mode CaptureMode, dst []Move) []Move {
	for i, cell := range b.cells {
		if !cell.Empty() {
			continue
		}
		r, c := i/b.size, i%b.size
		if mode == CaptureAll {
			dst = b.allMovesAt(r, c, dst)
		} else {
			dst = append(dst, b.BestMoveAt(r, c))
		}
	}
	return dst
}

// GenerateMoves dispatches on mode.
func GenerateMoves(b *Board, mode CaptureMode) []Move {
	return GenerateMovesInto(b, mode, make([]Move, 0, len(b.cells)))
}

// HasCaptureOf reports whether any empty cell offers a capture showing face
// under mode.
func HasCaptureOf(b *Board, mode CaptureMode, face uint8) bool {
	var nb [4]neighbour
	for i, cell := range b.cells {
		if !cell.Empty() {
			continue
		}
		r, c := i/b.size, i%b.size
		if mode == CaptureBest {
			if m := b.BestMoveAt(r, c); m.IsCapture() && m.Face == face {
				return true
			}
			continue
		}
		n := b.occupiedNeighbours(r, c, &nb)
		for _, set := range subsets[n] {
			sum := 0
			for _, j := range set {
				sum += int(nb[j].pips)
			}
			if sum == int(face) {
				return true
			}
		}
	}
	return false
}
