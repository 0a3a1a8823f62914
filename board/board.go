package board

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// MaxPips is the highest face a die can show.
const MaxPips = 6

// DefaultSize is the board size used by the real game.
const DefaultSize = 5

type Color uint8

const (
	NoColor Color = 0
	ColorA  Color = 1
	ColorB  Color = 2
)

// Opponent returns the other side. NoColor has no opponent.
func (c Color) Opponent() Color {
	switch c {
	case ColorA:
		return ColorB
	case ColorB:
		return ColorA
	default:
		return NoColor
	}
}

func (c Color) String() string {
	switch c {
	case ColorA:
		return "A"
	case ColorB:
		return "B"
	default:
		return "-"
	}
}

// ParseColor accepts "A"/"B" in either case.
func ParseColor(s string) (Color, error) {
	switch s {
	case "A", "a":
		return ColorA, nil
	case "B", "b":
		return ColorB, nil
	}
	return NoColor, errors.Errorf("unknown color %q", s)
}

// Cell is one square of the grid. The zero value is an empty cell.
type Cell struct {
	Owner Color
	Pips  uint8
}

func (c Cell) Empty() bool { return c.Owner == NoColor }

// Coord addresses a cell by row and column.
type Coord struct {
	Row, Col int
}

// Board is a size x size grid of dice stored row-major.
type Board struct {
	size  int
	cells []Cell
}

// MaxSize is the largest supported board; Move stores coordinates as int8.
const MaxSize = math.MaxInt8

// New returns an empty board of the given size.
func New(size int) *Board {
	if size <= 0 || size > MaxSize {
		panic(fmt.Sprintf("board: invalid size %d", size))
	}
	return &Board{size: size, cells: make([]Cell, size*size)}
}

func (b *Board) Size() int { return b.size }

func (b *Board) inBounds(r, c int) bool {
	return r >= 0 && r < b.size && c >= 0 && c < b.size
}

func (b *Board) index(r, c int) int {
	if !b.inBounds(r, c) {
		panic(fmt.Sprintf("board: (%d,%d) out of bounds for size %d", r, c, b.size))
	}
	return r*b.size + c
}

// At returns the cell at (r,c).
func (b *Board) At(r, c int) Cell { return b.cells[b.index(r, c)] }

// Place puts a die on an empty cell.
func (b *Board) Place(r, c int, owner Color, pips uint8) {
	i := b.index(r, c)
	if !b.cells[i].Empty() {
		panic(fmt.Sprintf("board: place on occupied cell (%d,%d)", r, c))
	}
	if owner == NoColor || pips < 1 || pips > MaxPips {
		panic(fmt.Sprintf("board: invalid die %v/%d", owner, pips))
	}
	b.cells[i] = Cell{Owner: owner, Pips: pips}
}

// Remove clears the cell at (r,c).
func (b *Board) Remove(r, c int) {
	b.cells[b.index(r, c)] = Cell{}
}

// Clone returns an independent deep copy.
func (b *Board) Clone() *Board {
	cells := make([]Cell, len(b.cells))
	copy(cells, b.cells)
	return &Board{size: b.size, cells: cells}
}

// EmptyCells lists the empty cells in row-major order. Move generation
// depends on this order.
func (b *Board) EmptyCells() []Coord {
	out := make([]Coord, 0, len(b.cells))
	for i, cell := range b.cells {
		if cell.Empty() {
			out = append(out, Coord{Row: i / b.size, Col: i % b.size})
		}
	}
	return out
}

// EmptyCount returns the number of empty cells.
func (b *Board) EmptyCount() int {
	n := 0
	for _, cell := range b.cells {
		if cell.Empty() {
			n++
		}
	}
	return n
}

// Neighbors returns the in-bounds orthogonal neighbours of (r,c) in the
// order up, down, left, right.
func (b *Board) Neighbors(r, c int) []Coord {
	out := make([]Coord, 0, 4)
	for _, d := range directions {
		nr, nc := r+d.Row, c+d.Col
		if b.inBounds(nr, nc) {
			out = append(out, Coord{Row: nr, Col: nc})
		}
	}
	return out
}

func (b *Board) IsFull() bool {
	for _, cell := range b.cells {
		if cell.Empty() {
			return false
		}
	}
	return true
}

// Count returns the number of dice owned by owner.
func (b *Board) Count(owner Color) int {
	n := 0
	for _, cell := range b.cells {
		if cell.Owner == owner {
			n++
		}
	}
	return n
}

// Equal reports whether both boards have the same size and contents.
func (b *Board) Equal(o *Board) bool {
	if b.size != o.size {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// Winner decides a finished game by dice count. It returns NoColor while the
// board still has empty cells or when the counts are level.
func Winner(b *Board) Color {
	if !b.IsFull() {
		return NoColor
	}
	a, bb := b.Count(ColorA), b.Count(ColorB)
	switch {
	case a > bb:
		return ColorA
	case bb > a:
		return ColorB
	default:
		return NoColor
	}
}
