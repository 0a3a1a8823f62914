package board

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Direction bits used in Move.Capture, in neighbour enumeration order.
const (
	CaptureUp uint8 = 1 << iota
	CaptureDown
	CaptureLeft
	CaptureRight
)

var directions = [4]Coord{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// Move places a die showing Face at (Row, Col). Capture is a bitmask of the
// neighbouring dice removed by the placement; it is zero for a bare
// placement, in which case Face is 1.
type Move struct {
	Row, Col int8
	Face     uint8
	Capture  uint8
}

// NoMove is returned when no legal move exists.
var NoMove = Move{Row: -1, Col: -1}

func (m Move) IsNoMove() bool { return m == NoMove }

// IsCapture reports whether the move removes dice.
func (m Move) IsCapture() bool { return m.Capture != 0 }

// CaptureCount returns how many dice the move removes.
func (m Move) CaptureCount() int {
	n := 0
	for bit := 0; bit < 4; bit++ {
		if m.Capture&(1<<bit) != 0 {
			n++
		}
	}
	return n
}

// Captured expands the capture mask into coordinates, up/down/left/right.
func (m Move) Captured() []Coord {
	if m.Capture == 0 {
		return nil
	}
	out := make([]Coord, 0, 4)
	for bit, d := range directions {
		if m.Capture&(1<<bit) != 0 {
			out = append(out, Coord{Row: int(m.Row) + d.Row, Col: int(m.Col) + d.Col})
		}
	}
	return out
}

func (m Move) String() string {
	if m.IsNoMove() {
		return "none"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d,%d:%d", m.Row, m.Col, m.Face)
	for _, c := range m.Captured() {
		fmt.Fprintf(&sb, "x%d,%d", c.Row, c.Col)
	}
	return sb.String()
}

// Undo holds what is needed to revert an applied move.
type Undo struct {
	move     Move
	captured [4]Cell
}

// Apply plays m for color in place. The move must satisfy the capture
// invariants; a violation panics.
func (b *Board) Apply(m Move, color Color) Undo {
	u := Undo{move: m}
	r, c := int(m.Row), int(m.Col)
	sum := 0
	for bit, d := range directions {
		if m.Capture&(1<<bit) == 0 {
			continue
		}
		i := b.index(r+d.Row, c+d.Col)
		if b.cells[i].Empty() {
			panic(fmt.Sprintf("board: move %v captures an empty cell", m))
		}
		u.captured[bit] = b.cells[i]
		sum += int(b.cells[i].Pips)
		b.cells[i] = Cell{}
	}
	if (m.Capture == 0 && m.Face != 1) || (m.Capture != 0 && sum != int(m.Face)) {
		panic(fmt.Sprintf("board: move %v face does not match captured pips %d", m, sum))
	}
	b.Place(r, c, color, m.Face)
	return u
}

// Undo reverts a move returned by Apply. Moves must be undone in reverse order.
func (b *Board) Undo(u Undo) {
	r, c := int(u.move.Row), int(u.move.Col)
	b.Remove(r, c)
	for bit, d := range directions {
		if u.move.Capture&(1<<bit) != 0 {
			b.cells[b.index(r+d.Row, c+d.Col)] = u.captured[bit]
		}
	}
}

// CheckMove validates a move supplied by a collaborator against the board.
func CheckMove(b *Board, m Move) error {
	r, c := int(m.Row), int(m.Col)
	if !b.inBounds(r, c) {
		return errors.Errorf("move %v is out of bounds", m)
	}
	if !b.At(r, c).Empty() {
		return errors.Errorf("move %v targets an occupied cell", m)
	}
	if m.Capture == 0 {
		if m.Face != 1 {
			return errors.Errorf("bare placement %v must show 1", m)
		}
		return nil
	}
	if m.Capture > 0xF || m.CaptureCount() < 2 {
		return errors.Errorf("move %v must capture at least two dice", m)
	}
	sum := 0
	for _, nc := range m.Captured() {
		if !b.inBounds(nc.Row, nc.Col) || b.At(nc.Row, nc.Col).Empty() {
			return errors.Errorf("move %v captures an empty or missing cell %v", m, nc)
		}
		sum += int(b.At(nc.Row, nc.Col).Pips)
	}
	if sum > MaxPips || sum != int(m.Face) {
		return errors.Errorf("move %v face does not match captured sum %d", m, sum)
	}
	return nil
}

// ParseMove reads the form produced by Move.String, e.g. "2,3:5x1,3x2,2".
func ParseMove(s string) (Move, error) {
	parts := strings.Split(strings.TrimSpace(s), "x")
	head := strings.SplitN(parts[0], ":", 2)
	if len(head) != 2 {
		return NoMove, errors.Errorf("malformed move %q", s)
	}
	var r, c, face int
	if _, err := fmt.Sscanf(head[0]+" "+head[1], "%d,%d %d", &r, &c, &face); err != nil {
		return NoMove, errors.Wrapf(err, "malformed move %q", s)
	}
	if face < 1 || face > MaxPips {
		return NoMove, errors.Errorf("move %q has invalid face %d", s, face)
	}
	if r < 0 || r >= MaxSize || c < 0 || c >= MaxSize {
		return NoMove, errors.Errorf("move %q is outside any supported board", s)
	}
	m := Move{Row: int8(r), Col: int8(c), Face: uint8(face)}
	for _, p := range parts[1:] {
		var cr, cc int
		if _, err := fmt.Sscanf(p, "%d,%d", &cr, &cc); err != nil {
			return NoMove, errors.Wrapf(err, "malformed capture in %q", s)
		}
		bit := -1
		for i, d := range directions {
			if r+d.Row == cr && c+d.Col == cc {
				bit = i
			}
		}
		if bit < 0 {
			return NoMove, errors.Errorf("capture %d,%d is not adjacent to %d,%d", cr, cc, r, c)
		}
		m.Capture |= 1 << bit
	}
	return m, nil
}
