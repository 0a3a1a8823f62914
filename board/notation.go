package board

import (
	"strings"

	"github.com/pkg/errors"
)

// EmptyBoard5 is the notation of the starting position.
const EmptyBoard5 = "...../...../...../...../....."

// ParseBoard reads a board written as rows separated by '/', with '.' for an
// empty cell and an owner letter followed by a pip digit for a die, e.g.
// "A1.B2/.../..A6". The board must be square.
func ParseBoard(s string) (*Board, error) {
	rows := strings.Split(strings.TrimSpace(s), "/")
	size := len(rows)
	if size > MaxSize {
		return nil, errors.Errorf("board has %d rows, at most %d are supported", size, MaxSize)
	}
	b := New(size)
	for r, row := range rows {
		c := 0
		for i := 0; i < len(row); i++ {
			if c >= size {
				return nil, errors.Errorf("row %d of %q is longer than %d cells", r, s, size)
			}
			switch ch := row[i]; ch {
			case '.':
				c++
			case 'A', 'a', 'B', 'b':
				if i+1 >= len(row) {
					return nil, errors.Errorf("row %d: die %q has no pip value", r, ch)
				}
				pips := row[i+1]
				if pips < '1' || pips > '6' {
					return nil, errors.Errorf("row %d: invalid pips %q", r, pips)
				}
				owner := ColorA
				if ch == 'B' || ch == 'b' {
					owner = ColorB
				}
				b.Place(r, c, owner, pips-'0')
				i++
				c++
			default:
				return nil, errors.Errorf("row %d: unexpected character %q", r, ch)
			}
		}
		if c != size {
			return nil, errors.Errorf("row %d of %q has %d cells, want %d", r, s, c, size)
		}
	}
	return b, nil
}

// String returns the notation accepted by ParseBoard.
func (b *Board) String() string {
	var sb strings.Builder
	for r := 0; r < b.size; r++ {
		if r > 0 {
			sb.WriteByte('/')
		}
		for c := 0; c < b.size; c++ {
			cell := b.cells[r*b.size+c]
			if cell.Empty() {
				sb.WriteByte('.')
				continue
			}
			sb.WriteString(cell.Owner.String())
			sb.WriteByte('0' + cell.Pips)
		}
	}
	return sb.String()
}

// Pretty renders the board as a grid for terminals.
func (b *Board) Pretty() string {
	var sb strings.Builder
	sb.WriteString("   ")
	for c := 0; c < b.size; c++ {
		sb.WriteString(" ")
		sb.WriteByte('0' + byte(c%10))
		sb.WriteString(" ")
	}
	sb.WriteByte('\n')
	for r := 0; r < b.size; r++ {
		sb.WriteByte('0' + byte(r%10))
		sb.WriteString("  ")
		for c := 0; c < b.size; c++ {
			cell := b.cells[r*b.size+c]
			if cell.Empty() {
				sb.WriteString(" . ")
				continue
			}
			sb.WriteByte(' ')
			sb.WriteString(cell.Owner.String())
			sb.WriteByte('0' + cell.Pips)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
