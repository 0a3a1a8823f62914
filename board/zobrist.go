package board

import (
	"encoding/binary"

	"lukechampine.com/frand"
)

// DefaultZobristSeed is used when callers do not need a specific table.
const DefaultZobristSeed uint64 = 0xC0DE

// ZobristTable holds one random key per (row, col, pips, owner) and a side
// key. It is immutable after construction and safe for concurrent readers.
type ZobristTable struct {
	size int
	keys []uint64
	side uint64
}

// NewZobristTable builds the keys for a size x size board from seed. Equal
// seeds yield equal tables.
func NewZobristTable(size int, seed uint64) *ZobristTable {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:8], seed)
	binary.LittleEndian.PutUint64(key[8:16], uint64(size))
	rng := frand.NewCustom(key[:], 1024, 12)

	next := func() uint64 {
		var buf [8]byte
		for {
			rng.Read(buf[:])
			if v := binary.LittleEndian.Uint64(buf[:]); v != 0 {
				return v
			}
		}
	}

	z := &ZobristTable{size: size, keys: make([]uint64, size*size*MaxPips*2)}
	for i := range z.keys {
		z.keys[i] = next()
	}
	z.side = next()
	return z
}

func (z *ZobristTable) Size() int { return z.size }

// Key returns the key for a die of owner showing pips at (r,c).
func (z *ZobristTable) Key(r, c int, pips uint8, owner Color) uint64 {
	return z.keys[((r*z.size+c)*MaxPips+int(pips-1))*2+int(owner-1)]
}

// Side is folded into the hash when B is to move.
func (z *ZobristTable) Side() uint64 { return z.side }

// Hash computes the key of b from scratch, with toMove to play.
func (z *ZobristTable) Hash(b *Board, toMove Color) uint64 {
	if b.size != z.size {
		panic("zobrist: board size does not match table")
	}
	var h uint64
	for i, cell := range b.cells {
		if !cell.Empty() {
			h ^= z.Key(i/b.size, i%b.size, cell.Pips, cell.Owner)
		}
	}
	if toMove == ColorB {
		h ^= z.side
	}
	return h
}

// Update returns the hash after color plays m on b. It must be called
// before m is applied, since it reads the captured dice from b.
func (z *ZobristTable) Update(h uint64, b *Board, m Move, color Color) uint64 {
	r, c := int(m.Row), int(m.Col)
	for bit, d := range directions {
		if m.Capture&(1<<bit) == 0 {
			continue
		}
		nr, nc := r+d.Row, c+d.Col
		cell := b.cells[nr*b.size+nc]
		h ^= z.Key(nr, nc, cell.Pips, cell.Owner)
	}
	h ^= z.Key(r, c, m.Face, color)
	return h ^ z.side
}
