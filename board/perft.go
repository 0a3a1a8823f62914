package board

// Perft counts the move sequences of exactly depth plies, or shorter ones
// that end on a full board.
func Perft(b *Board, color Color, depth int, mode CaptureMode) uint64 {
	if depth == 0 || b.IsFull() {
		return 1
	}
	var nodes uint64
	for _, m := range GenerateMoves(b, mode) {
		u := b.Apply(m, color)
		nodes += Perft(b, color.Opponent(), depth-1, mode)
		b.Undo(u)
	}
	return nodes
}

// PerftDivide returns the perft count below each root move.
func PerftDivide(b *Board, color Color, depth int, mode CaptureMode) map[Move]uint64 {
	out := make(map[Move]uint64)
	if depth == 0 {
		return out
	}
	for _, m := range GenerateMoves(b, mode) {
		u := b.Apply(m, color)
		out[m] = Perft(b, color.Opponent(), depth-1, mode)
		b.Undo(u)
	}
	return out
}
