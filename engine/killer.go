package engine

import (
	"cephalopod/board"
)

// KillerStruct keeps two moves per remaining depth that recently caused a
// cutoff.
type KillerStruct struct {
	KillerMoves [][2]board.Move
}

func NewKillers(maxDepth int) *KillerStruct {
	k := &KillerStruct{KillerMoves: make([][2]board.Move, maxDepth+1)}
	k.ClearKillers()
	return k
}

// ensure grows the table to hold depth.
func (k *KillerStruct) ensure(depth int) {
	for len(k.KillerMoves) < depth+1 {
		k.KillerMoves = append(k.KillerMoves, [2]board.Move{board.NoMove, board.NoMove})
	}
}

func (k *KillerStruct) InsertKiller(move board.Move, depth int) {
	if depth < 0 || depth >= len(k.KillerMoves) {
		return
	}
	if move != k.KillerMoves[depth][0] {
		k.KillerMoves[depth][1] = k.KillerMoves[depth][0]
		k.KillerMoves[depth][0] = move
	}
}

// KillerRank is 2 for the newest killer at depth, 1 for the older and 0 for
// anything else.
func (k *KillerStruct) KillerRank(move board.Move, depth int) int {
	if depth < 0 || depth >= len(k.KillerMoves) {
		return 0
	}
	switch move {
	case k.KillerMoves[depth][0]:
		return 2
	case k.KillerMoves[depth][1]:
		return 1
	}
	return 0
}

// Clear the killer moves table.
func (k *KillerStruct) ClearKillers() {
	for depth := range k.KillerMoves {
		k.KillerMoves[depth][0] = board.NoMove
		k.KillerMoves[depth][1] = board.NoMove
	}
}
