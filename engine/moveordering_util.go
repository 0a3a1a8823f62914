package engine

import (
	"cephalopod/board"
)

/*
	HISTORY
	Every move that causes a cutoff gets depth*depth added to its score. The
	score outlives the node it was earned in, so a move that refutes one line
	is tried early in its siblings too. Scores are halved once any entry
	passes historyMaxVal.
*/

var historyMaxVal = 10000

// moves are indexed by cell, face and capture mask
const historyFaces = board.MaxPips + 1
const historyMasks = 16

type historyTable struct {
	size   int
	scores []int
}

func newHistoryTable(size int) *historyTable {
	return &historyTable{size: size, scores: make([]int, size*size*historyFaces*historyMasks)}
}

func (h *historyTable) index(m board.Move) int {
	cell := int(m.Row)*h.size + int(m.Col)
	return (cell*historyFaces+int(m.Face))*historyMasks + int(m.Capture)
}

func (h *historyTable) Score(m board.Move) int {
	return h.scores[h.index(m)]
}

// Increment the history score for a move that caused a cutoff.
func (h *historyTable) Increment(m board.Move, depth int) {
	i := h.index(m)
	h.scores[i] += depth * depth
	if h.scores[i] >= historyMaxVal {
		h.age()
	}
}

// Age the values in the history table by halving them.
func (h *historyTable) age() {
	for i := range h.scores {
		h.scores[i] /= 2
	}
}
