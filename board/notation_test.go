package board

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseBoardRoundTrip(t *testing.T) {
	for _, s := range []string{
		EmptyBoard5,
		"A1B2./..A6/B3..",
		"A6",
	} {
		b, err := ParseBoard(s)
		require.NoError(t, err)
		require.Equal(t, s, b.String())
	}
}

func emptyNotation(size int) string {
	row := strings.Repeat(".", size)
	return strings.TrimSuffix(strings.Repeat(row+"/", size), "/")
}

func TestParseBoardSizeLimit(t *testing.T) {
	_, err := ParseBoard(emptyNotation(MaxSize + 3))
	require.Error(t, err)

	b, err := ParseBoard(emptyNotation(MaxSize))
	require.NoError(t, err)
	moves := GenerateMoves(b, CaptureBest)
	require.Len(t, moves, MaxSize*MaxSize)
	last := moves[len(moves)-1]
	require.Equal(t, int8(MaxSize-1), last.Row)
	require.Equal(t, int8(MaxSize-1), last.Col)
	for _, m := range moves {
		require.True(t, m.Row >= 0 && m.Col >= 0, m.String())
	}
}

func TestParseBoardErrors(t *testing.T) {
	for _, s := range []string{
		"",
		"A1../..",
		"A7./..",
		"A../..",
		"C1./..",
		"..../..",
	} {
		_, err := ParseBoard(s)
		require.Error(t, err, s)
	}
}

func TestPrettyMarksDice(t *testing.T) {
	b := mustParse(t, "A1./.B6")
	out := b.Pretty()
	require.Contains(t, out, "A1")
	require.Contains(t, out, "B6")
}
