package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"cephalopod/board"
	"cephalopod/engine"

	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.Equal(t, 5, cfg.BoardSize)
	require.Equal(t, engine.DefaultWeights(), cfg.Weights)
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
board_size: 4
time_budget: 1500ms
workers: 2
transposition: false
ordering: capture
capture_mode: all
weights:
  piece: 2
  center_bonus: 0.5
`))
	require.NoError(t, err)
	require.Equal(t, 4, cfg.BoardSize)
	require.Equal(t, 1500*time.Millisecond, cfg.TimeBudget)
	require.Equal(t, engine.DefaultSafetyMargin, cfg.SafetyMargin)
	require.Equal(t, 2, cfg.Workers)
	require.False(t, cfg.Transposition)
	require.True(t, cfg.Killers)
	require.Equal(t, engine.Weights{"piece": 2, "center_bonus": 0.5}, cfg.Weights)

	mode, err := ParseCaptureMode(cfg.CaptureMode)
	require.NoError(t, err)
	require.Equal(t, board.CaptureAll, mode)
	require.Len(t, cfg.SearcherOptions(), 10)
}

func TestParseKeepsDefaultWeights(t *testing.T) {
	cfg, err := Parse([]byte("max_depth: 3\n"))
	require.NoError(t, err)
	require.Equal(t, 3, cfg.MaxDepth)
	require.Equal(t, engine.DefaultWeights(), cfg.Weights)
}

func TestValidateRejects(t *testing.T) {
	for name, doc := range map[string]string{
		"size":     "board_size: 1",
		"too big":  "board_size: 128",
		"budget":   "time_budget: 0s",
		"workers":  "workers: 0",
		"ordering": "ordering: random",
		"mode":     "capture_mode: some",
		"weights":  "weights: {piece: 1, bogus: 2}",
		"syntax":   "board_size: [",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			require.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yaml")
	require.NoError(t, os.WriteFile(path, []byte("seed: 99\n"), 0o644))
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, uint64(99), cfg.Seed)
	require.Equal(t, 5, cfg.Zobrist().Size())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestParseWeights(t *testing.T) {
	w, err := ParseWeights("piece=1, six=8,center_bonus=0.25,")
	require.NoError(t, err)
	require.Equal(t, engine.Weights{"piece": 1, "six": 8, "center_bonus": 0.25}, w)

	_, err = ParseWeights("piece")
	require.Error(t, err)
	_, err = ParseWeights("piece=abc")
	require.Error(t, err)
}

func TestWeightsFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.json")
	w := engine.Weights{"piece": 1.5, "exposure_penalty": 0.2}
	require.NoError(t, SaveWeights(path, w))

	got, err := LoadWeights(path)
	require.NoError(t, err)
	require.Equal(t, w, got)

	_, err = os.Stat(path + ".tmp")
	require.True(t, os.IsNotExist(err))
}

func TestConfiguredSearcherPlays(t *testing.T) {
	cfg := Default()
	cfg.BoardSize = 3
	cfg.MaxDepth = 2
	s := cfg.NewSearcher(cfg.Zobrist())
	m, stats := s.SearchDepth(board.New(3), board.ColorA, 2)
	require.NoError(t, board.CheckMove(board.New(3), m))
	require.Equal(t, 2, stats.CompletedDepth)
}
