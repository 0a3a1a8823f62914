package config

import (
	"os"
	"time"

	"cephalopod/board"
	"cephalopod/engine"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Ordering names accepted in Config.Ordering.
const (
	OrderingSixCapture = "six-capture"
	OrderingCapture    = "capture"
	OrderingNone       = "none"
)

// Config collects everything needed to build a searcher and run games.
type Config struct {
	BoardSize     int            `yaml:"board_size"`
	TimeBudget    time.Duration  `yaml:"time_budget"`
	SafetyMargin  time.Duration  `yaml:"safety_margin"`
	PollInterval  int            `yaml:"poll_interval"`
	MaxDepth      int            `yaml:"max_depth"`
	Workers       int            `yaml:"workers"`
	Transposition bool           `yaml:"transposition"`
	Killers       bool           `yaml:"killers"`
	History       bool           `yaml:"history"`
	Ordering      string         `yaml:"ordering"`
	CaptureMode   string         `yaml:"capture_mode"`
	Seed          uint64         `yaml:"seed"`
	Weights       engine.Weights `yaml:"weights"`
}

func Default() Config {
	return Config{
		BoardSize:     board.DefaultSize,
		TimeBudget:    3 * time.Second,
		SafetyMargin:  engine.DefaultSafetyMargin,
		PollInterval:  engine.DefaultPollInterval,
		Workers:       1,
		Transposition: true,
		Killers:       true,
		History:       true,
		Ordering:      OrderingSixCapture,
		CaptureMode:   board.CaptureBest.String(),
		Seed:          board.DefaultZobristSeed,
		Weights:       engine.DefaultWeights(),
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file keep
// their default value; a weights map in the file replaces the default one.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "reading config %s", path)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	cfg.Weights = nil
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), errors.Wrap(err, "decoding config")
	}
	if cfg.Weights == nil {
		cfg.Weights = engine.DefaultWeights()
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.BoardSize < 2 || c.BoardSize > board.MaxSize {
		return errors.Errorf("board_size must be between 2 and %d, got %d", board.MaxSize, c.BoardSize)
	}
	if c.TimeBudget <= 0 {
		return errors.Errorf("time_budget must be positive, got %s", c.TimeBudget)
	}
	if c.SafetyMargin < 0 {
		return errors.Errorf("safety_margin must not be negative, got %s", c.SafetyMargin)
	}
	if c.PollInterval <= 0 {
		return errors.Errorf("poll_interval must be positive, got %d", c.PollInterval)
	}
	if c.MaxDepth < 0 {
		return errors.Errorf("max_depth must not be negative, got %d", c.MaxDepth)
	}
	if c.Workers < 1 {
		return errors.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if _, err := c.orderingPolicy(); err != nil {
		return err
	}
	if _, err := ParseCaptureMode(c.CaptureMode); err != nil {
		return err
	}
	if unknown := c.Weights.Unknown(); len(unknown) > 0 {
		return errors.Errorf("unknown weights %v", unknown)
	}
	return nil
}

// ParseCaptureMode accepts "best" or "all".
func ParseCaptureMode(s string) (board.CaptureMode, error) {
	switch s {
	case "", "best":
		return board.CaptureBest, nil
	case "all":
		return board.CaptureAll, nil
	}
	return board.CaptureBest, errors.Errorf("unknown capture mode %q", s)
}

func (c Config) orderingPolicy() (engine.MoveOrderingPolicy, error) {
	mode, err := ParseCaptureMode(c.CaptureMode)
	if err != nil {
		return nil, err
	}
	switch c.Ordering {
	case "", OrderingSixCapture:
		return engine.SixCaptureOrdering{Mode: mode}, nil
	case OrderingCapture:
		return engine.CaptureOrdering{}, nil
	case OrderingNone:
		return engine.NoOrdering{}, nil
	}
	return nil, errors.Errorf("unknown ordering %q", c.Ordering)
}

// Zobrist builds the hash table for the configured size and seed.
func (c Config) Zobrist() *board.ZobristTable {
	return board.NewZobristTable(c.BoardSize, c.Seed)
}

// SearcherOptions turns the configuration into engine options. The config
// must have passed Validate.
func (c Config) SearcherOptions() []engine.Option {
	mode, _ := ParseCaptureMode(c.CaptureMode)
	ordering, _ := c.orderingPolicy()
	return []engine.Option{
		engine.WithWeights(c.Weights),
		engine.WithCaptureMode(mode),
		engine.WithOrdering(ordering),
		engine.WithTransposition(c.Transposition),
		engine.WithKillers(c.Killers),
		engine.WithHistory(c.History),
		engine.WithSafetyMargin(c.SafetyMargin),
		engine.WithPollInterval(c.PollInterval),
		engine.WithMaxDepth(c.MaxDepth),
		engine.WithWorkers(c.Workers),
	}
}

// NewSearcher builds a searcher over z with the configured options plus any
// extra ones.
func (c Config) NewSearcher(z *board.ZobristTable, extra ...engine.Option) *engine.Searcher {
	return engine.NewSearcher(z, append(c.SearcherOptions(), extra...)...)
}
