package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"time"

	"cephalopod/board"
	"cephalopod/config"
	"cephalopod/engine"
	"cephalopod/match"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

func main() {
	configFlag := flag.String("config", "", "YAML config file")
	games := flag.Int("games", 2, "number of games; the opening color alternates")
	budget := flag.Duration("budget", 0, "time per move (0 = config value)")
	weightsA := flag.String("weights-a", "", "weights for player A, e.g. piece=1,six=8 (empty = config)")
	weightsB := flag.String("weights-b", "", "weights for player B")
	randomB := flag.Bool("random-b", false, "player B plays random policy moves")
	randomOpening := flag.Bool("random-opening", false, "play the first ply of every game at random")
	verbose := flag.Bool("v", false, "log every move")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg := config.Default()
	if *configFlag != "" {
		var err error
		if cfg, err = config.Load(*configFlag); err != nil {
			log.Fatal().Err(err).Msg("loading config")
		}
	}
	if *budget > 0 {
		cfg.TimeBudget = *budget
	}
	mode, _ := config.ParseCaptureMode(cfg.CaptureMode)

	z := cfg.Zobrist()
	newPlayer := func(list string) match.Player {
		if list == "" {
			return cfg.NewSearcher(z)
		}
		w, err := config.ParseWeights(list)
		if err != nil {
			log.Fatal().Err(err).Str("weights", list).Msg("parsing weights")
		}
		return cfg.NewSearcher(z, engine.WithWeights(w))
	}
	playerA := newPlayer(*weightsA)
	var playerB match.Player = match.RandomPlayer{Mode: mode}
	if !*randomB {
		playerB = newPlayer(*weightsB)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var results []match.Result
	for g := 0; g < *games; g++ {
		first := lo.Ternary(g%2 == 0, board.ColorA, board.ColorB)
		m := match.Match{
			Size:          cfg.BoardSize,
			PlayerA:       playerA,
			PlayerB:       playerB,
			First:         first,
			Budget:        cfg.TimeBudget,
			RandomOpening: *randomOpening,
		}
		res, err := m.Play(ctx)
		if err != nil {
			log.Error().Err(err).Int("game", g+1).Msg("game aborted")
			break
		}
		log.Info().Int("game", g+1).Str("first", first.String()).Msg("\n" + res.Final.Pretty())
		results = append(results, res)
		for _, s := range []*engine.Searcher{asSearcher(playerA), asSearcher(playerB)} {
			if s != nil {
				s.Reset()
			}
		}
	}

	log.Info().
		Int("games", len(results)).
		Int("wins-a", lo.CountBy(results, func(r match.Result) bool { return r.Winner == board.ColorA })).
		Int("wins-b", lo.CountBy(results, func(r match.Result) bool { return r.Winner == board.ColorB })).
		Int("draws", lo.CountBy(results, func(r match.Result) bool { return r.Winner == board.NoColor })).
		Msg("match-finished")
}

func asSearcher(p match.Player) *engine.Searcher {
	s, _ := p.(*engine.Searcher)
	return s
}
