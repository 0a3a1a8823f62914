package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"cephalopod/board"
	"cephalopod/config"
	"cephalopod/engine"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	depthFlag := flag.Int("depth", 6, "search depth in plies")
	repeatFlag := flag.Int("repeat", 1, "number of searches to run")
	boardFlag := flag.String("board", "", "board to search (empty = empty grid of the configured size)")
	playerFlag := flag.String("player", "A", "player to move")
	configFlag := flag.String("config", "", "YAML config file")
	workersFlag := flag.Int("workers", 0, "root search workers (0 = config value)")
	verbose := flag.Bool("v", false, "log every iteration")
	cpuProfile := flag.String("cpuprofile", "", "write CPU profile to file")
	memProfile := flag.String("memprofile", "", "write memory profile (heap) to file")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if *depthFlag <= 0 {
		log.Fatal().Int("depth", *depthFlag).Msg("depth must be positive")
	}

	cfg := config.Default()
	if *configFlag != "" {
		var err error
		if cfg, err = config.Load(*configFlag); err != nil {
			log.Fatal().Err(err).Msg("loading config")
		}
	}
	if *workersFlag > 0 {
		cfg.Workers = *workersFlag
	}

	position := *boardFlag
	if position == "" {
		position = board.New(cfg.BoardSize).String()
	}
	start, err := board.ParseBoard(position)
	if err != nil {
		log.Fatal().Err(err).Msg("parsing board")
	}
	color, err := board.ParseColor(*playerFlag)
	if err != nil {
		log.Fatal().Err(err).Msg("parsing player")
	}
	cfg.BoardSize = start.Size()

	var cpuFile *os.File
	if *cpuProfile != "" {
		cpuFile, err = os.Create(*cpuProfile)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create CPU profile")
		}
		if err := pprof.StartCPUProfile(cpuFile); err != nil {
			log.Fatal().Err(err).Msg("could not start CPU profile")
		}
		defer func() {
			pprof.StopCPUProfile()
			cpuFile.Close()
		}()
	}

	z := cfg.Zobrist()
	fmt.Printf("searchbench: board=%q depth=%d repeat=%d workers=%d\n", position, *depthFlag, *repeatFlag, cfg.Workers)

	startAll := time.Now()
	var total engine.SearchStats
	for i := 0; i < *repeatFlag; i++ {
		// fresh searcher per run so history does not carry over
		s := cfg.NewSearcher(z)
		m, stats := s.SearchDepth(start.Clone(), color, *depthFlag)
		total.Nodes += stats.Nodes
		fmt.Printf("iteration %d: bestmove %s value=%.2f nodes=%d time=%v nps=%.0f\n", i+1, m, stats.Value, stats.Nodes, stats.Elapsed, stats.NPS())
	}
	totalElapsed := time.Since(startAll)
	fmt.Printf("total time: %v nodes: %d nps: %.0f\n", totalElapsed, total.Nodes, float64(total.Nodes)/totalElapsed.Seconds())

	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create memory profile")
		}
		defer f.Close()

		runtime.GC()
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatal().Err(err).Msg("could not write memory profile")
		}
	}
}
