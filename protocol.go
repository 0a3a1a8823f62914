package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"cephalopod/board"
	"cephalopod/config"
	"cephalopod/engine"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	verbose := flag.Bool("v", false, "log search iterations to stderr")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatal().Err(err).Msg("loading config")
		}
	}
	newSession(cfg, os.Stdout).run(context.Background(), os.Stdin)
}

// session is the state of one protocol connection: the current position,
// the side to move and a searcher kept across moves of the same game.
type session struct {
	cfg      config.Config
	out      io.Writer
	board    *board.Board
	toMove   board.Color
	zobrist  *board.ZobristTable
	searcher *engine.Searcher
	eval     engine.Evaluator
}

func newSession(cfg config.Config, out io.Writer) *session {
	s := &session{cfg: cfg, out: out, eval: engine.NewWeightedEvaluator(cfg.Weights)}
	s.newGame(cfg.BoardSize)
	return s
}

func (s *session) newGame(size int) {
	s.board = board.New(size)
	s.toMove = board.ColorA
	s.resize(size)
	s.searcher.Reset()
}

// resize swaps the hash table and searcher when the board size changes.
func (s *session) resize(size int) {
	if s.zobrist != nil && s.zobrist.Size() == size {
		return
	}
	s.zobrist = board.NewZobristTable(size, s.cfg.Seed)
	s.searcher = s.cfg.NewSearcher(s.zobrist)
}

func (s *session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func (s *session) run(ctx context.Context, in io.Reader) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		tokens := strings.Fields(scanner.Text())
		if len(tokens) == 0 {
			continue
		}
		if strings.ToLower(tokens[0]) == "quit" {
			return
		}
		if err := s.handle(ctx, tokens); err != nil {
			s.printf("info string %v\n", err)
		}
	}
}

func (s *session) handle(ctx context.Context, tokens []string) error {
	args := tokens[1:]
	switch strings.ToLower(tokens[0]) {
	case "isready":
		s.printf("readyok\n")
	case "newgame":
		size := s.cfg.BoardSize
		if len(args) > 0 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 2 || n > board.MaxSize {
				return errors.Errorf("bad board size %q", args[0])
			}
			size = n
		}
		s.newGame(size)
	case "position":
		if len(args) == 0 {
			return errors.New("position needs a board")
		}
		b, err := board.ParseBoard(args[0])
		if err != nil {
			return err
		}
		color := board.ColorA
		if len(args) > 1 {
			if color, err = board.ParseColor(args[1]); err != nil {
				return err
			}
		}
		s.board, s.toMove = b, color
		s.resize(b.Size())
	case "play", "move":
		if len(args) == 0 {
			return errors.New("play needs a move")
		}
		m, err := board.ParseMove(args[0])
		if err != nil {
			return err
		}
		if err := board.CheckMove(s.board, m); err != nil {
			return err
		}
		s.board.Apply(m, s.toMove)
		s.toMove = s.toMove.Opponent()
	case "go":
		budget := s.cfg.TimeBudget
		if len(args) > 0 {
			ms, err := strconv.Atoi(args[0])
			if err != nil || ms <= 0 {
				return errors.Errorf("bad budget %q", args[0])
			}
			budget = time.Duration(ms) * time.Millisecond
		}
		m, stats := s.searcher.ChooseMove(ctx, s.board, s.toMove, budget)
		s.printf("info depth %d value %.2f nodes %d time %d\n",
			stats.CompletedDepth, stats.Value, stats.Nodes, stats.Elapsed.Milliseconds())
		s.printf("bestmove %s\n", m)
	case "eval":
		s.printf("eval %.2f\n", s.eval.Evaluate(s.board, s.toMove))
	case "moves":
		mode, _ := config.ParseCaptureMode(s.cfg.CaptureMode)
		for _, m := range board.GenerateMoves(s.board, mode) {
			s.printf("%s\n", m)
		}
	case "print":
		s.printf("%s", s.board.Pretty())
		s.printf("%s to move\n", s.toMove)
	default:
		return errors.Errorf("unknown command %q", tokens[0])
	}
	return nil
}
