package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"cephalopod/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
)

func init() {
	log.Logger = zerolog.Nop()
}

func runScript(t *testing.T, script string) string {
	t.Helper()
	var out bytes.Buffer
	newSession(config.Default(), &out).run(context.Background(), strings.NewReader(script))
	return out.String()
}

func TestProtocolPlayAndPrint(t *testing.T) {
	out := runScript(t, strings.Join([]string{
		"isready",
		"newgame 3",
		"play 0,0:1",
		"play 0,1:1",
		"play 1,1:1",
		"play 1,0:2x0,0x1,1",
		"print",
		"quit",
		"play 2,2:1",
	}, "\n"))
	require.Contains(t, out, "readyok\n")
	require.NotContains(t, out, "info string")
	require.Contains(t, out, "1   B2 .  . \n")
	require.Contains(t, out, "A to move\n")
}

func TestProtocolRejectsBadInput(t *testing.T) {
	out := runScript(t, strings.Join([]string{
		"bogus",
		"newgame x",
		"position A1/..",
		"play 0,0:2",
		"go -5",
		"newgame 128",
		"play 258,0:1",
	}, "\n"))
	require.Equal(t, 7, strings.Count(out, "info string"))
}

func TestProtocolGoFindsSixCapture(t *testing.T) {
	out := runScript(t, strings.Join([]string{
		"position .B3.B3./...../...../...../..... A",
		"go 500",
		"eval",
	}, "\n"))
	require.Contains(t, out, "bestmove 0,2:6x0,1x0,3\n")
	require.Contains(t, out, "eval -2.00\n")
}

func TestProtocolMoves(t *testing.T) {
	out := runScript(t, "position A1B1/.. B\nmoves\n")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Equal(t, []string{"1,0:1", "1,1:1"}, lines)
}

func TestProtocolFullBoard(t *testing.T) {
	out := runScript(t, "position A1B1/B1A1\ngo 50\n")
	require.Contains(t, out, "bestmove none\n")
}
