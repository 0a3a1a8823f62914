package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cephalopod/config"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
)

func init() {
	log.Logger = zerolog.Nop()
}

func newServer() *echo.Echo {
	e := echo.New()
	Register(e, NewEngine(config.Default()))
	return e
}

func post(t *testing.T, e *echo.Echo, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestGetMoves(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		count  int
	}{
		{"empty board", `{"board":"...../...../...../...../....."}`, http.StatusOK, 25},
		{"capture", `{"board":"...../..A2../.B3.../...../....."}`, http.StatusOK, 23},
		{"all mode", `{"board":".A1./B1.B1/.A1.","mode":"all"}`, http.StatusOK, 15},
		{"bad board", `{"board":"xyz"}`, http.StatusBadRequest, 0},
		{"bad mode", `{"board":"../..","mode":"some"}`, http.StatusBadRequest, 0},
	}
	e := newServer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, e, "/api/v1/moves", tt.body)
			require.Equal(t, tt.status, rec.Code, rec.Body.String())
			if tt.status != http.StatusOK {
				return
			}
			var moves []Move
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &moves))
			require.Len(t, moves, tt.count)
		})
	}
}

func TestGetMovesRejectsOversizedBoard(t *testing.T) {
	row := strings.Repeat(".", 130)
	notation := strings.TrimSuffix(strings.Repeat(row+"/", 130), "/")
	rec := post(t, newServer(), "/api/v1/moves", `{"board":"`+notation+`"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetMovesCaptureDetails(t *testing.T) {
	moves, err := GetMoves(MoveArgs{Board: "...../..A2../.B3.../...../....."})
	require.NoError(t, err)
	for _, m := range moves {
		if m.Row == 2 && m.Col == 2 {
			require.Equal(t, 5, m.Face)
			require.Equal(t, []Coord{{Row: 1, Col: 2}, {Row: 2, Col: 1}}, m.Captured)
			require.Equal(t, "2,2:5x1,2x2,1", m.Notation)
		}
	}
}

func TestChooseMove(t *testing.T) {
	e := newServer()
	rec := post(t, e, "/api/v1/choose", `{"board":".B3.B3./...../...../...../.....","player":"A","budget-ms":2000,"max-depth":2}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var choice Choice
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &choice))
	require.NotNil(t, choice.Move)
	require.Equal(t, 6, choice.Move.Face)
	require.Equal(t, 0, choice.Move.Row)
	require.Equal(t, 2, choice.Move.Col)
	require.Equal(t, 2, choice.Stats.Depth)
}

func TestChooseMoveFullBoard(t *testing.T) {
	e := newServer()
	rec := post(t, e, "/api/v1/choose", `{"board":"A1B1/B1A1","player":"B","budget-ms":100}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var choice Choice
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &choice))
	require.Nil(t, choice.Move)
}

func TestChooseMoveRejects(t *testing.T) {
	e := newServer()
	for _, body := range []string{
		`{"board":"../..","player":"C"}`,
		`{"board":"../..","budget-ms":600000}`,
		`{"board":"../..","weights":{"bogus":1}}`,
		`{"board":`,
	} {
		rec := post(t, e, "/api/v1/choose", body)
		require.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}
