package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Register mounts the API under /api/v1.
func Register(e *echo.Echo, eng *Engine) {
	v1 := e.Group("/api/v1")
	v1.POST("/moves", getMoves)
	v1.POST("/choose", chooseMove(eng))
}

type apiError struct {
	Message string `json:"message"`
}

// getMoves godoc
// @Summary List the legal moves of a position
// @Accept json
// @Produce json
// @Param        args   body      api.MoveArgs  true  "Move arguments"
// @Success 200 {object} []api.Move
// @Router /moves [post]
func getMoves(c echo.Context) error {
	args := MoveArgs{Mode: "best"}
	if err := c.Bind(&args); err != nil {
		return c.JSON(http.StatusBadRequest, apiError{Message: err.Error()})
	}
	moves, err := GetMoves(args)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apiError{Message: err.Error()})
	}
	return c.JSON(http.StatusOK, moves)
}

// chooseMove godoc
// @Summary Search a position and return the chosen move
// @Accept json
// @Produce json
// @Param        args   body      api.ChooseArgs  true  "Search arguments"
// @Success 200 {object} api.Choice
// @Router /choose [post]
func chooseMove(eng *Engine) echo.HandlerFunc {
	return func(c echo.Context) error {
		args := ChooseArgs{Player: "A"}
		if err := c.Bind(&args); err != nil {
			return c.JSON(http.StatusBadRequest, apiError{Message: err.Error()})
		}
		choice, err := eng.ChooseMove(c.Request().Context(), args)
		if err != nil {
			return c.JSON(http.StatusBadRequest, apiError{Message: err.Error()})
		}
		return c.JSON(http.StatusOK, choice)
	}
}
