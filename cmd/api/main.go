package main

import (
	"net/http"
	"os"
	"time"

	"cephalopod/api"
	"cephalopod/config"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// @title Cephalopod API
// @version 1.0
// @BasePath /api/v1
// @schemes http
func main() {
	var port = readEnv("CEPHALOPOD_PORT", "8080")
	var configPath = readEnv("CEPHALOPOD_CONFIG", "")

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			log.Fatal().Err(err).Msg("loading config")
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info().Str("uri", v.URI).Int("status", v.Status).Msg("request")
			return nil
		},
	}))
	api.Register(e, api.NewEngine(cfg))

	log.Info().Str("port", port).Msg("listening")
	if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func readEnv(name string, defaultValue string) string {
	var env = os.Getenv(name)
	if len(env) > 0 {
		return env
	}
	return defaultValue
}
