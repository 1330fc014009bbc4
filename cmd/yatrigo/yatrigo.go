package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"github.com/yatrigo/yatrigo/pkg/api"
	"github.com/yatrigo/yatrigo/pkg/history"
	"github.com/yatrigo/yatrigo/pkg/plan"

	_ "time/tzdata"
)

func main() {
	if os.Getenv("YATRIGO_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	if os.Getenv("YATRIGO_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	app := &cli.App{
		Name:        "yatrigo",
		Description: "Single binary of truth for Yatrigo - runs all the services",

		Commands: []*cli.Command{
			api.RegisterCLI(),
			history.RegisterCLI(),
			plan.RegisterCLI(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}
