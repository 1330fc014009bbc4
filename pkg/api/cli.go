package api

import (
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"github.com/yatrigo/yatrigo/pkg/assistant"
	"github.com/yatrigo/yatrigo/pkg/database"
	"github.com/yatrigo/yatrigo/pkg/datasets"
	"github.com/yatrigo/yatrigo/pkg/external"
	"github.com/yatrigo/yatrigo/pkg/history"
	"github.com/yatrigo/yatrigo/pkg/redis_client"
	"github.com/yatrigo/yatrigo/pkg/session"
	"github.com/yatrigo/yatrigo/pkg/traffic"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the core web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
					&cli.StringFlag{
						Name:  "data",
						Value: "data",
						Usage: "directory containing the city datasets",
					},
				},
				Action: func(c *cli.Context) error {
					bundle, err := datasets.Load(c.String("data"))
					if err != nil {
						return err
					}

					var sessions session.Store = session.NewMemoryStore()
					var tripHistory *history.Publisher

					// Redis and Mongo are optional, without them sessions
					// stay in-process and trip history is not archived.
					if err := redis_client.Connect(); err == nil {
						sessions = session.NewRedisStore(redis_client.Client)

						tripHistory, err = history.NewPublisher()
						if err != nil {
							log.Warn().Err(err).Msg("Failed to open trip history queue")
						}
					} else {
						log.Warn().Err(err).Msg("Redis unavailable, using in-memory sessions")
					}

					if tripHistory != nil {
						if err := database.Connect(); err != nil {
							log.Warn().Err(err).Msg("MongoDB unavailable, trip history will queue up")
						}
					}

					tripAssistant := assistant.New(
						bundle,
						external.NewHTTPGeocoder(),
						traffic.NewProvider(),
						external.NewWalkingDirections(),
						sessions,
					)
					tripAssistant.History = tripHistory
					tripAssistant.Translator = translatorOrNil(external.NewHTTPTranslator())
					tripAssistant.Planner = external.NewHTTPPlanner()

					transcriber := external.NewHTTPTranscriber()

					return SetupServer(c.String("listen"), tripAssistant, bundle, transcriberOrNil(transcriber))
				},
			},
		},
	}
}

// transcriberOrNil avoids handing SetupServer a typed nil inside a non-nil
// interface value.
func transcriberOrNil(transcriber *external.HTTPTranscriber) external.Transcriber {
	if transcriber == nil {
		return nil
	}
	return transcriber
}

func translatorOrNil(translator *external.HTTPTranslator) external.Translator {
	if translator == nil {
		return nil
	}
	return translator
}
