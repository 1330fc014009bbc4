package plan

import (
	"context"
	"fmt"
	"strings"

	"github.com/kr/pretty"
	"github.com/urfave/cli/v2"
	"github.com/yatrigo/yatrigo/pkg/assistant"
	"github.com/yatrigo/yatrigo/pkg/datasets"
	"github.com/yatrigo/yatrigo/pkg/external"
	"github.com/yatrigo/yatrigo/pkg/session"
	"github.com/yatrigo/yatrigo/pkg/traffic"
	"github.com/yatrigo/yatrigo/pkg/transit"
)

// RegisterCLI provides a one-shot planner for poking at the pipeline from a
// terminal without running the web API.
func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:      "plan",
		Usage:     "answer a single trip query from the command line",
		ArgsUsage: "<query text>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "data",
				Value: "data",
				Usage: "directory containing the city datasets",
			},
			&cli.StringFlag{
				Name:  "city",
				Usage: "force a city instead of detecting one",
			},
			&cli.StringFlag{
				Name:  "user-type",
				Value: "student",
				Usage: "ranking profile (student, elderly, tourist)",
			},
		},
		Action: func(c *cli.Context) error {
			text := strings.Join(c.Args().Slice(), " ")
			if text == "" {
				return fmt.Errorf("a query is required, e.g. plan \"hebbal to majestic\"")
			}

			bundle, err := datasets.Load(c.String("data"))
			if err != nil {
				return err
			}

			tripAssistant := assistant.New(
				bundle,
				nil,
				&traffic.TimeOfDayEstimator{},
				external.HaversineDirections{},
				session.NewMemoryStore(),
			)

			response, err := tripAssistant.Answer(context.Background(), &assistant.Query{
				Text:      text,
				SessionID: "cli",
				UserType:  transit.UserType(c.String("user-type")),
				City:      c.String("city"),
			})
			if err != nil {
				return err
			}

			fmt.Println(response.Summary)
			pretty.Println(response.View)

			return nil
		},
	}
}
