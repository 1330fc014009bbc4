package history

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"
	"github.com/yatrigo/yatrigo/pkg/consumer"
	"github.com/yatrigo/yatrigo/pkg/database"
	"github.com/yatrigo/yatrigo/pkg/redis_client"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Provides the trip history archiver",
		Subcommands: []*cli.Command{
			{
				Name:  "consumer",
				Usage: "run the trip history consumer",
				Subcommands: []*cli.Command{
					{
						Name:  "run",
						Usage: "consume trip records into the database",
						Action: func(c *cli.Context) error {
							if err := database.Connect(); err != nil {
								return err
							}
							if err := redis_client.Connect(); err != nil {
								return err
							}

							redisConsumer := consumer.RedisConsumer{
								QueueName:       queueName,
								NumberConsumers: 5,
								BatchSize:       20,
								Timeout:         2 * time.Second,
								Consumer:        NewBatchConsumer(0),
							}
							redisConsumer.Setup()

							signals := make(chan os.Signal, 1)
							signal.Notify(signals, syscall.SIGINT)
							defer signal.Stop(signals)

							<-signals // wait for signal
							go func() {
								<-signals // hard exit on second signal (in case shutdown gets stuck)
								os.Exit(1)
							}()

							<-redis_client.QueueConnection.StopAllConsuming() // wait for all Consume() calls to finish

							return nil
						},
					},
				},
			},
		},
	}
}
