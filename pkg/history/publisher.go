package history

import (
	"encoding/json"

	"github.com/adjust/rmq/v5"
	"github.com/rs/zerolog/log"
	"github.com/yatrigo/yatrigo/pkg/redis_client"
)

const queueName = "trip-history"

// Publisher pushes trip records onto the history queue. Publishing is best
// effort, a failed publish logs and drops the record rather than failing the
// query that produced it.
type Publisher struct {
	queue rmq.Queue
}

func NewPublisher() (*Publisher, error) {
	queue, err := redis_client.QueueConnection.OpenQueue(queueName)
	if err != nil {
		return nil, err
	}

	return &Publisher{queue: queue}, nil
}

func (p *Publisher) Publish(record *TripRecord) {
	recordBytes, err := json.Marshal(record)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal trip record")
		return
	}

	if err := p.queue.PublishBytes(recordBytes); err != nil {
		log.Error().Err(err).Msg("Failed to publish trip record")
	}
}
