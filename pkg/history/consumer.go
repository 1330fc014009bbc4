package history

import (
	"context"
	"encoding/json"

	"github.com/adjust/rmq/v5"
	"github.com/rs/zerolog/log"
	"github.com/yatrigo/yatrigo/pkg/database"
)

type BatchConsumer struct {
	id int
}

func NewBatchConsumer(id int) *BatchConsumer {
	return &BatchConsumer{id: id}
}

func (consumer *BatchConsumer) Consume(batch rmq.Deliveries) {
	payloads := batch.Payloads()

	var records []interface{}
	for _, payload := range payloads {
		var record TripRecord
		if err := json.Unmarshal([]byte(payload), &record); err != nil {
			log.Error().Err(err).Msg("Failed to decode trip record")
			continue
		}

		records = append(records, record)
	}

	if len(records) > 0 {
		tripHistoryCollection := database.GetCollection("trip_history")
		if _, err := tripHistoryCollection.InsertMany(context.Background(), records); err != nil {
			log.Error().Err(err).Msg("Failed to insert trip records")
		}
	}

	if ackErrors := batch.Ack(); len(ackErrors) > 0 {
		for _, err := range ackErrors {
			log.Fatal().Err(err).Msg("Failed to consume trip record")
		}
	}
}
