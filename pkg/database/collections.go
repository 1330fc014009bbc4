package database

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func createIndexes() {
	createTripHistoryIndexes()
}

func createTripHistoryIndexes() {
	tripHistoryCollection := GetCollection("trip_history")
	tripHistoryIndex := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "sessionid", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "city", Value: 1}},
		},
		{
			Keys:    bson.D{{Key: "creationdatetime", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(90 * 24 * 3600), // Expire after 90 days
		},
	}

	opts := options.CreateIndexes()
	_, err := tripHistoryCollection.Indexes().CreateMany(context.Background(), tripHistoryIndex, opts)
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}
