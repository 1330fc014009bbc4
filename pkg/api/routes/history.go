package routes

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/yatrigo/yatrigo/pkg/database"
	"github.com/yatrigo/yatrigo/pkg/history"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const historyMaxLimit = 100

func HistoryRouter(router fiber.Router) {
	router.Get("/:session", getTripHistory)
}

func getTripHistory(c *fiber.Ctx) error {
	if database.MongoGlobalInstance == nil {
		c.SendStatus(fiber.StatusServiceUnavailable)
		return c.JSON(fiber.Map{
			"error": "Trip history is not available",
		})
	}

	sessionID := c.Params("session")

	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Parameter limit should be a positive integer",
		})
	}
	if limit > historyMaxLimit {
		limit = historyMaxLimit
	}

	collection := database.GetCollection("trip_history")

	cursor, err := collection.Find(c.Context(), bson.M{"sessionid": sessionID}, options.Find().
		SetSort(bson.D{{Key: "creationdatetime", Value: -1}}).
		SetLimit(int64(limit)))
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Failed to query Trip History",
		})
	}

	records := []history.TripRecord{}
	if err := cursor.All(c.Context(), &records); err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Failed to decode Trip History",
		})
	}

	return c.JSON(fiber.Map{
		"session_id": sessionID,
		"trips":      records,
	})
}
