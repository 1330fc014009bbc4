package routes

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/yatrigo/yatrigo/pkg/datasets"
	"github.com/yatrigo/yatrigo/pkg/transit"
)

func StopsRouter(router fiber.Router, bundle *datasets.Bundle) {
	router.Get("/nearest", func(c *fiber.Ctx) error {
		return getNearestStops(c, bundle)
	})
	router.Get("/:identifier", func(c *fiber.Ctx) error {
		return getStop(c, bundle)
	})
}

func getNearestStops(c *fiber.Ctx, bundle *datasets.Bundle) error {
	latitude, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	longitude, lonErr := strconv.ParseFloat(c.Query("lon"), 64)

	if latErr != nil || lonErr != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Parameters lat and lon must be provided",
		})
	}

	city := bundle.City(c.Query("city"))
	graph := city.Graph.Get()

	location := transit.NewLocation(longitude, latitude)

	cluster, radius := graph.StopCluster(location)

	stops := []fiber.Map{}
	for _, stop := range cluster {
		stops = append(stops, fiber.Map{
			"id":          stop.PrimaryIdentifier,
			"name":        stop.PrimaryName,
			"distance_km": location.DistanceKm(stop.Location),
			"routes":      graph.RoutesServing(stop.PrimaryIdentifier),
		})
	}

	return c.JSON(fiber.Map{
		"city":      city.Key,
		"radius_km": radius,
		"stops":     stops,
	})
}

func getStop(c *fiber.Ctx, bundle *datasets.Bundle) error {
	identifier := c.Params("identifier")

	city := bundle.City(c.Query("city"))
	graph := city.Graph.Get()

	stop := graph.Stop(identifier)
	if stop == nil {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Could not find Stop matching Stop Identifier",
		})
	}

	return c.JSON(fiber.Map{
		"id":          stop.PrimaryIdentifier,
		"name":        stop.PrimaryName,
		"location":    stop.Location,
		"routes":      graph.RoutesServing(stop.PrimaryIdentifier),
		"daily_trips": stop.DailyTrips,
	})
}
