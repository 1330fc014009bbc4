package routes

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/yatrigo/yatrigo/pkg/assistant"
	"github.com/yatrigo/yatrigo/pkg/datasets"
)

func PlacesRouter(router fiber.Router, tripAssistant *assistant.Assistant, bundle *datasets.Bundle) {
	router.Get("/:city", func(c *fiber.Ctx) error {
		return listPlaces(c, bundle)
	})
	router.Get("/:city/itinerary", func(c *fiber.Ctx) error {
		return getItinerary(c, tripAssistant, bundle)
	})
}

func listPlaces(c *fiber.Ctx, bundle *datasets.Bundle) error {
	cityKey := c.Params("city")
	if bundle.Cities[cityKey] == nil {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Could not find City matching City Key",
		})
	}

	city := bundle.City(cityKey)

	placesReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic"},
	}, city.Places)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sherrif could not reduce Places",
		})
	}

	return c.JSON(fiber.Map{
		"city":   city.Key,
		"themes": city.Themes,
		"places": placesReduced,
	})
}

func getItinerary(c *fiber.Ctx, tripAssistant *assistant.Assistant, bundle *datasets.Bundle) error {
	cityKey := c.Params("city")
	if bundle.Cities[cityKey] == nil {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Could not find City matching City Key",
		})
	}

	days, err := strconv.Atoi(c.Query("days", "1"))
	if err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Parameter days should be an integer",
		})
	}

	var themes []string
	if themesQuery := c.Query("themes"); themesQuery != "" {
		themes = strings.Split(themesQuery, ",")
	}

	draft := tripAssistant.Itinerary(c.Context(), cityKey, themes, days)

	draftReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic"},
	}, draft)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sherrif could not reduce Itinerary",
		})
	}

	return c.JSON(draftReduced)
}
