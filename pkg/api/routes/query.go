package routes

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/yatrigo/yatrigo/pkg/assistant"
	"github.com/yatrigo/yatrigo/pkg/transit"
)

var validate = validator.New()

func QueryRouter(router fiber.Router, tripAssistant *assistant.Assistant) {
	router.Post("/", func(c *fiber.Ctx) error {
		return postQuery(c, tripAssistant)
	})
}

func postQuery(c *fiber.Ctx, tripAssistant *assistant.Assistant) error {
	var query assistant.Query

	if err := c.BodyParser(&query); err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Request body must be valid JSON",
		})
	}

	if err := validate.Struct(query); err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	response, err := tripAssistant.Answer(c.Context(), &query)
	if err != nil {
		return queryError(c, tripAssistant, query.SessionID, err)
	}

	detailed := c.Query("detailed") == "true"
	groups := []string{"basic"}
	if detailed {
		groups = append(groups, "detailed")
	}

	responseReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: groups,
	}, response)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sherrif could not reduce Response",
		})
	}

	return c.JSON(responseReduced)
}

// queryError maps pipeline failures onto statuses. Unanswerable questions
// get a clarifying follow-up rather than a bare error.
func queryError(c *fiber.Ctx, tripAssistant *assistant.Assistant, sessionID string, err error) error {
	var parseErr transit.ParseError
	var resolutionErr transit.ResolutionError
	var locationErr assistant.MissingLocationError

	switch {
	case errors.As(err, &parseErr), errors.As(err, &resolutionErr), errors.As(err, &locationErr):
		c.SendStatus(fiber.StatusUnprocessableEntity)
		return c.JSON(fiber.Map{
			"error":     err.Error(),
			"follow_up": tripAssistant.FollowUp(c.Context(), sessionID, err),
		})
	}

	var externalErr transit.ExternalServiceError
	if errors.As(err, &externalErr) {
		c.SendStatus(fiber.StatusBadGateway)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	c.SendStatus(fiber.StatusInternalServerError)
	return c.JSON(fiber.Map{
		"error": err.Error(),
	})
}
