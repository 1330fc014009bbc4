package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/yatrigo/yatrigo/pkg/external"
)

func TranscribeRouter(router fiber.Router, transcriber external.Transcriber) {
	router.Post("/", func(c *fiber.Ctx) error {
		return postTranscribe(c, transcriber)
	})
}

func postTranscribe(c *fiber.Ctx, transcriber external.Transcriber) error {
	if transcriber == nil {
		c.SendStatus(fiber.StatusServiceUnavailable)
		return c.JSON(fiber.Map{
			"error": "Speech transcription is not configured",
		})
	}

	audio := c.Body()
	if len(audio) == 0 {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Request body must contain audio data",
		})
	}

	text, err := transcriber.Transcribe(c.Context(), audio, c.Query("language"))
	if err != nil {
		c.SendStatus(fiber.StatusBadGateway)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"text": text,
	})
}
