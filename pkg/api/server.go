package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/yatrigo/yatrigo/pkg/api/routes"
	"github.com/yatrigo/yatrigo/pkg/assistant"
	"github.com/yatrigo/yatrigo/pkg/datasets"
	"github.com/yatrigo/yatrigo/pkg/external"
)

func SetupServer(listen string, tripAssistant *assistant.Assistant, bundle *datasets.Bundle, transcriber external.Transcriber) error {
	webApp := fiber.New()
	webApp.Use(NewLogger())

	group := webApp.Group("/core")

	group.Get("version", routes.APIVersion)

	routes.QueryRouter(group.Group("/query"), tripAssistant)

	routes.TranscribeRouter(group.Group("/transcribe"), transcriber)

	routes.StopsRouter(group.Group("/stops"), bundle)

	routes.PlacesRouter(group.Group("/places"), tripAssistant, bundle)

	routes.HistoryRouter(group.Group("/history"))

	return webApp.Listen(listen)
}
