package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"blog-service/internal/graph"
)

// RegisterRoutes mounts the REST surface and the GraphQL endpoint. The auth
// gate must already be installed on the app.
func RegisterRoutes(app *fiber.App, graphHandler *graph.Handler, imageHandler *ImageHandler, imageDir string) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Hello, This is the REST API for the Blog App"})
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": "blog-service"})
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Static("/images", imageDir)
	app.Put("/post-image", imageHandler.Upload)

	app.Post("/graphql", graphHandler.Serve)
}
