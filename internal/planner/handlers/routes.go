package handlers

import (
	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Routes
// ============================================================

// Register монтирует health-пробы, документацию API и маршруты планировщика
// /api/v1.
func Register(app *fiber.App, planner *PlannerHandler, materials *MaterialHandler, health *HealthHandler) {
	app.Get("/health/live", health.LivenessProbe)
	app.Get("/health/ready", health.ReadinessProbe)
	app.Get("/health/startup", health.StartupProbe)

	app.Get("/docs", SwaggerUI)
	app.Get("/docs/openapi.yaml", SwaggerSpec)

	api := app.Group("/api/v1")

	api.Post("/sessions", planner.CreateSession)
	api.Delete("/sessions/:id", planner.CloseSession)
	api.Post("/sessions/:id/commands", planner.Command)
	api.Get("/sessions/:id/events", planner.Events)
	api.Get("/sessions/:id/shapes", planner.ListShapes)
	api.Get("/sessions/:id/shapes/:shapeId", planner.GetShape)
	api.Get("/sessions/:id/view", planner.GetView)
	api.Get("/sessions/:id/card", planner.GetCard)
	api.Get("/sessions/:id/layout.svg", planner.GetLayoutSVG)

	api.Get("/materials", materials.List)
	api.Get("/materials/:id", materials.Get)
	api.Get("/materials/:id/image", materials.GetImage)
	api.Post("/materials/:id/image", materials.UploadImage)
}
