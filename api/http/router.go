package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vbncursed/tasktracker/api/http/handlers"
)

// Register wires all HTTP routes onto given Fiber app.
func Register(app *fiber.App, auth *handlers.AuthHandler, tasks *handlers.TaskHandler, health *handlers.HealthHandler, authMW fiber.Handler) {
	// Health and readiness endpoints for probes/monitoring
	app.Get("/health", health.Health)
	app.Get("/ready", health.Ready)

	a := app.Group("/auth")
	a.Post("/register", auth.Register)
	a.Post("/login", auth.Login)

	t := app.Group("/tasks", authMW)
	t.Get("/", tasks.List)
	t.Post("/", tasks.Create)
	t.Put("/:id", tasks.Update)
	t.Delete("/:id", tasks.Delete)
}
