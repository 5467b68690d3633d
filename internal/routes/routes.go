package routes

import (
	"global-terrorism-dashboard/internal/controller"

	"github.com/gofiber/fiber/v2"
)

// Register attaches all HTTP routes to the Fiber app.
func Register(app *fiber.App, ctrl controller.DashboardController) {
	api := app.Group("/api")

	api.Get("/events", ctrl.ListEvents)
	api.Post("/events", ctrl.CreateEvent)
	api.Delete("/events", ctrl.DeleteEvents)
	api.Post("/events/fetch", ctrl.FetchEvents)
	api.Post("/events/form", ctrl.StartForm)
	api.Post("/events/:id/edit", ctrl.EditEvent)
	api.Put("/events/:id", ctrl.UpdateEvent)
	api.Delete("/events/:id", ctrl.DeleteEvent)

	api.Get("/state", ctrl.GetState)
	api.Put("/filters", ctrl.ChangeFilters)

	api.Get("/charts/fatal-victims", ctrl.FatalVictims)
	api.Get("/charts/injured-victims", ctrl.InjuredVictims)
	api.Get("/charts/events-over-years", ctrl.EventsOverYears)
	api.Get("/map/markers", ctrl.Markers)

	api.Post("/auth/login", ctrl.Login)
	api.Post("/auth/register", ctrl.Register)
	api.Post("/auth/logout", ctrl.Logout)
	api.Get("/auth/session", ctrl.Session)

	api.Get("/journal", ctrl.JournalSummary)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
}
