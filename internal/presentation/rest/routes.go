package rest

import "github.com/gofiber/fiber/v2"

// RegisterHandlers wires every route. The config and catalogue GETs are
// public, everything else below /api requires a bearer token.
func RegisterHandlers(app *fiber.App, s *Server) {
	app.Get("/", s.Health)

	api := app.Group("/api")
	api.Post("/register", s.Register)
	api.Post("/login", s.Login)
	api.Delete("/users/:id", s.RequireAuth, s.DeleteUser)

	api.Get("/sites", s.RequireAuth, s.ListSites)
	api.Post("/sites", s.RequireAuth, s.CreateSite)
	api.Put("/sites/:id", s.RequireAuth, s.UpdateSite)
	api.Delete("/sites/:id", s.RequireAuth, s.DeleteSite)
	api.Put("/sites/:id/config", s.RequireAuth, s.UpdateSiteConfig)

	api.Get("/sites/:stringId/config", s.GetSiteConfig)
	api.Get("/sites/:stringId/catalogue", s.GetCatalogue)
	api.Put("/sites/:stringId/catalogue", s.RequireAuth, s.ReplaceCatalogue)
}
