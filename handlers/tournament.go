package handlers

import (
	"esports-platform/middleware"
	"esports-platform/models"
	"esports-platform/services"

	"github.com/gofiber/fiber/v2"
)

func SetupTournamentRoutes(app *fiber.App, tournaments *services.TournamentService, authRequired fiber.Handler) {
	routes := app.Group("/api/tournaments")

	// 🔓 Public routes
	routes.Get("/", tournaments.GetAllTournaments)
	routes.Get("/:id", tournaments.GetTournamentByID)

	// 🔐 Authenticated routes
	secured := routes.Group("/", authRequired)
	secured.Post("/", middleware.RequireRoles(models.RoleManager, models.RoleAdmin), tournaments.CreateTournament)
	secured.Put("/:id", tournaments.UpdateTournament)
	secured.Delete("/:id", tournaments.DeleteTournament)
}
