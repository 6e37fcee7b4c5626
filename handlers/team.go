package handlers

import (
	"esports-platform/middleware"
	"esports-platform/models"
	"esports-platform/services"

	"github.com/gofiber/fiber/v2"
)

func SetupTeamRoutes(app *fiber.App, teams *services.TeamService, authRequired fiber.Handler) {
	routes := app.Group("/api/teams")

	// 🔓 Public routes. Registered first: the secured group below mounts
	// auth middleware on the whole prefix.
	routes.Get("/", teams.GetAllTeams)
	routes.Get("/:id", teams.GetTeamByID)

	// 🔐 Authenticated routes
	secured := routes.Group("/", authRequired)
	secured.Get("/my/team", middleware.RequireRoles(models.RoleManager), teams.GetMyTeam)
	secured.Post("/", middleware.RequireRoles(models.RoleManager, models.RoleAdmin), teams.CreateTeam)
	secured.Put("/:id", teams.UpdateTeam)
	secured.Delete("/:id", teams.DeleteTeam)
	secured.Post("/:id/logo", teams.UploadLogo)

	// Join requests
	secured.Get("/:id/requests", middleware.RequireRoles(models.RoleManager), teams.GetTeamRequests)
	secured.Post("/:id/requests", middleware.RequireRoles(models.RolePlayer), teams.CreateJoinRequest)
	secured.Post("/requests/:requestId/respond", middleware.RequireRoles(models.RoleManager), teams.RespondToRequest)

	// Lineup management
	secured.Delete("/:teamId/players/:playerId", middleware.RequireRoles(models.RoleManager), teams.RemovePlayer)
}
