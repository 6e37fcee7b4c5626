package handlers

import (
	"esports-platform/services"

	"github.com/gofiber/fiber/v2"
)

func SetupPlayerRoutes(app *fiber.App, players *services.PlayerService, authRequired fiber.Handler) {
	routes := app.Group("/api/players")

	// 🔓 Public routes
	routes.Get("/", players.GetAllPlayers)
	routes.Get("/user/:userId", players.GetPlayersByUserID)
	routes.Get("/:id", players.GetPlayerByID)

	// 🔐 Authenticated routes
	secured := routes.Group("/", authRequired)
	secured.Get("/my/profile", players.GetMyProfile)
	secured.Put("/my/profile", players.UpdateMyProfile)
	secured.Post("/", players.CreatePlayer)
	secured.Put("/:id", players.UpdatePlayer)
	secured.Delete("/:id", players.DeletePlayer)
}
