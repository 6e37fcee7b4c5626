package handlers

import (
	"esports-platform/middleware"
	"esports-platform/models"
	"esports-platform/services"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App, auth *services.AuthService, authRequired fiber.Handler) {
	routes := app.Group("/api/auth")

	// 🔓 Public routes
	routes.Post("/signup", auth.Signup)
	routes.Post("/login", auth.Login)

	// 🔐 Authenticated routes
	secured := routes.Group("/", authRequired)
	secured.Post("/logout", auth.Logout)
	secured.Get("/profile", auth.GetProfile)
	secured.Put("/profile", auth.UpdateProfile)
	secured.Post("/profile/avatar", auth.UploadAvatar)

	// 🔒 Admin only
	secured.Delete("/users/:id", middleware.RequireRoles(models.RoleAdmin), auth.DeleteUser)
}
