package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"esports-platform/handlers"
	"esports-platform/middleware"
	"esports-platform/models"
	"esports-platform/services"
	"esports-platform/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable not set")
	}
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	if err := utils.InitR2(); err != nil {
		log.Fatal("failed to initialize R2 client:", err)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Team{},
		&models.Player{},
		&models.TeamJoinRequest{},
		&models.Tournament{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // 10MB, enough for avatar/logo uploads
	})

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOrigins = "http://localhost:3000"
	}
	originList := strings.Split(allowedOrigins, ",")
	for i, origin := range originList {
		originList[i] = strings.TrimSpace(origin)
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(originList, ","),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	authService := services.NewAuthService(db, jwtSecret)
	teamService := services.NewTeamService(db)
	tournamentService := services.NewTournamentService(db)
	playerService := services.NewPlayerService(db)

	tournamentService.StartStatusScheduler()

	authRequired := middleware.AuthMiddleware(jwtSecret)

	app.Get("/api/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "OK", "message": "backend running"})
	})

	handlers.SetupAuthRoutes(app, authService, authRequired)
	handlers.SetupTeamRoutes(app, teamService, authRequired)
	handlers.SetupTournamentRoutes(app, tournamentService, authRequired)
	handlers.SetupPlayerRoutes(app, playerService, authRequired)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", port)
	log.Println("✅ Tournament status scheduler running (every 1m)")

	<-ctx.Done()
	log.Println("Shutting down server...")
	_ = app.Shutdown()
}
