package services

import (
	"esports-platform/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PlayerService struct {
	DB *gorm.DB
}

func NewPlayerService(db *gorm.DB) *PlayerService {
	return &PlayerService{DB: db}
}

func (s *PlayerService) GetAllPlayers(c *fiber.Ctx) error {
	var players []models.Player
	if err := s.DB.Preload("User").Find(&players).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(players)
}

func (s *PlayerService) GetPlayerByID(c *fiber.Ctx) error {
	var player models.Player
	err := s.DB.Preload("User").First(&player, "id = ?", c.Params("id")).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "player not found"})
	}
	return c.JSON(player)
}

// GetPlayersByUserID lists all per-game profiles of one user.
func (s *PlayerService) GetPlayersByUserID(c *fiber.Ctx) error {
	var players []models.Player
	err := s.DB.Preload("User").
		Where("user_id = ?", c.Params("userId")).
		Find(&players).Error
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(players)
}

// CreatePlayer adds a per-game profile for the caller. Duplicate
// (user, game) pairs are rejected; the composite unique index backstops the
// pre-check under concurrent requests.
func (s *PlayerService) CreatePlayer(c *fiber.Ctx) error {
	caller := callerFrom(c)

	var req struct {
		Game string  `json:"game"`
		Role *string `json:"role"`
		Rank *string `json:"rank"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Game == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "game is required"})
	}
	if !models.ValidGame(req.Game) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unsupported game"})
	}

	var existing int64
	s.DB.Model(&models.Player{}).
		Where("user_id = ? AND game = ?", caller.ID, req.Game).
		Count(&existing)
	if existing > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "player already exists for this game"})
	}

	player := &models.Player{
		ID:     uuid.NewString(),
		UserID: caller.ID,
		Game:   req.Game,
		Role:   req.Role,
		Rank:   req.Rank,
	}
	if err := s.DB.Create(player).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	s.DB.Preload("User").First(player, "id = ?", player.ID)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "player created",
		"data":    player,
	})
}

// UpdatePlayer partially updates a player profile. Policy: OwnerOrAdmin.
func (s *PlayerService) UpdatePlayer(c *fiber.Ctx) error {
	caller := callerFrom(c)
	id := c.Params("id")

	var req struct {
		Game   *string `json:"game"`
		Role   *string `json:"role"`
		Rank   *string `json:"rank"`
		TeamID *string `json:"team_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	var player models.Player
	if err := s.DB.First(&player, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "player not found"})
	}
	if !OwnerOrAdmin.Allows(caller, player.UserID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "you do not have permission to update this player"})
	}

	if req.Game != nil {
		if !models.ValidGame(*req.Game) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unsupported game"})
		}
		player.Game = *req.Game
	}
	if req.Role != nil {
		player.Role = req.Role
	}
	if req.Rank != nil {
		player.Rank = req.Rank
	}
	if req.TeamID != nil {
		player.TeamID = req.TeamID
	}

	if err := s.DB.Save(&player).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	s.DB.Preload("User").First(&player, "id = ?", player.ID)

	return c.JSON(fiber.Map{
		"message": "player updated",
		"data":    player,
	})
}

// DeletePlayer removes a player profile. Policy: OwnerOrAdmin.
func (s *PlayerService) DeletePlayer(c *fiber.Ctx) error {
	caller := callerFrom(c)
	id := c.Params("id")

	var player models.Player
	if err := s.DB.First(&player, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "player not found"})
	}
	if !OwnerOrAdmin.Allows(caller, player.UserID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "you do not have permission to delete this player"})
	}

	if err := s.DB.Delete(&player).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "player deleted"})
}

// GetMyProfile returns the caller's profile for the game given in ?game=.
func (s *PlayerService) GetMyProfile(c *fiber.Ctx) error {
	caller := callerFrom(c)

	game := c.Query("game")
	if game == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "game query parameter is required"})
	}

	var player models.Player
	err := s.DB.First(&player, "user_id = ? AND game = ?", caller.ID, game).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "player profile not found"})
	}
	return c.JSON(player)
}

// UpdateMyProfile changes role and rank of the caller's profile for one game.
func (s *PlayerService) UpdateMyProfile(c *fiber.Ctx) error {
	caller := callerFrom(c)

	game := c.Query("game")
	if game == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "game query parameter is required"})
	}

	var req struct {
		Role *string `json:"role"`
		Rank *string `json:"rank"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	var player models.Player
	err := s.DB.First(&player, "user_id = ? AND game = ?", caller.ID, game).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "player profile not found"})
	}

	if req.Role != nil {
		player.Role = req.Role
	}
	if req.Rank != nil {
		player.Rank = req.Rank
	}

	if err := s.DB.Save(&player).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"message": "profile updated",
		"data":    player,
	})
}
