package services

import (
	"log"
	"time"

	"esports-platform/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type TournamentService struct {
	DB *gorm.DB
}

func NewTournamentService(db *gorm.DB) *TournamentService {
	return &TournamentService{DB: db}
}

// parseInstant accepts RFC3339 timestamps or bare dates.
func parseInstant(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func (s *TournamentService) GetAllTournaments(c *fiber.Ctx) error {
	query := s.DB.Model(&models.Tournament{})
	if game := c.Query("game"); game != "" {
		query = query.Where("game = ?", game)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var tournaments []models.Tournament
	if err := query.Find(&tournaments).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(tournaments)
}

func (s *TournamentService) GetTournamentByID(c *fiber.Ctx) error {
	var tournament models.Tournament
	if err := s.DB.First(&tournament, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "tournament not found"})
	}
	return c.JSON(tournament)
}

// CreateTournament creates an open tournament owned by the caller. The
// registration deadline must be strictly before the start date.
func (s *TournamentService) CreateTournament(c *fiber.Ctx) error {
	caller := callerFrom(c)

	var req struct {
		Name                 string `json:"name"`
		Game                 string `json:"game"`
		Participants         int    `json:"participants"`
		RegistrationDeadline string `json:"registrationDeadline"`
		StartDate            string `json:"startDate"`
		HasPricePool         bool   `json:"hasPricePool"`
		FirstPlace           string `json:"firstPlace"`
		SecondPlace          string `json:"secondPlace"`
		ThirdPlace           string `json:"thirdPlace"`
		ChallongeURL         string `json:"challongeUrl"`
		Description          string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	var missing []string
	if req.Name == "" {
		missing = append(missing, "name")
	}
	if req.Game == "" {
		missing = append(missing, "game")
	}
	if req.Participants <= 0 {
		missing = append(missing, "participants")
	}
	if req.RegistrationDeadline == "" {
		missing = append(missing, "registrationDeadline")
	}
	if req.StartDate == "" {
		missing = append(missing, "startDate")
	}
	if len(missing) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "missing required fields",
			"missing": missing,
		})
	}

	if !models.ValidGame(req.Game) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unsupported game"})
	}

	deadline, err := parseInstant(req.RegistrationDeadline)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid registrationDeadline (use RFC3339 or YYYY-MM-DD)"})
	}
	startDate, err := parseInstant(req.StartDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid startDate (use RFC3339 or YYYY-MM-DD)"})
	}
	if !startDate.After(deadline) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "start date must be after the registration deadline"})
	}

	tournament := &models.Tournament{
		ID:                   uuid.NewString(),
		Name:                 req.Name,
		Slug:                 slug.Make(req.Name),
		Game:                 req.Game,
		Status:               models.TournamentOpen,
		Participants:         req.Participants,
		RegistrationDeadline: deadline,
		StartDate:            startDate,
		HasPricePool:         req.HasPricePool,
		FirstPlace:           req.FirstPlace,
		SecondPlace:          req.SecondPlace,
		ThirdPlace:           req.ThirdPlace,
		ChallongeURL:         req.ChallongeURL,
		Description:          req.Description,
		CreatorID:            caller.ID,
	}

	log.Printf("📝 Creating tournament: %s (%s)", tournament.Name, tournament.Game)

	if err := s.DB.Create(tournament).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(tournament)
}

// UpdateTournament partially updates a tournament. The date-order invariant
// is re-checked against the merged record. Policy: OwnerOrAdmin.
func (s *TournamentService) UpdateTournament(c *fiber.Ctx) error {
	caller := callerFrom(c)
	id := c.Params("id")

	var req struct {
		Name                 *string `json:"name"`
		Participants         *int    `json:"participants"`
		RegistrationDeadline *string `json:"registrationDeadline"`
		StartDate            *string `json:"startDate"`
		HasPricePool         *bool   `json:"hasPricePool"`
		FirstPlace           *string `json:"firstPlace"`
		SecondPlace          *string `json:"secondPlace"`
		ThirdPlace           *string `json:"thirdPlace"`
		ChallongeURL         *string `json:"challongeUrl"`
		Description          *string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	var tournament models.Tournament
	if err := s.DB.First(&tournament, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "tournament not found"})
	}
	if !OwnerOrAdmin.Allows(caller, tournament.CreatorID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "you do not have permission to edit this tournament"})
	}

	if req.Name != nil {
		tournament.Name = *req.Name
		tournament.Slug = slug.Make(*req.Name)
	}
	if req.Participants != nil {
		tournament.Participants = *req.Participants
	}
	if req.RegistrationDeadline != nil {
		deadline, err := parseInstant(*req.RegistrationDeadline)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid registrationDeadline (use RFC3339 or YYYY-MM-DD)"})
		}
		tournament.RegistrationDeadline = deadline
	}
	if req.StartDate != nil {
		startDate, err := parseInstant(*req.StartDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid startDate (use RFC3339 or YYYY-MM-DD)"})
		}
		tournament.StartDate = startDate
	}
	if !tournament.StartDate.After(tournament.RegistrationDeadline) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "start date must be after the registration deadline"})
	}
	if req.HasPricePool != nil {
		tournament.HasPricePool = *req.HasPricePool
	}
	if req.FirstPlace != nil {
		tournament.FirstPlace = *req.FirstPlace
	}
	if req.SecondPlace != nil {
		tournament.SecondPlace = *req.SecondPlace
	}
	if req.ThirdPlace != nil {
		tournament.ThirdPlace = *req.ThirdPlace
	}
	if req.ChallongeURL != nil {
		tournament.ChallongeURL = *req.ChallongeURL
	}
	if req.Description != nil {
		tournament.Description = *req.Description
	}

	if err := s.DB.Save(&tournament).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(tournament)
}

// DeleteTournament removes a tournament. Policy: OwnerOrAdmin.
func (s *TournamentService) DeleteTournament(c *fiber.Ctx) error {
	caller := callerFrom(c)
	id := c.Params("id")

	var tournament models.Tournament
	if err := s.DB.First(&tournament, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "tournament not found"})
	}
	if !OwnerOrAdmin.Allows(caller, tournament.CreatorID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "you do not have permission to delete this tournament"})
	}

	log.Printf("🗑️ Deleting tournament: %s", id)

	if err := s.DB.Delete(&tournament).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "tournament deleted"})
}
