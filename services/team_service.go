package services

import (
	"log"
	"path/filepath"
	"regexp"

	"esports-platform/models"
	"esports-platform/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// Abbreviations are exactly 3 uppercase ASCII letters.
var abbrevPattern = regexp.MustCompile(`^[A-Z]{3}$`)

type TeamService struct {
	DB *gorm.DB
}

func NewTeamService(db *gorm.DB) *TeamService {
	return &TeamService{DB: db}
}

func (s *TeamService) GetAllTeams(c *fiber.Ctx) error {
	query := s.DB.Model(&models.Team{})
	if game := c.Query("game"); game != "" {
		query = query.Where("game = ?", game)
	}

	var teams []models.Team
	if err := query.Find(&teams).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(teams)
}

func (s *TeamService) GetTeamByID(c *fiber.Ctx) error {
	var team models.Team
	err := s.DB.Preload("Players").Preload("Players.User").
		First(&team, "id = ?", c.Params("id")).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "team not found"})
	}
	return c.JSON(team)
}

// GetMyTeam returns the caller's team, optionally narrowed to one game.
func (s *TeamService) GetMyTeam(c *fiber.Ctx) error {
	caller := callerFrom(c)

	query := s.DB.Preload("Players").Preload("Players.User").
		Where("manager_id = ?", caller.ID)
	if game := c.Query("game"); game != "" {
		query = query.Where("game = ?", game)
	}

	var team models.Team
	if err := query.First(&team).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "you have no team in this game"})
	}
	return c.JSON(team)
}

// CreateTeam creates a team for the calling manager. The creator is also
// enrolled as a player for the team's game with the Manager role label;
// failure of that step does not fail the team creation.
func (s *TeamService) CreateTeam(c *fiber.Ctx) error {
	caller := callerFrom(c)

	var req struct {
		Name         string `json:"name"`
		Abbreviation string `json:"abbreviation"`
		LogoURL      string `json:"logoUrl"`
		Description  string `json:"description"`
		Game         string `json:"game"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if req.Name == "" || req.Abbreviation == "" || req.Game == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name, abbreviation and game are required"})
	}
	if !abbrevPattern.MatchString(req.Abbreviation) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "abbreviation must be exactly 3 uppercase letters"})
	}
	if !models.ValidGame(req.Game) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unsupported game"})
	}

	// One team per manager per game. The composite unique index backstops
	// this check under concurrent requests.
	var existing int64
	s.DB.Model(&models.Team{}).
		Where("manager_id = ? AND game = ?", caller.ID, req.Game).
		Count(&existing)
	if existing > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "you already have a team in this game"})
	}

	team := &models.Team{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Abbreviation: req.Abbreviation,
		Slug:         slug.Make(req.Name),
		LogoURL:      req.LogoURL,
		Description:  req.Description,
		Game:         req.Game,
		ManagerID:    caller.ID,
	}

	log.Printf("📝 Creating team: %s (%s, %s)", team.Name, team.Abbreviation, team.Game)

	if err := s.DB.Create(team).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	managerRole := models.RoleManagerLabel
	player := &models.Player{
		ID:     uuid.NewString(),
		UserID: caller.ID,
		TeamID: &team.ID,
		Game:   req.Game,
		Role:   &managerRole,
	}
	if err := s.DB.Create(player).Error; err != nil {
		log.Printf("⚠️ Could not create player record for manager %s: %v", caller.ID, err)
	}

	return c.Status(fiber.StatusCreated).JSON(team)
}

// UpdateTeam partially updates a team. Policy: OwnerOrAdmin.
func (s *TeamService) UpdateTeam(c *fiber.Ctx) error {
	caller := callerFrom(c)
	id := c.Params("id")

	var req struct {
		Name         *string `json:"name"`
		Abbreviation *string `json:"abbreviation"`
		LogoURL      *string `json:"logoUrl"`
		Description  *string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Abbreviation != nil && !abbrevPattern.MatchString(*req.Abbreviation) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "abbreviation must be exactly 3 uppercase letters"})
	}

	var team models.Team
	if err := s.DB.First(&team, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "team not found"})
	}
	if !OwnerOrAdmin.Allows(caller, team.ManagerID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "you do not have permission to edit this team"})
	}

	if req.Name != nil {
		team.Name = *req.Name
		team.Slug = slug.Make(*req.Name)
	}
	if req.Abbreviation != nil {
		team.Abbreviation = *req.Abbreviation
	}
	if req.LogoURL != nil {
		team.LogoURL = *req.LogoURL
	}
	if req.Description != nil {
		team.Description = *req.Description
	}

	if err := s.DB.Save(&team).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(team)
}

// DeleteTeam removes a team. Policy: OwnerOrAdmin.
func (s *TeamService) DeleteTeam(c *fiber.Ctx) error {
	caller := callerFrom(c)
	id := c.Params("id")

	var team models.Team
	if err := s.DB.First(&team, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "team not found"})
	}
	if !OwnerOrAdmin.Allows(caller, team.ManagerID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "you do not have permission to delete this team"})
	}

	log.Printf("🗑️ Deleting team: %s", id)

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Player{}).Where("team_id = ?", id).
			Update("team_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("team_id = ?", id).Delete(&models.TeamJoinRequest{}).Error; err != nil {
			return err
		}
		return tx.Delete(&team).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to delete team"})
	}

	return c.JSON(fiber.Map{"message": "team deleted"})
}

// UploadLogo stores the team logo in R2. Policy: OwnerOrAdmin.
func (s *TeamService) UploadLogo(c *fiber.Ctx) error {
	if !utils.StorageReady() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "file storage is not configured"})
	}

	caller := callerFrom(c)
	id := c.Params("id")

	var team models.Team
	if err := s.DB.First(&team, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "team not found"})
	}
	if !OwnerOrAdmin.Allows(caller, team.ManagerID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "you do not have permission to edit this team"})
	}

	file, err := c.FormFile("logo")
	if err != nil || file.Size == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "logo file is required"})
	}

	ext := filepath.Ext(file.Filename)
	if ext == "" {
		ext = ".png"
	}
	key := "logos/" + uuid.NewString() + ext
	url, err := utils.UploadFileToR2(file, key)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to upload logo"})
	}

	team.LogoURL = url
	if err := s.DB.Save(&team).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(team)
}

// GetTeamRequests lists a team's pending join requests. Policy: OwnerOnly.
func (s *TeamService) GetTeamRequests(c *fiber.Ctx) error {
	caller := callerFrom(c)
	id := c.Params("id")

	var team models.Team
	if err := s.DB.First(&team, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "team not found"})
	}
	if !OwnerOnly.Allows(caller, team.ManagerID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "you do not have permission to view this team's requests"})
	}

	var requests []models.TeamJoinRequest
	err := s.DB.Preload("Player").
		Where("team_id = ? AND status = ?", id, models.RequestPending).
		Find(&requests).Error
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(requests)
}

// CreateJoinRequest files a pending request for the caller to join a team.
func (s *TeamService) CreateJoinRequest(c *fiber.Ctx) error {
	caller := callerFrom(c)
	id := c.Params("id")

	var team models.Team
	if err := s.DB.First(&team, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "team not found"})
	}

	var pending int64
	s.DB.Model(&models.TeamJoinRequest{}).
		Where("player_id = ? AND team_id = ? AND status = ?", caller.ID, id, models.RequestPending).
		Count(&pending)
	if pending > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "you already have a pending request for this team"})
	}

	request := &models.TeamJoinRequest{
		ID:       uuid.NewString(),
		PlayerID: caller.ID,
		TeamID:   id,
		Status:   models.RequestPending,
	}
	if err := s.DB.Create(request).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(request)
}

// RespondToRequest accepts or rejects a pending join request. On acceptance
// the requester's player profile for the team's game is attached to the team;
// both writes happen in one transaction. Policy: OwnerOnly.
func (s *TeamService) RespondToRequest(c *fiber.Ctx) error {
	caller := callerFrom(c)
	requestID := c.Params("requestId")

	var req struct {
		Action string `json:"action"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Action != "accept" && req.Action != "reject" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid action"})
	}

	var request models.TeamJoinRequest
	if err := s.DB.First(&request, "id = ?", requestID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "request not found"})
	}

	var team models.Team
	if err := s.DB.First(&team, "id = ?", request.TeamID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "team not found"})
	}
	if !OwnerOnly.Allows(caller, team.ManagerID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "you do not have permission"})
	}

	if request.Status != models.RequestPending {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "request already responded"})
	}

	newStatus := models.RequestAccepted
	if req.Action == "reject" {
		newStatus = models.RequestRejected
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&request).Update("status", newStatus).Error; err != nil {
			return err
		}
		if newStatus == models.RequestAccepted {
			return tx.Model(&models.Player{}).
				Where("user_id = ? AND game = ?", request.PlayerID, team.Game).
				Update("team_id", team.ID).Error
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update request"})
	}

	return c.JSON(fiber.Map{"message": "request " + newStatus})
}

// RemovePlayer detaches a player from the team. Policy: OwnerOnly.
func (s *TeamService) RemovePlayer(c *fiber.Ctx) error {
	caller := callerFrom(c)
	teamID := c.Params("teamId")
	playerID := c.Params("playerId")

	var team models.Team
	if err := s.DB.First(&team, "id = ?", teamID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "team not found"})
	}
	if !OwnerOnly.Allows(caller, team.ManagerID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "you do not have permission to remove players from this team"})
	}

	err := s.DB.Model(&models.Player{}).
		Where("id = ? AND team_id = ?", playerID, teamID).
		Update("team_id", nil).Error
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "player removed from team"})
}
