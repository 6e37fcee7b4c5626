package services

import (
	"log"
	"path/filepath"

	"esports-platform/models"
	"esports-platform/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	DB        *gorm.DB
	JWTSecret string
}

func NewAuthService(db *gorm.DB, jwtSecret string) *AuthService {
	return &AuthService{DB: db, JWTSecret: jwtSecret}
}

// Signup registers a user and, for players, auto-provisions one empty player
// profile per supported game. Profile provisioning is best-effort: its
// failure is logged but does not fail the signup.
func (s *AuthService) Signup(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		FullName string `json:"fullName"`
		Role     string `json:"role"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if req.Email == "" || req.Password == "" || req.FullName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "email, password and fullName are required"})
	}

	role := req.Role
	if role == "" {
		role = models.RolePlayer
	}
	if !models.ValidRole(role) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid role"})
	}

	var existing int64
	if err := s.DB.Model(&models.User{}).Where("email = ?", req.Email).Count(&existing).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if existing > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "email already registered"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 10)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to hash password"})
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Role:         role,
	}

	log.Printf("📝 Signup: %s (%s)", user.Email, user.Role)

	if err := s.DB.Create(user).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if user.Role == models.RolePlayer {
		players := make([]models.Player, 0, len(models.SupportedGames))
		for _, game := range models.SupportedGames {
			players = append(players, models.Player{
				ID:     uuid.NewString(),
				UserID: user.ID,
				Game:   game,
			})
		}
		if err := s.DB.Create(&players).Error; err != nil {
			log.Printf("⚠️ Could not provision player profiles for %s: %v", user.ID, err)
		} else {
			log.Printf("✅ Player profiles created for %s", user.Email)
		}
	}

	token, err := utils.GenerateToken(s.JWTSecret, user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to issue token"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "user registered",
		"user":    user,
		"token":   token,
	})
}

func (s *AuthService) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "email and password are required"})
	}

	var user models.User
	if err := s.DB.First(&user, "email = ?", req.Email).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid credentials"})
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid credentials"})
	}

	token, err := utils.GenerateToken(s.JWTSecret, &user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to issue token"})
	}

	log.Printf("🔑 Login: %s (%s)", user.Email, user.Role)

	return c.JSON(fiber.Map{
		"message": "logged in",
		"user":    user,
		"token":   token,
	})
}

// Logout is a stateless acknowledgment; tokens expire on their own.
func (s *AuthService) Logout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "logged out"})
}

func (s *AuthService) GetProfile(c *fiber.Ctx) error {
	caller := callerFrom(c)

	var user models.User
	if err := s.DB.First(&user, "id = ?", caller.ID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
	}
	return c.JSON(user)
}

// UpdateProfile changes the caller's own display fields. Role and email are
// not updatable here.
func (s *AuthService) UpdateProfile(c *fiber.Ctx) error {
	caller := callerFrom(c)

	var req struct {
		FullName  *string `json:"fullName"`
		Bio       *string `json:"bio"`
		AvatarURL *string `json:"avatarUrl"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	var user models.User
	if err := s.DB.First(&user, "id = ?", caller.ID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.AvatarURL != nil {
		user.AvatarURL = *req.AvatarURL
	}

	if err := s.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(user)
}

// UploadAvatar stores the uploaded image in R2 and records its URL.
func (s *AuthService) UploadAvatar(c *fiber.Ctx) error {
	if !utils.StorageReady() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "file storage is not configured"})
	}

	caller := callerFrom(c)

	file, err := c.FormFile("avatar")
	if err != nil || file.Size == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "avatar file is required"})
	}

	var user models.User
	if err := s.DB.First(&user, "id = ?", caller.ID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
	}

	ext := filepath.Ext(file.Filename)
	if ext == "" {
		ext = ".png"
	}
	key := "avatars/" + uuid.NewString() + ext
	url, err := utils.UploadFileToR2(file, key)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to upload avatar"})
	}

	user.AvatarURL = url
	if err := s.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(user)
}

// DeleteUser removes another user and their player profiles. Admin only;
// self-deletion is rejected.
func (s *AuthService) DeleteUser(c *fiber.Ctx) error {
	caller := callerFrom(c)
	id := c.Params("id")

	if id == caller.ID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "you cannot delete your own user"})
	}

	var user models.User
	if err := s.DB.First(&user, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
	}

	log.Printf("🗑️ Deleting user: %s", id)

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("player_id = ?", id).Delete(&models.TeamJoinRequest{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Player{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to delete user"})
	}

	return c.JSON(fiber.Map{"message": "user deleted"})
}
