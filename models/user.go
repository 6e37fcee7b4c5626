package models

import (
	"time"
)

// User roles. Role is assigned at signup and never changed afterwards.
const (
	RolePlayer  = "player"
	RoleManager = "manager"
	RoleAdmin   = "admin"
)

type User struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	FullName     string    `json:"full_name" gorm:"not null"`
	Role         string    `json:"role" gorm:"not null;default:'player'"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	Bio          string    `json:"bio,omitempty"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func ValidRole(role string) bool {
	switch role {
	case RolePlayer, RoleManager, RoleAdmin:
		return true
	}
	return false
}
