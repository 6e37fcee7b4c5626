package models

import (
	"time"
)

// Player is a per-game profile owned by a user. A user has at most one
// profile per game, enforced by the composite unique index.
type Player struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"not null;uniqueIndex:idx_players_user_game"`
	Game      string    `json:"game" gorm:"not null;uniqueIndex:idx_players_user_game"`
	TeamID    *string   `json:"team_id" gorm:"index"`
	Role      *string   `json:"role"`
	Rank      *string   `json:"rank"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// RoleManagerLabel marks the auto-enrolled player row created for a team's
// manager, distinguishing it from regular lineup members.
const RoleManagerLabel = "Manager"
