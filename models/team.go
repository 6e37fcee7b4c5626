package models

import (
	"time"
)

// Team is owned by exactly one manager and scoped to one game. A manager may
// own at most one team per game (composite unique index).
type Team struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"not null"`
	Abbreviation string    `json:"abbreviation" gorm:"not null;size:3"`
	Slug         string    `json:"slug" gorm:"index"`
	LogoURL      string    `json:"logo_url,omitempty"`
	Description  string    `json:"description,omitempty"`
	Game         string    `json:"game" gorm:"not null;uniqueIndex:idx_teams_manager_game"`
	ManagerID    string    `json:"manager_id" gorm:"not null;uniqueIndex:idx_teams_manager_game"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Players []Player `json:"players,omitempty" gorm:"foreignKey:TeamID"`
}

// Join request lifecycle. A request transitions out of pending exactly once.
const (
	RequestPending  = "pending"
	RequestAccepted = "accepted"
	RequestRejected = "rejected"
)

// TeamJoinRequest links a requesting user to a team. PlayerID carries the
// user's id, matching the column contract of the team_join_requests table.
type TeamJoinRequest struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	PlayerID  string    `json:"player_id" gorm:"not null;index"`
	TeamID    string    `json:"team_id" gorm:"not null;index"`
	Status    string    `json:"status" gorm:"not null;default:'pending'"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Player *User `json:"player,omitempty" gorm:"foreignKey:PlayerID"`
	Team   *Team `json:"team,omitempty" gorm:"foreignKey:TeamID"`
}
