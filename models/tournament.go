package models

import (
	"time"
)

// Tournament statuses. Creation always sets "open"; the scheduler moves open
// tournaments to "in_progress" once their start date passes.
const (
	TournamentDraft      = "draft"
	TournamentOpen       = "open"
	TournamentInProgress = "in_progress"
	TournamentFinished   = "finished"
)

// Tournament is owned by its creator. Invariant: StartDate is strictly after
// RegistrationDeadline.
type Tournament struct {
	ID                   string    `json:"id" gorm:"primaryKey"`
	Name                 string    `json:"name" gorm:"not null"`
	Slug                 string    `json:"slug" gorm:"index"`
	Game                 string    `json:"game" gorm:"not null;index"`
	Status               string    `json:"status" gorm:"not null;default:'open';index"`
	Participants         int       `json:"participants" gorm:"not null"`
	RegistrationDeadline time.Time `json:"registration_deadline" gorm:"not null"`
	StartDate            time.Time `json:"start_date" gorm:"not null"`
	HasPricePool         bool      `json:"has_price_pool" gorm:"default:false"`
	FirstPlace           string    `json:"first_place,omitempty"`
	SecondPlace          string    `json:"second_place,omitempty"`
	ThirdPlace           string    `json:"third_place,omitempty"`
	ChallongeURL         string    `json:"challonge_url,omitempty"`
	Description          string    `json:"description,omitempty"`
	CreatorID            string    `json:"creator_id" gorm:"not null;index"`
	CreatedAt            time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt            time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
