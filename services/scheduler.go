// services/scheduler.go
package services

import (
	"log"
	"time"

	"esports-platform/models"

	"github.com/go-co-op/gocron/v2"
)

// StartStatusScheduler moves open tournaments whose start date has passed to
// in_progress, checking once a minute.
func (s *TournamentService) StartStatusScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			now := time.Now()
			res := s.DB.Model(&models.Tournament{}).
				Where("status = ? AND start_date <= ?", models.TournamentOpen, now).
				Update("status", models.TournamentInProgress)
			if res.Error != nil {
				log.Printf("[Scheduler] DB error: %v", res.Error)
				return
			}
			if res.RowsAffected > 0 {
				log.Printf("✅ Moved %d tournament(s) to in_progress", res.RowsAffected)
			}
		}),
	)
}
