package cron

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/taskflow-labs/taskflow-backend/internal/repository"
)

// Scheduler runs the background sprint checks. It only reports; sprint
// transitions always remain explicit admin actions.
type Scheduler struct {
	cron       *cron.Cron
	sprintRepo repository.SprintRepository
}

// NewScheduler creates a new scheduler
func NewScheduler(sprintRepo repository.SprintRepository) *Scheduler {
	return &Scheduler{
		cron:       cron.New(),
		sprintRepo: sprintRepo,
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	// Run every day at 9 AM - Sprint ending reminders
	s.cron.AddFunc("0 9 * * *", func() {
		log.Println("[Cron] Running sprint ending check...")
		s.checkSprintDeadlines()
	})

	// Run every hour - Flag running sprints past their end date
	s.cron.AddFunc("0 * * * *", func() {
		log.Println("[Cron] Running expired sprint check...")
		s.checkExpiredSprints()
	})

	s.cron.Start()
	log.Println("[Cron] Scheduler started")
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[Cron] Scheduler stopped")
}

func (s *Scheduler) checkSprintDeadlines() {
	ctx := context.Background()

	sprints, err := s.sprintRepo.FindEndingSoon(ctx, 72*time.Hour)
	if err != nil {
		log.Printf("[Cron] Error finding sprints ending soon: %v", err)
		return
	}

	for _, sprint := range sprints {
		log.Printf("[Cron] ⏰ Sprint %q ends on %s", sprint.Name, sprint.EndDate.Format("2006-01-02"))
	}
}

func (s *Scheduler) checkExpiredSprints() {
	ctx := context.Background()

	sprints, err := s.sprintRepo.FindExpired(ctx)
	if err != nil {
		log.Printf("[Cron] Error finding expired sprints: %v", err)
		return
	}

	for _, sprint := range sprints {
		log.Printf("[Cron] ⚠️ Sprint %q is past its end date (%s) and still running",
			sprint.Name, sprint.EndDate.Format("2006-01-02"))
	}
}
