package jobs

import (
	"context"
	"time"

	"goodturn/config"
	"goodturn/internal/service"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// Scheduler owns the background cron jobs: DBS expiry reminders and
// leaderboard cache warming. Times run in the platform's home timezone.
type Scheduler struct {
	cron *cron.Cron
}

func NewScheduler(cfg *config.Config, verificationSvc *service.VerificationService, statsSvc *service.StatsService) (*Scheduler, error) {
	loc, err := time.LoadLocation("Europe/London")
	if err != nil {
		return nil, err
	}
	c := cron.New(cron.WithLocation(loc))

	// Daily at 09:00: warn members whose DBS certificate is about to expire.
	if _, err := c.AddFunc("0 9 * * *", func() {
		if err := verificationSvc.ExpiryReminders(cfg.Points.DBSExpiryWarningDays); err != nil {
			log.WithError(err).Error("dbs expiry reminder job failed")
		}
	}); err != nil {
		return nil, err
	}

	// Hourly: warm the leaderboard caches.
	if _, err := c.AddFunc("0 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := statsSvc.RefreshLeaderboards(ctx, 20); err != nil {
			log.WithError(err).Error("leaderboard refresh job failed")
		}
	}); err != nil {
		return nil, err
	}

	return &Scheduler{cron: c}, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	log.Info("background jobs started")
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
