package service

import (
	"time"

	"goodturn/internal/domain"
	"goodturn/internal/models"
	"goodturn/internal/points"
)

// CheckinStore reads the check-in history needed for streak calculation.
type CheckinStore interface {
	RecentByCategory(userID uint, category string, limit int) ([]models.PointTransaction, error)
}

// CheckinService handles the daily check-in. The award path's cooldown keeps
// it to one per 24 hours; this service only works out the streak length so
// the engine can apply the consistency bonus.
type CheckinService struct {
	store  CheckinStore
	awards *AwardService
	now    func() time.Time
}

func NewCheckinService(store CheckinStore, awards *AwardService) *CheckinService {
	return &CheckinService{store: store, awards: awards, now: time.Now}
}

// Checkin awards the daily check-in points. The returned streak includes
// today's check-in.
func (s *CheckinService) Checkin(userID uint) (*models.PointTransaction, int, error) {
	streak, err := s.currentStreak(userID)
	if err != nil {
		return nil, 0, err
	}
	tx, err := s.awards.Award(userID, points.CategoryDailyCheckin, "Daily check-in",
		points.Metadata{ConsecutiveDays: streak + 1}, domain.SourceCheckin, 0)
	if err != nil {
		return nil, streak, err
	}
	return tx, streak + 1, nil
}

// currentStreak counts consecutive calendar days with a check-in, ending
// yesterday or today. A missed day breaks the run.
func (s *CheckinService) currentStreak(userID uint) (int, error) {
	history, err := s.store.RecentByCategory(userID, string(points.CategoryDailyCheckin), 60)
	if err != nil {
		return 0, err
	}
	if len(history) == 0 {
		return 0, nil
	}
	today := s.now().Truncate(24 * time.Hour)
	expected := today
	if day := history[0].CreatedAt.Truncate(24 * time.Hour); day.Before(today.AddDate(0, 0, -1)) {
		return 0, nil
	} else if day.Equal(today.AddDate(0, 0, -1)) {
		expected = today.AddDate(0, 0, -1)
	}
	streak := 0
	for _, tx := range history {
		day := tx.CreatedAt.Truncate(24 * time.Hour)
		if !day.Equal(expected) {
			break
		}
		streak++
		expected = expected.AddDate(0, 0, -1)
	}
	return streak, nil
}
