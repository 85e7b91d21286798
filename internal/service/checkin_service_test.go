package service

import (
	"testing"
	"time"

	"goodturn/internal/models"
	"goodturn/internal/points"
)

type fakeCheckinStore struct {
	history []models.PointTransaction
}

func (f *fakeCheckinStore) RecentByCategory(userID uint, category string, limit int) ([]models.PointTransaction, error) {
	return f.history, nil
}

func checkinAt(t time.Time) models.PointTransaction {
	return models.PointTransaction{Category: string(points.CategoryDailyCheckin), Points: 5, CreatedAt: t}
}

func TestCheckinStreak(t *testing.T) {
	now := time.Date(2026, 5, 10, 8, 0, 0, 0, time.UTC)
	day := func(offset int) time.Time { return now.AddDate(0, 0, offset) }

	tests := []struct {
		name    string
		history []models.PointTransaction
		want    int
	}{
		{name: "no history", history: nil, want: 0},
		{name: "single checkin yesterday", history: []models.PointTransaction{checkinAt(day(-1))}, want: 1},
		{name: "three day run", history: []models.PointTransaction{
			checkinAt(day(-1)), checkinAt(day(-2)), checkinAt(day(-3)),
		}, want: 3},
		{name: "gap breaks run", history: []models.PointTransaction{
			checkinAt(day(-1)), checkinAt(day(-3)), checkinAt(day(-4)),
		}, want: 1},
		{name: "stale history", history: []models.PointTransaction{
			checkinAt(day(-5)), checkinAt(day(-6)),
		}, want: 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := &fakeCheckinStore{history: tc.history}
			engine, err := points.NewEngine(points.DefaultConfig())
			if err != nil {
				t.Fatalf("NewEngine: %v", err)
			}
			svc := NewCheckinService(store, NewAwardService(engine, newFakeStore()))
			svc.now = func() time.Time { return now }
			got, err := svc.currentStreak(1)
			if err != nil {
				t.Fatalf("currentStreak: %v", err)
			}
			if got != tc.want {
				t.Errorf("streak = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestCheckinAwardsStreakBonus(t *testing.T) {
	now := time.Date(2026, 5, 10, 8, 0, 0, 0, time.UTC)
	history := make([]models.PointTransaction, 0, 8)
	for i := 1; i <= 8; i++ {
		history = append(history, checkinAt(now.AddDate(0, 0, -i)))
	}
	engine, err := points.NewEngine(points.DefaultConfig())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	svc := NewCheckinService(&fakeCheckinStore{history: history}, NewAwardService(engine, newFakeStore()))
	svc.now = func() time.Time { return now }

	tx, streak, err := svc.Checkin(1)
	if err != nil {
		t.Fatalf("Checkin: %v", err)
	}
	if streak != 9 {
		t.Errorf("streak = %d, want 9", streak)
	}
	// 5 base points with the 1.2 streak bonus, rounded half up.
	if tx.Points != 6 {
		t.Errorf("points = %d, want 6", tx.Points)
	}
}
