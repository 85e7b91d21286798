package service

import (
	"context"
	"testing"
	"time"

	"goodturn/internal/cache"
	"goodturn/internal/domain"
	"goodturn/internal/models"
	"goodturn/internal/points"
	"goodturn/internal/repository"
)

type fakeStatsStore struct {
	txns        map[uint][]models.PointTransaction
	leaderboard []repository.LeaderboardEntry
	calls       int
}

func (f *fakeStatsStore) AllByUser(userID uint) ([]models.PointTransaction, error) {
	f.calls++
	return f.txns[userID], nil
}

func (f *fakeStatsStore) HistoryByUser(userID uint, since *time.Time, limit, offset int) ([]models.PointTransaction, error) {
	var out []models.PointTransaction
	for _, tx := range f.txns[userID] {
		if since != nil && tx.CreatedAt.Before(*since) {
			continue
		}
		out = append(out, tx)
	}
	return out, nil
}

func (f *fakeStatsStore) TotalPoints(userID uint) (int, error) {
	total := 0
	for _, tx := range f.txns[userID] {
		total += tx.Points
	}
	return total, nil
}

func (f *fakeStatsStore) Leaderboard(since *time.Time, limit int) ([]repository.LeaderboardEntry, error) {
	f.calls++
	return f.leaderboard, nil
}

type fakeLevelUp struct {
	userID uint
	tier   points.Tier
	called int
}

func (f *fakeLevelUp) NotifyLevelUp(userID uint, tier points.Tier) error {
	f.called++
	f.userID = userID
	f.tier = tier
	return nil
}

func newStatsService(t *testing.T, store StatsStore) *StatsService {
	t.Helper()
	engine, err := points.NewEngine(points.DefaultConfig())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return NewStatsService(engine, store, cache.NewInMemoryCache(), 5*time.Minute, 10*time.Minute)
}

func TestStatsAggregatesLedger(t *testing.T) {
	store := &fakeStatsStore{txns: map[uint][]models.PointTransaction{
		3: {
			{UserID: 3, Category: string(points.CategoryHelpCompleted), Points: 25},
			{UserID: 3, Category: string(points.CategoryDonation), Points: 10},
			{UserID: 3, Category: string(points.CategoryDonation), Points: 10},
			{UserID: 3, Category: string(points.CategoryReferral), Points: 20},
		},
	}}
	svc := newStatsService(t, store)

	stats, err := svc.Stats(context.Background(), 3)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalPoints != 65 {
		t.Errorf("total = %d, want 65", stats.TotalPoints)
	}
	if stats.HelpedCount != 1 {
		t.Errorf("helped = %d, want 1", stats.HelpedCount)
	}
	if stats.DonationCount != 2 {
		t.Errorf("donations = %d, want 2", stats.DonationCount)
	}
	if stats.Level.Level != "newcomer" {
		t.Errorf("level = %q, want newcomer", stats.Level.Level)
	}
	if stats.NextLevel == nil || stats.NextLevel.PointsNeeded != 35 {
		t.Errorf("next level = %+v, want 35 points to helper", stats.NextLevel)
	}
}

func TestStatsServedFromCache(t *testing.T) {
	store := &fakeStatsStore{txns: map[uint][]models.PointTransaction{
		1: {{UserID: 1, Category: string(points.CategoryDonation), Points: 10}},
	}}
	svc := newStatsService(t, store)
	ctx := context.Background()

	if _, err := svc.Stats(ctx, 1); err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if _, err := svc.Stats(ctx, 1); err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if store.calls != 1 {
		t.Errorf("store queried %d times, want 1 (second call cached)", store.calls)
	}
}

func TestHandleAwardInvalidatesCache(t *testing.T) {
	store := &fakeStatsStore{txns: map[uint][]models.PointTransaction{
		1: {{UserID: 1, Category: string(points.CategoryDonation), Points: 10}},
	}}
	svc := newStatsService(t, store)
	ctx := context.Background()

	if _, err := svc.Stats(ctx, 1); err != nil {
		t.Fatalf("Stats: %v", err)
	}
	store.txns[1] = append(store.txns[1], models.PointTransaction{
		UserID: 1, Category: string(points.CategoryDonation), Points: 10,
	})
	if err := svc.HandleAward(store.txns[1][1]); err != nil {
		t.Fatalf("HandleAward: %v", err)
	}
	stats, err := svc.Stats(ctx, 1)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalPoints != 20 {
		t.Errorf("total after invalidation = %d, want 20", stats.TotalPoints)
	}
}

func TestHandleAwardDetectsLevelUp(t *testing.T) {
	store := &fakeStatsStore{txns: map[uint][]models.PointTransaction{
		2: {
			{UserID: 2, Category: string(points.CategoryCommunityEvent), Points: 90},
			{UserID: 2, Category: string(points.CategoryHelpCompleted), Points: 25},
		},
	}}
	svc := newStatsService(t, store)
	notifier := &fakeLevelUp{}
	svc.SetLevelUpNotifier(notifier)

	// 90 -> 115 crosses the helper threshold at 100.
	if err := svc.HandleAward(store.txns[2][1]); err != nil {
		t.Fatalf("HandleAward: %v", err)
	}
	if notifier.called != 1 {
		t.Fatalf("level up notified %d times, want 1", notifier.called)
	}
	if notifier.tier.Level != "helper" {
		t.Errorf("tier = %q, want helper", notifier.tier.Level)
	}
}

func TestHandleAwardNoLevelUpWithinTier(t *testing.T) {
	store := &fakeStatsStore{txns: map[uint][]models.PointTransaction{
		2: {
			{UserID: 2, Category: string(points.CategoryDonation), Points: 10},
			{UserID: 2, Category: string(points.CategoryDonation), Points: 10},
		},
	}}
	svc := newStatsService(t, store)
	notifier := &fakeLevelUp{}
	svc.SetLevelUpNotifier(notifier)

	if err := svc.HandleAward(store.txns[2][1]); err != nil {
		t.Fatalf("HandleAward: %v", err)
	}
	if notifier.called != 0 {
		t.Errorf("level up notified %d times, want 0", notifier.called)
	}
}

func TestLeaderboardCached(t *testing.T) {
	store := &fakeStatsStore{leaderboard: []repository.LeaderboardEntry{
		{UserID: 1, Username: "amira", TotalPoints: 300},
		{UserID: 2, Username: "ben", TotalPoints: 120},
	}}
	svc := newStatsService(t, store)
	ctx := context.Background()

	first, err := svc.Leaderboard(ctx, domain.WindowAllTime, 10)
	if err != nil {
		t.Fatalf("Leaderboard: %v", err)
	}
	if len(first) != 2 || first[0].Username != "amira" {
		t.Errorf("leaderboard = %+v", first)
	}
	if _, err := svc.Leaderboard(ctx, domain.WindowAllTime, 10); err != nil {
		t.Fatalf("Leaderboard: %v", err)
	}
	if store.calls != 1 {
		t.Errorf("store queried %d times, want 1", store.calls)
	}
}

func TestWindowSince(t *testing.T) {
	svc := newStatsService(t, &fakeStatsStore{})
	fixed := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	if got := svc.windowSince(domain.WindowAllTime); got != nil {
		t.Errorf("all-time since = %v, want nil", got)
	}
	if got := svc.windowSince(domain.WindowWeekly); got == nil || !got.Equal(fixed.AddDate(0, 0, -7)) {
		t.Errorf("weekly since = %v", got)
	}
	if got := svc.windowSince(domain.WindowMonthly); got == nil || !got.Equal(fixed.AddDate(0, -1, 0)) {
		t.Errorf("monthly since = %v", got)
	}
}
