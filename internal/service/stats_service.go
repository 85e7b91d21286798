package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"goodturn/internal/cache"
	"goodturn/internal/domain"
	"goodturn/internal/models"
	"goodturn/internal/points"
	"goodturn/internal/repository"

	log "github.com/sirupsen/logrus"
)

// StatsStore is what the stats projection reads from the ledger.
type StatsStore interface {
	AllByUser(userID uint) ([]models.PointTransaction, error)
	HistoryByUser(userID uint, since *time.Time, limit, offset int) ([]models.PointTransaction, error)
	TotalPoints(userID uint) (int, error)
	Leaderboard(since *time.Time, limit int) ([]repository.LeaderboardEntry, error)
}

// LevelUpNotifier is told when an award pushed a user across a tier boundary.
type LevelUpNotifier interface {
	NotifyLevelUp(userID uint, tier points.Tier) error
}

// StatsService recomputes UserStats on demand from the ledger, caching the
// result briefly. Stats are a projection; the ledger stays the source of
// truth.
type StatsService struct {
	engine  *points.Engine
	store   StatsStore
	cache   cache.Cache
	levelUp LevelUpNotifier

	statsTTL       time.Duration
	leaderboardTTL time.Duration
	now            func() time.Time
}

func NewStatsService(engine *points.Engine, store StatsStore, c cache.Cache, statsTTL, leaderboardTTL time.Duration) *StatsService {
	return &StatsService{
		engine:         engine,
		store:          store,
		cache:          c,
		statsTTL:       statsTTL,
		leaderboardTTL: leaderboardTTL,
		now:            time.Now,
	}
}

// SetLevelUpNotifier wires the level-up announcement; called once at
// composition time.
func (s *StatsService) SetLevelUpNotifier(n LevelUpNotifier) { s.levelUp = n }

func statsKey(userID uint) string { return fmt.Sprintf("stats:%d", userID) }

// Stats returns the user's aggregated stats, served from cache when fresh.
func (s *StatsService) Stats(ctx context.Context, userID uint) (points.UserStats, error) {
	if data, err := s.cache.Get(ctx, statsKey(userID)); err == nil {
		var stats points.UserStats
		if err := json.Unmarshal(data, &stats); err == nil {
			return stats, nil
		}
	}
	txns, err := s.store.AllByUser(userID)
	if err != nil {
		return points.UserStats{}, fmt.Errorf("load history: %w", err)
	}
	stats := s.engine.Aggregate(toRecords(txns))
	if data, err := json.Marshal(stats); err == nil {
		if err := s.cache.Set(ctx, statsKey(userID), data, s.statsTTL); err != nil {
			log.WithError(err).Warn("stats cache write failed")
		}
	}
	return stats, nil
}

// StatsWindowed aggregates only the transactions inside the named window.
// Windowed stats are never cached; they are cheap and rarely requested.
func (s *StatsService) StatsWindowed(userID uint, window string) (points.UserStats, error) {
	since := s.windowSince(window)
	txns, err := s.store.HistoryByUser(userID, since, 10000, 0)
	if err != nil {
		return points.UserStats{}, fmt.Errorf("load history: %w", err)
	}
	return s.engine.Aggregate(toRecords(txns)), nil
}

// History returns a page of the user's ledger, newest first.
func (s *StatsService) History(userID uint, window string, limit, offset int) ([]models.PointTransaction, error) {
	return s.store.HistoryByUser(userID, s.windowSince(window), limit, offset)
}

func leaderboardKey(window string, limit int) string {
	return fmt.Sprintf("leaderboard:%s:%d", window, limit)
}

// Leaderboard returns the top earners for the window, cached.
func (s *StatsService) Leaderboard(ctx context.Context, window string, limit int) ([]repository.LeaderboardEntry, error) {
	key := leaderboardKey(window, limit)
	if data, err := s.cache.Get(ctx, key); err == nil {
		var entries []repository.LeaderboardEntry
		if err := json.Unmarshal(data, &entries); err == nil {
			return entries, nil
		}
	}
	entries, err := s.store.Leaderboard(s.windowSince(window), limit)
	if err != nil {
		return nil, fmt.Errorf("load leaderboard: %w", err)
	}
	if data, err := json.Marshal(entries); err == nil {
		if err := s.cache.Set(ctx, key, data, s.leaderboardTTL); err != nil {
			log.WithError(err).Warn("leaderboard cache write failed")
		}
	}
	return entries, nil
}

// RefreshLeaderboards warms the standard leaderboard caches; run hourly.
func (s *StatsService) RefreshLeaderboards(ctx context.Context, limit int) error {
	for _, window := range []string{domain.WindowAllTime, domain.WindowWeekly, domain.WindowMonthly} {
		entries, err := s.store.Leaderboard(s.windowSince(window), limit)
		if err != nil {
			return fmt.Errorf("refresh %s leaderboard: %w", window, err)
		}
		data, err := json.Marshal(entries)
		if err != nil {
			return err
		}
		if err := s.cache.Set(ctx, leaderboardKey(window, limit), data, s.leaderboardTTL); err != nil {
			return err
		}
	}
	return nil
}

// HandleAward is subscribed to the award service. It invalidates the user's
// cached stats and announces a level-up when the award crossed a tier
// boundary.
func (s *StatsService) HandleAward(tx models.PointTransaction) error {
	ctx := context.Background()
	if err := s.cache.Delete(ctx, statsKey(tx.UserID)); err != nil {
		log.WithError(err).Warn("stats cache invalidation failed")
	}
	total, err := s.store.TotalPoints(tx.UserID)
	if err != nil {
		return fmt.Errorf("total points: %w", err)
	}
	before := s.engine.ResolveLevel(total - tx.Points)
	after := s.engine.ResolveLevel(total)
	if after.MinPoints > before.MinPoints && s.levelUp != nil {
		return s.levelUp.NotifyLevelUp(tx.UserID, after)
	}
	return nil
}

func (s *StatsService) windowSince(window string) *time.Time {
	var since time.Time
	switch window {
	case domain.WindowWeekly:
		since = s.now().AddDate(0, 0, -7)
	case domain.WindowMonthly:
		since = s.now().AddDate(0, -1, 0)
	default:
		return nil
	}
	return &since
}

func toRecords(txns []models.PointTransaction) []points.Record {
	records := make([]points.Record, len(txns))
	for i, tx := range txns {
		records[i] = points.Record{Category: points.Category(tx.Category), Points: tx.Points}
	}
	return records
}
