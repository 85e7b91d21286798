package points

// Record is the minimal view of a ledger row the aggregator needs. Callers
// map their stored transactions onto it.
type Record struct {
	Category Category
	Points   int
}

// UserStats is a pure projection over a user's transaction history. It is
// recomputed on demand and is never the source of truth.
type UserStats struct {
	TotalPoints      int              `json:"total_points"`
	Level            Tier             `json:"level"`
	NextLevel        *NextLevel       `json:"next_level"` // nil at the top tier
	HelpedCount      int              `json:"helped_count"`
	DonationCount    int              `json:"donation_count"`
	CountsByCategory map[Category]int `json:"counts_by_category"`
	TrustScore       float64          `json:"trust_score"`
}

// Aggregate folds a transaction history into UserStats. Identical inputs
// always produce identical output; the caller chooses the window by choosing
// which records to pass.
func (e *Engine) Aggregate(records []Record) UserStats {
	stats := UserStats{CountsByCategory: make(map[Category]int)}
	for _, r := range records {
		stats.TotalPoints += r.Points
		stats.CountsByCategory[r.Category]++
		if e.helping[r.Category] {
			stats.HelpedCount++
		}
		if e.donating[r.Category] {
			stats.DonationCount++
		}
	}
	stats.Level = e.ResolveLevel(stats.TotalPoints)
	stats.NextLevel = e.NextLevelFor(stats.TotalPoints)
	stats.TrustScore = e.TrustScore(stats.TotalPoints)
	return stats
}

// TrustScore maps a lifetime total onto the bounded 0-100 trust score. It is
// monotonically non-decreasing in totalPoints and clamps at 100.
func (e *Engine) TrustScore(totalPoints int) float64 {
	score := e.cfg.TrustScoreBaseline + float64(totalPoints)/e.cfg.TrustScoreScale
	if score > 100 {
		return 100
	}
	return score
}
