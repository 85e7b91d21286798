package points

import (
	"errors"
	"fmt"
	"sort"
)

// Config is the immutable configuration an Engine is built from. It is
// injected at construction so tests can run with alternate tables.
type Config struct {
	Rates  RateTable
	Ladder []Tier

	// StreakBonusDays is the consecutive-days threshold at which the streak
	// bonus kicks in; StreakBonus is the multiplier applied when it does.
	StreakBonusDays int
	StreakBonus     float64

	// Trust score shape: clamp(Baseline + total/Scale, 100).
	TrustScoreBaseline float64
	TrustScoreScale    float64

	// HelpingCategories and DonationCategories are the fixed subsets used for
	// the helped/donation counts in UserStats.
	HelpingCategories  []Category
	DonationCategories []Category
}

// DefaultConfig returns the production engine configuration.
func DefaultConfig() Config {
	return Config{
		Rates:              DefaultRates(),
		Ladder:             DefaultLadder(),
		StreakBonusDays:    7,
		StreakBonus:        1.2,
		TrustScoreBaseline: 10,
		TrustScoreScale:    30,
		HelpingCategories: []Category{
			CategoryHelpCompleted, CategoryEmergencyHelp, CategoryRecurringHelp,
		},
		DonationCategories: []Category{
			CategoryDonation, CategoryRecurringDonation, CategoryMatchingDonation,
		},
	}
}

var (
	ErrEmptyRateTable = errors.New("rate table is empty")
	ErrBadLadder      = errors.New("trust ladder must start at 0 with strictly ascending thresholds")
)

// Engine evaluates point awards, cooldowns, trust levels and stats. All
// methods are pure functions of the injected configuration; an Engine is safe
// for concurrent use without coordination.
type Engine struct {
	cfg      Config
	ladder   []Tier
	helping  map[Category]bool
	donating map[Category]bool
}

func NewEngine(cfg Config) (*Engine, error) {
	if len(cfg.Rates) == 0 {
		return nil, ErrEmptyRateTable
	}
	if len(cfg.Ladder) == 0 {
		return nil, ErrBadLadder
	}
	ladder := make([]Tier, len(cfg.Ladder))
	copy(ladder, cfg.Ladder)
	sort.Slice(ladder, func(i, j int) bool { return ladder[i].MinPoints < ladder[j].MinPoints })
	if ladder[0].MinPoints != 0 {
		return nil, ErrBadLadder
	}
	for i := 1; i < len(ladder); i++ {
		if ladder[i].MinPoints == ladder[i-1].MinPoints {
			return nil, fmt.Errorf("%w: duplicate threshold %d", ErrBadLadder, ladder[i].MinPoints)
		}
	}
	if cfg.StreakBonusDays <= 0 {
		cfg.StreakBonusDays = 7
	}
	if cfg.StreakBonus <= 1 {
		cfg.StreakBonus = 1
	}
	if cfg.TrustScoreScale <= 0 {
		cfg.TrustScoreScale = 30
	}
	helping := make(map[Category]bool, len(cfg.HelpingCategories))
	for _, c := range cfg.HelpingCategories {
		helping[c] = true
	}
	donating := make(map[Category]bool, len(cfg.DonationCategories))
	for _, c := range cfg.DonationCategories {
		donating[c] = true
	}
	return &Engine{cfg: cfg, ladder: ladder, helping: helping, donating: donating}, nil
}

// Rates returns the configured rate table (shared map; callers must not
// mutate it).
func (e *Engine) Rates() RateTable {
	return e.cfg.Rates
}
