package points

import (
	"fmt"
	"math"
)

// ErrUnknownCategory is returned when a category is absent from the rate
// table. An award for such a category is rejected outright rather than scored
// as zero.
var ErrUnknownCategory = fmt.Errorf("unknown point category")

// Metadata is optional context for a single award.
type Metadata struct {
	// ConsecutiveDays is the length of the user's current activity streak.
	ConsecutiveDays int `json:"consecutive_days"`
}

// Calculation is the result of scoring one award.
type Calculation struct {
	BasePoints int     `json:"base_points"`
	Multiplier float64 `json:"multiplier"`
	Points     int     `json:"points"`
}

// Calculate scores a single award. The multiplier starts at the category's
// fixed multiplier and is multiplied by the streak bonus when the streak
// threshold is met. Rounding happens exactly once, half-up on the final
// product.
func (e *Engine) Calculate(category Category, meta Metadata) (Calculation, error) {
	rate, ok := e.cfg.Rates[category]
	if !ok {
		return Calculation{}, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	multiplier := 1.0
	if rate.Multiplier > 1 {
		multiplier = rate.Multiplier
	}
	if meta.ConsecutiveDays >= e.cfg.StreakBonusDays {
		multiplier *= e.cfg.StreakBonus
	}
	return Calculation{
		BasePoints: rate.BasePoints,
		Multiplier: multiplier,
		Points:     int(math.Round(float64(rate.BasePoints) * multiplier)),
	}, nil
}
