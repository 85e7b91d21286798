package points

import "time"

// CanAward reports whether a new award of the given category is permitted at
// `now`, given the timestamp of the user's last qualifying activity. A nil
// lastActivity means no prior activity. The gate does not touch storage; the
// caller supplies the last-activity timestamp from whatever tracks it.
//
// Categories without a cooldown (or absent from the table; the calculator
// rejects those separately) always pass.
func (e *Engine) CanAward(category Category, lastActivity *time.Time, now time.Time) bool {
	rate, ok := e.cfg.Rates[category]
	if !ok || rate.CooldownMinutes == 0 || lastActivity == nil {
		return true
	}
	return now.Sub(*lastActivity) >= time.Duration(rate.CooldownMinutes)*time.Minute
}
