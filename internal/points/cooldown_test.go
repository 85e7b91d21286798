package points

import (
	"testing"
	"time"
)

func TestCanAward(t *testing.T) {
	e := newTestEngine(t)
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	ago := func(d time.Duration) *time.Time {
		ts := now.Add(-d)
		return &ts
	}

	tests := []struct {
		name         string
		category     Category
		lastActivity *time.Time
		want         bool
	}{
		{"no prior activity", CategoryEmergencyHelp, nil, true},
		{"inside 60min cooldown", CategoryEmergencyHelp, ago(30 * time.Minute), false},
		{"outside 60min cooldown", CategoryEmergencyHelp, ago(90 * time.Minute), true},
		{"exactly at cooldown boundary", CategoryEmergencyHelp, ago(60 * time.Minute), true},
		{"zero cooldown always allowed", CategoryDonation, ago(time.Second), true},
		{"daily checkin same day blocked", CategoryDailyCheckin, ago(2 * time.Hour), false},
		{"daily checkin next day allowed", CategoryDailyCheckin, ago(25 * time.Hour), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.CanAward(tt.category, tt.lastActivity, now); got != tt.want {
				t.Errorf("CanAward(%s) = %v, want %v", tt.category, got, tt.want)
			}
		})
	}
}
