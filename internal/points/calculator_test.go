package points

import (
	"errors"
	"testing"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(DefaultConfig())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func TestCalculate(t *testing.T) {
	e := newTestEngine(t)

	tests := []struct {
		name           string
		category       Category
		meta           Metadata
		wantBase       int
		wantMultiplier float64
		wantPoints     int
	}{
		{
			name:           "plain donation",
			category:       CategoryDonation,
			wantBase:       10,
			wantMultiplier: 1,
			wantPoints:     10,
		},
		{
			name:           "matching donation doubles",
			category:       CategoryMatchingDonation,
			wantBase:       20,
			wantMultiplier: 2,
			wantPoints:     40,
		},
		{
			name:           "recurring help with streak combines multiplicatively",
			category:       CategoryRecurringHelp,
			meta:           Metadata{ConsecutiveDays: 7},
			wantBase:       35,
			wantMultiplier: 1.8,
			wantPoints:     63, // round(35 * 1.8)
		},
		{
			name:           "streak below threshold has no bonus",
			category:       CategoryRecurringHelp,
			meta:           Metadata{ConsecutiveDays: 6},
			wantBase:       35,
			wantMultiplier: 1.5,
			wantPoints:     53, // round(52.5) half-up
		},
		{
			name:           "streak bonus on unit multiplier category",
			category:       CategoryDailyCheckin,
			meta:           Metadata{ConsecutiveDays: 30},
			wantBase:       5,
			wantMultiplier: 1.2,
			wantPoints:     6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Calculate(tt.category, tt.meta)
			if err != nil {
				t.Fatalf("Calculate(%s): %v", tt.category, err)
			}
			if got.BasePoints != tt.wantBase {
				t.Errorf("BasePoints = %d, want %d", got.BasePoints, tt.wantBase)
			}
			if got.Multiplier != tt.wantMultiplier {
				t.Errorf("Multiplier = %v, want %v", got.Multiplier, tt.wantMultiplier)
			}
			if got.Points != tt.wantPoints {
				t.Errorf("Points = %d, want %d", got.Points, tt.wantPoints)
			}
		})
	}
}

func TestCalculateUnknownCategory(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.Calculate(Category("tea_drinking"), Metadata{})
	if !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
}

func TestCalculateDeterministic(t *testing.T) {
	e := newTestEngine(t)
	first, err := e.Calculate(CategoryRecurringHelp, Metadata{ConsecutiveDays: 12})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	for i := 0; i < 50; i++ {
		got, err := e.Calculate(CategoryRecurringHelp, Metadata{ConsecutiveDays: 12})
		if err != nil {
			t.Fatalf("Calculate: %v", err)
		}
		if got != first {
			t.Fatalf("call %d returned %+v, first call returned %+v", i, got, first)
		}
	}
}

func TestNewEngineRejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Ladder = []Tier{{Level: "start", MinPoints: 50}}
	if _, err := NewEngine(cfg); !errors.Is(err, ErrBadLadder) {
		t.Errorf("ladder not starting at 0: got %v, want ErrBadLadder", err)
	}

	cfg = DefaultConfig()
	cfg.Ladder = append(cfg.Ladder, Tier{Level: "dup", MinPoints: 500})
	if _, err := NewEngine(cfg); !errors.Is(err, ErrBadLadder) {
		t.Errorf("duplicate threshold: got %v, want ErrBadLadder", err)
	}

	cfg = DefaultConfig()
	cfg.Rates = nil
	if _, err := NewEngine(cfg); !errors.Is(err, ErrEmptyRateTable) {
		t.Errorf("empty rates: got %v, want ErrEmptyRateTable", err)
	}
}
