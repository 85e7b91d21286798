package points

import "testing"

func TestResolveLevel(t *testing.T) {
	e := newTestEngine(t)

	tests := []struct {
		total     int
		wantLevel string
	}{
		{0, "newcomer"},
		{99, "newcomer"},
		{100, "helper"},
		{499, "helper"},
		{500, "trusted"},
		{1499, "trusted"},
		{1500, "champion"},
		{3000, "guardian"},
		{1000000, "guardian"},
	}
	for _, tt := range tests {
		if got := e.ResolveLevel(tt.total); got.Level != tt.wantLevel {
			t.Errorf("ResolveLevel(%d) = %s, want %s", tt.total, got.Level, tt.wantLevel)
		}
	}
}

func TestNextLevelFor(t *testing.T) {
	e := newTestEngine(t)

	next := e.NextLevelFor(499)
	if next == nil {
		t.Fatal("NextLevelFor(499) = nil, want trusted")
	}
	if next.Level != "trusted" || next.PointsNeeded != 1 {
		t.Errorf("NextLevelFor(499) = %+v, want trusted with 1 point needed", next)
	}

	next = e.NextLevelFor(0)
	if next == nil || next.Level != "helper" || next.PointsNeeded != 100 {
		t.Errorf("NextLevelFor(0) = %+v, want helper with 100 points needed", next)
	}

	if next := e.NextLevelFor(3000); next != nil {
		t.Errorf("NextLevelFor at top tier = %+v, want nil", next)
	}
}

// Resolution must be monotonic: more points never resolves to a lower tier.
func TestResolveLevelMonotonic(t *testing.T) {
	e := newTestEngine(t)
	prev := -1
	for total := 0; total <= 4000; total++ {
		tier := e.ResolveLevel(total)
		if tier.MinPoints < prev {
			t.Fatalf("tier threshold decreased at total=%d: %d -> %d", total, prev, tier.MinPoints)
		}
		prev = tier.MinPoints
	}
}

// Every non-negative total must resolve to exactly one tier.
func TestLadderTotality(t *testing.T) {
	e := newTestEngine(t)
	for total := 0; total <= 3500; total += 7 {
		tier := e.ResolveLevel(total)
		if tier.MinPoints > total {
			t.Fatalf("ResolveLevel(%d) returned tier with threshold %d", total, tier.MinPoints)
		}
	}
	if got := e.ResolveLevel(0); got.MinPoints != 0 {
		t.Errorf("ResolveLevel(0) = %+v, want bottom tier", got)
	}
}
