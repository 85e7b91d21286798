package points

import "testing"

func TestAggregateEmptyHistory(t *testing.T) {
	e := newTestEngine(t)
	stats := e.Aggregate(nil)

	if stats.TotalPoints != 0 {
		t.Errorf("TotalPoints = %d, want 0", stats.TotalPoints)
	}
	if stats.Level.Level != "newcomer" {
		t.Errorf("Level = %s, want newcomer", stats.Level.Level)
	}
	if stats.NextLevel == nil || stats.NextLevel.PointsNeeded != 100 {
		t.Errorf("NextLevel = %+v, want helper at 100 points", stats.NextLevel)
	}
	if stats.HelpedCount != 0 || stats.DonationCount != 0 {
		t.Errorf("counts = %d/%d, want 0/0", stats.HelpedCount, stats.DonationCount)
	}
	if stats.TrustScore != 10 {
		t.Errorf("TrustScore = %v, want baseline 10", stats.TrustScore)
	}
}

func TestAggregate(t *testing.T) {
	e := newTestEngine(t)
	records := []Record{
		{Category: CategoryHelpCompleted, Points: 25},
		{Category: CategoryHelpCompleted, Points: 25},
		{Category: CategoryEmergencyHelp, Points: 50},
		{Category: CategoryDonation, Points: 10},
		{Category: CategoryMatchingDonation, Points: 40},
		{Category: CategoryDailyCheckin, Points: 5},
	}
	stats := e.Aggregate(records)

	wantTotal := 155
	if stats.TotalPoints != wantTotal {
		t.Errorf("TotalPoints = %d, want %d", stats.TotalPoints, wantTotal)
	}
	if stats.Level.Level != "helper" {
		t.Errorf("Level = %s, want helper", stats.Level.Level)
	}
	if stats.NextLevel == nil || stats.NextLevel.Level != "trusted" || stats.NextLevel.PointsNeeded != 345 {
		t.Errorf("NextLevel = %+v, want trusted with 345 needed", stats.NextLevel)
	}
	if stats.HelpedCount != 3 {
		t.Errorf("HelpedCount = %d, want 3", stats.HelpedCount)
	}
	if stats.DonationCount != 2 {
		t.Errorf("DonationCount = %d, want 2", stats.DonationCount)
	}
	if stats.CountsByCategory[CategoryHelpCompleted] != 2 {
		t.Errorf("help_completed count = %d, want 2", stats.CountsByCategory[CategoryHelpCompleted])
	}
}

// The aggregate total must equal the plain sum of transaction points, and
// re-running over the same input must give identical results.
func TestAggregateConsistency(t *testing.T) {
	e := newTestEngine(t)
	var records []Record
	sum := 0
	for i := 0; i < 200; i++ {
		p := (i*37)%61 + 1
		records = append(records, Record{Category: CategoryDonation, Points: p})
		sum += p
	}
	first := e.Aggregate(records)
	if first.TotalPoints != sum {
		t.Fatalf("TotalPoints = %d, want sum %d", first.TotalPoints, sum)
	}
	second := e.Aggregate(records)
	if second.TotalPoints != first.TotalPoints || second.TrustScore != first.TrustScore ||
		second.Level.Level != first.Level.Level || second.HelpedCount != first.HelpedCount {
		t.Fatal("repeated aggregation over identical input differed")
	}
}

func TestTrustScoreClamped(t *testing.T) {
	e := newTestEngine(t)
	prev := 0.0
	for total := 0; total <= 10000; total += 50 {
		score := e.TrustScore(total)
		if score < prev {
			t.Fatalf("trust score decreased at total=%d", total)
		}
		if score > 100 {
			t.Fatalf("trust score %v exceeds 100 at total=%d", score, total)
		}
		prev = score
	}
	if e.TrustScore(1000000) != 100 {
		t.Error("trust score must clamp at 100")
	}
}
