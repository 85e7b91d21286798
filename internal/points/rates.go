package points

// CategoryRate is the scoring rule for one category.
type CategoryRate struct {
	// BasePoints is the unscaled value of one award.
	BasePoints int
	// Multiplier is a fixed category multiplier (e.g. matching donations
	// double). Values <= 1 mean no category multiplier.
	Multiplier float64
	// CooldownMinutes is the minimum gap between two awards of this category
	// for the same user. 0 means unrestricted repetition.
	CooldownMinutes int
}

// RateTable maps categories to their scoring rules.
type RateTable map[Category]CategoryRate

// DefaultRates returns the production rate table.
func DefaultRates() RateTable {
	return RateTable{
		CategoryHelpCompleted:       {BasePoints: 25, Multiplier: 1, CooldownMinutes: 30},
		CategoryEmergencyHelp:       {BasePoints: 50, Multiplier: 1, CooldownMinutes: 60},
		CategoryRecurringHelp:       {BasePoints: 35, Multiplier: 1.5, CooldownMinutes: 30},
		CategoryDonation:            {BasePoints: 10, Multiplier: 1, CooldownMinutes: 0},
		CategoryRecurringDonation:   {BasePoints: 15, Multiplier: 1.5, CooldownMinutes: 0},
		CategoryMatchingDonation:    {BasePoints: 20, Multiplier: 2, CooldownMinutes: 0},
		CategoryProfileVerification: {BasePoints: 30, Multiplier: 1, CooldownMinutes: 0},
		CategoryCommunityEvent:      {BasePoints: 40, Multiplier: 1, CooldownMinutes: 720},
		CategoryEventAttendance:     {BasePoints: 15, Multiplier: 1, CooldownMinutes: 360},
		CategoryReferral:            {BasePoints: 20, Multiplier: 1, CooldownMinutes: 0},
		CategoryDailyCheckin:        {BasePoints: 5, Multiplier: 1, CooldownMinutes: 1440},
	}
}
