package points

// Tier is one rung of the trust ladder.
type Tier struct {
	Level     string   `json:"level"`
	Name      string   `json:"name"`
	MinPoints int      `json:"min_points"`
	Benefits  []string `json:"benefits"`
}

// NextLevel describes the tier above the user's current one and how far away
// it is. A nil NextLevel means the user is at the top of the ladder; that is
// deliberately distinct from "0 points needed".
type NextLevel struct {
	Level        string `json:"level"`
	Name         string `json:"name"`
	MinPoints    int    `json:"min_points"`
	PointsNeeded int    `json:"points_needed"`
}

// DefaultLadder returns the production trust ladder, ordered by MinPoints
// ascending. The bottom tier starts at 0 so every non-negative total resolves.
func DefaultLadder() []Tier {
	return []Tier{
		{Level: "newcomer", Name: "Newcomer", MinPoints: 0, Benefits: []string{
			"browse community campaigns",
			"respond to open help requests",
		}},
		{Level: "helper", Name: "Helper", MinPoints: 100, Benefits: []string{
			"post help requests",
			"join organised events",
		}},
		{Level: "trusted", Name: "Trusted Member", MinPoints: 500, Benefits: []string{
			"respond to emergency requests",
			"visible trusted badge",
		}},
		{Level: "champion", Name: "Community Champion", MinPoints: 1500, Benefits: []string{
			"organise community events",
			"priority support",
		}},
		{Level: "guardian", Name: "Guardian", MinPoints: 3000, Benefits: []string{
			"mentor new members",
			"review community campaigns",
		}},
	}
}

// ResolveLevel returns the highest tier whose threshold the total has reached.
// totalPoints must be non-negative; the bottom tier catches 0.
func (e *Engine) ResolveLevel(totalPoints int) Tier {
	current := e.ladder[0]
	for _, t := range e.ladder {
		if t.MinPoints > totalPoints {
			break
		}
		current = t
	}
	return current
}

// NextLevelFor returns the tier directly above the current one, or nil when
// the user already sits on the top tier.
func (e *Engine) NextLevelFor(totalPoints int) *NextLevel {
	for _, t := range e.ladder {
		if t.MinPoints > totalPoints {
			return &NextLevel{
				Level:        t.Level,
				Name:         t.Name,
				MinPoints:    t.MinPoints,
				PointsNeeded: t.MinPoints - totalPoints,
			}
		}
	}
	return nil
}

// Ladder returns a copy of the configured ladder for display purposes.
func (e *Engine) Ladder() []Tier {
	out := make([]Tier, len(e.ladder))
	copy(out, e.ladder)
	return out
}
