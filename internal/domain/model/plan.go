package model

// DiningPlan is the user-editable preference object that steers relevance
// ranking. Singleton per session, persisted across reloads.
type DiningPlan struct {
	Date        string `json:"date"`
	Time        string `json:"time"`
	PartySize   int    `json:"party_size"`
	Vibe        string `json:"vibe"`
	Budget      string `json:"budget"`
	WalkMinutes int    `json:"walk_minutes"`
	Dietary     string `json:"dietary"`
}

// PlanPatch is a partial DiningPlan update. Nil fields are left untouched.
type PlanPatch struct {
	Date        *string `json:"date,omitempty"`
	Time        *string `json:"time,omitempty"`
	PartySize   *int    `json:"party_size,omitempty"`
	Vibe        *string `json:"vibe,omitempty"`
	Budget      *string `json:"budget,omitempty"`
	WalkMinutes *int    `json:"walk_minutes,omitempty"`
	Dietary     *string `json:"dietary,omitempty"`
}

// Walk tolerance bounds for the plan slider.
const (
	MinWalkMinutes = 5
	MaxWalkMinutes = 45
)

// Apply merges the patch into the plan, clamping out-of-range values and
// ignoring unknown enum values rather than erroring.
func (p DiningPlan) Apply(patch PlanPatch) DiningPlan {
	if patch.Date != nil {
		p.Date = *patch.Date
	}
	if patch.Time != nil {
		p.Time = *patch.Time
	}
	if patch.PartySize != nil && *patch.PartySize >= 1 {
		p.PartySize = *patch.PartySize
	}
	if patch.Vibe != nil && IsValidVibe(*patch.Vibe) {
		p.Vibe = *patch.Vibe
	}
	if patch.Budget != nil && IsValidBudget(*patch.Budget) {
		p.Budget = *patch.Budget
	}
	if patch.WalkMinutes != nil {
		m := *patch.WalkMinutes
		if m < MinWalkMinutes {
			m = MinWalkMinutes
		}
		if m > MaxWalkMinutes {
			m = MaxWalkMinutes
		}
		p.WalkMinutes = m
	}
	if patch.Dietary != nil {
		p.Dietary = *patch.Dietary
	}
	return p
}
