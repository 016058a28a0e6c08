package stats

// ActivePlans keeps the user's in-progress plans, optionally restricted to
// one category. The per-date window is checked separately with Plan.ActiveOn.
func ActivePlans(plans []Plan, userID int, category *int) []Plan {
	var out []Plan
	for _, p := range plans {
		if p.UserID != userID || p.Status != PlanActive {
			continue
		}
		if category != nil && p.Category != *category {
			continue
		}
		out = append(out, p)
	}
	return out
}
