package core

import "sort"

const (
	frugalMinCount = 5
	streakMinDays  = 3
	distinctMin    = 5
)

// frugalCap is the fixed spending ceiling for the Frugal Spender
// badge, in cents.
var frugalCap = Money{Cents: 50_000} // 500.00

// EvaluateBadges runs the fixed badge catalog against the full expense
// history, the current-month subset and the budget. The result always
// contains all four badges with their Earned flag; nothing is filtered
// out. The evaluation is a pure function of its inputs and carries no
// state between calls.
func EvaluateBadges(history, month []Expense, budget Money) []Badge {
	var monthTotal int64
	for _, e := range month {
		monthTotal += e.Amount.Cents
	}

	distinct := make(map[string]struct{})
	for _, e := range month {
		distinct[e.CategoryID] = struct{}{}
	}

	return []Badge{
		{
			ID:          "budget-hero",
			Name:        "Budget Hero",
			Description: "Kept this month's spending under your budget.",
			Icon:        "ShieldCheck",
			Earned:      monthTotal < budget.Cents,
		},
		{
			ID:          "frugal-spender",
			Name:        "Frugal Spender",
			Description: "Recorded more than 5 expenses this month while staying under 500.",
			Icon:        "PiggyBank",
			Earned:      len(month) > frugalMinCount && monthTotal < frugalCap.Cents,
		},
		{
			ID:          "on-a-roll",
			Name:        "On a Roll",
			Description: "Logged at least one expense on 3 consecutive days.",
			Icon:        "Flame",
			Earned:      latestStreak(history) >= streakMinDays,
		},
		{
			ID:          "master-categorizer",
			Name:        "Master Categorizer",
			Description: "Spread this month's expenses over 5 or more categories.",
			Icon:        "Library",
			Earned:      len(distinct) >= distinctMin,
		},
	}
}

// latestStreak measures the run of consecutive calendar days ending at
// the most recent expense day. Days are deduplicated and sorted
// descending; the scan stops at the first gap larger than one day, so
// only the most recent contiguous run counts. A longer streak earlier
// in the history is intentionally ignored.
func latestStreak(expenses []Expense) int {
	seen := make(map[int64]struct{})
	days := make([]int64, 0, len(expenses))
	for _, e := range expenses {
		if e.Date.IsZero() {
			continue
		}
		d := e.Day().Unix()
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		days = append(days, d)
	}
	if len(days) == 0 {
		return 0
	}

	sort.Slice(days, func(i, j int) bool { return days[i] > days[j] })

	const daySeconds = 24 * 60 * 60
	streak := 1
	for i := 1; i < len(days); i++ {
		if days[i-1]-days[i] != daySeconds {
			break
		}
		streak++
	}
	return streak
}
