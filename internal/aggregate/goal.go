package aggregate

import (
	"github.com/pesapots/backend/internal/models"
	"github.com/pesapots/backend/internal/types"
	"github.com/shopspring/decimal"
)

// GoalStats are the values derived from a pot for a given day.
type GoalStats struct {
	ProgressPercentage  decimal.Decimal  `json:"progressPercentage" example:"50"`  // current / target * 100, may exceed 100
	DisplayPercentage   decimal.Decimal  `json:"displayPercentage" example:"50"`   // ProgressPercentage capped at 100
	RemainingAmount     decimal.Decimal  `json:"remainingAmount" example:"2500"`   // target - current
	DaysRemaining       *int             `json:"daysRemaining" example:"100"`      // Days until the target date, nil without one
	DailySavingRequired *decimal.Decimal `json:"dailySavingRequired" example:"25"` // nil without target date or when it is reached
	Invalid             bool             `json:"invalid" example:"false"`          // The target is not positive
}

// GoalDerived computes the stats of a pot as of today.
func GoalDerived(g models.SavingsGoal, today types.Date) GoalStats {
	stats := GoalStats{
		ProgressPercentage: decimal.Zero,
		DisplayPercentage:  decimal.Zero,
		RemainingAmount:    g.TargetAmount.Sub(g.CurrentAmount),
	}

	if g.TargetAmount.IsPositive() {
		stats.ProgressPercentage = decimal.Max(percentage(g.CurrentAmount, g.TargetAmount), decimal.Zero)
		stats.DisplayPercentage = decimal.Min(stats.ProgressPercentage, models.Hundred())
	} else {
		stats.Invalid = true
	}

	if g.TargetDate == nil || g.TargetDate.IsZero() {
		return stats
	}

	days := today.DaysUntil(*g.TargetDate)
	if days < 0 {
		days = 0
	}
	stats.DaysRemaining = &days

	if days > 0 {
		daily := decimal.Max(stats.RemainingAmount, decimal.Zero).Div(decimal.NewFromInt(int64(days)))
		stats.DailySavingRequired = &daily
	}

	return stats
}

// GoalWithStats is a pot together with its derived stats.
type GoalWithStats struct {
	models.SavingsGoal
	Stats GoalStats `json:"stats"`
}

// WithGoalStats attaches the derived stats to each pot.
func WithGoalStats(goals []models.SavingsGoal, today types.Date) []GoalWithStats {
	list := make([]GoalWithStats, 0, len(goals))
	for _, g := range goals {
		list = append(list, GoalWithStats{SavingsGoal: g, Stats: GoalDerived(g, today)})
	}
	return list
}

// SavingsReport summarizes all pots.
type SavingsReport struct {
	TotalTarget     decimal.Decimal             `json:"totalTarget" example:"8000"`
	TotalSaved      decimal.Decimal             `json:"totalSaved" example:"3700"`
	AverageProgress decimal.Decimal             `json:"averageProgress" example:"45"` // Mean of the capped progress of all valid pots
	CompletionRate  decimal.Decimal             `json:"completionRate" example:"0"`   // Share of pots that reached their target, in percent
	Active          int                         `json:"active" example:"2"`
	Completed       int                         `json:"completed" example:"0"`
	Paused          int                         `json:"paused" example:"0"`
	ByPriority      map[models.GoalPriority]int `json:"byPriority"`
	Goals           []GoalWithStats             `json:"goals"`
}

// SavingsAnalytics computes the report over a list of pots as of today.
//
// A pot counts as completed when its status says so or when the target is
// reached.
func SavingsAnalytics(goals []models.SavingsGoal, today types.Date) SavingsReport {
	r := SavingsReport{
		TotalTarget:     decimal.Zero,
		TotalSaved:      decimal.Zero,
		AverageProgress: decimal.Zero,
		CompletionRate:  decimal.Zero,
		ByPriority: map[models.GoalPriority]int{
			models.GoalPriorityLow:    0,
			models.GoalPriorityMedium: 0,
			models.GoalPriorityHigh:   0,
		},
		Goals: WithGoalStats(goals, today),
	}

	progress := decimal.Zero
	valid := 0
	reached := 0

	for _, g := range r.Goals {
		r.TotalTarget = r.TotalTarget.Add(g.TargetAmount)
		r.TotalSaved = r.TotalSaved.Add(g.CurrentAmount)
		r.ByPriority[g.Priority]++

		switch g.Status {
		case models.GoalStatusCompleted:
			r.Completed++
		case models.GoalStatusPaused:
			r.Paused++
		default:
			r.Active++
		}

		if g.Status == models.GoalStatusCompleted || (!g.Stats.Invalid && g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount)) {
			reached++
		}

		if !g.Stats.Invalid {
			progress = progress.Add(g.Stats.DisplayPercentage)
			valid++
		}
	}

	if valid > 0 {
		r.AverageProgress = progress.Div(decimal.NewFromInt(int64(valid)))
	}

	if len(goals) > 0 {
		r.CompletionRate = percentage(decimal.NewFromInt(int64(reached)), decimal.NewFromInt(int64(len(goals))))
	}

	return r
}
