package models

import (
	"fmt"

	"github.com/pesapots/backend/internal/types"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// swagger:enum GoalPriority
type GoalPriority string

const (
	GoalPriorityLow    GoalPriority = "low"
	GoalPriorityMedium GoalPriority = "medium"
	GoalPriorityHigh   GoalPriority = "high"
)

func (p GoalPriority) Valid() bool {
	return p == GoalPriorityLow || p == GoalPriorityMedium || p == GoalPriorityHigh
}

// swagger:enum GoalStatus
type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusCompleted GoalStatus = "completed"
	GoalStatusPaused    GoalStatus = "paused"
)

func (s GoalStatus) Valid() bool {
	return s == GoalStatusActive || s == GoalStatusCompleted || s == GoalStatusPaused
}

// SavingsGoal is a pot: an amount saved towards a target.
//
// CurrentAmount only changes through deposits, withdrawals and allocations.
// Patches from users that contain it are rejected before they reach a
// collection.
type SavingsGoal struct {
	ID            string          `json:"id" example:"1"`                                                 // ID of the pot as assigned by the backend
	Name          string          `json:"name" example:"Emergency Fund"`                                  // Name of the pot
	TargetAmount  decimal.Decimal `json:"targetAmount" example:"5000"`                                    // Amount to save
	CurrentAmount decimal.Decimal `json:"currentAmount" example:"2500"`                                   // Amount saved so far
	Priority      GoalPriority    `json:"priority" example:"medium"`                                      // low, medium or high
	Status        GoalStatus      `json:"status" example:"active"`                                        // active, completed or paused
	TargetDate    *types.Date     `json:"targetDate,omitempty" example:"2024-12-31" swaggertype:"string"` // Day the target should be reached
	Color         string          `json:"color" example:"bg-red-500"`                                     // Display color
}

func (g SavingsGoal) Key() string {
	return g.ID
}

func (g SavingsGoal) Merge(patch SavingsGoal, fields []string) SavingsGoal {
	if slices.Contains(fields, "name") {
		g.Name = patch.Name
	}
	if slices.Contains(fields, "targetAmount") {
		g.TargetAmount = patch.TargetAmount
	}
	if slices.Contains(fields, "currentAmount") {
		g.CurrentAmount = patch.CurrentAmount
	}
	if slices.Contains(fields, "priority") {
		g.Priority = patch.Priority
	}
	if slices.Contains(fields, "status") {
		g.Status = patch.Status
	}
	if slices.Contains(fields, "targetDate") {
		g.TargetDate = patch.TargetDate
	}
	if slices.Contains(fields, "color") {
		g.Color = patch.Color
	}

	return g
}

// Toggle always fails, pots have no boolean fields.
func (g SavingsGoal) Toggle(field string) (SavingsGoal, error) {
	return g, fmt.Errorf("%w: %s on pot", ErrUnknownField, field)
}

// SavingsAccount is the pool pot allocations draw from. There is one per user.
type SavingsAccount struct {
	Balance            decimal.Decimal `json:"balance" example:"1200"`          // Unallocated savings
	AutoSavePercentage decimal.Decimal `json:"autoSavePercentage" example:"10"` // Percentage of income saved automatically
}
