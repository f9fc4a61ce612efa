package models_test

import (
	"testing"

	"github.com/pesapots/backend/internal/models"
	"github.com/pesapots/backend/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestGoalMerge(t *testing.T) {
	date := types.NewDate(2024, 12, 31)
	goal := models.SavingsGoal{
		ID:            "1",
		Name:          "Emergency Fund",
		TargetAmount:  decimal.NewFromInt(5000),
		CurrentAmount: decimal.NewFromInt(2500),
		Priority:      models.GoalPriorityMedium,
		Status:        models.GoalStatusActive,
		Color:         "bg-red-500",
	}

	patch := models.SavingsGoal{
		ID:            "ignored",
		Name:          "Rainy Day",
		TargetAmount:  decimal.NewFromInt(6000),
		CurrentAmount: decimal.NewFromInt(1),
		TargetDate:    &date,
	}

	merged := goal.Merge(patch, []string{"name", "targetDate"})
	assert.Equal(t, "1", merged.ID)
	assert.Equal(t, "Rainy Day", merged.Name)
	assert.Equal(t, &date, merged.TargetDate)
	assert.True(t, merged.TargetAmount.Equal(decimal.NewFromInt(5000)))
	assert.True(t, merged.CurrentAmount.Equal(decimal.NewFromInt(2500)))
	assert.Equal(t, models.GoalPriorityMedium, merged.Priority)

	funded := goal.Merge(patch, []string{"currentAmount"})
	assert.True(t, funded.CurrentAmount.Equal(decimal.NewFromInt(1)))

	assert.Equal(t, goal, goal.Merge(patch, nil))
}

func TestGoalToggle(t *testing.T) {
	_, err := models.SavingsGoal{ID: "1"}.Toggle("status")
	assert.ErrorIs(t, err, models.ErrUnknownField)
}

func TestGoalEnums(t *testing.T) {
	assert.True(t, models.GoalPriorityHigh.Valid())
	assert.False(t, models.GoalPriority("urgent").Valid())
	assert.True(t, models.GoalStatusPaused.Valid())
	assert.False(t, models.GoalStatus("").Valid())
}
