package models

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// swagger:enum BudgetPeriod
type BudgetPeriod string

const (
	BudgetPeriodMonthly   BudgetPeriod = "monthly"
	BudgetPeriodQuarterly BudgetPeriod = "quarterly"
	BudgetPeriodYearly    BudgetPeriod = "yearly"
)

func (p BudgetPeriod) Valid() bool {
	return p == BudgetPeriodMonthly || p == BudgetPeriodQuarterly || p == BudgetPeriodYearly
}

// swagger:enum BudgetStatus
type BudgetStatus string

const (
	BudgetStatusActive   BudgetStatus = "active"
	BudgetStatusInactive BudgetStatus = "inactive"
)

func (s BudgetStatus) Valid() bool {
	return s == BudgetStatusActive || s == BudgetStatusInactive
}

// DefaultAlertThreshold is the percentage of the limit at which a budget alerts
// if nothing else is configured.
var DefaultAlertThreshold = decimal.NewFromInt(80)

// Budget is a spending limit for one category.
//
// At most one active budget may exist per category.
type Budget struct {
	ID             string          `json:"id" example:"1"`                     // ID of the budget as assigned by the backend
	Category       string          `json:"category" example:"Food and Dining"` // Category the budget limits
	Limit          decimal.Decimal `json:"limit" example:"500"`                // Maximum amount to spend per period
	Spent          decimal.Decimal `json:"spent" example:"145.5"`              // Amount spent in the current period
	Period         BudgetPeriod    `json:"period" example:"monthly"`           // Budget period
	AlertThreshold decimal.Decimal `json:"alertThreshold" example:"80"`        // Percentage of the limit at which to alert
	Status         BudgetStatus    `json:"status" example:"active"`            // active or inactive
	Color          string          `json:"color" example:"bg-blue-500"`        // Display color
	EmailAlerts    bool            `json:"emailAlerts" example:"true"`         // Send alerts via email
	SMSAlerts      bool            `json:"smsAlerts" example:"false"`          // Send alerts via SMS
}

// IsActive reports if the budget is currently in effect for its category.
func (b Budget) IsActive() bool {
	return b.Status == BudgetStatusActive
}

func (b Budget) Key() string {
	return b.ID
}

func (b Budget) Merge(patch Budget, fields []string) Budget {
	if slices.Contains(fields, "category") {
		b.Category = patch.Category
	}
	if slices.Contains(fields, "limit") {
		b.Limit = patch.Limit
	}
	if slices.Contains(fields, "spent") {
		b.Spent = patch.Spent
	}
	if slices.Contains(fields, "period") {
		b.Period = patch.Period
	}
	if slices.Contains(fields, "alertThreshold") {
		b.AlertThreshold = patch.AlertThreshold
	}
	if slices.Contains(fields, "status") {
		b.Status = patch.Status
	}
	if slices.Contains(fields, "color") {
		b.Color = patch.Color
	}
	if slices.Contains(fields, "emailAlerts") {
		b.EmailAlerts = patch.EmailAlerts
	}
	if slices.Contains(fields, "smsAlerts") {
		b.SMSAlerts = patch.SMSAlerts
	}

	return b
}

func (b Budget) Toggle(field string) (Budget, error) {
	switch field {
	case "emailAlerts":
		b.EmailAlerts = !b.EmailAlerts
	case "smsAlerts":
		b.SMSAlerts = !b.SMSAlerts
	default:
		return b, fmt.Errorf("%w: %s on budget", ErrUnknownField, field)
	}

	return b, nil
}
