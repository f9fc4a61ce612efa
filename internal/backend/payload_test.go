package backend_test

import (
	"testing"

	"github.com/pesapots/backend/internal/backend"
	"github.com/pesapots/backend/internal/models"
	"github.com/pesapots/backend/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayloadAllFields(t *testing.T) {
	payload, err := backend.Payload(backend.KindTransactions, models.Transaction{
		ID:          "1",
		Amount:      decimal.RequireFromString("25.50"),
		Type:        models.TransactionTypeExpense,
		Category:    "Food and Dining",
		Description: "Coffee Shop",
		Date:        types.NewDate(2024, 1, 15),
	}, nil)
	require.Nil(t, err)

	assert.Equal(t, map[string]any{
		"amount":           "25.5",
		"transaction_type": "expense",
		"category":         "Food and Dining",
		"description":      "Coffee Shop",
		"date":             "2024-01-15",
	}, payload)
}

func TestPayloadNamedFields(t *testing.T) {
	payload, err := backend.Payload(backend.KindBudgets, models.Budget{
		AlertThreshold: decimal.NewFromInt(90),
		EmailAlerts:    true,
	}, []string{"alertThreshold", "emailAlerts", "unknown"})
	require.Nil(t, err)

	assert.Equal(t, map[string]any{"alert_threshold": "90", "email_alerts": true}, payload)
}

func TestPayloadNeverSendsCurrentAmount(t *testing.T) {
	payload, err := backend.Payload(backend.KindGoals, models.SavingsGoal{
		Name:          "Car",
		CurrentAmount: decimal.NewFromInt(100),
	}, []string{"name", "currentAmount"})
	require.Nil(t, err)

	assert.Equal(t, map[string]any{"name": "Car"}, payload)
}

func TestPayloadUnknownKind(t *testing.T) {
	_, err := backend.Payload(backend.Kind("accounts"), models.Budget{}, nil)
	assert.NotNil(t, err)
}
