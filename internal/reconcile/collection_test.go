package reconcile_test

import (
	"fmt"
	"testing"

	"github.com/pesapots/backend/internal/models"
	"github.com/pesapots/backend/internal/reconcile"
	"github.com/pesapots/backend/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tx(id string, amount int64) models.Transaction {
	t := models.Transaction{
		ID:       id,
		Amount:   decimal.NewFromInt(amount),
		Type:     models.TransactionTypeExpense,
		Category: "Food and Dining",
		Date:     types.NewDate(2024, 1, 15),
	}
	t.SignedAmount = t.Signed()
	return t
}

func bill(id string) models.RecurringBill {
	return models.RecurringBill{ID: id, Name: "Bill " + id, Amount: decimal.NewFromInt(10), Frequency: models.BillFrequencyMonthly}
}

func ids[T models.Entity[T]](items []T) []string {
	keys := []string{}
	for _, i := range items {
		keys = append(keys, i.Key())
	}
	return keys
}

func transactions(entities ...models.Transaction) *reconcile.Collection[models.Transaction] {
	c := reconcile.NewCollection("transaction", reconcile.InsertAtHead[models.Transaction]())
	if len(entities) > 0 {
		_ = c.Apply(reconcile.ReplaceAll[models.Transaction]{Entities: entities})
	}
	return c
}

func TestAddOrdering(t *testing.T) {
	head := transactions()
	require.Nil(t, head.Apply(reconcile.Add[models.Transaction]{Entity: tx("1", 5)}))
	require.Nil(t, head.Apply(reconcile.Add[models.Transaction]{Entity: tx("2", 5)}))
	assert.Equal(t, []string{"2", "1"}, ids(head.Items()))

	tail := reconcile.NewCollection[models.RecurringBill]("bill")
	require.Nil(t, tail.Apply(reconcile.Add[models.RecurringBill]{Entity: bill("1")}))
	require.Nil(t, tail.Apply(reconcile.Add[models.RecurringBill]{Entity: bill("2")}))
	assert.Equal(t, []string{"1", "2"}, ids(tail.Items()))
}

func TestAddDuplicate(t *testing.T) {
	c := transactions()
	require.Nil(t, c.Apply(reconcile.Add[models.Transaction]{Entity: tx("1", 5)}))
	before := c.Items()

	err := c.Apply(reconcile.Add[models.Transaction]{Entity: tx("1", 99)})
	assert.ErrorIs(t, err, models.ErrDuplicateID)
	assert.Equal(t, before, c.Items())
}

func TestAddDeleteRoundTrip(t *testing.T) {
	c := transactions(tx("1", 1), tx("2", 2))
	before := c.Items()

	require.Nil(t, c.Apply(reconcile.Add[models.Transaction]{Entity: tx("3", 3)}))
	require.Nil(t, c.Apply(reconcile.Delete[models.Transaction]{ID: "3"}))

	assert.Equal(t, before, c.Items())
	_, err := c.Get("3")
	assert.ErrorIs(t, err, models.ErrResourceNotFound)
}

func TestEmptyUpdateKeepsEntity(t *testing.T) {
	c := transactions()
	e := tx("1", 25)
	require.Nil(t, c.Apply(reconcile.Add[models.Transaction]{Entity: e}))

	require.Nil(t, c.Apply(reconcile.Update[models.Transaction]{ID: "1"}))
	require.Nil(t, c.Apply(reconcile.Update[models.Transaction]{ID: "1", Patch: models.Transaction{}, Fields: []string{}}))

	got, err := c.Get("1")
	require.Nil(t, err)
	assert.Equal(t, e, got)
}

func TestUpdateMergesNamedFields(t *testing.T) {
	c := transactions(tx("1", 25))

	patch := models.Transaction{Amount: decimal.NewFromInt(40), Type: models.TransactionTypeIncome, Description: "ignored"}
	require.Nil(t, c.Apply(reconcile.Update[models.Transaction]{ID: "1", Patch: patch, Fields: []string{"amount", "type"}}))

	got, err := c.Get("1")
	require.Nil(t, err)
	assert.True(t, got.Amount.Equal(decimal.NewFromInt(40)))
	assert.True(t, got.SignedAmount.Equal(decimal.NewFromInt(40)), "signed amount follows the new type")
	assert.Equal(t, "Food and Dining", got.Category)
	assert.Equal(t, "", got.Description)
}

func TestNotFound(t *testing.T) {
	c := transactions(tx("1", 1))
	before := c.Items()

	tests := []struct {
		name   string
		action reconcile.Action[models.Transaction]
	}{
		{"Update", reconcile.Update[models.Transaction]{ID: "404", Fields: []string{"amount"}}},
		{"Delete", reconcile.Delete[models.Transaction]{ID: "404"}},
		{"Toggle", reconcile.Toggle[models.Transaction]{ID: "404", Field: "paid"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.Apply(tt.action)
			assert.ErrorIs(t, err, models.ErrResourceNotFound)
			assert.Contains(t, err.Error(), `transaction with ID "404"`)
			assert.Equal(t, before, c.Items())
		})
	}
}

func TestToggle(t *testing.T) {
	c := reconcile.NewCollection[models.RecurringBill]("bill")
	require.Nil(t, c.Apply(reconcile.ReplaceAll[models.RecurringBill]{Entities: []models.RecurringBill{bill("1")}}))

	require.Nil(t, c.Apply(reconcile.Toggle[models.RecurringBill]{ID: "1", Field: "paid"}))
	got, _ := c.Get("1")
	assert.True(t, got.Paid)

	require.Nil(t, c.Apply(reconcile.Toggle[models.RecurringBill]{ID: "1", Field: "paid"}))
	got, _ = c.Get("1")
	assert.False(t, got.Paid)

	err := c.Apply(reconcile.Toggle[models.RecurringBill]{ID: "1", Field: "name"})
	assert.ErrorIs(t, err, models.ErrUnknownField)
}

func TestReplaceAllConvergesToServerOrder(t *testing.T) {
	c := transactions(tx("1", 1), tx("2", 2))
	require.Nil(t, c.Apply(reconcile.Add[models.Transaction]{Entity: tx("local", 3)}))

	server := []models.Transaction{tx("3", 3), tx("1", 1), tx("2", 2)}
	require.Nil(t, c.Apply(reconcile.ReplaceAll[models.Transaction]{Entities: server}))

	assert.Equal(t, server, c.Items())
	assert.Equal(t, 3, c.Len())
}

func TestReplaceAllDuplicateIDs(t *testing.T) {
	c := transactions()
	require.Nil(t, c.Apply(reconcile.ReplaceAll[models.Transaction]{Entities: []models.Transaction{tx("1", 1), tx("2", 2), tx("1", 10)}}))

	assert.Equal(t, []string{"1", "2"}, ids(c.Items()))
	got, _ := c.Get("1")
	assert.True(t, got.Amount.Equal(decimal.NewFromInt(10)))

	// The index must point to the right positions after a replacement
	require.Nil(t, c.Apply(reconcile.Delete[models.Transaction]{ID: "1"}))
	assert.Equal(t, []string{"2"}, ids(c.Items()))
}

func TestItemsIsACopy(t *testing.T) {
	c := transactions(tx("1", 1))

	items := c.Items()
	items[0].Description = "changed"

	got, _ := c.Get("1")
	assert.Equal(t, "", got.Description)
}

func TestActionNames(t *testing.T) {
	assert.Equal(t, "add", reconcile.Add[models.Budget]{}.Name())
	assert.Equal(t, "update", reconcile.Update[models.Budget]{}.Name())
	assert.Equal(t, "delete", reconcile.Delete[models.Budget]{}.Name())
	assert.Equal(t, "replace_all", reconcile.ReplaceAll[models.Budget]{}.Name())
	assert.Equal(t, "toggle", reconcile.Toggle[models.Budget]{}.Name())
}

func TestManyAddsKeepIndex(t *testing.T) {
	c := transactions()
	for i := 0; i < 20; i++ {
		require.Nil(t, c.Apply(reconcile.Add[models.Transaction]{Entity: tx(fmt.Sprint(i), int64(i))}))
	}

	require.Nil(t, c.Apply(reconcile.Delete[models.Transaction]{ID: "10"}))
	for i := 0; i < 20; i++ {
		got, err := c.Get(fmt.Sprint(i))
		if i == 10 {
			assert.ErrorIs(t, err, models.ErrResourceNotFound)
			continue
		}
		require.Nil(t, err)
		assert.Equal(t, fmt.Sprint(i), got.ID)
	}
}
