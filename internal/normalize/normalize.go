package normalize

import (
	"errors"

	"github.com/pesapots/backend/internal/models"
	"github.com/pesapots/backend/internal/types"
	"github.com/shopspring/decimal"
)

// Transaction normalizes a single transaction record.
//
// The amount is stored as absolute value. Legacy records carry negative
// amounts for expenses, if the type is missing it is inferred from the sign.
func Transaction(raw RawRecord) (models.Transaction, error) {
	id, ok := raw.id()
	if !ok {
		return models.Transaction{}, malformed(KindTransaction, "id is missing")
	}

	v, _ := value(transactionFields, raw, "amount")
	amount, err := toDecimal(v)
	if err != nil {
		return models.Transaction{}, malformed(KindTransaction, "amount: %v", err)
	}

	v, _ = value(transactionFields, raw, "type")
	t := models.TransactionType(toEnum(v))
	if !t.Valid() {
		t = models.TransactionTypeIncome
		if amount.IsNegative() {
			t = models.TransactionTypeExpense
		}
	}

	v, _ = value(transactionFields, raw, "date")
	date, err := toDate(v)
	if err != nil {
		return models.Transaction{}, malformed(KindTransaction, "date: %v", err)
	}

	v, _ = value(transactionFields, raw, "category")
	category := toCategory(v)
	if category == "" {
		category = models.DefaultCategory(t)
	}

	description, _ := value(transactionFields, raw, "description")

	transaction := models.Transaction{
		ID:          id,
		Amount:      amount.Abs(),
		Type:        t,
		Category:    category,
		Description: toString(description),
		Date:        date,
	}
	transaction.SignedAmount = transaction.Signed()

	return transaction, nil
}

// Budget normalizes a single budget record.
func Budget(raw RawRecord) (models.Budget, error) {
	id, ok := raw.id()
	if !ok {
		return models.Budget{}, malformed(KindBudget, "id is missing")
	}

	amounts := map[string]decimal.Decimal{}
	for _, name := range []string{"limit", "spent"} {
		v, _ := value(budgetFields, raw, name)
		d, err := toDecimal(v)
		if err != nil {
			return models.Budget{}, malformed(KindBudget, "%s: %v", name, err)
		}
		amounts[name] = d
	}

	threshold := models.DefaultAlertThreshold
	if v, ok := value(budgetFields, raw, "alertThreshold"); ok && v != nil {
		d, err := toDecimal(v)
		if err != nil {
			return models.Budget{}, malformed(KindBudget, "alertThreshold: %v", err)
		}
		threshold = clampPercent(d)
	}

	flags := map[string]bool{}
	for _, name := range []string{"emailAlerts", "smsAlerts"} {
		v, _ := value(budgetFields, raw, name)
		b, err := toBool(v)
		if err != nil {
			return models.Budget{}, malformed(KindBudget, "%s: %v", name, err)
		}
		flags[name] = b
	}

	v, _ := value(budgetFields, raw, "period")
	period := models.BudgetPeriod(toEnum(v))
	if !period.Valid() {
		period = models.BudgetPeriodMonthly
	}

	v, _ = value(budgetFields, raw, "status")
	status := models.BudgetStatus(toEnum(v))
	if !status.Valid() {
		status = models.BudgetStatusActive
	}

	v, _ = value(budgetFields, raw, "color")
	color := toString(v)
	if color == "" {
		color = models.PaletteColor(models.BudgetPalette, id)
	}

	category, _ := value(budgetFields, raw, "category")

	return models.Budget{
		ID:             id,
		Category:       toCategory(category),
		Limit:          amounts["limit"],
		Spent:          decimal.Max(amounts["spent"], decimal.Zero),
		Period:         period,
		AlertThreshold: threshold,
		Status:         status,
		Color:          color,
		EmailAlerts:    flags["emailAlerts"],
		SMSAlerts:      flags["smsAlerts"],
	}, nil
}

// SavingsGoal normalizes a single pot record.
func SavingsGoal(raw RawRecord) (models.SavingsGoal, error) {
	id, ok := raw.id()
	if !ok {
		return models.SavingsGoal{}, malformed(KindSavingsGoal, "id is missing")
	}

	amounts := map[string]decimal.Decimal{}
	for _, name := range []string{"targetAmount", "currentAmount"} {
		v, _ := value(goalFields, raw, name)
		d, err := toDecimal(v)
		if err != nil {
			return models.SavingsGoal{}, malformed(KindSavingsGoal, "%s: %v", name, err)
		}
		amounts[name] = d
	}

	var targetDate *types.Date
	if v, ok := value(goalFields, raw, "targetDate"); ok {
		d, err := toDate(v)
		if err != nil {
			return models.SavingsGoal{}, malformed(KindSavingsGoal, "targetDate: %v", err)
		}
		if !d.IsZero() {
			targetDate = &d
		}
	}

	v, _ := value(goalFields, raw, "priority")
	priority := models.GoalPriority(toEnum(v))
	if !priority.Valid() {
		priority = models.GoalPriorityMedium
	}

	v, _ = value(goalFields, raw, "status")
	status := models.GoalStatus(toEnum(v))
	if !status.Valid() {
		status = models.GoalStatusActive
	}

	v, _ = value(goalFields, raw, "color")
	color := toString(v)
	if color == "" {
		color = models.PaletteColor(models.GoalPalette, id)
	}

	name, _ := value(goalFields, raw, "name")

	return models.SavingsGoal{
		ID:            id,
		Name:          toString(name),
		TargetAmount:  amounts["targetAmount"],
		CurrentAmount: decimal.Max(amounts["currentAmount"], decimal.Zero),
		Priority:      priority,
		Status:        status,
		TargetDate:    targetDate,
		Color:         color,
	}, nil
}

// RecurringBill normalizes a single bill record.
func RecurringBill(raw RawRecord) (models.RecurringBill, error) {
	id, ok := raw.id()
	if !ok {
		return models.RecurringBill{}, malformed(KindRecurringBill, "id is missing")
	}

	v, _ := value(billFields, raw, "amount")
	amount, err := toDecimal(v)
	if err != nil {
		return models.RecurringBill{}, malformed(KindRecurringBill, "amount: %v", err)
	}

	v, _ = value(billFields, raw, "dueDate")
	dueDate, err := toDate(v)
	if err != nil {
		return models.RecurringBill{}, malformed(KindRecurringBill, "dueDate: %v", err)
	}

	v, _ = value(billFields, raw, "paid")
	paid, err := toBool(v)
	if err != nil {
		return models.RecurringBill{}, malformed(KindRecurringBill, "paid: %v", err)
	}

	v, _ = value(billFields, raw, "frequency")
	frequency := models.BillFrequency(toEnum(v))
	if !frequency.Valid() {
		frequency = models.BillFrequencyMonthly
	}

	name, _ := value(billFields, raw, "name")

	return models.RecurringBill{
		ID:        id,
		Name:      toString(name),
		Amount:    amount.Abs(),
		DueDate:   dueDate,
		Frequency: frequency,
		Paid:      paid,
	}, nil
}

// SavingsAccount normalizes the savings account record. It has no ID.
func SavingsAccount(raw RawRecord) (models.SavingsAccount, error) {
	if raw == nil {
		return models.SavingsAccount{}, malformed(KindSavingsAccount, "record is empty")
	}

	amounts := map[string]decimal.Decimal{}
	for _, name := range []string{"balance", "autoSavePercentage"} {
		v, _ := value(accountFields, raw, name)
		d, err := toDecimal(v)
		if err != nil {
			return models.SavingsAccount{}, malformed(KindSavingsAccount, "%s: %v", name, err)
		}
		amounts[name] = d
	}

	return models.SavingsAccount{
		Balance:            decimal.Max(amounts["balance"], decimal.Zero),
		AutoSavePercentage: clampPercent(amounts["autoSavePercentage"]),
	}, nil
}

// Transactions normalizes a batch of transactions.
func Transactions(raws []RawRecord) ([]models.Transaction, error) {
	return batch(raws, Transaction)
}

// Budgets normalizes a batch of budgets.
func Budgets(raws []RawRecord) ([]models.Budget, error) {
	return batch(raws, Budget)
}

// SavingsGoals normalizes a batch of pots.
func SavingsGoals(raws []RawRecord) ([]models.SavingsGoal, error) {
	return batch(raws, SavingsGoal)
}

// RecurringBills normalizes a batch of bills.
func RecurringBills(raws []RawRecord) ([]models.RecurringBill, error) {
	return batch(raws, RecurringBill)
}

// batch normalizes all records, keeping the valid ones in input order. The
// returned error joins one *MalformedRecordError per dropped record.
func batch[T any](raws []RawRecord, normalize func(RawRecord) (T, error)) ([]T, error) {
	valid := make([]T, 0, len(raws))
	var errs []error

	for i, raw := range raws {
		entity, err := normalize(raw)
		if err != nil {
			var m *MalformedRecordError
			if errors.As(err, &m) {
				m.Index = i
			}
			errs = append(errs, err)
			continue
		}
		valid = append(valid, entity)
	}

	return valid, errors.Join(errs...)
}

func clampPercent(d decimal.Decimal) decimal.Decimal {
	return decimal.Min(decimal.Max(d, decimal.Zero), models.Hundred())
}
