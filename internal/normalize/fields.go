package normalize

// field maps a canonical field name to the keys it may appear under in raw
// records. Backend records use snake_case, the local cache camelCase, and
// older cache documents used target/saved for pots.
type field struct {
	name    string
	aliases []string
}

var transactionFields = []field{
	{"amount", []string{"amount"}},
	{"type", []string{"type", "transaction_type"}},
	{"category", []string{"category", "category_name"}},
	{"description", []string{"description", "note"}},
	{"date", []string{"date", "transaction_date"}},
}

var budgetFields = []field{
	{"category", []string{"category", "category_name"}},
	{"limit", []string{"limit", "amount"}},
	{"spent", []string{"spent", "spent_amount"}},
	{"period", []string{"period"}},
	{"alertThreshold", []string{"alertThreshold", "alert_threshold"}},
	{"status", []string{"status"}},
	{"color", []string{"color"}},
	{"emailAlerts", []string{"emailAlerts", "email_alerts"}},
	{"smsAlerts", []string{"smsAlerts", "sms_alerts"}},
}

var goalFields = []field{
	{"name", []string{"name"}},
	{"targetAmount", []string{"targetAmount", "target_amount", "target"}},
	{"currentAmount", []string{"currentAmount", "current_amount", "saved"}},
	{"priority", []string{"priority"}},
	{"status", []string{"status"}},
	{"targetDate", []string{"targetDate", "target_date"}},
	{"color", []string{"color"}},
}

var billFields = []field{
	{"name", []string{"name"}},
	{"amount", []string{"amount"}},
	{"dueDate", []string{"dueDate", "due_date"}},
	{"frequency", []string{"frequency"}},
	{"paid", []string{"paid", "is_paid"}},
}

var accountFields = []field{
	{"balance", []string{"balance"}},
	{"autoSavePercentage", []string{"autoSavePercentage", "auto_save_percentage"}},
}

// Kinds of records, used in error messages and to select field tables.
const (
	KindTransaction    = "transaction"
	KindBudget         = "budget"
	KindSavingsGoal    = "pot"
	KindRecurringBill  = "bill"
	KindSavingsAccount = "savings account"
)

var fieldTables = map[string][]field{
	KindTransaction:    transactionFields,
	KindBudget:         budgetFields,
	KindSavingsGoal:    goalFields,
	KindRecurringBill:  billFields,
	KindSavingsAccount: accountFields,
}

// Fields returns the canonical names of the fields of kind present in the
// record, in the order of the canonical model.
func Fields(kind string, raw RawRecord) []string {
	present := []string{}
	for _, f := range fieldTables[kind] {
		if _, ok := raw.lookup(f.aliases); ok {
			present = append(present, f.name)
		}
	}
	return present
}

// value returns the raw value of a canonical field.
func value(table []field, raw RawRecord, name string) (any, bool) {
	for _, f := range table {
		if f.name == name {
			return raw.lookup(f.aliases)
		}
	}
	return nil, false
}
