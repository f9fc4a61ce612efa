package models

import "time"

// Snapshot is the persisted state of a session. Its JSON form is the legacy
// local cache document.
type Snapshot struct {
	Transactions   []Transaction   `json:"transactions"`
	Budgets        []Budget        `json:"budgets"`
	Pots           []SavingsGoal   `json:"pots"`
	RecurringBills []RecurringBill `json:"recurringBills"`
	SavingsAccount *SavingsAccount `json:"savingsAccount,omitempty"`
	SavedAt        time.Time       `json:"savedAt"`
}
