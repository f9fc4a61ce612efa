package backend

// Kind is a resource collection of the backend.
type Kind string

const (
	KindTransactions   Kind = "transactions"
	KindBudgets        Kind = "budgets"
	KindGoals          Kind = "goals"
	KindBills          Kind = "bills"
	KindSavingsAccount Kind = "savings-account"
)

// Kinds are all collections that are fetched on a full refresh.
var Kinds = []Kind{KindTransactions, KindBudgets, KindGoals, KindBills, KindSavingsAccount}

var paths = map[Kind]string{
	KindTransactions:   "transactions/",
	KindBudgets:        "budgets/",
	KindGoals:          "savings/goals/",
	KindBills:          "recurring-bills/",
	KindSavingsAccount: "savings/account/",
}

// Path returns the path of the collection relative to the API root.
func (k Kind) Path() string {
	return paths[k]
}

// Actions on single resources that are not plain updates.
const (
	ActionResetSpent = "reset-spent"
	ActionDeposit    = "deposit"
	ActionWithdraw   = "withdraw"
	ActionAllocate   = "allocate"
)
