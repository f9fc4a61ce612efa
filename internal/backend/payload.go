package backend

import (
	"encoding/json"
	"fmt"
)

// wireNames maps the canonical field names of each collection to the field
// names the backend expects in request bodies.
var wireNames = map[Kind]map[string]string{
	KindTransactions: {
		"amount":      "amount",
		"type":        "transaction_type",
		"category":    "category",
		"description": "description",
		"date":        "date",
	},
	KindBudgets: {
		"category":       "category",
		"limit":          "limit",
		"spent":          "spent",
		"period":         "period",
		"alertThreshold": "alert_threshold",
		"status":         "status",
		"color":          "color",
		"emailAlerts":    "email_alerts",
		"smsAlerts":      "sms_alerts",
	},
	KindGoals: {
		"name":         "name",
		"targetAmount": "target_amount",
		"priority":     "priority",
		"status":       "status",
		"targetDate":   "target_date",
		"color":        "color",
	},
	KindBills: {
		"name":      "name",
		"amount":    "amount",
		"dueDate":   "due_date",
		"frequency": "frequency",
		"paid":      "is_paid",
	},
	KindSavingsAccount: {
		"autoSavePercentage": "auto_save_percentage",
	},
}

// Payload encodes the named fields of a canonical entity as request body for
// the backend. With no fields, all writable fields are encoded.
//
// Fields the backend does not accept, like the current amount of a pot, are
// never encoded.
func Payload(kind Kind, entity any, fields []string) (map[string]any, error) {
	names, ok := wireNames[kind]
	if !ok {
		return nil, fmt.Errorf("unknown collection %q", kind)
	}

	data, err := json.Marshal(entity)
	if err != nil {
		return nil, err
	}

	var canonical map[string]any
	if err := json.Unmarshal(data, &canonical); err != nil {
		return nil, err
	}

	if len(fields) == 0 {
		for name := range names {
			fields = append(fields, name)
		}
	}

	payload := map[string]any{}
	for _, f := range fields {
		wire, ok := names[f]
		if !ok {
			continue
		}

		if v, ok := canonical[f]; ok {
			payload[wire] = v
		}
	}

	return payload, nil
}

// Amount is the request body of deposits, withdrawals and allocations.
type Amount struct {
	Amount string `json:"amount"`
}
