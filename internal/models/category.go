package models

const CategoryIncome = "Income"

// TransactionCategories are the categories transactions and budgets can use,
// sorted alphabetically.
var TransactionCategories = []string{
	"Bills and Utilities",
	"Education and Self Improvement",
	"Entertainment and Leisure",
	"Family and Kids",
	"Food and Dining",
	"Health and Wellness",
	CategoryIncome,
	"Savings and Investments",
	"Shopping and Personal Care",
	"Transportation",
}

// CategoriesFor returns the categories available for a transaction type.
func CategoriesFor(t TransactionType) []string {
	if t == TransactionTypeIncome {
		return []string{CategoryIncome, "Savings and Investments"}
	}

	categories := make([]string, 0, len(TransactionCategories)-1)
	for _, c := range TransactionCategories {
		if c != CategoryIncome {
			categories = append(categories, c)
		}
	}
	return categories
}

// DefaultCategory returns the category preselected for a transaction type.
func DefaultCategory(t TransactionType) string {
	if t == TransactionTypeIncome {
		return CategoryIncome
	}
	return "Food and Dining"
}
