package reconcile

import (
	"fmt"

	"github.com/pesapots/backend/internal/models"
)

// BudgetExclusivity rejects an active budget for a category that already has
// another active budget.
func BudgetExclusivity(others []models.Budget, candidate models.Budget) error {
	if !candidate.IsActive() {
		return nil
	}

	for _, b := range others {
		if b.IsActive() && b.Category == candidate.Category {
			return fmt.Errorf("%w: %q", models.ErrDuplicateActiveCategory, candidate.Category)
		}
	}
	return nil
}
