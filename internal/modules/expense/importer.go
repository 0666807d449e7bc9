// README: Expense importer; decides which itinerary activity costs become new ledger records.
package expense

import "voyage/internal/types"

type dedupKey struct {
	content string
	amount  float64
}

// PlanImport returns the records to create for planID, in activity order.
// An activity is skipped when an existing record has the same content and amount
// (a missing cost counts as 0), and when its cost is missing or not positive.
// Activities in the same batch are not compared with each other.
// IDs and CreatedAt are left for the ledger to assign.
func PlanImport(existing []Record, activities []ActivityCost, planID string, today types.Date) []Record {
	seen := make(map[dedupKey]struct{}, len(existing))
	for _, r := range existing {
		seen[dedupKey{r.Content, r.Amount}] = struct{}{}
	}

	out := []Record{}
	for _, a := range activities {
		amount := 0.0
		if a.Cost != nil {
			amount = *a.Cost
		}
		if _, dup := seen[dedupKey{a.Title, amount}]; dup {
			continue
		}
		if amount <= 0 {
			continue
		}

		date := a.Date
		if date.IsZero() {
			date = today
		}
		out = append(out, Record{
			PlanID:   planID,
			Content:  a.Title,
			Amount:   amount,
			Category: CategoryFor(a.Type),
			Date:     date,
		})
	}
	return out
}
