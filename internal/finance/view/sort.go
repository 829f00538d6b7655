package view

import "sort"

type SortOption string

const (
	SortDateDesc    SortOption = "date-desc"
	SortDateAsc     SortOption = "date-asc"
	SortAmountDesc  SortOption = "amount-desc"
	SortAmountAsc   SortOption = "amount-asc"
	SortCategoryAsc SortOption = "category-asc"
)

// Sort returns a new slice ordered by the given option. Ties keep their
// relative input order.
func Sort(items []Item, option SortOption) []Item {
	sorted := make([]Item, len(items))
	copy(sorted, items)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		switch option {
		case SortDateAsc:
			return a.TransactionAt.Before(b.TransactionAt)
		case SortAmountDesc:
			return a.Amount.GreaterThan(b.Amount)
		case SortAmountAsc:
			return a.Amount.LessThan(b.Amount)
		case SortCategoryAsc:
			return a.categoryName() < b.categoryName()
		default:
			return a.TransactionAt.After(b.TransactionAt)
		}
	})
	return sorted
}
