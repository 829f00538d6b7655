package view

import "sort"

// MergeAccountOptions unions the explicitly provided account options with any
// account referenced by a transaction but missing from that list, so the
// filter UI always covers every account actually present in the data.
func MergeAccountOptions(accounts []AccountOption, items []Item) []AccountOption {
	seen := make(map[string]AccountOption, len(accounts))
	for _, account := range accounts {
		seen[account.ID] = account
	}

	for _, item := range items {
		if item.Account == nil {
			continue
		}
		if _, ok := seen[item.Account.ID]; !ok {
			seen[item.Account.ID] = AccountOption{
				ID:             item.Account.ID,
				Name:           item.Account.Name,
				CurrentBalance: item.Account.CurrentBalance,
			}
		}
	}

	merged := make([]AccountOption, 0, len(seen))
	for _, account := range seen {
		merged = append(merged, account)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Name < merged[j].Name
	})
	return merged
}

// MergeCategoryOptions does the same union for categories.
func MergeCategoryOptions(categories []CategoryOption, items []Item) []CategoryOption {
	seen := make(map[string]CategoryOption, len(categories))
	for _, category := range categories {
		seen[category.ID] = category
	}

	for _, item := range items {
		if item.Category == nil {
			continue
		}
		if _, ok := seen[item.Category.ID]; !ok {
			seen[item.Category.ID] = CategoryOption{
				ID:   item.Category.ID,
				Name: item.Category.Name,
			}
		}
	}

	merged := make([]CategoryOption, 0, len(seen))
	for _, category := range seen {
		merged = append(merged, category)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Name < merged[j].Name
	})
	return merged
}
