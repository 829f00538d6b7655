package view

import (
	"sort"

	"github.com/shopspring/decimal"
)

// RunningBalances reconstructs the balance in effect after each transaction,
// walking each account's history newest-first from the account's known
// current balance. Accounts without a synced balance yield nil for every
// transaction. The computation always runs over the full unfiltered snapshot;
// active filters must not change historical balances.
//
// Known approximation: if the snapshot contains transactions newer than the
// account's last balance sync, reconstructed history is systematically off by
// the unsynced delta.
func RunningBalances(items []Item, accounts []AccountOption) map[string]*decimal.Decimal {
	balanceByAccount := make(map[string]*decimal.Decimal, len(accounts))
	for _, account := range accounts {
		balanceByAccount[account.ID] = account.CurrentBalance
	}

	byAccount := make(map[string][]Item)
	for _, item := range items {
		id := item.accountID()
		byAccount[id] = append(byAccount[id], item)
	}

	result := make(map[string]*decimal.Decimal, len(items))
	for accountID, group := range byAccount {
		sorted := make([]Item, len(group))
		copy(sorted, group)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].TransactionAt.After(sorted[j].TransactionAt)
		})

		var running *decimal.Decimal
		if seed, ok := balanceByAccount[accountID]; ok && seed != nil {
			value := *seed
			running = &value
		}

		for _, item := range sorted {
			if running == nil {
				result[item.ID] = nil
				continue
			}
			value := *running
			result[item.ID] = &value
			// the balance going into the next older transaction
			previous := running.Sub(item.signedAmount())
			running = &previous
		}
	}

	return result
}

type AccountGroup struct {
	ID      string           `json:"id"`
	Name    string           `json:"name"`
	Balance *decimal.Decimal `json:"balance"`
	Items   []Item           `json:"items"`
}

// GroupByAccount buckets the given (already paginated) items per account,
// sorted by account name, carrying the account's current balance when known.
func GroupByAccount(items []Item, accounts []AccountOption) []AccountGroup {
	balanceByAccount := make(map[string]*decimal.Decimal, len(accounts))
	for _, account := range accounts {
		balanceByAccount[account.ID] = account.CurrentBalance
	}

	index := make(map[string]int)
	var groups []AccountGroup
	for _, item := range items {
		id := item.accountID()
		pos, ok := index[id]
		if !ok {
			groups = append(groups, AccountGroup{
				ID:      id,
				Name:    item.accountName(),
				Balance: balanceByAccount[id],
			})
			pos = len(groups) - 1
			index[id] = pos
		}
		groups[pos].Items = append(groups[pos].Items, item)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Name < groups[j].Name
	})
	return groups
}
