// Package view derives everything the transactions dashboard shows from an
// immutable snapshot of a user's data: filtered and sorted slices, pages,
// per-account running balances, account groupings and export payloads. Every
// stage is a total function over its inputs; nothing here talks to storage.
package view

import (
	"time"

	"github.com/jkaczmarek/FinFlow/internal/finance/domain"
	"github.com/shopspring/decimal"
)

// UnassignedAccountID buckets transactions that carry no account reference.
const UnassignedAccountID = "unassigned"

const (
	unassignedAccountName = "Unassigned account"
	uncategorizedName     = "Uncategorized"
)

type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type AccountRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// CurrentBalance anchors running-balance reconstruction; nil means the
	// account has no synced balance and all its running balances stay unknown.
	CurrentBalance *decimal.Decimal `json:"currentBalance"`
}

// Item is one transaction as the dashboard sees it. Mutations happen through
// the action layer; the view engine only ever receives fresh snapshots.
type Item struct {
	ID            string                 `json:"id"`
	Description   string                 `json:"description"`
	Amount        decimal.Decimal        `json:"amount"`
	Currency      string                 `json:"currency"`
	TransactionAt time.Time              `json:"transactionAt"`
	Type          domain.TransactionType `json:"type"`
	Category      *CategoryRef           `json:"category"`
	Account       *AccountRef            `json:"account"`
}

type AccountOption struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	CurrentBalance *decimal.Decimal `json:"currentBalance"`
}

type CategoryOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (i *Item) accountID() string {
	if i.Account == nil {
		return UnassignedAccountID
	}
	return i.Account.ID
}

func (i *Item) accountName() string {
	if i.Account == nil {
		return unassignedAccountName
	}
	return i.Account.Name
}

func (i *Item) categoryName() string {
	if i.Category == nil {
		return ""
	}
	return i.Category.Name
}

func (i *Item) signedAmount() decimal.Decimal {
	switch i.Type {
	case domain.TypeIncome:
		return i.Amount
	case domain.TypeExpense:
		return i.Amount.Neg()
	default:
		return decimal.Zero
	}
}
