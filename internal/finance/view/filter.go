package view

import (
	"strings"
	"time"

	"github.com/jkaczmarek/FinFlow/internal/finance/domain"
)

type DatePreset string

const (
	DateAll        DatePreset = "all"
	DateThisWeek   DatePreset = "this-week"
	DateThisMonth  DatePreset = "this-month"
	DateLast30Days DatePreset = "last-30-days"
	DateCustom     DatePreset = "custom"
)

// FilterAll is the neutral value for the account, category and type filters.
const FilterAll = "all"

// FilterState captures every user-selected predicate. The zero value is not
// useful; NewFilterState returns the "show everything" state.
type FilterState struct {
	AccountID    string
	CategoryName string
	Type         string
	DatePreset   DatePreset
	CustomStart  *time.Time
	CustomEnd    *time.Time
	Search       string
}

func NewFilterState() FilterState {
	return FilterState{
		AccountID:    FilterAll,
		CategoryName: FilterAll,
		Type:         FilterAll,
		DatePreset:   DateAll,
	}
}

// Filter returns the items matching every active predicate, preserving input
// order. now anchors the relative date presets.
func Filter(items []Item, state FilterState, now time.Time) []Item {
	startOfWeek := startOfMondayWeek(now)
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	last30Days := truncateToDay(now.AddDate(0, 0, -29))

	search := strings.ToLower(strings.TrimSpace(state.Search))

	matchesDate := func(value time.Time) bool {
		switch state.DatePreset {
		case DateThisWeek:
			return !value.Before(startOfWeek) && !value.After(now)
		case DateThisMonth:
			return !value.Before(startOfMonth) && !value.After(now)
		case DateLast30Days:
			return !value.Before(last30Days) && !value.After(now)
		case DateCustom:
			if state.CustomStart != nil && value.Before(*state.CustomStart) {
				return false
			}
			if state.CustomEnd != nil && value.After(*state.CustomEnd) {
				return false
			}
			return true
		default:
			return true
		}
	}

	var filtered []Item
	for _, item := range items {
		if state.AccountID != FilterAll && item.accountID() != state.AccountID {
			continue
		}
		if state.CategoryName != FilterAll && item.categoryName() != state.CategoryName {
			continue
		}
		if state.Type != FilterAll && item.Type != domain.TransactionType(state.Type) {
			continue
		}
		if !matchesDate(item.TransactionAt) {
			continue
		}
		if search != "" {
			haystack := strings.ToLower(strings.Join([]string{
				item.Description,
				item.categoryName(),
				item.accountName(),
				string(item.Type),
			}, " "))
			if !strings.Contains(haystack, search) {
				continue
			}
		}
		filtered = append(filtered, item)
	}
	return filtered
}

// startOfMondayWeek returns midnight of the Monday on or before t.
func startOfMondayWeek(t time.Time) time.Time {
	daysSinceMonday := (int(t.Weekday()) + 6) % 7
	return truncateToDay(t.AddDate(0, 0, -daysSinceMonday))
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
