package view

import (
	"time"

	"github.com/shopspring/decimal"
)

// Session holds one user's snapshot and the derived-state inputs (filters,
// sort, pagination, selection). All computations are synchronous, pure
// functions of current state; Session itself is not safe for concurrent use.
type Session struct {
	rows       []Item
	accounts   []AccountOption
	categories []CategoryOption

	filter   FilterState
	sort     SortOption
	pageSize int
	page     int

	selected map[string]struct{}

	now func() time.Time
}

func NewSession(rows []Item, accounts []AccountOption, categories []CategoryOption) *Session {
	return &Session{
		rows:       rows,
		accounts:   accounts,
		categories: categories,
		filter:     NewFilterState(),
		sort:       SortDateDesc,
		pageSize:   DefaultPageSize,
		page:       1,
		selected:   make(map[string]struct{}),
		now:        time.Now,
	}
}

// SetClock overrides the time source relative date presets anchor on.
func (s *Session) SetClock(now func() time.Time) {
	s.now = now
}

// Replace installs a fresh snapshot. Selection is pruned so it never
// references ids that no longer exist in the underlying set.
func (s *Session) Replace(rows []Item) {
	s.rows = rows
	s.pruneSelection()
}

func (s *Session) SetAccountFilter(accountID string) {
	s.filter.AccountID = accountID
	s.page = 1
}

func (s *Session) SetCategoryFilter(categoryName string) {
	s.filter.CategoryName = categoryName
	s.page = 1
}

func (s *Session) SetTypeFilter(transactionType string) {
	s.filter.Type = transactionType
	s.page = 1
}

func (s *Session) SetDatePreset(preset DatePreset) {
	s.filter.DatePreset = preset
	s.page = 1
}

func (s *Session) SetCustomRange(start, end *time.Time) {
	s.filter.CustomStart = start
	s.filter.CustomEnd = end
	s.page = 1
}

func (s *Session) SetSearch(search string) {
	s.filter.Search = search
	s.page = 1
}

func (s *Session) SetSort(option SortOption) {
	s.sort = option
	s.page = 1
}

// SetPageSize switches the page size and resets to the first page. Sizes
// outside AllowedPageSizes are ignored.
func (s *Session) SetPageSize(size int) {
	if !ValidPageSize(size) {
		return
	}
	s.pageSize = size
	s.page = 1
}

func (s *Session) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	s.page = page
}

func (s *Session) ClearFilters() {
	s.filter = NewFilterState()
	s.sort = SortDateDesc
	s.page = 1
}

func (s *Session) Select(id string) {
	s.selected[id] = struct{}{}
}

func (s *Session) Deselect(id string) {
	delete(s.selected, id)
}

// SelectedIDs reports the current bulk selection. Filter changes never shrink
// it; only snapshot changes prune it.
func (s *Session) SelectedIDs() []string {
	ids := make([]string, 0, len(s.selected))
	for id := range s.selected {
		ids = append(ids, id)
	}
	return ids
}

func (s *Session) IsSelected(id string) bool {
	_, ok := s.selected[id]
	return ok
}

func (s *Session) pruneSelection() {
	existing := make(map[string]struct{}, len(s.rows))
	for _, row := range s.rows {
		existing[row.ID] = struct{}{}
	}
	for id := range s.selected {
		if _, ok := existing[id]; !ok {
			delete(s.selected, id)
		}
	}
}

// View is the fully derived dashboard state for the current inputs.
type View struct {
	Page            Page                        `json:"page"`
	Groups          []AccountGroup              `json:"groups"`
	RunningBalances map[string]*decimal.Decimal `json:"runningBalances"`
	Accounts        []AccountOption             `json:"accounts"`
	Categories      []CategoryOption            `json:"categories"`
}

// Compute runs the filter -> sort -> paginate pipeline and derives running
// balances (over the full snapshot) and per-account groupings.
func (s *Session) Compute() View {
	accounts := MergeAccountOptions(s.accounts, s.rows)
	categories := MergeCategoryOptions(s.categories, s.rows)

	filtered := Filter(s.rows, s.filter, s.now())
	sorted := Sort(filtered, s.sort)
	page := Paginate(sorted, s.page, s.pageSize)

	running := RunningBalances(s.rows, accounts)
	groups := GroupByAccount(page.Items, accounts)

	return View{
		Page:            page,
		Groups:          groups,
		RunningBalances: running,
		Accounts:        accounts,
		Categories:      categories,
	}
}

// Filtered returns the filtered+sorted set without pagination, the exact
// ordering exports serialize.
func (s *Session) Filtered() []Item {
	return Sort(Filter(s.rows, s.filter, s.now()), s.sort)
}

// ExportCSV serializes the current filtered set, or ErrNoRowsToExport.
func (s *Session) ExportCSV() (string, error) {
	running := RunningBalances(s.rows, MergeAccountOptions(s.accounts, s.rows))
	return ExportCSV(s.Filtered(), running)
}

// ExportHTML renders the printable report for the current filtered set.
func (s *Session) ExportHTML() (string, error) {
	running := RunningBalances(s.rows, MergeAccountOptions(s.accounts, s.rows))
	return ExportHTML(s.Filtered(), running, s.now())
}
