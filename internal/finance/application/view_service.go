package application

import (
	"context"
	"time"

	"github.com/jkaczmarek/FinFlow/internal/audit"
	"github.com/jkaczmarek/FinFlow/internal/finance/domain"
	"github.com/jkaczmarek/FinFlow/internal/finance/view"
)

type ViewItemRepository interface {
	ListViewItems(ctx context.Context, userID string) ([]view.Item, error)
}

type AccountRepositoryInterface interface {
	FindByUser(ctx context.Context, userID string) ([]domain.Account, error)
}

// ViewService loads a user's snapshot and runs the pure view pipeline over
// it. Each request computes from scratch; there is no cross-request state.
// Reads are audited on a sample; sampleRate 0 disables read auditing.
type ViewService struct {
	items         ViewItemRepository
	accounts      AccountRepositoryInterface
	categories    CategoryServiceInterface
	auditRecorder AuditRecorder
	sampleRate    float64
	sample        func(rate float64) bool
	now           func() time.Time
}

func NewViewService(
	items ViewItemRepository,
	accounts AccountRepositoryInterface,
	categories CategoryServiceInterface,
	auditRecorder AuditRecorder,
	sampleRate float64,
) *ViewService {
	return &ViewService{
		items:         items,
		accounts:      accounts,
		categories:    categories,
		auditRecorder: auditRecorder,
		sampleRate:    sampleRate,
		sample:        audit.SampleEvent,
		now:           time.Now,
	}
}

type ViewQuery struct {
	Filter   view.FilterState
	Sort     view.SortOption
	Page     int
	PageSize int
}

func (s *ViewService) session(ctx context.Context, userID string, query ViewQuery) (*view.Session, error) {
	items, err := s.items.ListViewItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	accounts, err := s.accounts.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	categories, err := s.categories.GetUserCategories(ctx, userID)
	if err != nil {
		return nil, err
	}

	accountOptions := make([]view.AccountOption, 0, len(accounts))
	for _, account := range accounts {
		accountOptions = append(accountOptions, view.AccountOption{
			ID:             account.ID,
			Name:           account.Name,
			CurrentBalance: account.CurrentBalance,
		})
	}
	categoryOptions := make([]view.CategoryOption, 0, len(categories))
	for _, category := range categories {
		categoryOptions = append(categoryOptions, view.CategoryOption{
			ID:   category.ID,
			Name: category.Name,
		})
	}

	session := view.NewSession(items, accountOptions, categoryOptions)
	session.SetClock(s.now)
	applyQuery(session, query)
	return session, nil
}

func applyQuery(session *view.Session, query ViewQuery) {
	if query.Filter.AccountID != "" {
		session.SetAccountFilter(query.Filter.AccountID)
	}
	if query.Filter.CategoryName != "" {
		session.SetCategoryFilter(query.Filter.CategoryName)
	}
	if query.Filter.Type != "" {
		session.SetTypeFilter(query.Filter.Type)
	}
	if query.Filter.DatePreset != "" {
		session.SetDatePreset(query.Filter.DatePreset)
	}
	session.SetCustomRange(query.Filter.CustomStart, query.Filter.CustomEnd)
	session.SetSearch(query.Filter.Search)
	if query.Sort != "" {
		session.SetSort(query.Sort)
	}
	if query.PageSize != 0 {
		session.SetPageSize(query.PageSize)
	}
	// page last so the filter setters' page resets do not clobber it
	if query.Page != 0 {
		session.SetPage(query.Page)
	}
}

// GetView returns the derived dashboard state for the query.
func (s *ViewService) GetView(ctx context.Context, userID string, query ViewQuery) (view.View, error) {
	session, err := s.session(ctx, userID, query)
	if err != nil {
		return view.View{}, err
	}
	result := session.Compute()

	if s.sample(s.sampleRate) {
		s.auditRecorder.Record(ctx, audit.Event{
			ActorUserID:  userID,
			TargetUserID: userID,
			Action:       "DASHBOARD_VIEW",
			Resource:     "transactions",
		})
	}
	return result, nil
}

// ExportCSV serializes the filtered set; view.ErrNoRowsToExport when empty.
func (s *ViewService) ExportCSV(ctx context.Context, userID string, query ViewQuery) (string, error) {
	session, err := s.session(ctx, userID, query)
	if err != nil {
		return "", err
	}
	return session.ExportCSV()
}

// ExportHTML renders the printable report for the filtered set.
func (s *ViewService) ExportHTML(ctx context.Context, userID string, query ViewQuery) (string, error) {
	session, err := s.session(ctx, userID, query)
	if err != nil {
		return "", err
	}
	return session.ExportHTML()
}
