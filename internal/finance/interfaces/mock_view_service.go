package interfaces

import (
	"context"

	"github.com/jkaczmarek/FinFlow/internal/finance/application"
	"github.com/jkaczmarek/FinFlow/internal/finance/view"
)

type MockViewService struct {
	View      view.View
	ViewErr   error
	CSV       string
	CSVErr    error
	HTML      string
	HTMLErr   error
	LastQuery application.ViewQuery
}

func (m *MockViewService) GetView(_ context.Context, _ string, query application.ViewQuery) (view.View, error) {
	m.LastQuery = query
	return m.View, m.ViewErr
}

func (m *MockViewService) ExportCSV(_ context.Context, _ string, query application.ViewQuery) (string, error) {
	m.LastQuery = query
	return m.CSV, m.CSVErr
}

func (m *MockViewService) ExportHTML(_ context.Context, _ string, query application.ViewQuery) (string, error) {
	m.LastQuery = query
	return m.HTML, m.HTMLErr
}
