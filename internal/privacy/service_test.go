package privacy

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jkaczmarek/FinFlow/internal/audit"
	financeErrors "github.com/jkaczmarek/FinFlow/internal/finance/errors"
)

type mockRepository struct {
	Saved      []Request
	SaveErr    error
	Requests   []Request
	LastLimit  int
	LastCutoff time.Time
	MarkedRows int64
}

func (m *mockRepository) Save(_ context.Context, request Request) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Saved = append(m.Saved, request)
	return nil
}

func (m *mockRepository) FindByUser(_ context.Context, _ string, limit int) ([]Request, error) {
	m.LastLimit = limit
	return m.Requests, nil
}

func (m *mockRepository) MarkDueDeletes(_ context.Context, cutoff time.Time) (int64, error) {
	m.LastCutoff = cutoff
	return m.MarkedRows, nil
}

type recordingAuditRecorder struct {
	events []audit.Event
}

func (r *recordingAuditRecorder) Record(_ context.Context, event audit.Event) {
	r.events = append(r.events, event)
}

func newServiceFixture() (*Service, *mockRepository, *recordingAuditRecorder) {
	repo := &mockRepository{}
	recorder := &recordingAuditRecorder{}
	service := NewService(repo, recorder, zerolog.Nop())
	return service, repo, recorder
}

func TestCreateRequest(t *testing.T) {
	service, repo, recorder := newServiceFixture()
	service.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

	request, err := service.CreateRequest(context.Background(), "user-1", RequestExport, "  all my transactions  ")
	require.NoError(t, err)

	assert.NotEmpty(t, request.ID)
	assert.Equal(t, StatusPending, request.Status)
	assert.Equal(t, "all my transactions", request.Details)
	require.Len(t, repo.Saved, 1)

	require.Len(t, recorder.events, 1)
	assert.Equal(t, "DSR_CREATE", recorder.events[0].Action)
	assert.Equal(t, "EXPORT", recorder.events[0].Metadata["requestType"])
}

func TestCreateRequest_InvalidType(t *testing.T) {
	service, repo, recorder := newServiceFixture()

	_, err := service.CreateRequest(context.Background(), "user-1", RequestType("PURGE"), "")
	assert.True(t, financeErrors.IsValidationError(err))
	assert.Empty(t, repo.Saved)
	assert.Empty(t, recorder.events)
}

func TestCreateRequest_DetailsTooLong(t *testing.T) {
	service, _, _ := newServiceFixture()

	_, err := service.CreateRequest(context.Background(), "user-1", RequestAccess, strings.Repeat("x", 2001))
	assert.True(t, financeErrors.IsValidationError(err))
}

func TestListRequests_CapsLimit(t *testing.T) {
	service, repo, _ := newServiceFixture()

	_, err := service.ListRequests(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 50, repo.LastLimit)
}

func TestSweepDueDeletes_UsesGracePeriod(t *testing.T) {
	service, repo, _ := newServiceFixture()
	now := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return now }
	repo.MarkedRows = 3

	service.SweepDueDeletes(context.Background())
	assert.Equal(t, now.Add(-72*time.Hour), repo.LastCutoff)
}
