package view

import (
	"strings"
	"testing"
	"time"

	"github.com/jkaczmarek/FinFlow/internal/finance/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestExportCSV_HeaderPlusOneLinePerFilteredRow(t *testing.T) {
	base := time.Date(2025, time.June, 1, 10, 30, 0, 0, time.UTC)
	var items []Item
	for i := 0; i < 23; i++ {
		items = append(items, withAccount(
			makeItem("t"+string(rune('a'+i)), domain.TypeExpense, "12.5", base.AddDate(0, 0, i)),
			"a1", "Chequing", nil))
	}
	running := map[string]*decimal.Decimal{}

	content, err := ExportCSV(items, running)
	assert.NoError(t, err)

	lines := strings.Split(content, "\n")
	// full filtered set, not a page: 1 header + 23 rows
	assert.Len(t, lines, 24)
	assert.Equal(t, `"Date","Type","Account","Category","Description","Amount","Running Balance"`, lines[0])
}

func TestExportCSV_CellQuotingAndValues(t *testing.T) {
	at := time.Date(2025, time.June, 1, 10, 30, 0, 0, time.UTC)
	item := withAccount(withCategory(
		makeItem("t1", domain.TypeExpense, "12.50", at), "c1", "Bills"), "a1", "Chequing", nil)
	item.Description = `said "hello", left`

	running := map[string]*decimal.Decimal{"t1": balancePtr("87.5")}

	content, err := ExportCSV([]Item{item}, running)
	assert.NoError(t, err)

	lines := strings.Split(content, "\n")
	assert.Equal(t,
		`"2025-06-01T10:30:00Z","EXPENSE","Chequing","Bills","said ""hello"", left","12.5","87.50"`,
		lines[1])
}

func TestExportCSV_UnknownRunningBalanceSerializesEmpty(t *testing.T) {
	at := time.Date(2025, time.June, 1, 10, 30, 0, 0, time.UTC)
	item := makeItem("t1", domain.TypeExpense, "5", at)

	content, err := ExportCSV([]Item{item}, map[string]*decimal.Decimal{"t1": nil})
	assert.NoError(t, err)
	assert.True(t, strings.HasSuffix(content, `"5",""`), "got %q", content)
	assert.Contains(t, content, `"Unassigned account"`)
	assert.Contains(t, content, `"Uncategorized"`)
}

func TestExportCSV_EmptyFilteredSetFails(t *testing.T) {
	content, err := ExportCSV(nil, nil)
	assert.ErrorIs(t, err, ErrNoRowsToExport)
	assert.Empty(t, content)
}

func TestExportHTML_EscapesUntrustedText(t *testing.T) {
	at := time.Date(2025, time.June, 1, 10, 30, 0, 0, time.UTC)
	item := withAccount(withCategory(
		makeItem("t1", domain.TypeExpense, "5", at), "c1", `Bills & "Utilities"`), "a1", "<b>Chequing</b>", nil)
	item.Description = `<script>alert('x')</script>`

	document, err := ExportHTML([]Item{item}, map[string]*decimal.Decimal{}, at)
	assert.NoError(t, err)

	assert.NotContains(t, document, "<script>")
	assert.Contains(t, document, "&lt;script&gt;alert(&#39;x&#39;)&lt;/script&gt;")
	assert.Contains(t, document, "&lt;b&gt;Chequing&lt;/b&gt;")
	assert.Contains(t, document, "Bills &amp; &quot;Utilities&quot;")
}

func TestExportHTML_FormatsAmountsAndUnknownBalances(t *testing.T) {
	at := time.Date(2025, time.June, 1, 10, 30, 0, 0, time.UTC)
	item := withAccount(makeItem("t1", domain.TypeExpense, "1234.5", at), "a1", "Chequing", nil)

	document, err := ExportHTML([]Item{item}, map[string]*decimal.Decimal{"t1": nil}, at)
	assert.NoError(t, err)
	assert.Contains(t, document, "1234.50 CAD")
	assert.Contains(t, document, "<td>N/A</td>")
	assert.Contains(t, document, "<td>2025-06-01</td>")
}

func TestExportHTML_EmptyFilteredSetFails(t *testing.T) {
	document, err := ExportHTML(nil, nil, time.Now())
	assert.ErrorIs(t, err, ErrNoRowsToExport)
	assert.Empty(t, document)
}

func TestSessionExport_UsesFilteredNotPaginatedSet(t *testing.T) {
	session, _ := sessionFixture(35)
	session.SetPageSize(10)

	content, err := session.ExportCSV()
	assert.NoError(t, err)
	assert.Len(t, strings.Split(content, "\n"), 36)
}

func TestSessionExport_EmptyFilteredSetSurfacesError(t *testing.T) {
	session, _ := sessionFixture(5)
	session.SetSearch("matches nothing at all")

	_, err := session.ExportCSV()
	assert.ErrorIs(t, err, ErrNoRowsToExport)

	_, err = session.ExportHTML()
	assert.ErrorIs(t, err, ErrNoRowsToExport)
}
