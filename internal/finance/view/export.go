package view

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNoRowsToExport is the caller-visible outcome of exporting an empty
// filtered set; no payload is produced.
var ErrNoRowsToExport = errors.New("no rows available to export")

var csvHeader = []string{"Date", "Type", "Account", "Category", "Description", "Amount", "Running Balance"}

// untrusted text must never reach the printable document unescaped
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// ExportCSV serializes the full filtered+sorted set (never the paginated
// slice). Dates are RFC 3339 UTC instants, amounts the raw decimal string,
// running balances fixed to two decimals or empty when unknown. Every cell is
// double-quoted with embedded quotes doubled.
func ExportCSV(items []Item, running map[string]*decimal.Decimal) (string, error) {
	if len(items) == 0 {
		return "", ErrNoRowsToExport
	}

	lines := make([]string, 0, len(items)+1)
	lines = append(lines, csvLine(csvHeader))

	for _, item := range items {
		balance := ""
		if value := running[item.ID]; value != nil {
			balance = value.StringFixed(2)
		}
		lines = append(lines, csvLine([]string{
			item.TransactionAt.UTC().Format(time.RFC3339),
			string(item.Type),
			item.accountName(),
			exportCategoryName(item),
			item.Description,
			item.Amount.String(),
			balance,
		}))
	}

	return strings.Join(lines, "\n"), nil
}

func csvLine(cells []string) string {
	quoted := make([]string, len(cells))
	for i, cell := range cells {
		quoted[i] = `"` + strings.ReplaceAll(cell, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ",")
}

// ExportHTML renders the printable report over the same seven columns.
// Description, account and category names are untrusted and escaped.
func ExportHTML(items []Item, running map[string]*decimal.Decimal, generatedAt time.Time) (string, error) {
	if len(items) == 0 {
		return "", ErrNoRowsToExport
	}

	var rows strings.Builder
	for _, item := range items {
		balance := "N/A"
		if value := running[item.ID]; value != nil {
			balance = formatMoney(*value, item.Currency)
		}
		fmt.Fprintf(&rows, `<tr>
  <td>%s</td>
  <td>%s</td>
  <td>%s</td>
  <td>%s</td>
  <td>%s</td>
  <td>%s</td>
  <td>%s</td>
</tr>
`,
			htmlEscaper.Replace(item.TransactionAt.Format("2006-01-02")),
			htmlEscaper.Replace(string(item.Type)),
			htmlEscaper.Replace(item.accountName()),
			htmlEscaper.Replace(exportCategoryName(item)),
			htmlEscaper.Replace(item.Description),
			htmlEscaper.Replace(formatMoney(item.Amount, item.Currency)),
			htmlEscaper.Replace(balance),
		)
	}

	document := fmt.Sprintf(`<!doctype html>
<html>
<head>
<title>Transaction Report</title>
<style>
body { font-family: -apple-system, "Segoe UI", sans-serif; padding: 20px; color: #111; }
h1 { margin-bottom: 4px; }
p { color: #555; margin-top: 0; }
table { width: 100%%; border-collapse: collapse; margin-top: 14px; }
th, td { border: 1px solid #ddd; padding: 8px; font-size: 12px; text-align: left; }
th { background: #f5f5f5; }
</style>
</head>
<body>
<h1>FinFlow - Transactions</h1>
<p>Generated on %s</p>
<table>
<thead>
<tr><th>Date</th><th>Type</th><th>Account</th><th>Category</th><th>Description</th><th>Amount</th><th>Running Balance</th></tr>
</thead>
<tbody>
%s</tbody>
</table>
</body>
</html>
`, htmlEscaper.Replace(generatedAt.Format("2006-01-02 15:04")), rows.String())

	return document, nil
}

func exportCategoryName(item Item) string {
	if item.Category == nil {
		return uncategorizedName
	}
	return item.Category.Name
}

func formatMoney(value decimal.Decimal, currency string) string {
	if currency == "" {
		return value.StringFixed(2)
	}
	return value.StringFixed(2) + " " + currency
}
