package internal

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// barWidth is the width of the longest bar in breakdown and trend charts
const barWidth = 24

// TransactionsJSON is the JSON output of list and filter
type TransactionsJSON struct {
	Transactions []JSONListedTransaction `json:"transactions"`
	Count        int                     `json:"count"`
	Filters      []Filter                `json:"filters,omitempty"`
}

type JSONListedTransaction struct {
	Index int `json:"index"`
	JSONTransaction
}

// SummaryJSON is the JSON output of summary
type SummaryJSON struct {
	TotalIncome  float64 `json:"total_income"`
	TotalExpense float64 `json:"total_expense"`
	Savings      float64 `json:"savings"`
	Count        int     `json:"count"`
	From         string  `json:"from,omitempty"`
	To           string  `json:"to,omitempty"`
	Currency     string  `json:"currency"`
}

// BreakdownJSON is the JSON output of breakdown
type BreakdownJSON struct {
	Categories []JSONCategory `json:"categories"`
	Total      float64        `json:"total"`
	Currency   string         `json:"currency"`
}

type JSONCategory struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Share    float64 `json:"share"`
}

// SeriesJSON is the JSON output of trends
type SeriesJSON struct {
	Months   []string  `json:"months"`
	Income   []float64 `json:"income"`
	Expense  []float64 `json:"expense"`
	Net      []float64 `json:"net"`
	Currency string    `json:"currency"`
}

// WriteJSON writes v as indented JSON
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// ListedTransactions pairs txs with their current ledger index for JSON output.
func ListedTransactions(txs []Transaction, l *Ledger) []JSONListedTransaction {
	result := make([]JSONListedTransaction, 0, len(txs))
	for i, tx := range txs {
		result = append(result, JSONListedTransaction{
			Index: displayIndex(l, tx, i),
			JSONTransaction: JSONTransaction{
				ID:          tx.ID,
				Date:        tx.Date.Format(DateLayout),
				Category:    tx.Category,
				Type:        string(tx.Type),
				Amount:      tx.Amount,
				Description: tx.Description,
			},
		})
	}
	return result
}

// NewSummaryJSON builds the summary document
func NewSummaryJSON(s Summary, txs []Transaction, currency Currency) SummaryJSON {
	out := SummaryJSON{
		TotalIncome:  s.TotalIncome,
		TotalExpense: s.TotalExpense,
		Savings:      s.Savings,
		Count:        len(txs),
		Currency:     currency.Code,
	}
	if len(txs) > 0 {
		r := Coverage(txs)
		out.From = r.Start.Format(DateLayout)
		out.To = r.End.Format(DateLayout)
	}
	return out
}

// NewBreakdownJSON builds the breakdown document, largest category first
func NewBreakdownJSON(breakdown map[string]float64, currency Currency) BreakdownJSON {
	sorted := SortedBreakdown(breakdown)
	total := breakdownTotal(sorted)
	out := BreakdownJSON{Categories: make([]JSONCategory, 0, len(sorted)), Total: total, Currency: currency.Code}
	for _, ct := range sorted {
		out.Categories = append(out.Categories, JSONCategory{
			Category: ct.Category,
			Amount:   ct.Amount,
			Share:    share(ct.Amount, total),
		})
	}
	return out
}

// NewSeriesJSON builds the monthly series document
func NewSeriesJSON(s Series, currency Currency) SeriesJSON {
	return SeriesJSON{
		Months:   s.Months,
		Income:   s.Income,
		Expense:  s.Expense,
		Net:      s.Net(),
		Currency: currency.Code,
	}
}

// PrintTransactionsTable prints txs with their ledger index (usable with delete --index)
func PrintTransactionsTable(w io.Writer, txs []Transaction, l *Ledger, currency Currency) {
	if len(txs) == 0 {
		fmt.Fprintln(w, "No transactions found.")
		return
	}

	t := newTable(w)
	t.AppendHeader(table.Row{"#", "ID", "Date", "Category", "Type", "Amount", "Description"})

	var income, expense float64
	for i, tx := range txs {
		typ := text.FgGreen.Sprint(string(tx.Type))
		if tx.Type == Expense {
			typ = text.FgRed.Sprint(string(tx.Type))
			expense += tx.Amount
		} else {
			income += tx.Amount
		}
		t.AppendRow(table.Row{
			displayIndex(l, tx, i),
			text.FgHiBlack.Sprint(tx.ShortID()),
			tx.Date.Format(DateLayout),
			tx.Category,
			typ,
			currency.Format(tx.Amount),
			tx.Description,
		})
	}

	t.AppendSeparator()
	t.AppendFooter(table.Row{"", "", "", "", text.Bold.Sprint("Net"), text.Bold.Sprint(currency.Format(income - expense)), fmt.Sprintf("%d transactions", len(txs))})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
	})
	t.Render()
}

// PrintSummaryTable prints income, expense and savings totals
func PrintSummaryTable(w io.Writer, s Summary, txs []Transaction, currency Currency) {
	if len(txs) > 0 {
		r := Coverage(txs)
		fmt.Fprintf(w, "Data range: %s to %s (%d transactions)\n\n",
			r.Start.Format(DateLayout), r.End.Format(DateLayout), len(txs))
	}

	savings := currency.Format(s.Savings)
	if s.Savings < 0 {
		savings = text.FgRed.Sprint(savings)
	}

	t := newTable(w)
	t.AppendRow(table.Row{"Total Income", currency.Format(s.TotalIncome)})
	t.AppendRow(table.Row{"Total Expense", currency.Format(s.TotalExpense)})
	t.AppendSeparator()
	t.AppendRow(table.Row{text.Bold.Sprint("Savings"), text.Bold.Sprint(savings)})
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})
	t.Render()
}

// PrintBreakdownTable prints expense totals per category, largest first, with a bar per row
func PrintBreakdownTable(w io.Writer, breakdown map[string]float64, currency Currency) {
	if len(breakdown) == 0 {
		fmt.Fprintln(w, "No expenses recorded.")
		return
	}

	sorted := SortedBreakdown(breakdown)
	total := breakdownTotal(sorted)
	peak := 0.0
	for _, ct := range sorted {
		peak = math.Max(peak, math.Abs(ct.Amount))
	}

	t := newTable(w)
	t.AppendHeader(table.Row{"Category", "Amount", "Share", ""})
	for _, ct := range sorted {
		t.AppendRow(table.Row{
			ct.Category,
			currency.Format(ct.Amount),
			currency.FormatPercent(share(ct.Amount, total)),
			text.FgRed.Sprint(bar(ct.Amount, peak)),
		})
	}
	t.AppendSeparator()
	t.AppendFooter(table.Row{text.Bold.Sprint("Total"), text.Bold.Sprint(currency.Format(total)), "", ""})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	t.Render()
}

// PrintSeriesTable prints income and expense per month with net and a bar for each
func PrintSeriesTable(w io.Writer, s Series, currency Currency) {
	if len(s.Months) == 0 {
		fmt.Fprintln(w, "No transactions to chart.")
		return
	}

	peak := 0.0
	for i := range s.Months {
		peak = math.Max(peak, math.Max(math.Abs(s.Income[i]), math.Abs(s.Expense[i])))
	}

	net := s.Net()
	var totalIncome, totalExpense float64

	t := newTable(w)
	t.AppendHeader(table.Row{"Month", "Income", "Expense", "Net", ""})
	for i, month := range s.Months {
		totalIncome += s.Income[i]
		totalExpense += s.Expense[i]

		netStr := currency.Format(net[i])
		if net[i] < 0 {
			netStr = text.FgRed.Sprint(netStr)
		}
		bars := text.FgGreen.Sprint(bar(s.Income[i], peak)) + "\n" + text.FgRed.Sprint(bar(s.Expense[i], peak))
		t.AppendRow(table.Row{month, currency.Format(s.Income[i]), currency.Format(s.Expense[i]), netStr, bars})
	}
	t.AppendSeparator()
	t.AppendFooter(table.Row{
		text.Bold.Sprint("Total"),
		text.Bold.Sprint(currency.Format(totalIncome)),
		text.Bold.Sprint(currency.Format(totalExpense)),
		text.Bold.Sprint(currency.Format(totalIncome - totalExpense)),
		"",
	})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	t.Render()
}

// PrintSuggestions prints categories that are probably the same label typed differently
func PrintSuggestions(w io.Writer, suggestions []CategorySuggestion) {
	if len(suggestions) == 0 {
		fmt.Fprintln(w, "No category suggestions found.")
		return
	}

	fmt.Fprintf(w, "Found %d category group(s) that split the breakdown:\n\n", len(suggestions))

	t := newTable(w)
	t.AppendHeader(table.Row{"Suggested", "Variants", "Transactions"})
	for _, s := range suggestions {
		variants := make([]string, len(s.Variants))
		for i, v := range s.Variants {
			variants[i] = fmt.Sprintf("%q", v)
		}
		t.AppendRow(table.Row{s.Suggested, strings.Join(variants, ", "), s.Count})
	}
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 3, Align: text.AlignRight}})
	t.Render()
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault
	return t
}

func displayIndex(l *Ledger, tx Transaction, fallback int) int {
	if l == nil {
		return fallback
	}
	return l.IndexOf(tx.ID)
}

func breakdownTotal(sorted []CategoryTotal) float64 {
	total := 0.0
	for _, ct := range sorted {
		total += ct.Amount
	}
	return total
}

func share(amount, total float64) float64 {
	if total == 0 {
		return 0
	}
	return amount / total
}

func bar(amount, peak float64) string {
	if peak <= 0 || amount <= 0 {
		return ""
	}
	n := int(math.Round(amount / peak * barWidth))
	if n == 0 {
		n = 1
	}
	return strings.Repeat("█", n)
}
