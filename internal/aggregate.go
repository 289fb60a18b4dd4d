package internal

import (
	"sort"
	"strings"
	"time"
)

type Summary struct {
	TotalIncome  float64
	TotalExpense float64
	Savings      float64
}

// Series holds per-month totals. Months, Income and Expense always have the
// same length and Income[i], Expense[i] belong to Months[i].
type Series struct {
	Months  []string
	Income  []float64
	Expense []float64
}

type CategoryTotal struct {
	Category string
	Amount   float64
}

type DateRange struct {
	Start time.Time
	End   time.Time
}

// Summarize totals income and expense. Savings is income minus expense.
func Summarize(txs []Transaction) Summary {
	var s Summary
	for _, tx := range txs {
		switch tx.Type {
		case Income:
			s.TotalIncome += tx.Amount
		case Expense:
			s.TotalExpense += tx.Amount
		}
	}
	s.Savings = s.TotalIncome - s.TotalExpense
	return s
}

// CategoryBreakdown sums expense amounts per category. Category keys are
// taken as stored (case-sensitive) and categories that total zero are dropped.
func CategoryBreakdown(txs []Transaction) map[string]float64 {
	breakdown := make(map[string]float64)
	for _, tx := range ExpensesOnly(txs) {
		breakdown[tx.Category] += tx.Amount
	}
	for category, total := range breakdown {
		if total == 0 {
			delete(breakdown, category)
		}
	}
	return breakdown
}

// SortedBreakdown orders a breakdown by amount, highest first, then by name.
func SortedBreakdown(breakdown map[string]float64) []CategoryTotal {
	result := make([]CategoryTotal, 0, len(breakdown))
	for category, amount := range breakdown {
		result = append(result, CategoryTotal{Category: category, Amount: amount})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Amount != result[j].Amount {
			return result[i].Amount > result[j].Amount
		}
		return result[i].Category < result[j].Category
	})
	return result
}

// MonthlySeries buckets income and expense per YYYY-MM over the union of
// months present in either, ascending, zero-filling the gaps.
func MonthlySeries(txs []Transaction) Series {
	income := make(map[string]float64)
	expense := make(map[string]float64)
	for _, tx := range txs {
		switch tx.Type {
		case Income:
			income[tx.Month()] += tx.Amount
		case Expense:
			expense[tx.Month()] += tx.Amount
		}
	}

	monthSet := make(map[string]bool, len(income)+len(expense))
	for m := range income {
		monthSet[m] = true
	}
	for m := range expense {
		monthSet[m] = true
	}
	months := make([]string, 0, len(monthSet))
	for m := range monthSet {
		months = append(months, m)
	}
	sort.Strings(months)

	s := Series{
		Months:  months,
		Income:  make([]float64, len(months)),
		Expense: make([]float64, len(months)),
	}
	for i, m := range months {
		s.Income[i] = income[m]
		s.Expense[i] = expense[m]
	}
	return s
}

// Net returns income minus expense for each month.
func (s Series) Net() []float64 {
	net := make([]float64, len(s.Months))
	for i := range s.Months {
		net[i] = s.Income[i] - s.Expense[i]
	}
	return net
}

// FilterByDateRange keeps transactions dated within [start, end]. An empty
// bound is open. A bound that does not parse is returned as *ParseError.
func FilterByDateRange(txs []Transaction, start, end string) ([]Transaction, error) {
	pred, err := DateRangeFilter(start, end).Compile()
	if err != nil {
		return nil, err
	}
	return selectTxs(txs, pred), nil
}

// FilterByCategory keeps transactions whose category matches case-insensitively.
func FilterByCategory(txs []Transaction, category string) []Transaction {
	want := strings.TrimSpace(category)
	return selectTxs(txs, func(t Transaction) bool {
		return strings.EqualFold(t.Category, want)
	})
}

// ExpensesOnly returns only Expense transactions.
func ExpensesOnly(txs []Transaction) []Transaction {
	return selectTxs(txs, func(t Transaction) bool { return t.Type == Expense })
}

// IncomeOnly returns only Income transactions.
func IncomeOnly(txs []Transaction) []Transaction {
	return selectTxs(txs, func(t Transaction) bool { return t.Type == Income })
}

// Coverage returns the earliest and latest transaction dates.
func Coverage(txs []Transaction) DateRange {
	if len(txs) == 0 {
		return DateRange{}
	}
	r := DateRange{Start: txs[0].Date, End: txs[0].Date}
	for _, tx := range txs[1:] {
		if tx.Date.Before(r.Start) {
			r.Start = tx.Date
		}
		if tx.Date.After(r.End) {
			r.End = tx.Date
		}
	}
	return r
}

func selectTxs(txs []Transaction, pred Predicate) []Transaction {
	result := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		if pred(tx) {
			result = append(result, tx)
		}
	}
	return result
}
