package internal

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateLayout is the on-disk and command-line date format.
const DateLayout = "2006-01-02"

// MonthLayout is the key used to bucket transactions per calendar month.
const MonthLayout = "2006-01"

type TxType string

const (
	Income  TxType = "Income"
	Expense TxType = "Expense"
)

type Transaction struct {
	ID          string
	Date        time.Time
	Category    string
	Type        TxType
	Amount      float64
	Description string
}

// NewTransaction builds a transaction from text input, as read from a file
// row or command-line flags.
func NewTransaction(date, category, txType, amount, description string) (Transaction, error) {
	d, err := ParseDate(date)
	if err != nil {
		return Transaction{}, err
	}
	typ, err := ParseType(txType)
	if err != nil {
		return Transaction{}, err
	}
	amt, err := ParseAmount(amount)
	if err != nil {
		return Transaction{}, err
	}
	return NewTransactionAt(d, category, typ, amt, description)
}

// NewTransactionAt builds a transaction from already typed values.
// The time component of date is dropped.
func NewTransactionAt(date time.Time, category string, txType TxType, amount float64, description string) (Transaction, error) {
	typ, err := ParseType(string(txType))
	if err != nil {
		return Transaction{}, err
	}
	tx := Transaction{
		ID:          uuid.NewString(),
		Date:        truncateToDate(date),
		Category:    strings.TrimSpace(category),
		Type:        typ,
		Amount:      amount,
		Description: description,
	}
	if err := tx.Validate(); err != nil {
		return Transaction{}, err
	}
	return tx, nil
}

// Validate reports the first field that would not survive a save and reload.
func (t Transaction) Validate() error {
	if t.Date.IsZero() {
		return &ParseError{Field: "date", Value: "", Err: ErrMissingDate}
	}
	if strings.TrimSpace(t.Category) == "" {
		return &ParseError{Field: "category", Value: t.Category, Err: ErrEmptyCategory}
	}
	if t.Type != Income && t.Type != Expense {
		return &ParseError{Field: "type", Value: string(t.Type), Err: ErrInvalidType}
	}
	if math.IsInf(t.Amount, 0) || math.IsNaN(t.Amount) {
		return &ParseError{Field: "amount", Value: strconv.FormatFloat(t.Amount, 'g', -1, 64), Err: ErrAmountOutOfRange}
	}
	return nil
}

// ParseDate parses a YYYY-MM-DD string into a UTC calendar date.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, &ParseError{Field: "date", Value: s, Err: err}
	}
	return d, nil
}

// ParseType accepts "income"/"expense" in any letter case.
func ParseType(s string) (TxType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income":
		return Income, nil
	case "expense":
		return Expense, nil
	}
	return "", &ParseError{Field: "type", Value: s, Err: ErrInvalidType}
}

// ParseAmount parses a decimal amount such as "12.50", "-3" or "1e3".
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, &ParseError{Field: "amount", Value: s, Err: err}
	}
	f, _ := d.Float64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, &ParseError{Field: "amount", Value: s, Err: ErrAmountOutOfRange}
	}
	return f, nil
}

// Month returns the YYYY-MM bucket of the transaction date.
func (t Transaction) Month() string {
	return t.Date.Format(MonthLayout)
}

// ShortID is the first block of the ID, enough to tell rows apart on screen.
func (t Transaction) ShortID() string {
	if i := strings.IndexByte(t.ID, '-'); i > 0 {
		return t.ID[:i]
	}
	return t.ID
}

// Equal compares the persisted fields, ignoring ID.
func (t Transaction) Equal(o Transaction) bool {
	return t.Date.Equal(o.Date) &&
		t.Category == o.Category &&
		t.Type == o.Type &&
		t.Amount == o.Amount &&
		t.Description == o.Description
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
