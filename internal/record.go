package internal

import (
	"fmt"
	"strconv"
	"strings"
)

// RecordHeader is the column order of the persisted table.
var RecordHeader = []string{"Date", "Category", "Type", "Amount", "Description"}

// Record is the flat, text-only form of a transaction at the persistence boundary.
type Record struct {
	Date        string
	Category    string
	Type        string
	Amount      string
	Description string
}

// ToRecord renders the transaction for storage. The amount is written as the
// shortest decimal that parses back to the same float.
func (t Transaction) ToRecord() Record {
	return Record{
		Date:        t.Date.Format(DateLayout),
		Category:    t.Category,
		Type:        string(t.Type),
		Amount:      strconv.FormatFloat(t.Amount, 'f', -1, 64),
		Description: t.Description,
	}
}

// Fields returns the record in RecordHeader order.
func (r Record) Fields() []string {
	return []string{r.Date, r.Category, r.Type, r.Amount, r.Description}
}

// Transaction parses the record back into a transaction with a fresh ID.
func (r Record) Transaction() (Transaction, error) {
	return NewTransaction(r.Date, r.Category, r.Type, r.Amount, r.Description)
}

// RecordFromFields builds a record from a row in RecordHeader order. A missing
// trailing Description column is read as empty.
func RecordFromFields(fields []string) (Record, error) {
	if len(fields) < len(RecordHeader)-1 || len(fields) > len(RecordHeader) {
		return Record{}, fmt.Errorf("expected %d columns, got %d", len(RecordHeader), len(fields))
	}
	r := Record{
		Date:     fields[0],
		Category: fields[1],
		Type:     fields[2],
		Amount:   fields[3],
	}
	if len(fields) == len(RecordHeader) {
		r.Description = fields[4]
	}
	return r, nil
}

// CheckHeader verifies that a table header matches RecordHeader exactly
// (surrounding whitespace and a UTF-8 BOM are ignored).
func CheckHeader(header []string) error {
	if len(header) != len(RecordHeader) {
		return fmt.Errorf("header has %d columns, want %s", len(header), strings.Join(RecordHeader, ","))
	}
	for i, col := range header {
		col = strings.TrimSpace(strings.TrimPrefix(col, "\ufeff"))
		if col != RecordHeader[i] {
			return fmt.Errorf("header column %d is %q, want %q", i+1, col, RecordHeader[i])
		}
	}
	return nil
}
