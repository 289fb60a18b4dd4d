package internal

import (
	"fmt"

	"github.com/google/uuid"
)

// Ledger is the ordered collection of transactions for one session.
// Insertion order is the canonical order; nothing is sorted implicitly.
// Every stored transaction is valid and has an ID no other entry shares.
type Ledger struct {
	txs []Transaction
	ids map[string]struct{}
}

// NewLedger copies txs into a new ledger. Missing or repeated IDs are replaced.
func NewLedger(txs ...Transaction) (*Ledger, error) {
	l := &Ledger{txs: make([]Transaction, 0, len(txs))}
	for i, tx := range txs {
		if _, err := l.Add(tx); err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
	}
	return l, nil
}

// Add validates tx, appends it and returns the stored value. Duplicates are
// allowed, but each copy gets its own ID.
func (l *Ledger) Add(tx Transaction) (Transaction, error) {
	if err := tx.Validate(); err != nil {
		return Transaction{}, err
	}
	if l.ids == nil {
		l.ids = make(map[string]struct{}, len(l.txs)+1)
		for _, t := range l.txs {
			l.ids[t.ID] = struct{}{}
		}
	}
	for tx.ID == "" || l.hasID(tx.ID) {
		tx.ID = uuid.NewString()
	}
	l.ids[tx.ID] = struct{}{}
	l.txs = append(l.txs, tx)
	return tx, nil
}

// Delete removes the transaction currently at index.
func (l *Ledger) Delete(index int) (Transaction, error) {
	if index < 0 || index >= len(l.txs) {
		return Transaction{}, &RangeError{Index: index, Len: len(l.txs)}
	}
	removed := l.txs[index]
	l.txs = append(l.txs[:index], l.txs[index+1:]...)
	delete(l.ids, removed.ID)
	return removed, nil
}

// DeleteByID removes the transaction with the given ID.
func (l *Ledger) DeleteByID(id string) (Transaction, error) {
	i := l.IndexOf(id)
	if i < 0 {
		return Transaction{}, ErrTransactionNotFound
	}
	return l.Delete(i)
}

// IndexOf returns the current position of the transaction with the given ID,
// or -1. Positions shift on every delete; use them for display only.
func (l *Ledger) IndexOf(id string) int {
	for i, tx := range l.txs {
		if tx.ID == id {
			return i
		}
	}
	return -1
}

func (l *Ledger) hasID(id string) bool {
	_, ok := l.ids[id]
	return ok
}

func (l *Ledger) Len() int {
	return len(l.txs)
}

// All returns the transactions matching every filter, in ledger order.
// The returned slice is never shared with the ledger.
func (l *Ledger) All(filters ...Filter) ([]Transaction, error) {
	pred, err := CompileAll(filters)
	if err != nil {
		return nil, err
	}
	return l.Select(pred), nil
}

// Select returns the transactions for which pred is true. A nil pred returns a copy of everything.
func (l *Ledger) Select(pred Predicate) []Transaction {
	result := make([]Transaction, 0, len(l.txs))
	for _, tx := range l.txs {
		if pred == nil || pred(tx) {
			result = append(result, tx)
		}
	}
	return result
}

func (l *Ledger) Summary() Summary {
	return Summarize(l.txs)
}

func (l *Ledger) CategoryBreakdown() map[string]float64 {
	return CategoryBreakdown(l.txs)
}

func (l *Ledger) MonthlySeries() Series {
	return MonthlySeries(l.txs)
}
