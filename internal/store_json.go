package internal

import (
	"encoding/json"
	"fmt"
	"os"
)

// JSONFormat is the JSON ledger document. Unlike the tabular formats it keeps
// transaction IDs across sessions.
// Example:
//
//	{
//	  "transactions": [
//	    {"id": "5f0c…", "date": "2025-01-15", "category": "Salary", "type": "Income", "amount": 1000, "description": ""},
//	    {"id": "8a1e…", "date": "2025-01-16", "category": "Groceries", "type": "Expense", "amount": 42.5, "description": "market"}
//	  ]
//	}
type JSONFormat struct {
	Transactions []JSONTransaction `json:"transactions"`
}

type JSONTransaction struct {
	ID          string  `json:"id,omitempty"`
	Date        string  `json:"date"` // YYYY-MM-DD format
	Category    string  `json:"category"`
	Type        string  `json:"type"` // Income or Expense
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

type JSONStore struct{}

func (JSONStore) Load(path string) ([]Transaction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var doc JSONFormat
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	var transactions []Transaction
	for i, jt := range doc.Transactions {
		date, err := ParseDate(jt.Date)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
		typ, err := ParseType(jt.Type)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
		tx, err := NewTransactionAt(date, jt.Category, typ, jt.Amount, jt.Description)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
		if jt.ID != "" {
			tx.ID = jt.ID
		}
		transactions = append(transactions, tx)
	}

	return transactions, nil
}

func (JSONStore) Save(path string, txs []Transaction) error {
	doc := JSONFormat{Transactions: make([]JSONTransaction, 0, len(txs))}
	for _, tx := range txs {
		doc.Transactions = append(doc.Transactions, JSONTransaction{
			ID:          tx.ID,
			Date:        tx.Date.Format(DateLayout),
			Category:    tx.Category,
			Type:        string(tx.Type),
			Amount:      tx.Amount,
			Description: tx.Description,
		})
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	if err := ensureDir(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}
	return nil
}

func init() {
	RegisterStore("json", JSONStore{}, ".json")
}
