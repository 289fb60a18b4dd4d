package internal

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// CSVStore reads and writes the five-column transaction table:
//
//	Date,Category,Type,Amount,Description
//	2024-01-01,Salary,Income,1000,
//	2024-01-05,Groceries,Expense,150,weekly shop
type CSVStore struct{}

func (CSVStore) Load(path string) ([]Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		// Zero-byte file: an empty table
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if err := CheckHeader(header); err != nil {
		return nil, err
	}

	var transactions []Transaction
	for line := 2; ; line++ {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}
		tx, err := rowToTransaction(row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		transactions = append(transactions, tx)
	}

	return transactions, nil
}

func (CSVStore) Save(path string, txs []Transaction) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}

	w := csv.NewWriter(f)
	rows := make([][]string, 0, len(txs)+1)
	rows = append(rows, RecordHeader)
	for _, tx := range txs {
		rows = append(rows, tx.ToRecord().Fields())
	}
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return fmt.Errorf("writing rows: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing file: %w", err)
	}
	return nil
}

func rowToTransaction(row []string) (Transaction, error) {
	rec, err := RecordFromFields(row)
	if err != nil {
		return Transaction{}, err
	}
	return rec.Transaction()
}

// ensureDir creates the parent directory of path if it doesn't exist
func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	return nil
}

func init() {
	RegisterStore("csv", CSVStore{}, ".csv")
}
