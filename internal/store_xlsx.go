package internal

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// xlsxSheet is the sheet name used when writing a workbook
const xlsxSheet = "Transactions"

// XLSXStore keeps the transaction table in the first sheet of an Excel
// workbook, with the same header and column order as the CSV table.
type XLSXStore struct{}

func (XLSXStore) Load(path string) ([]Transaction, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in file")
	}

	// Raw values keep numeric Amount cells at full precision
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading sheet: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	if err := CheckHeader(rows[0]); err != nil {
		return nil, err
	}

	var transactions []Transaction
	for i, row := range rows[1:] {
		// GetRows trims trailing empty cells, so pad short rows back out
		for len(row) < len(RecordHeader) {
			row = append(row, "")
		}
		if isBlankRow(row) {
			continue
		}
		tx, err := rowToTransaction(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		transactions = append(transactions, tx)
	}

	return transactions, nil
}

func (XLSXStore) Save(path string, txs []Transaction) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), xlsxSheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	header := make([]interface{}, len(RecordHeader))
	for i, col := range RecordHeader {
		header[i] = col
	}
	if err := f.SetSheetRow(xlsxSheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, tx := range txs {
		rec := tx.ToRecord()
		row := []interface{}{rec.Date, rec.Category, rec.Type, tx.Amount, rec.Description}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("addressing row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(xlsxSheet, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}
	return nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func init() {
	RegisterStore("xlsx", XLSXStore{}, ".xlsx")
}
