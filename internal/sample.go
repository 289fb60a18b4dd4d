package internal

import "time"

// SampleTransactions returns a small seed ledger for first runs.
func SampleTransactions() []Transaction {
	d := func(y int, m time.Month, day int) time.Time {
		return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
	}
	seed := []struct {
		date        time.Time
		category    string
		typ         TxType
		amount      float64
		description string
	}{
		{d(2024, 1, 1), "Salary", Income, 3000, "January salary"},
		{d(2024, 1, 3), "Rent", Expense, 1200, "Apartment rent"},
		{d(2024, 1, 7), "Groceries", Expense, 180.45, "Weekly shopping"},
		{d(2024, 1, 15), "Utilities", Expense, 95.2, "Electricity bill"},
		{d(2024, 1, 20), "Entertainment", Expense, 45, "Concert tickets"},
		{d(2024, 2, 1), "Salary", Income, 3000, "February salary"},
		{d(2024, 2, 3), "Rent", Expense, 1200, "Apartment rent"},
		{d(2024, 2, 10), "Groceries", Expense, 210.3, "Weekly shopping"},
		{d(2024, 2, 14), "Dining", Expense, 85, "Valentine's dinner"},
		{d(2024, 2, 22), "Freelance", Income, 450, "Website project"},
		{d(2024, 3, 1), "Salary", Income, 3000, "March salary"},
		{d(2024, 3, 3), "Rent", Expense, 1200, "Apartment rent"},
		{d(2024, 3, 12), "Transport", Expense, 60, "Monthly transit pass"},
	}

	txs := make([]Transaction, 0, len(seed))
	for _, s := range seed {
		tx, err := NewTransactionAt(s.date, s.category, s.typ, s.amount, s.description)
		if err != nil {
			panic(err) // seed data is static
		}
		txs = append(txs, tx)
	}
	return txs
}
