package internal

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLiteStore keeps the ledger in a SQLite database file. Row order is kept
// in the position column and IDs survive across sessions.
type SQLiteStore struct{}

func (SQLiteStore) Load(path string) ([]Transaction, error) {
	// sql.Open would create a missing file; report it instead
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db, err := openSQLite(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.Query(`
		SELECT id, date, category, type, amount, description
		FROM transactions
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []Transaction
	for rows.Next() {
		var id, date, category, typ, description string
		var amount float64
		if err := rows.Scan(&id, &date, &category, &typ, &amount, &description); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		d, err := ParseDate(date)
		if err != nil {
			return nil, fmt.Errorf("transaction %s: %w", id, err)
		}
		tx, err := NewTransactionAt(d, category, TxType(typ), amount, description)
		if err != nil {
			return nil, fmt.Errorf("transaction %s: %w", id, err)
		}
		tx.ID = id
		transactions = append(transactions, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return transactions, nil
}

// Save replaces the whole table inside one SQL transaction.
func (SQLiteStore) Save(path string, txs []Transaction) (err error) {
	if err := ensureDir(path); err != nil {
		return err
	}
	db, err := openSQLite(path)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, tx.Rollback())
		}
	}()

	if _, err := tx.Exec(`DELETE FROM transactions`); err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}
	stmt, err := tx.Prepare(`
		INSERT INTO transactions (id, position, date, category, type, amount, description)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, t := range txs {
		if _, err := stmt.Exec(t.ID, i, t.Date.Format(DateLayout), t.Category, string(t.Type), t.Amount, t.Description); err != nil {
			return fmt.Errorf("insert transaction %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func openSQLite(path string) (*sql.DB, error) {
	if err := runMigrations(path); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

func runMigrations(path string) error {
	// Separate connection: closing the migrate instance closes its database
	migrateDB, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open migration database: %w", err)
	}
	defer migrateDB.Close()

	driver, err := sqlite.WithInstance(migrateDB, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("create sqlite driver: %w", err)
	}

	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

func init() {
	RegisterStore("sqlite", SQLiteStore{}, ".db", ".sqlite", ".sqlite3")
}
