package internal

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

func testLogger(t *testing.T) (*log.Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return NewLogger(&buf, "debug", false), &buf
}

func configFor(path string, seed bool) *Config {
	return &Config{DataPath: path, SeedSample: &seed}
}

func TestOpenSession_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.csv")
	if err := SaveFile(path, "", sampleLedgerTxs(t)); err != nil {
		t.Fatal(err)
	}
	logger, _ := testLogger(t)

	s, err := OpenSession(configFor(path, true), logger)
	if err != nil {
		t.Fatal(err)
	}
	if s.Source != SourceFile || s.Format != "csv" {
		t.Errorf("Source = %s, Format = %s", s.Source, s.Format)
	}
	if s.Ledger.Len() != 4 {
		t.Errorf("Len() = %d, want 4", s.Ledger.Len())
	}
	if s.Dirty() {
		t.Error("freshly loaded session should not be dirty")
	}
}

func TestOpenSession_MissingFileSeedsSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.csv")
	logger, buf := testLogger(t)

	s, err := OpenSession(configFor(path, true), logger)
	if err != nil {
		t.Fatal(err)
	}
	if s.Source != SourceSample {
		t.Errorf("Source = %s, want sample", s.Source)
	}
	if s.Ledger.Len() != len(SampleTransactions()) {
		t.Errorf("Len() = %d, want %d", s.Ledger.Len(), len(SampleTransactions()))
	}
	if !bytes.Contains(buf.Bytes(), []byte("sample data")) {
		t.Errorf("expected a log line about sample data, got %q", buf.String())
	}

	// Sample data alone is not written back
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Error("unchanged sample session should not create the ledger file")
	}
}

func TestOpenSession_NoSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	logger, _ := testLogger(t)

	s, err := OpenSession(configFor(path, false), logger)
	if err != nil {
		t.Fatal(err)
	}
	if s.Source != SourceEmpty || s.Ledger.Len() != 0 {
		t.Errorf("Source = %s, Len = %d", s.Source, s.Ledger.Len())
	}
}

func TestOpenSession_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.csv")
	writeFile(t, path, "Date,Category,Type,Amount,Description\n")
	logger, _ := testLogger(t)

	s, err := OpenSession(configFor(path, true), logger)
	if err != nil {
		t.Fatal(err)
	}
	if s.Source != SourceSample {
		t.Errorf("Source = %s, want sample", s.Source)
	}
}

func TestOpenSession_UnreadableFileIsNotOverwritten(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.csv")
	original := "this is,not,a ledger\n"
	writeFile(t, path, original)
	logger, _ := testLogger(t)

	s, err := OpenSession(configFor(path, true), logger)
	if err != nil {
		t.Fatal(err)
	}
	if s.Source != SourceUnreadable {
		t.Fatalf("Source = %s, want unreadable", s.Source)
	}
	if s.Ledger.Len() == 0 {
		t.Error("expected sample data to stand in for the unreadable file")
	}

	s.Add(mustTx(t, "2024-05-01", "Food", "Expense", 5, ""))
	err = s.Close()
	if !errors.Is(err, ErrUnreadableLedger) {
		t.Fatalf("Close() error = %v, want ErrUnreadableLedger", err)
	}
	var ioErr *IOError
	if !errors.As(err, &ioErr) || ioErr.Op != "save" {
		t.Errorf("expected save *IOError, got %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != original {
		t.Errorf("unreadable file was modified: %q", data)
	}
}

func TestOpenSession_UnknownExtension(t *testing.T) {
	logger, _ := testLogger(t)
	if _, err := OpenSession(configFor(filepath.Join(t.TempDir(), "ledger.txt"), true), logger); err == nil {
		t.Error("expected error for a path with no known format")
	}
}

func TestSession_CloseSavesChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "ledger.json")
	logger, _ := testLogger(t)

	s, err := OpenSession(configFor(path, false), logger)
	if err != nil {
		t.Fatal(err)
	}
	added, err := s.Add(mustTx(t, "2024-01-01", "Salary", "Income", 1000, ""))
	if err != nil {
		t.Fatal(err)
	}
	s.Add(mustTx(t, "2024-01-02", "Food", "Expense", 20, ""))
	if !s.Dirty() {
		t.Fatal("Add should mark the session dirty")
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if s.Dirty() {
		t.Error("Close should clear the dirty flag")
	}

	reopened, err := OpenSession(configFor(path, false), logger)
	if err != nil {
		t.Fatal(err)
	}
	if reopened.Source != SourceFile || reopened.Ledger.Len() != 2 {
		t.Fatalf("Source = %s, Len = %d", reopened.Source, reopened.Ledger.Len())
	}
	if reopened.Ledger.IndexOf(added.ID) != 0 {
		t.Error("JSON ledger should keep IDs across sessions")
	}
}

func TestSession_SampleSavedOnceEdited(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.csv")
	logger, _ := testLogger(t)

	s, err := OpenSession(configFor(path, true), logger)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Delete(0); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	got, err := LoadFile(path, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(SampleTransactions())-1 {
		t.Errorf("saved %d transactions, want %d", len(got), len(SampleTransactions())-1)
	}
}

func TestSession_Delete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.csv")
	logger, _ := testLogger(t)
	s, err := OpenSession(configFor(path, false), logger)
	if err != nil {
		t.Fatal(err)
	}
	for _, tx := range sampleLedgerTxs(t) {
		s.Add(tx)
	}
	s.dirty = false

	var re *RangeError
	if _, err := s.Delete(10); !errors.As(err, &re) {
		t.Errorf("expected *RangeError, got %v", err)
	}
	if s.Dirty() {
		t.Error("failed delete should not mark the session dirty")
	}

	all, _ := s.Ledger.All()
	removed, err := s.DeleteByID(all[2].ID[:8])
	if err != nil {
		t.Fatalf("delete by prefix: %v", err)
	}
	if removed.ID != all[2].ID {
		t.Errorf("removed %s, want %s", removed.ID, all[2].ID)
	}
	if !s.Dirty() {
		t.Error("delete should mark the session dirty")
	}

	if _, err := s.DeleteByID("abc"); !errors.Is(err, ErrTransactionNotFound) {
		t.Errorf("short prefixes must match exactly, got %v", err)
	}
}

func TestSession_DeleteByAmbiguousPrefix(t *testing.T) {
	logger, _ := testLogger(t)
	s, err := OpenSession(configFor(filepath.Join(t.TempDir(), "l.json"), false), logger)
	if err != nil {
		t.Fatal(err)
	}
	a := mustTx(t, "2024-01-01", "A", "Income", 1, "")
	a.ID = "aaaa1111"
	b := mustTx(t, "2024-01-01", "B", "Income", 1, "")
	b.ID = "aaaa2222"
	s.Add(a)
	s.Add(b)

	if _, err := s.DeleteByID("aaaa"); err == nil {
		t.Error("expected ambiguous prefix error")
	}
	if s.Ledger.Len() != 2 {
		t.Error("ambiguous delete removed something")
	}
	if _, err := s.DeleteByID("aaaa2"); err != nil {
		t.Errorf("unique prefix should delete: %v", err)
	}
}

func TestSession_Export(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ledger.csv")
	logger, _ := testLogger(t)
	s, err := OpenSession(configFor(path, true), logger)
	if err != nil {
		t.Fatal(err)
	}

	target := filepath.Join(dir, "export.xlsx")
	if err := s.Export(target, ""); err != nil {
		t.Fatal(err)
	}
	got, err := LoadFile(target, "")
	if err != nil {
		t.Fatal(err)
	}
	assertSameTransactions(t, got, s.Ledger.Select(nil))

	if s.Dirty() {
		t.Error("export should not mark the session dirty")
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Error("export should not write the session's own file")
	}
}

func TestSession_AddInvalidLeavesSessionClean(t *testing.T) {
	logger, _ := testLogger(t)
	s, err := OpenSession(configFor(filepath.Join(t.TempDir(), "l.json"), false), logger)
	if err != nil {
		t.Fatal(err)
	}
	_, err = s.Add(Transaction{Date: date("2024-01-01"), Category: "Rent", Type: "Loan", Amount: 1})
	if !errors.Is(err, ErrInvalidType) {
		t.Fatalf("Add() error = %v, want ErrInvalidType", err)
	}
	if s.Dirty() || s.Ledger.Len() != 0 {
		t.Errorf("rejected add changed the session: dirty=%v len=%d", s.Dirty(), s.Ledger.Len())
	}
}
