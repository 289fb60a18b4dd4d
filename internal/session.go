package internal

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/charmbracelet/log"
)

type Source string

const (
	SourceFile       Source = "file"
	SourceSample     Source = "sample"
	SourceEmpty      Source = "empty"
	SourceUnreadable Source = "unreadable"
)

// ErrUnreadableLedger is returned when saving would overwrite a ledger file
// that failed to load.
var ErrUnreadableLedger = errors.New("refusing to overwrite a ledger file that could not be read")

// Session owns the ledger between loading it at start and saving it at the end.
type Session struct {
	Ledger *Ledger
	Path   string
	Format string
	Source Source

	dirty  bool
	logger *log.Logger
}

// OpenSession loads the configured ledger file. A missing, unreadable or empty
// file starts the session from sample data when the config allows it, and from
// an empty ledger otherwise.
func OpenSession(cfg *Config, logger *log.Logger) (*Session, error) {
	if cfg == nil {
		cfg = NewDefaultConfig()
	}
	path := cfg.DataPath
	if path == "" {
		path = DefaultDataPath
	}
	format, err := ResolveFormat(cfg.Format, path)
	if err != nil {
		return nil, err
	}

	s := &Session{Path: path, Format: format, logger: logger.With("path", path, "format", format)}

	txs, err := LoadFile(path, format)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		s.logger.Info("ledger file not found")
		s.Source = SourceEmpty
	case err != nil:
		s.logger.Warn("ledger file could not be read", "err", err)
		s.Source = SourceUnreadable
	case len(txs) == 0:
		s.logger.Info("ledger file is empty")
		s.Source = SourceEmpty
	default:
		s.Source = SourceFile
	}

	if s.Source != SourceFile && cfg.ShouldSeedSample() {
		if s.Source == SourceEmpty {
			s.Source = SourceSample
		}
		txs = SampleTransactions()
		s.logger.Warn("starting from sample data", "count", len(txs))
	}

	l, err := NewLedger(txs...)
	if err != nil {
		return nil, &IOError{Op: "load", Path: path, Err: err}
	}
	s.Ledger = l
	s.logger.Debug("session opened", "source", s.Source, "count", s.Ledger.Len())
	return s, nil
}

// Add appends tx to the ledger and marks the session for saving.
func (s *Session) Add(tx Transaction) (Transaction, error) {
	stored, err := s.Ledger.Add(tx)
	if err != nil {
		return Transaction{}, err
	}
	s.dirty = true
	s.logger.Debug("transaction added", "id", stored.ID)
	return stored, nil
}

// Delete removes the transaction at the given display index.
func (s *Session) Delete(index int) (Transaction, error) {
	removed, err := s.Ledger.Delete(index)
	if err != nil {
		return Transaction{}, err
	}
	s.dirty = true
	s.logger.Debug("transaction deleted", "id", removed.ID, "index", index)
	return removed, nil
}

// DeleteByID removes the transaction with the given ID. A unique ID prefix is accepted.
func (s *Session) DeleteByID(id string) (Transaction, error) {
	full, err := s.resolveID(id)
	if err != nil {
		return Transaction{}, err
	}
	removed, err := s.Ledger.DeleteByID(full)
	if err != nil {
		return Transaction{}, err
	}
	s.dirty = true
	s.logger.Debug("transaction deleted", "id", removed.ID)
	return removed, nil
}

func (s *Session) Dirty() bool {
	return s.dirty
}

// MarkDirty forces the ledger to be written on Close.
func (s *Session) MarkDirty() {
	s.dirty = true
}

// Close writes the ledger back when it changed during the session.
func (s *Session) Close() error {
	if !s.dirty {
		return nil
	}
	if s.Source == SourceUnreadable {
		return &IOError{Op: "save", Path: s.Path, Err: ErrUnreadableLedger}
	}
	txs := s.Ledger.Select(nil)
	if err := SaveFile(s.Path, s.Format, txs); err != nil {
		return err
	}
	s.dirty = false
	s.logger.Info("ledger saved", "count", len(txs))
	return nil
}

// Export writes the current ledger to another file without touching the session's own file.
func (s *Session) Export(path, format string) error {
	txs := s.Ledger.Select(nil)
	if err := SaveFile(path, format, txs); err != nil {
		return err
	}
	s.logger.Info("ledger exported", "target", path, "count", len(txs))
	return nil
}

func (s *Session) resolveID(prefix string) (string, error) {
	var match string
	for _, tx := range s.Ledger.Select(nil) {
		if tx.ID == prefix {
			return tx.ID, nil
		}
		if len(prefix) >= 4 && len(tx.ID) > len(prefix) && tx.ID[:len(prefix)] == prefix {
			if match != "" {
				return "", fmt.Errorf("id prefix %q is ambiguous", prefix)
			}
			match = tx.ID
		}
	}
	if match == "" {
		return "", ErrTransactionNotFound
	}
	return match, nil
}
