package internal

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Store loads and saves a whole ledger file in one format.
type Store interface {
	Load(path string) ([]Transaction, error)
	Save(path string, txs []Transaction) error
}

// stores is the registry of available file formats
var stores = map[string]Store{}

// extensions maps file extensions to registered format names
var extensions = map[string]string{}

// RegisterStore registers a store under a format name and the file extensions it handles
func RegisterStore(format string, s Store, exts ...string) {
	stores[format] = s
	for _, ext := range exts {
		extensions[strings.ToLower(ext)] = format
	}
}

// GetStore returns the store for the given format
func GetStore(format string) (Store, error) {
	s, ok := stores[format]
	if !ok {
		return nil, fmt.Errorf("unknown format: %s (available: %v)", format, AvailableFormats())
	}
	return s, nil
}

// AvailableFormats returns the registered format names, sorted
func AvailableFormats() []string {
	var formats []string
	for name := range stores {
		formats = append(formats, name)
	}
	sort.Strings(formats)
	return formats
}

// IsKnownFormat returns true if the name is a registered format
func IsKnownFormat(name string) bool {
	_, ok := stores[name]
	return ok
}

// FormatForPath picks a format from the file extension. Returns "" when the
// extension is not recognised.
// Example: "data/transactions.csv" → "csv"
// Example: "ledger.sqlite" → "sqlite"
func FormatForPath(path string) string {
	return extensions[strings.ToLower(filepath.Ext(path))]
}

// ResolveFormat returns format if set, otherwise the format implied by path.
func ResolveFormat(format, path string) (string, error) {
	if format != "" {
		if !IsKnownFormat(format) {
			return "", fmt.Errorf("unknown format: %s (available: %v)", format, AvailableFormats())
		}
		return format, nil
	}
	if f := FormatForPath(path); f != "" {
		return f, nil
	}
	return "", fmt.Errorf("cannot tell format of %s from its extension; set one of %v", path, AvailableFormats())
}

// LoadFile loads path with the store registered for format (or its extension).
func LoadFile(path, format string) ([]Transaction, error) {
	format, err := ResolveFormat(format, path)
	if err != nil {
		return nil, err
	}
	s, err := GetStore(format)
	if err != nil {
		return nil, err
	}
	txs, err := s.Load(path)
	if err != nil {
		return nil, &IOError{Op: "load", Path: path, Err: err}
	}
	return txs, nil
}

// SaveFile writes txs to path, replacing its previous contents.
func SaveFile(path, format string, txs []Transaction) error {
	format, err := ResolveFormat(format, path)
	if err != nil {
		return err
	}
	s, err := GetStore(format)
	if err != nil {
		return err
	}
	if err := s.Save(path, txs); err != nil {
		return &IOError{Op: "save", Path: path, Err: err}
	}
	return nil
}
