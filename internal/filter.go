package internal

import (
	"fmt"
	"strings"
	"time"
)

type FilterKind string

const (
	FilterDateRange FilterKind = "date-range"
	FilterCategory  FilterKind = "category"
)

// Filter is a named, serializable selection criterion. Only the fields
// belonging to Kind are read.
type Filter struct {
	Kind     FilterKind `yaml:"kind" json:"kind"`
	Start    string     `yaml:"start,omitempty" json:"start,omitempty"` // YYYY-MM-DD, inclusive
	End      string     `yaml:"end,omitempty" json:"end,omitempty"`     // YYYY-MM-DD, inclusive
	Category string     `yaml:"category,omitempty" json:"category,omitempty"`
}

// Predicate is the compiled form of a Filter.
type Predicate func(Transaction) bool

func DateRangeFilter(start, end string) Filter {
	return Filter{Kind: FilterDateRange, Start: start, End: end}
}

func CategoryFilter(category string) Filter {
	return Filter{Kind: FilterCategory, Category: category}
}

// Compile validates the filter and returns its predicate. Boundary dates that
// do not parse are reported as *ParseError.
func (f Filter) Compile() (Predicate, error) {
	switch f.Kind {
	case FilterDateRange:
		start, err := parseBound("start date", f.Start)
		if err != nil {
			return nil, err
		}
		end, err := parseBound("end date", f.End)
		if err != nil {
			return nil, err
		}
		return func(t Transaction) bool {
			if !start.IsZero() && t.Date.Before(start) {
				return false
			}
			if !end.IsZero() && t.Date.After(end) {
				return false
			}
			return true
		}, nil
	case FilterCategory:
		want := strings.TrimSpace(f.Category)
		return func(t Transaction) bool {
			return strings.EqualFold(t.Category, want)
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFilter, f.Kind)
}

func (f Filter) String() string {
	switch f.Kind {
	case FilterDateRange:
		start, end := f.Start, f.End
		if start == "" {
			start = "…"
		}
		if end == "" {
			end = "…"
		}
		return fmt.Sprintf("date %s to %s", start, end)
	case FilterCategory:
		return fmt.Sprintf("category %q", f.Category)
	}
	return string(f.Kind)
}

// CompileAll combines filters with AND. No filters matches everything.
func CompileAll(filters []Filter) (Predicate, error) {
	preds := make([]Predicate, 0, len(filters))
	for _, f := range filters {
		p, err := f.Compile()
		if err != nil {
			return nil, err
		}
		preds = append(preds, p)
	}
	return func(t Transaction) bool {
		for _, p := range preds {
			if !p(t) {
				return false
			}
		}
		return true
	}, nil
}

func parseBound(field, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, &ParseError{Field: field, Value: s, Err: err}
	}
	return d, nil
}
