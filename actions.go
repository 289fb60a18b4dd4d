package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/gigurra/finance-ledger/internal"
)

type app struct {
	params   *Params
	cfg      *internal.Config
	session  *internal.Session
	currency internal.Currency
	out      io.Writer
}

func (a *app) dispatch() error {
	switch a.params.Action {
	case "list", "filter":
		return a.list()
	case "add":
		return a.add()
	case "delete":
		return a.delete()
	case "summary":
		return a.summary()
	case "breakdown":
		return a.breakdown()
	case "trends":
		return a.trends()
	case "export":
		return a.export()
	case "suggest":
		return a.suggest()
	}
	return fmt.Errorf("unknown action: %s", a.params.Action)
}

func (a *app) jsonOutput() bool {
	return a.params.Output == "json"
}

// filters collects the filters given on the command line and the saved filter, if any.
func (a *app) filters() ([]internal.Filter, error) {
	var filters []internal.Filter
	if a.params.Saved != "" {
		saved, err := a.cfg.SavedFilter(a.params.Saved)
		if err != nil {
			return nil, err
		}
		filters = append(filters, saved...)
	}
	if a.params.From != "" || a.params.To != "" {
		filters = append(filters, internal.DateRangeFilter(a.params.From, a.params.To))
	}
	if a.params.Category != "" {
		filters = append(filters, internal.CategoryFilter(a.params.Category))
	}
	return filters, nil
}

// selected returns the ledger contents narrowed by the command-line filters.
func (a *app) selected() ([]internal.Transaction, []internal.Filter, error) {
	filters, err := a.filters()
	if err != nil {
		return nil, nil, err
	}
	txs, err := a.session.Ledger.All(filters...)
	if err != nil {
		return nil, nil, err
	}
	return txs, filters, nil
}

func (a *app) list() error {
	txs, filters, err := a.selected()
	if err != nil {
		return err
	}
	if a.jsonOutput() {
		return internal.WriteJSON(a.out, internal.TransactionsJSON{
			Transactions: internal.ListedTransactions(txs, a.session.Ledger),
			Count:        len(txs),
			Filters:      filters,
		})
	}
	for _, f := range filters {
		fmt.Fprintf(a.out, "Filter: %s\n", f)
	}
	internal.PrintTransactionsTable(a.out, txs, a.session.Ledger, a.currency)
	return nil
}

func (a *app) add() error {
	p := a.params
	if p.Category == "" || p.Type == "" || p.Amount == "" {
		return errors.New("add needs --category, --type and --amount")
	}
	date := p.Date
	if date == "" {
		date = time.Now().Format(internal.DateLayout)
	}

	tx, err := internal.NewTransaction(date, p.Category, p.Type, p.Amount, p.Description)
	if err != nil {
		return err
	}
	stored, err := a.session.Add(tx)
	if err != nil {
		return err
	}

	if a.jsonOutput() {
		return internal.WriteJSON(a.out, internal.ListedTransactions([]internal.Transaction{stored}, a.session.Ledger)[0])
	}
	fmt.Fprintf(a.out, "Added %s %s %s on %s (id %s)\n",
		stored.Type, stored.Category, a.currency.Format(stored.Amount), stored.Date.Format(internal.DateLayout), stored.ShortID())
	return nil
}

func (a *app) delete() error {
	var removed internal.Transaction
	var err error
	switch {
	case a.params.TxID != "":
		removed, err = a.session.DeleteByID(a.params.TxID)
	case a.params.Index >= 0:
		removed, err = a.session.Delete(a.params.Index)
	default:
		return errors.New("delete needs --index or --id")
	}
	if err != nil {
		return err
	}

	if a.jsonOutput() {
		return internal.WriteJSON(a.out, internal.ListedTransactions([]internal.Transaction{removed}, nil)[0].JSONTransaction)
	}
	fmt.Fprintf(a.out, "Deleted %s %s %s on %s (id %s)\n",
		removed.Type, removed.Category, a.currency.Format(removed.Amount), removed.Date.Format(internal.DateLayout), removed.ShortID())
	return nil
}

func (a *app) summary() error {
	txs, _, err := a.selected()
	if err != nil {
		return err
	}
	s := internal.Summarize(txs)
	if a.jsonOutput() {
		return internal.WriteJSON(a.out, internal.NewSummaryJSON(s, txs, a.currency))
	}
	internal.PrintSummaryTable(a.out, s, txs, a.currency)
	return nil
}

func (a *app) breakdown() error {
	txs, _, err := a.selected()
	if err != nil {
		return err
	}
	b := internal.CategoryBreakdown(txs)
	if a.jsonOutput() {
		return internal.WriteJSON(a.out, internal.NewBreakdownJSON(b, a.currency))
	}
	internal.PrintBreakdownTable(a.out, b, a.currency)
	return nil
}

func (a *app) trends() error {
	txs, _, err := a.selected()
	if err != nil {
		return err
	}
	series := internal.MonthlySeries(txs)
	if a.jsonOutput() {
		return internal.WriteJSON(a.out, internal.NewSeriesJSON(series, a.currency))
	}
	internal.PrintSeriesTable(a.out, series, a.currency)
	return nil
}

func (a *app) export() error {
	if a.params.Target == "" {
		return errors.New("export needs --target")
	}
	if err := a.session.Export(a.params.Target, ""); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Exported %d transactions to %s\n", a.session.Ledger.Len(), a.params.Target)
	return nil
}

func (a *app) suggest() error {
	suggestions := internal.SuggestCategoryMerges(a.session.Ledger.Select(nil))
	if a.jsonOutput() {
		return internal.WriteJSON(a.out, suggestions)
	}
	internal.PrintSuggestions(a.out, suggestions)
	return nil
}

// runInit writes a starter config file with an example saved filter.
func runInit(params *Params, out io.Writer) error {
	path := params.Target
	if path == "" {
		path = params.Config
	}
	if path == "" {
		path = internal.DefaultConfigPath()
	}
	if path == "" {
		return errors.New("cannot determine config path; pass --target")
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config %s already exists; remove it or pass another --target", path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	cfg := internal.NewDefaultConfig()
	if params.Data != "" {
		cfg.DataPath = params.Data
	}
	cfg.Currency = params.Currency
	cfg.Filters = map[string][]internal.Filter{
		"groceries": {internal.CategoryFilter("Groceries")},
	}
	if err := cfg.Save(path); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote config to %s\n", path)
	return nil
}
