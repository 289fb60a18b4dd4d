package main

import (
	"fmt"
	"io"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/finance-ledger/internal"
)

type Params struct {
	Action   string `descr:"Action to run" positional:"true" alts:"list,add,delete,summary,breakdown,trends,filter,export,suggest,init" strict:"true"`
	Config   string `descr:"Path to config file (default ~/.finance-ledger/config.yaml)" optional:"true"`
	Data     string `descr:"Path to the ledger file, overrides config" optional:"true"`
	Format   string `descr:"Ledger file format (csv, xlsx, json, sqlite); default from the file extension" optional:"true"`
	Output   string `descr:"Output format" alts:"table,json" strict:"true" default:"table"`
	Currency string `descr:"Currency code for display (default from config, then system locale)" optional:"true"`
	Verbose  bool   `descr:"Log debug details to stderr" optional:"true"`

	// add
	Date        string `descr:"Transaction date (YYYY-MM-DD) for add; defaults to today" optional:"true"`
	Type        string `descr:"Income or Expense, for add" optional:"true"`
	Amount      string `descr:"Amount for add" optional:"true"`
	Description string `descr:"Description for add" optional:"true"`

	// add, and a filter for the read actions
	Category string `descr:"Category for add; category to match for list/filter/summary/breakdown/trends" optional:"true"`

	// delete
	Index int    `descr:"Index to delete, as shown by list" default:"-1"`
	TxID  string `name:"id" descr:"Transaction ID (or a unique prefix of 4+ characters) to delete" optional:"true"`

	// filtering
	From  string `descr:"Only transactions on or after this date (YYYY-MM-DD)" optional:"true"`
	To    string `descr:"Only transactions on or before this date (YYYY-MM-DD)" optional:"true"`
	Saved string `descr:"Apply a saved filter from the config file" optional:"true"`

	// export, init
	Target string `descr:"Target file for export (format from extension) or init" optional:"true"`
}

func main() {
	boa.NewCmdT[Params]("ledger").
		WithShort("Personal finance ledger").
		WithLong("Records dated income and expense entries in a local file (csv, xlsx, json or sqlite) and reports totals, expense breakdown by category and monthly trends.").
		WithRunFunc(func(params *Params) {
			if err := run(params, os.Stdout, os.Stderr); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		}).
		Run()
}

// run executes one session: load, run the action, save if the ledger changed.
func run(params *Params, stdout, stderr io.Writer) error {
	if params.Action == "init" {
		return runInit(params, stdout)
	}

	cfg, err := loadConfig(params)
	if err != nil {
		return err
	}

	logger := internal.NewLogger(stderr, cfg.LogLevel, params.Verbose)
	currency := internal.ResolveCurrency(cfg.Currency)

	session, err := internal.OpenSession(cfg, logger)
	if err != nil {
		return err
	}

	a := &app{params: params, cfg: cfg, session: session, currency: currency, out: stdout}
	if err := a.dispatch(); err != nil {
		return err
	}
	return session.Close()
}

// loadConfig resolves configuration: file, then .env/environment, then flags.
func loadConfig(params *Params) (*internal.Config, error) {
	cfg, err := internal.LoadConfigOrDefault(params.Config)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(".env"); err != nil {
		return nil, err
	}
	if params.Data != "" {
		cfg.DataPath = params.Data
	}
	if params.Format != "" {
		cfg.Format = params.Format
	}
	if params.Currency != "" {
		cfg.Currency = params.Currency
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
