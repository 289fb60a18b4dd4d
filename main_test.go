package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gigurra/finance-ledger/internal"
)

// testEnv is an isolated config and ledger file for one test
type testEnv struct {
	config string
	data   string
}

func newTestEnv(t *testing.T, configContent, dataFile string) testEnv {
	t.Helper()
	dir := t.TempDir()
	env := testEnv{
		config: filepath.Join(dir, "config.yaml"),
		data:   filepath.Join(dir, dataFile),
	}
	if err := os.WriteFile(env.config, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	for _, v := range []string{internal.EnvDataPath, internal.EnvFormat, internal.EnvCurrency} {
		t.Setenv(v, "")
	}
	return env
}

// params returns CLI parameters for action with the usual defaults filled in
func (e testEnv) params(action string) *Params {
	return &Params{
		Action:   action,
		Config:   e.config,
		Data:     e.data,
		Output:   "table",
		Currency: "USD",
		Index:    -1,
	}
}

// runLedger runs one CLI invocation in-process and returns stdout
func runLedger(t *testing.T, p *Params) string {
	t.Helper()
	var stdout, stderr bytes.Buffer
	if err := run(p, &stdout, &stderr); err != nil {
		t.Fatalf("ledger %s failed: %v\nStderr: %s", p.Action, err, stderr.String())
	}
	return stdout.String()
}

func runLedgerJSON(t *testing.T, p *Params, v any) {
	t.Helper()
	p.Output = "json"
	out := runLedger(t, p)
	if err := json.Unmarshal([]byte(out), v); err != nil {
		t.Fatalf("failed to parse JSON output: %v\nOutput: %s", err, out)
	}
}

func addTx(t *testing.T, e testEnv, date, category, typ, amount string) {
	t.Helper()
	p := e.params("add")
	p.Date, p.Category, p.Type, p.Amount = date, category, typ, amount
	runLedger(t, p)
}

const noSampleConfig = "seed_sample: false\n"

func TestCLI_AddListDelete(t *testing.T) {
	e := newTestEnv(t, noSampleConfig, "ledger.csv")

	addTx(t, e, "2024-01-01", "Salary", "income", "1000")
	addTx(t, e, "2024-01-05", "Groceries", "Expense", "150")
	addTx(t, e, "2024-02-01", "Groceries", "expense", "50")

	var listed internal.TransactionsJSON
	runLedgerJSON(t, e.params("list"), &listed)
	if listed.Count != 3 || len(listed.Transactions) != 3 {
		t.Fatalf("expected 3 transactions, got %+v", listed)
	}
	for i, tx := range listed.Transactions {
		if tx.Index != i {
			t.Errorf("[%d] index = %d", i, tx.Index)
		}
	}
	if listed.Transactions[0].Type != "Income" || listed.Transactions[2].Type != "Expense" {
		t.Errorf("types should be normalized: %+v", listed.Transactions)
	}

	del := e.params("delete")
	del.Index = 1
	out := runLedger(t, del)
	if !strings.Contains(out, "Deleted Expense Groceries") {
		t.Errorf("unexpected delete output: %s", out)
	}

	runLedgerJSON(t, e.params("list"), &listed)
	if listed.Count != 2 || listed.Transactions[1].Amount != 50 {
		t.Errorf("unexpected ledger after delete: %+v", listed)
	}

	data, err := os.ReadFile(e.data)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "Date,Category,Type,Amount,Description\n") {
		t.Errorf("ledger file should start with the header, got %q", data)
	}
}

func TestCLI_DeleteOutOfRange(t *testing.T) {
	e := newTestEnv(t, noSampleConfig, "ledger.csv")
	addTx(t, e, "2024-01-01", "Salary", "Income", "1000")

	p := e.params("delete")
	p.Index = 5
	var stdout, stderr bytes.Buffer
	err := run(p, &stdout, &stderr)
	if err == nil || !strings.Contains(err.Error(), "out of range") {
		t.Fatalf("expected out of range error, got %v", err)
	}

	var listed internal.TransactionsJSON
	runLedgerJSON(t, e.params("list"), &listed)
	if listed.Count != 1 {
		t.Errorf("failed delete changed the ledger: %+v", listed)
	}
}

func TestCLI_DeleteByID(t *testing.T) {
	e := newTestEnv(t, noSampleConfig, "ledger.json")
	addTx(t, e, "2024-01-01", "Salary", "Income", "1000")
	addTx(t, e, "2024-01-02", "Rent", "Expense", "700")

	var listed internal.TransactionsJSON
	runLedgerJSON(t, e.params("list"), &listed)
	rentID := listed.Transactions[1].ID

	p := e.params("delete")
	p.TxID = rentID
	var removed internal.JSONTransaction
	runLedgerJSON(t, p, &removed)
	if removed.ID != rentID || removed.Category != "Rent" {
		t.Errorf("removed = %+v", removed)
	}

	runLedgerJSON(t, e.params("list"), &listed)
	if listed.Count != 1 || listed.Transactions[0].Category != "Salary" {
		t.Errorf("unexpected ledger after delete: %+v", listed)
	}
}

func TestCLI_SummaryBreakdownTrends(t *testing.T) {
	e := newTestEnv(t, noSampleConfig, "ledger.csv")
	addTx(t, e, "2024-01-01", "Salary", "Income", "1000")
	addTx(t, e, "2024-01-05", "Groceries", "Expense", "150")
	addTx(t, e, "2024-02-01", "Groceries", "Expense", "50")

	var summary internal.SummaryJSON
	runLedgerJSON(t, e.params("summary"), &summary)
	if summary.TotalIncome != 1000 || summary.TotalExpense != 200 || summary.Savings != 800 {
		t.Errorf("summary = %+v", summary)
	}
	if summary.From != "2024-01-01" || summary.To != "2024-02-01" || summary.Count != 3 {
		t.Errorf("summary range = %+v", summary)
	}

	var breakdown internal.BreakdownJSON
	runLedgerJSON(t, e.params("breakdown"), &breakdown)
	if len(breakdown.Categories) != 1 || breakdown.Categories[0].Category != "Groceries" || breakdown.Categories[0].Amount != 200 {
		t.Errorf("breakdown = %+v", breakdown)
	}

	var series internal.SeriesJSON
	runLedgerJSON(t, e.params("trends"), &series)
	if strings.Join(series.Months, ",") != "2024-01,2024-02" {
		t.Errorf("months = %v", series.Months)
	}
	if series.Income[1] != 0 || series.Expense[1] != 50 || series.Net[0] != 850 {
		t.Errorf("series = %+v", series)
	}
}

func TestCLI_Filters(t *testing.T) {
	e := newTestEnv(t, noSampleConfig+`filters:
  food:
    - kind: category
      category: groceries
`, "ledger.csv")
	addTx(t, e, "2024-01-01", "Salary", "Income", "1000")
	addTx(t, e, "2024-01-05", "Groceries", "Expense", "150")
	addTx(t, e, "2024-02-01", "Groceries", "Expense", "50")

	p := e.params("filter")
	p.From, p.To = "2024-01-01", "2024-01-31"
	var listed internal.TransactionsJSON
	runLedgerJSON(t, p, &listed)
	if listed.Count != 2 || len(listed.Filters) != 1 {
		t.Errorf("date filter = %+v", listed)
	}

	p = e.params("summary")
	p.Saved = "food"
	var summary internal.SummaryJSON
	runLedgerJSON(t, p, &summary)
	if summary.TotalIncome != 0 || summary.TotalExpense != 200 {
		t.Errorf("saved filter summary = %+v", summary)
	}

	p = e.params("list")
	p.Saved = "food"
	p.To = "2024-01-31"
	runLedgerJSON(t, p, &listed)
	if listed.Count != 1 || listed.Transactions[0].Amount != 150 {
		t.Errorf("combined filters = %+v", listed)
	}
	// Index is the position in the whole ledger, not in the filtered view
	if listed.Transactions[0].Index != 1 {
		t.Errorf("index = %d, want 1", listed.Transactions[0].Index)
	}
}

func TestCLI_BadDateBoundary(t *testing.T) {
	e := newTestEnv(t, noSampleConfig, "ledger.csv")
	addTx(t, e, "2024-01-01", "Salary", "Income", "1000")

	p := e.params("list")
	p.From = "2024-13-01"
	var stdout, stderr bytes.Buffer
	if err := run(p, &stdout, &stderr); err == nil || !strings.Contains(err.Error(), "start date") {
		t.Errorf("expected start date error, got %v", err)
	}
}

func TestCLI_AddValidation(t *testing.T) {
	e := newTestEnv(t, noSampleConfig, "ledger.csv")

	tests := []struct {
		name    string
		setup   func(p *Params)
		wantMsg string
	}{
		{"missing amount", func(p *Params) { p.Category, p.Type = "Food", "Expense" }, "--amount"},
		{"bad type", func(p *Params) { p.Category, p.Type, p.Amount = "Food", "Gift", "5" }, "invalid type"},
		{"bad amount", func(p *Params) { p.Category, p.Type, p.Amount = "Food", "Expense", "lots" }, "invalid amount"},
		{"bad date", func(p *Params) { p.Category, p.Type, p.Amount, p.Date = "Food", "Expense", "5", "05/01/2024" }, "invalid date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := e.params("add")
			tt.setup(p)
			var stdout, stderr bytes.Buffer
			err := run(p, &stdout, &stderr)
			if err == nil || !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("expected error containing %q, got %v", tt.wantMsg, err)
			}
		})
	}

	if _, err := os.Stat(e.data); !os.IsNotExist(err) {
		t.Error("failed adds should not create the ledger file")
	}
}

func TestCLI_SampleDataOnFirstRun(t *testing.T) {
	e := newTestEnv(t, "", "ledger.csv")

	var listed internal.TransactionsJSON
	runLedgerJSON(t, e.params("list"), &listed)
	if listed.Count != len(internal.SampleTransactions()) {
		t.Errorf("expected sample data, got %d transactions", listed.Count)
	}
	if _, err := os.Stat(e.data); !os.IsNotExist(err) {
		t.Error("read-only actions should not write the sample ledger")
	}
}

func TestCLI_Export(t *testing.T) {
	e := newTestEnv(t, noSampleConfig, "ledger.csv")
	addTx(t, e, "2024-01-01", "Salary", "Income", "1000")
	addTx(t, e, "2024-01-05", "Groceries", "Expense", "150.5")

	for _, ext := range []string{"xlsx", "json", "db"} {
		t.Run(ext, func(t *testing.T) {
			target := filepath.Join(t.TempDir(), "export."+ext)
			p := e.params("export")
			p.Target = target
			out := runLedger(t, p)
			if !strings.Contains(out, "Exported 2 transactions") {
				t.Errorf("unexpected output: %s", out)
			}

			// The export is a ledger in its own right
			summary := e.params("summary")
			summary.Data = target
			var got internal.SummaryJSON
			runLedgerJSON(t, summary, &got)
			if got.TotalIncome != 1000 || got.TotalExpense != 150.5 || got.Count != 2 {
				t.Errorf("summary of export = %+v", got)
			}
		})
	}
}

func TestCLI_TableOutput(t *testing.T) {
	e := newTestEnv(t, noSampleConfig, "ledger.csv")

	out := runLedger(t, e.params("list"))
	if !strings.Contains(out, "No transactions found.") {
		t.Errorf("empty list output = %q", out)
	}
	out = runLedger(t, e.params("breakdown"))
	if !strings.Contains(out, "No expenses recorded.") {
		t.Errorf("empty breakdown output = %q", out)
	}

	addTx(t, e, "2024-01-05", "Groceries", "Expense", "1234")
	out = runLedger(t, e.params("list"))
	if !strings.Contains(out, "Groceries") || !strings.Contains(out, "$1,234.00") {
		t.Errorf("list output = %s", out)
	}
	out = runLedger(t, e.params("summary"))
	if !strings.Contains(out, "Total Expense") || !strings.Contains(out, "-$1,234.00") {
		t.Errorf("summary output = %s", out)
	}
}

func TestCLI_Suggest(t *testing.T) {
	e := newTestEnv(t, noSampleConfig, "ledger.csv")
	addTx(t, e, "2024-01-05", "Groceries", "Expense", "10")
	addTx(t, e, "2024-01-06", "groceries", "Expense", "10")
	addTx(t, e, "2024-01-07", "Groceries", "Expense", "10")

	var suggestions []internal.CategorySuggestion
	runLedgerJSON(t, e.params("suggest"), &suggestions)
	if len(suggestions) != 1 || suggestions[0].Suggested != "Groceries" || suggestions[0].Count != 3 {
		t.Errorf("suggestions = %+v", suggestions)
	}
}

func TestCLI_Init(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "cfg", "config.yaml")
	p := &Params{Action: "init", Target: target, Data: filepath.Join(dir, "ledger.sqlite"), Currency: "EUR", Index: -1}
	out := runLedger(t, p)
	if !strings.Contains(out, target) {
		t.Errorf("unexpected output: %s", out)
	}

	cfg, err := internal.LoadConfig(target)
	if err != nil {
		t.Fatalf("written config does not load: %v", err)
	}
	if cfg.Currency != "EUR" || cfg.DataPath != p.Data {
		t.Errorf("config = %+v", cfg)
	}
	if _, err := cfg.SavedFilter("groceries"); err != nil {
		t.Error(err)
	}
}

func TestCLI_InitRefusesExistingConfig(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "config.yaml")
	original := "currency: SEK\nseed_sample: false\n"
	if err := os.WriteFile(target, []byte(original), 0644); err != nil {
		t.Fatal(err)
	}

	p := &Params{Action: "init", Target: target, Currency: "EUR", Index: -1}
	var stdout, stderr bytes.Buffer
	err := run(p, &stdout, &stderr)
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("init over an existing config: err = %v", err)
	}
	data, _ := os.ReadFile(target)
	if string(data) != original {
		t.Errorf("existing config was modified: %q", data)
	}
}
