package commands_test

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gncexport/gncexport/internal/accounts"
	"github.com/gncexport/gncexport/internal/config"
	"github.com/gncexport/gncexport/internal/exportlog"
)

// setupBook copies the sample ledger and config into a temp dir and
// returns the config path.
func setupBook(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{"household.gnucash", "gncexport.yaml"} {
		data, err := os.ReadFile(filepath.Join("..", "..", "testdata", name))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
	}
	return filepath.Join(dir, "gncexport.yaml")
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}

func TestExport_AllReports(t *testing.T) {
	cfgPath := setupBook(t)
	out, err := runGncexport(t, "export", "--config", cfgPath)
	require.NoError(t, err, out)

	outDir := filepath.Join(filepath.Dir(cfgPath), "out")

	assert.Equal(t, []string{
		"Date;Type;Amount;Currency;Tax;Quantity;Identifying-code;Ticker;SecurityName;Note",
		"2016-07-01;Deposit;2500.00;EUR;;;;;;Salary July",
		"2016-07-02;Transfer out;-500.00;EUR;;;;;;Transfer to overnight",
		"2016-07-05;Dividend;29.45;EUR;10.55;20;DE000ABC1234;ABC;ABC Holding AG;DIVIDENDE WKN ABC123 / DE000ABC1234 ABC HOLDING MENGE 20",
		"2016-07-06;Dividend;75.00;EUR;;10;DE0008404005;ALV;ALLIANZ SE;ERTRAGSGUTSCHRIFT STK/NOM: 10 ALLIANZ SE VINK.NAMENS-AKTIEN O.N.",
		"2016-07-31;Fee;4.90;EUR;;;;;;Account fee",
	}, readLines(t, filepath.Join(outDir, "bank.csv")))

	assert.Equal(t, []string{
		"Date;Type;Amount;Currency;Tax;Quantity;Identifying-code;Ticker;SecurityName;Note",
		"2016-07-31;Interest;0.42;EUR;;;;;;Overnight interest",
	}, readLines(t, filepath.Join(outDir, "money-market.csv")))

	assert.Equal(t, []string{
		"Date;Type;Amount;Currency;Gross amount;Gross currency;Exchange rate;Fee;Tax;Quantity;Identifying-code;Ticker;SecurityName;Note",
		"2016-07-04;Buy;1009.90;EUR;;;;9.90;0.00;20;DE000ABC1234;ABC;ABC Holding AG;Buy ABC Holding",
		"2016-07-07;Delivery in;1500.00;EUR;;;;0.00;0.00;10;DE0008404005;ALV;ALLIANZ SE;Depot transfer ALLIANZ",
	}, readLines(t, filepath.Join(outDir, "investment.csv")))

	assert.Equal(t, []string{
		"Identifying-code;Ticker;SecurityName;Currency;Note",
		"DE000ABC1234;ABC;ABC Holding AG;EUR;XETRA",
		"DE0008404005;ALV;ALLIANZ SE;EUR;XETRA",
	}, readLines(t, filepath.Join(outDir, "stock.csv")))

	entries, err := exportlog.Read(outDir)
	require.NoError(t, err)
	require.Len(t, entries, 4)
	assert.Equal(t, "bank", entries[0].Report)
	assert.Equal(t, 5, entries[0].Rows)
	assert.Equal(t, "2016-07-01", entries[0].DueDate.Format(config.DateFormat))
}

func TestExport_German(t *testing.T) {
	cfgPath := setupBook(t)
	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)
	cfg.Language = "de"
	require.NoError(t, config.Save(cfgPath, cfg))

	_, err = runGncexport(t, "export", "--config", cfgPath, "--only", "investment")
	require.NoError(t, err)

	lines := readLines(t, filepath.Join(filepath.Dir(cfgPath), "out", "investment.csv"))
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "Datum;Typ;Wert;Buchungswährung;"))
	assert.Equal(t, "2016-07-04;Kauf;1009.90;EUR;;;;9.90;0.00;20;DE000ABC1234;;ABC;ABC Holding AG;Buy ABC Holding", lines[1])
	assert.Contains(t, lines[2], ";Einlieferung;")
}

func TestExport_DueDateOverride(t *testing.T) {
	cfgPath := setupBook(t)
	outDir := filepath.Join(t.TempDir(), "reports")

	_, err := runGncexport(t, "export", "--config", cfgPath, "--due-date", "2016-07-06", "--out", outDir, "--only", "bank")
	require.NoError(t, err)

	lines := readLines(t, filepath.Join(outDir, "bank.csv"))
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "2016-07-06;Dividend;"))

	_, err = os.Stat(filepath.Join(outDir, "investment.csv"))
	assert.True(t, os.IsNotExist(err), "only the bank report is written")
}

func TestExport_PromptDate(t *testing.T) {
	cfgPath := setupBook(t)
	out, err := runGncexportWithInput(t, "yesterday\n31.07.2016\n", "export", "--config", cfgPath, "--prompt-date", "--only", "bank")
	require.NoError(t, err)
	assert.Contains(t, out, "Date [01.07.2016]: ")
	assert.Contains(t, out, "invalid date")

	lines := readLines(t, filepath.Join(filepath.Dir(cfgPath), "out", "bank.csv"))
	assert.Equal(t, []string{
		"Date;Type;Amount;Currency;Tax;Quantity;Identifying-code;Ticker;SecurityName;Note",
		"2016-07-31;Fee;4.90;EUR;;;;;;Account fee",
	}, lines)
}

func TestSecurities(t *testing.T) {
	cfgPath := setupBook(t)
	_, err := runGncexport(t, "securities", "--config", cfgPath)
	require.NoError(t, err)

	outDir := filepath.Join(filepath.Dir(cfgPath), "out")
	assert.Len(t, readLines(t, filepath.Join(outDir, "stock.csv")), 3)
	_, err = os.Stat(filepath.Join(outDir, "bank.csv"))
	assert.True(t, os.IsNotExist(err))
}

func TestExport_UnknownAccount(t *testing.T) {
	cfgPath := setupBook(t)
	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)
	cfg.Accounts["commission"] = config.Many("Expenses:Bank Charges")
	require.NoError(t, config.Save(cfgPath, cfg))

	_, err = runGncexport(t, "export", "--config", cfgPath)
	require.Error(t, err)

	var unknown *accounts.UnknownAccountError
	require.True(t, errors.As(err, &unknown), "got %v", err)
	assert.Equal(t, "Expenses:Bank Charges", unknown.Name)

	_, err = os.Stat(filepath.Join(filepath.Dir(cfgPath), "out"))
	assert.True(t, os.IsNotExist(err), "no report is written")
}

func TestExport_InvalidConfig(t *testing.T) {
	cfgPath := setupBook(t)
	_, err := runGncexport(t, "export", "--config", cfgPath, "--due-date", "01.07.2016")
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestExport_UnknownReport(t *testing.T) {
	cfgPath := setupBook(t)
	_, err := runGncexport(t, "export", "--config", cfgPath, "--only", "journal")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown report")
}

func TestExport_BadLogLevel(t *testing.T) {
	cfgPath := setupBook(t)
	_, err := runGncexport(t, "export", "--config", cfgPath, "--log-level", "loud")
	assert.Error(t, err)
}

func TestExport_Commit(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	cfgPath := setupBook(t)
	dir := filepath.Dir(cfgPath)
	git := exec.Command("git", "init", "--quiet")
	git.Dir = dir
	require.NoError(t, git.Run())

	out, err := runGncexport(t, "export", "--config", cfgPath, "--commit")
	require.NoError(t, err, out)

	log := exec.Command("git", "log", "--format=%s", "-1")
	log.Dir = dir
	msg, err := log.Output()
	require.NoError(t, err)
	assert.Equal(t, "export: 2016-07-01\n", string(msg))

	files := exec.Command("git", "show", "--name-only", "--format=", "HEAD")
	files.Dir = dir
	names, err := files.Output()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"out/bank.csv",
		"out/export-log.csv",
		"out/investment.csv",
		"out/money-market.csv",
		"out/stock.csv",
	}, strings.Fields(string(names)))
}

func TestExport_CommitOutsideRepo(t *testing.T) {
	cfgPath := setupBook(t)
	out, err := runGncexport(t, "export", "--config", cfgPath, "--commit")
	require.NoError(t, err)
	assert.Contains(t, out, "skipping commit")
}
