package commands

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gncexport/gncexport/internal/accounts"
	"github.com/gncexport/gncexport/internal/classify"
	"github.com/gncexport/gncexport/internal/config"
	"github.com/gncexport/gncexport/internal/dividend"
	"github.com/gncexport/gncexport/internal/exportlog"
	"github.com/gncexport/gncexport/internal/gitops"
	"github.com/gncexport/gncexport/internal/gnucash"
	"github.com/gncexport/gncexport/internal/logger"
	"github.com/gncexport/gncexport/internal/report"
)

type exportOptions struct {
	configPath string
	dueDate    string
	promptDate bool
	outDir     string
	only       string
	commit     bool
}

func newExportCommand() *cobra.Command {
	var opts exportOptions

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the bank, money-market, investment and security reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, opts)
		},
	}

	addConfigFlags(cmd, &opts)
	cmd.Flags().StringVar(&opts.only, "only", "", "comma-separated reports to write (bank,money-market,investment,securities)")

	return cmd
}

func addConfigFlags(cmd *cobra.Command, opts *exportOptions) {
	cmd.Flags().StringVar(&opts.configPath, "config", ConfigFile, "path to the config file")
	cmd.Flags().StringVar(&opts.dueDate, "due-date", "", "first posting date to export (YYYY-MM-DD), overrides due_date")
	cmd.Flags().BoolVar(&opts.promptDate, "prompt-date", false, "ask for the first posting date")
	cmd.Flags().StringVar(&opts.outDir, "out", "", "output directory, overrides output.dir")
	cmd.Flags().BoolVar(&opts.commit, "commit", false, "commit the written files to git")
}

func runExport(cmd *cobra.Command, opts exportOptions) error {
	log := logger.FromContext(cmd.Context())

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.dueDate != "" {
		cfg.DueDate = opts.dueDate
	}
	if opts.outDir != "" {
		cfg.Output.Dir = opts.outDir
	}
	if opts.commit {
		cfg.Output.Commit = true
	}
	if opts.promptDate {
		def, err := cfg.Cutoff()
		if err != nil {
			def = time.Now().UTC().Truncate(24 * time.Hour)
		}
		cfg.DueDate = PromptDate(cmd.InOrStdin(), cmd.OutOrStdout(), def).Format(config.DateFormat)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	kinds, err := report.ParseKinds(opts.only)
	if err != nil {
		return err
	}
	cutoff, err := cfg.Cutoff()
	if err != nil {
		return err
	}

	// Relative paths in the config are relative to the config file.
	base := filepath.Dir(opts.configPath)
	outDir, err := filepath.Abs(resolvePath(base, cfg.Output.Dir))
	if err != nil {
		return fmt.Errorf("resolving output dir: %w", err)
	}

	book, err := gnucash.Open(resolvePath(base, cfg.Ledger))
	if err != nil {
		return err
	}
	log.Info().
		Int("accounts", len(book.Accounts)).
		Int("transactions", len(book.Transactions)).
		Int("securities", len(book.Securities())).
		Msg("ledger loaded")

	reg, err := accounts.NewRegistry(book, cfg.Bindings())
	if err != nil {
		return err
	}
	lang, err := report.LanguageFor(cfg.Language)
	if err != nil {
		return err
	}

	cls, err := classify.New(reg, classify.Options{
		Cutoff:   cutoff,
		Currency: cfg.Currency,
		Matcher:  dividend.NewRatioMatcher(cfg.Matcher.Cutoff),
		Logger:   &log,
	})
	if err != nil {
		return err
	}
	exp, err := report.NewExporter(cls, report.Options{
		Dir:      outDir,
		Files:    reportFiles(cfg),
		Language: lang,
		Currency: cfg.Currency,
		Logger:   &log,
	})
	if err != nil {
		return err
	}

	results, err := exp.Export(kinds)
	if err != nil {
		return err
	}
	for _, r := range results {
		fmt.Fprintf(cmd.OutOrStdout(), "%-13s %4d rows  %s\n", r.Kind, r.Rows, r.Path)
	}

	if err := writeExportLog(outDir, results, cutoff); err != nil {
		return err
	}

	if cfg.Output.Commit {
		return commitReports(log, outDir, results, cfg)
	}
	return nil
}

func reportFiles(cfg *config.Config) map[report.Kind]string {
	return map[report.Kind]string{
		report.KindBank:        cfg.Output.Bank,
		report.KindMoneyMarket: cfg.Output.MoneyMarket,
		report.KindInvestment:  cfg.Output.Investment,
		report.KindSecurities:  cfg.Output.Securities,
	}
}

func resolvePath(base, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

func writeExportLog(dir string, results []report.Result, cutoff time.Time) error {
	now := time.Now().UTC().Truncate(time.Second)
	entries := make([]exportlog.Entry, len(results))
	for i, r := range results {
		entries[i] = exportlog.Entry{
			Timestamp: now,
			Report:    string(r.Kind),
			File:      filepath.Base(r.Path),
			Rows:      r.Rows,
			DueDate:   cutoff,
		}
	}
	if err := exportlog.Append(dir, entries); err != nil {
		return fmt.Errorf("writing export log: %w", err)
	}
	return nil
}

func commitReports(log zerolog.Logger, dir string, results []report.Result, cfg *config.Config) error {
	if !gitops.IsRepo(dir) {
		log.Warn().Str("dir", dir).Msg("output directory is not in a git repository, skipping commit")
		return nil
	}

	paths := make([]string, 0, len(results)+1)
	for _, r := range results {
		paths = append(paths, r.Path)
	}
	paths = append(paths, exportlog.Path(dir))

	author := gitops.Author{Name: cfg.Git.AuthorName, Email: cfg.Git.AuthorEmail}
	hash, err := gitops.Commit(dir, "export: "+cfg.DueDate, author, paths...)
	if errors.Is(err, gitops.ErrNothingToCommit) {
		log.Info().Msg("reports unchanged, nothing to commit")
		return nil
	}
	if err != nil {
		return fmt.Errorf("committing reports: %w", err)
	}
	log.Info().Str("commit", hash).Msg("reports committed")
	return nil
}
