package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/gncexport/gncexport/internal/model"
)

// Source produces the rows of each report.
type Source interface {
	Bank() []model.Row
	MoneyMarket() []model.Row
	Investment() []model.Row
	Securities() []*model.Commodity
}

// Result describes one written report.
type Result struct {
	Kind Kind
	Path string
	Rows int
}

// Options configures an Exporter.
type Options struct {
	Dir      string
	Files    map[Kind]string // file name per report, relative to Dir
	Language Language
	Currency string
	Logger   *zerolog.Logger // nil disables logging
}

// Exporter writes reports from a Source into a directory.
type Exporter struct {
	src   Source
	w     *Writer
	dir   string
	files map[Kind]string
	log   zerolog.Logger
}

// NewExporter validates opts and returns an Exporter.
func NewExporter(src Source, opts Options) (*Exporter, error) {
	w, err := NewWriter(opts.Language, opts.Currency)
	if err != nil {
		return nil, err
	}
	for _, k := range Kinds {
		if opts.Files[k] == "" {
			return nil, fmt.Errorf("no file name for %s report", k)
		}
	}
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}
	return &Exporter{src: src, w: w, dir: opts.Dir, files: opts.Files, log: log}, nil
}

// Export writes the selected reports in order and returns what was written.
func (e *Exporter) Export(kinds []Kind) ([]Result, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}
	results := make([]Result, 0, len(kinds))
	for _, k := range kinds {
		res, err := e.export(k)
		if err != nil {
			return results, fmt.Errorf("writing %s report: %w", k, err)
		}
		e.log.Info().
			Str("report", string(k)).
			Str("path", res.Path).
			Int("rows", res.Rows).
			Msg("report written")
		results = append(results, res)
	}
	return results, nil
}

func (e *Exporter) export(k Kind) (Result, error) {
	path := filepath.Join(e.dir, e.files[k])
	f, err := os.Create(path)
	if err != nil {
		return Result{}, err
	}
	defer f.Close()

	var n int
	switch k {
	case KindBank:
		rows := e.src.Bank()
		n, err = len(rows), e.w.WriteRows(f, e.w.lang.Cash, rows)
	case KindMoneyMarket:
		rows := e.src.MoneyMarket()
		n, err = len(rows), e.w.WriteRows(f, e.w.lang.Cash, rows)
	case KindInvestment:
		rows := e.src.Investment()
		n, err = len(rows), e.w.WriteRows(f, e.w.lang.Investment, rows)
	case KindSecurities:
		secs := e.src.Securities()
		n, err = len(secs), e.w.WriteSecurities(f, secs)
	default:
		err = fmt.Errorf("unknown report %q", k)
	}
	if err != nil {
		return Result{}, err
	}
	if err := f.Close(); err != nil {
		return Result{}, err
	}
	return Result{Kind: k, Path: path, Rows: n}, nil
}
