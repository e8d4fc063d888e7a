package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/gncexport/gncexport/internal/model"
)

const (
	delimiter  = ';'
	dateLayout = "2006-01-02"
)

// Writer renders rows in one language and reporting currency.
type Writer struct {
	lang     Language
	currency string
	fraction int32
}

// NewWriter returns a Writer formatting amounts with the fraction digits of
// currency.
func NewWriter(lang Language, currency string) (*Writer, error) {
	c := money.GetCurrency(currency)
	if c == nil {
		return nil, fmt.Errorf("unknown currency %q", currency)
	}
	return &Writer{lang: lang, currency: c.Code, fraction: int32(c.Fraction)}, nil
}

// WriteRows writes a header for cols followed by one record per row.
func (w *Writer) WriteRows(out io.Writer, cols []Column, rows []model.Row) error {
	cw := newCSV(out)
	if err := cw.Write(w.lang.Header(cols)); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	record := make([]string, len(cols))
	for i, r := range rows {
		for j, c := range cols {
			record[j] = w.field(c, r)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSecurities writes the security list.
func (w *Writer) WriteSecurities(out io.Writer, securities []*model.Commodity) error {
	cols := w.lang.Securities
	cw := newCSV(out)
	if err := cw.Write(w.lang.Header(cols)); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	record := make([]string, len(cols))
	for i, s := range securities {
		for j, c := range cols {
			record[j] = w.securityField(c, s)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing security %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func newCSV(out io.Writer) *csv.Writer {
	cw := csv.NewWriter(out)
	cw.Comma = delimiter
	return cw
}

func (w *Writer) field(c Column, r model.Row) string {
	switch c {
	case ColDate:
		return r.Date.Format(dateLayout)
	case ColType:
		return w.lang.Label(r.Type)
	case ColAmount:
		return w.amount(r.Amount)
	case ColCurrency:
		return r.Currency
	case ColFee:
		return w.optionalAmount(r.Fee)
	case ColTax:
		return w.optionalAmount(r.Tax)
	case ColQuantity:
		if !r.Quantity.Valid {
			return ""
		}
		return r.Quantity.Decimal.String()
	case ColCode, ColTicker, ColName:
		if r.Security == nil {
			return ""
		}
		return w.securityField(c, r.Security)
	case ColNote:
		return r.Note
	default:
		// Gross amount, gross currency, exchange rate and WKN are not
		// tracked by the ledger.
		return ""
	}
}

func (w *Writer) securityField(c Column, s *model.Commodity) string {
	switch c {
	case ColCode:
		return s.Code
	case ColTicker:
		return s.Ticker
	case ColName:
		return s.Name
	case ColSecurityCurrency:
		return w.currency
	case ColNote:
		return s.Space
	default:
		return ""
	}
}

func (w *Writer) amount(d decimal.Decimal) string {
	return d.StringFixed(w.fraction)
}

func (w *Writer) optionalAmount(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return w.amount(d.Decimal)
}
