package report

import (
	"fmt"

	"github.com/gncexport/gncexport/internal/model"
)

// Column identifies one report field.
type Column int

const (
	ColDate Column = iota
	ColType
	ColAmount
	ColCurrency
	ColGross
	ColGrossCurrency
	ColExchangeRate
	ColFee
	ColTax
	ColQuantity
	ColCode
	ColWKN
	ColTicker
	ColName
	ColNote
	ColSecurityCurrency
)

// Language holds the header names, type labels and column layouts of one
// output vocabulary.
type Language struct {
	Code    string
	Headers map[Column]string
	Labels  map[model.RowType]string

	Cash       []Column // bank and money-market
	Investment []Column
	Securities []Column
}

// Header returns the header row for cols.
func (l Language) Header(cols []Column) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = l.Headers[c]
	}
	return out
}

// Label returns the localized type label, falling back to the type itself.
func (l Language) Label(t model.RowType) string {
	if s, ok := l.Labels[t]; ok {
		return s
	}
	return string(t)
}

// English uses the plain type names.
var English = Language{
	Code: "en",
	Headers: map[Column]string{
		ColDate:          "Date",
		ColType:          "Type",
		ColAmount:        "Amount",
		ColCurrency:      "Currency",
		ColGross:         "Gross amount",
		ColGrossCurrency: "Gross currency",
		ColExchangeRate:  "Exchange rate",
		ColFee:           "Fee",
		ColTax:           "Tax",
		ColQuantity:      "Quantity",
		ColCode:          "Identifying-code",
		ColTicker:        "Ticker",
		ColName:          "SecurityName",
		ColNote:          "Note",

		ColSecurityCurrency: "Currency",
	},
	Cash: []Column{
		ColDate, ColType, ColAmount, ColCurrency, ColTax, ColQuantity,
		ColCode, ColTicker, ColName, ColNote,
	},
	Investment: []Column{
		ColDate, ColType, ColAmount, ColCurrency, ColGross, ColGrossCurrency,
		ColExchangeRate, ColFee, ColTax, ColQuantity, ColCode, ColTicker,
		ColName, ColNote,
	},
	Securities: []Column{ColCode, ColTicker, ColName, ColSecurityCurrency, ColNote},
}

// German matches the Portfolio Performance German CSV import.
var German = Language{
	Code: "de",
	Headers: map[Column]string{
		ColDate:          "Datum",
		ColType:          "Typ",
		ColAmount:        "Wert",
		ColCurrency:      "Buchungswährung",
		ColGross:         "Bruttobetrag",
		ColGrossCurrency: "Währung Bruttobetrag",
		ColExchangeRate:  "Wechselkurs",
		ColFee:           "Gebühren",
		ColTax:           "Steuern",
		ColQuantity:      "Stück",
		ColCode:          "ISIN",
		ColWKN:           "WKN",
		ColTicker:        "Ticker-Symbol",
		ColName:          "Wertpapiername",
		ColNote:          "Notiz",

		ColSecurityCurrency: "Währung",
	},
	Labels: map[model.RowType]string{
		model.TypeBuy:         "Kauf",
		model.TypeSell:        "Verkauf",
		model.TypeDeliveryIn:  "Einlieferung",
		model.TypeDeliveryOut: "Auslieferung",
		model.TypeFee:         "Gebühren",
		model.TypeFeeRefund:   "Gebührenerstattung",
		model.TypeTax:         "Steuern",
		model.TypeTaxRefund:   "Steuerrückerstattung",
		model.TypeInterest:    "Zinsen",
		model.TypeDeposit:     "Einlage",
		model.TypeWithdrawal:  "Entnahme",
		model.TypeTransferOut: "Umbuchung (Ausgang)",
		model.TypeTransferIn:  "Umbuchung (Eingang)",
		model.TypeDividend:    "Dividende",
	},
	Cash: []Column{
		ColDate, ColType, ColAmount, ColCurrency, ColTax, ColQuantity,
		ColCode, ColWKN, ColTicker, ColName, ColNote,
	},
	Investment: []Column{
		ColDate, ColType, ColAmount, ColCurrency, ColGross, ColGrossCurrency,
		ColExchangeRate, ColFee, ColTax, ColQuantity, ColCode, ColWKN,
		ColTicker, ColName, ColNote,
	},
	Securities: []Column{ColCode, ColWKN, ColTicker, ColName, ColSecurityCurrency, ColNote},
}

// LanguageFor returns the vocabulary for a language code.
func LanguageFor(code string) (Language, error) {
	switch code {
	case "", English.Code:
		return English, nil
	case German.Code:
		return German, nil
	default:
		return Language{}, fmt.Errorf("unsupported language %q", code)
	}
}
