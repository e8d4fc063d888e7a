package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gncexport/gncexport/internal/model"
)

var (
	day   = time.Date(2016, 7, 5, 0, 0, 0, 0, time.UTC)
	alpha = &model.Commodity{Space: "XETRA", Ticker: "ALP", Name: "ALPHA AG", Code: "DE000ABC1234"}
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func lines(buf *bytes.Buffer) []string {
	return strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
}

func TestWriteRows_Cash(t *testing.T) {
	w, err := NewWriter(English, "EUR")
	require.NoError(t, err)

	rows := []model.Row{
		{Date: day, Type: model.TypeDeposit, Amount: dec("2500"), Currency: "EUR", Note: "Salary"},
		{
			Date:     day,
			Type:     model.TypeDividend,
			Amount:   dec("29.45"),
			Currency: "EUR",
			Tax:      decimal.NewNullDecimal(dec("10.55")),
			Quantity: decimal.NewNullDecimal(dec("20")),
			Security: alpha,
			Note:     "DIVIDENDE; ALPHA",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, w.WriteRows(&buf, English.Cash, rows))

	assert.Equal(t, []string{
		"Date;Type;Amount;Currency;Tax;Quantity;Identifying-code;Ticker;SecurityName;Note",
		"2016-07-05;Deposit;2500.00;EUR;;;;;;Salary",
		`2016-07-05;Dividend;29.45;EUR;10.55;20;DE000ABC1234;ALP;ALPHA AG;"DIVIDENDE; ALPHA"`,
	}, lines(&buf))
}

func TestWriteRows_InvestmentGerman(t *testing.T) {
	w, err := NewWriter(German, "EUR")
	require.NoError(t, err)

	rows := []model.Row{{
		Date:     day,
		Type:     model.TypeBuy,
		Amount:   dec("1009.9"),
		Currency: "EUR",
		Fee:      decimal.NewNullDecimal(dec("9.9")),
		Tax:      decimal.NewNullDecimal(decimal.Zero),
		Quantity: decimal.NewNullDecimal(dec("2.500")),
		Security: alpha,
		Note:     "Buy",
	}}

	var buf bytes.Buffer
	require.NoError(t, w.WriteRows(&buf, German.Investment, rows))

	got := lines(&buf)
	require.Len(t, got, 2)
	assert.Equal(t, "Datum;Typ;Wert;Buchungswährung;Bruttobetrag;Währung Bruttobetrag;Wechselkurs;"+
		"Gebühren;Steuern;Stück;ISIN;WKN;Ticker-Symbol;Wertpapiername;Notiz", got[0])
	assert.Equal(t, "2016-07-05;Kauf;1009.90;EUR;;;;9.90;0.00;2.5;DE000ABC1234;;ALP;ALPHA AG;Buy", got[1])
}

func TestWriteRows_CurrencyFraction(t *testing.T) {
	w, err := NewWriter(English, "JPY")
	require.NoError(t, err)

	var buf bytes.Buffer
	rows := []model.Row{{Date: day, Type: model.TypeFee, Amount: dec("120.4"), Currency: "JPY"}}
	require.NoError(t, w.WriteRows(&buf, []Column{ColAmount}, rows))
	assert.Equal(t, []string{"Amount", "120"}, lines(&buf))
}

func TestWriteRows_HeaderOnly(t *testing.T) {
	w, err := NewWriter(English, "EUR")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, w.WriteRows(&buf, English.Cash, nil))
	assert.Len(t, lines(&buf), 1)
}

func TestWriteSecurities(t *testing.T) {
	w, err := NewWriter(German, "EUR")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, w.WriteSecurities(&buf, []*model.Commodity{alpha}))
	assert.Equal(t, []string{
		"ISIN;WKN;Ticker-Symbol;Wertpapiername;Währung;Notiz",
		"DE000ABC1234;;ALP;ALPHA AG;EUR;XETRA",
	}, lines(&buf))
}

func TestWriteSecurities_English(t *testing.T) {
	w, err := NewWriter(English, "EUR")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, w.WriteSecurities(&buf, []*model.Commodity{alpha}))
	assert.Equal(t, []string{
		"Identifying-code;Ticker;SecurityName;Currency;Note",
		"DE000ABC1234;ALP;ALPHA AG;EUR;XETRA",
	}, lines(&buf))
}

func TestSecuritiesCurrencyHeader(t *testing.T) {
	assert.Equal(t, "Währung", German.Headers[ColSecurityCurrency])
	assert.Equal(t, "Buchungswährung", German.Headers[ColCurrency])
	assert.NotContains(t, German.Securities, ColCurrency)
	assert.NotContains(t, English.Securities, ColCurrency)
}

func TestNewWriter_UnknownCurrency(t *testing.T) {
	_, err := NewWriter(English, "XXY")
	assert.Error(t, err)
}
