// Package ledgertest builds small in-memory books for tests.
package ledgertest

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gncexport/gncexport/internal/model"
)

var namespace = uuid.MustParse("6f1d3c0e-8f63-4a52-9d0e-3f3c1d1c2a7b")

// EUR is the reporting currency of every built book.
var EUR = &model.Commodity{Space: model.SpaceCurrency, Ticker: "EUR", Name: "Euro"}

// Builder assembles a model.Book. Accounts are created on first use,
// including their parents.
type Builder struct {
	book   *model.Book
	byName map[string]*model.Account
	txSeq  int
}

// New returns an empty builder.
func New() *Builder {
	return &Builder{
		book:   &model.Book{Commodities: []*model.Commodity{EUR}},
		byName: make(map[string]*model.Account),
	}
}

// Book returns the assembled book.
func (b *Builder) Book() *model.Book {
	return b.book
}

// Account returns the account with the given full name, creating it and
// any missing parents in EUR.
func (b *Builder) Account(fullName string) *model.Account {
	if a, ok := b.byName[fullName]; ok {
		return a
	}
	var parent *model.Account
	name := fullName
	if i := strings.LastIndex(fullName, ":"); i >= 0 {
		parent = b.Account(fullName[:i])
		name = fullName[i+1:]
	}
	a := &model.Account{
		ID:        uuid.NewSHA1(namespace, []byte("account:"+fullName)),
		Name:      name,
		FullName:  fullName,
		Type:      "ASSET",
		Commodity: EUR,
		Parent:    parent,
	}
	if parent != nil {
		parent.Children = append(parent.Children, a)
	}
	b.byName[fullName] = a
	b.book.Accounts = append(b.book.Accounts, a)
	return a
}

// Security creates a child of portfolio holding a new security.
func (b *Builder) Security(portfolio, name, code, ticker string) *model.Account {
	c := &model.Commodity{Space: "FUND", Ticker: ticker, Name: name, Code: code}
	b.book.Commodities = append(b.book.Commodities, c)
	a := b.Account(portfolio + ":" + name)
	a.Type = "STOCK"
	a.Commodity = c
	return a
}

// Leg is one split of a built transaction.
type Leg struct {
	Account  *model.Account
	Value    string
	Quantity string // defaults to Value
}

// V is a cash leg.
func V(a *model.Account, value string) Leg {
	return Leg{Account: a, Value: value}
}

// Q is a security leg with an explicit share quantity.
func Q(a *model.Account, value, quantity string) Leg {
	return Leg{Account: a, Value: value, Quantity: quantity}
}

// Tx posts a transaction dated "YYYY-MM-DD".
func (b *Builder) Tx(date, description string, legs ...Leg) *model.Transaction {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(fmt.Sprintf("ledgertest: bad date %q", date))
	}
	b.txSeq++
	tx := &model.Transaction{
		ID:          uuid.NewSHA1(namespace, []byte(fmt.Sprintf("tx:%d", b.txSeq))),
		PostDate:    d,
		Description: description,
	}
	for i, l := range legs {
		qty := l.Quantity
		if qty == "" {
			qty = l.Value
		}
		sp := &model.Split{
			ID:          uuid.NewSHA1(namespace, []byte(fmt.Sprintf("split:%d:%d", b.txSeq, i))),
			Account:     l.Account,
			Transaction: tx,
			Value:       decimal.RequireFromString(l.Value),
			Quantity:    decimal.RequireFromString(qty),
		}
		tx.Splits = append(tx.Splits, sp)
		l.Account.Splits = append(l.Account.Splits, sp)
	}
	b.book.Transactions = append(b.book.Transactions, tx)
	return tx
}
