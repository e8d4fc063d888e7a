// Package classify turns ledger transactions into categorized report rows.
package classify

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/gncexport/gncexport/internal/accounts"
	"github.com/gncexport/gncexport/internal/dividend"
	"github.com/gncexport/gncexport/internal/journal"
	"github.com/gncexport/gncexport/internal/model"
)

// splitRoles are summed into the deposit/withdrawal delta.
var splitRoles = []accounts.Role{
	accounts.RoleCommission,
	accounts.RoleTax,
	accounts.RoleInterest,
	accounts.RoleTransaction,
	accounts.RoleMoneyMarket,
}

// Classifier runs the bank, money-market and investment passes over a
// resolved role registry.
type Classifier struct {
	reg        *accounts.Registry
	securities []*model.Commodity
	resolver   *dividend.Resolver
	cutoff     time.Time
	currency   string
	log        zerolog.Logger
}

// Options configures a Classifier.
type Options struct {
	Cutoff   time.Time
	Currency string
	Matcher  dividend.Matcher // nil uses the default ratio matcher
	Logger   *zerolog.Logger  // nil disables logging
}

// New returns a Classifier. Dividend descriptions are resolved against the
// securities held below the investment account. The investment and
// dividend roles must each be bound to a single account.
func New(reg *accounts.Registry, opts Options) (*Classifier, error) {
	for _, role := range accounts.SingleAccountRoles {
		if _, err := reg.Account(role); err != nil {
			return nil, fmt.Errorf("classifier: %w", err)
		}
	}
	investment, _ := reg.Account(accounts.RoleInvestment)
	securities := investment.Securities()

	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}
	return &Classifier{
		reg:        reg,
		securities: securities,
		resolver:   dividend.NewResolver(securities, opts.Matcher),
		cutoff:     journal.Day(opts.Cutoff),
		currency:   opts.Currency,
		log:        log,
	}, nil
}

// Securities returns the commodities held below the investment role, in
// account order.
func (c *Classifier) Securities() []*model.Commodity {
	return c.securities
}

// Investment classifies share movements on every security account below
// the investment role.
func (c *Classifier) Investment() []model.Row {
	var rows []model.Row
	for _, stock := range c.reg.Children(accounts.RoleInvestment) {
		for _, tx := range journal.Collect(c.cutoff, stock) {
			if row, ok := InvestmentRow(tx, stock, c.reg, c.currency); ok {
				rows = append(rows, row)
			}
		}
	}
	return rows
}

// MoneyMarket classifies money-market transactions that do not also touch
// a settlement account; those are reported as transfers by Bank.
func (c *Classifier) MoneyMarket() []model.Row {
	bank := journal.NewSet(journal.Collect(c.cutoff, c.reg.Accounts(accounts.RoleTransaction)...))

	var rows []model.Row
	for _, tx := range journal.Collect(c.cutoff, c.reg.Accounts(accounts.RoleMoneyMarket)...) {
		if bank.Has(tx) {
			continue
		}
		rows = append(rows, SplitRows(tx, c.reg, c.currency)...)
	}
	return rows
}

// Bank classifies settlement account transactions. Security trades are
// skipped since the investment report carries them.
func (c *Classifier) Bank() []model.Row {
	invest := journal.NewSet(journal.Collect(c.cutoff, c.reg.Children(accounts.RoleInvestment)...))
	divs := journal.NewSet(journal.Collect(c.cutoff, c.reg.Accounts(accounts.RoleDividend)...))

	var rows []model.Row
	for _, tx := range journal.Collect(c.cutoff, c.reg.Accounts(accounts.RoleTransaction)...) {
		switch {
		case invest.Has(tx):
			continue
		case divs.Has(tx):
			rows = append(rows, c.dividendRow(tx))
		default:
			if row, ok := TransferRow(tx, c.reg, c.currency); ok {
				rows = append(rows, row)
			}
			rows = append(rows, SplitRows(tx, c.reg, c.currency)...)
		}
	}
	return rows
}

// InvestmentRow classifies tx from the point of view of the security
// account stock. Transactions without a net share movement yield no row.
func InvestmentRow(tx *model.Transaction, stock *model.Account, m journal.Membership, currency string) (model.Row, bool) {
	quantity, value := decimal.Zero, decimal.Zero
	for _, sp := range tx.Splits {
		if sp.Account == stock {
			quantity = quantity.Add(sp.Quantity)
			value = value.Add(sp.Value)
		}
	}
	if quantity.IsZero() {
		return model.Row{}, false
	}

	totals := journal.Allocate(tx, m, accounts.RoleCommission, accounts.RoleTax, accounts.RoleTransaction)
	settlement := totals.Get(accounts.RoleTransaction)

	row := model.Row{
		Date:     tx.PostDate,
		Currency: currency,
		Fee:      decimal.NewNullDecimal(totals.Get(accounts.RoleCommission)),
		Tax:      decimal.NewNullDecimal(totals.Get(accounts.RoleTax)),
		Quantity: decimal.NewNullDecimal(quantity.Abs()),
		Security: stock.Commodity,
		Note:     tx.Description,
	}

	// Cash moved through the settlement account, or the shares came free.
	if !settlement.IsZero() || value.IsZero() {
		row.Type = model.TypeBuy
		if quantity.IsNegative() {
			row.Type = model.TypeSell
		}
		row.Amount = settlement.Abs()
		return row, true
	}

	row.Type = model.TypeDeliveryIn
	if quantity.IsNegative() {
		row.Type = model.TypeDeliveryOut
	}
	row.Amount = value
	return row, true
}

// TransferRow reports money moved between a settlement and a money-market
// account. The amount is the negated money-market total.
func TransferRow(tx *model.Transaction, m journal.Membership, currency string) (model.Row, bool) {
	mm := journal.Allocate(tx, m, accounts.RoleMoneyMarket).Get(accounts.RoleMoneyMarket)
	if mm.IsZero() {
		return model.Row{}, false
	}
	row := model.Row{
		Date:     tx.PostDate,
		Type:     model.TypeTransferIn,
		Amount:   mm.Neg(),
		Currency: currency,
		Note:     tx.Description,
	}
	if mm.IsPositive() {
		row.Type = model.TypeTransferOut
	}
	return row, true
}

// SplitRows applies the fee, tax, interest and deposit rules to tx. A
// transaction may produce none or several rows.
func SplitRows(tx *model.Transaction, m journal.Membership, currency string) []model.Row {
	totals := journal.Allocate(tx, m, splitRoles...)
	commission := totals.Get(accounts.RoleCommission)
	tax := totals.Get(accounts.RoleTax)
	interest := totals.Get(accounts.RoleInterest)
	delta := totals.Sum(splitRoles...)

	newRow := func(t model.RowType, amount decimal.Decimal) model.Row {
		return model.Row{
			Date:     tx.PostDate,
			Type:     t,
			Amount:   amount,
			Currency: currency,
			Note:     tx.Description,
		}
	}

	var rows []model.Row
	if !commission.IsZero() {
		t := model.TypeFee
		if commission.IsNegative() {
			t = model.TypeFeeRefund
		}
		rows = append(rows, newRow(t, commission.Abs()))
	}
	if !tax.IsZero() {
		t := model.TypeTax
		if tax.IsNegative() {
			t = model.TypeTaxRefund
		}
		rows = append(rows, newRow(t, tax.Abs()))
	}
	// Interest income books as a negative total; charged interest is not reported here.
	if interest.IsNegative() {
		rows = append(rows, newRow(model.TypeInterest, interest.Neg()))
	}
	if !delta.IsZero() {
		t := model.TypeDeposit
		if delta.IsNegative() {
			t = model.TypeWithdrawal
		}
		rows = append(rows, newRow(t, delta.Abs()))
	}
	return rows
}

func (c *Classifier) dividendRow(tx *model.Transaction) model.Row {
	row := DividendRow(tx, c.reg, c.resolver, c.currency)
	if row.Security == nil {
		c.log.Warn().
			Str("date", tx.PostDate.Format("2006-01-02")).
			Str("description", tx.Description).
			Msg("dividend security not identified")
	}
	return row
}

// DividendRow reports a dividend payment net of tax. The row is emitted
// even when the security cannot be identified.
func DividendRow(tx *model.Transaction, m journal.Membership, r *dividend.Resolver, currency string) model.Row {
	totals := journal.Allocate(tx, m, accounts.RoleDividend, accounts.RoleTax)
	tax := totals.Get(accounts.RoleTax)

	row := model.Row{
		Date:     tx.PostDate,
		Type:     model.TypeDividend,
		Amount:   totals.Get(accounts.RoleDividend).Abs().Sub(tax),
		Currency: currency,
		Note:     tx.Description,
	}
	if !tax.IsZero() {
		row.Tax = decimal.NewNullDecimal(tax)
	}
	if match, ok := r.Resolve(tx.Description); ok {
		row.Security = match.Security
		row.Quantity = match.Quantity
	}
	return row
}
