package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// RowType labels a report row.
type RowType string

const (
	TypeBuy         RowType = "Buy"
	TypeSell        RowType = "Sell"
	TypeDeliveryIn  RowType = "Delivery in"
	TypeDeliveryOut RowType = "Delivery out"
	TypeFee         RowType = "Fee"
	TypeFeeRefund   RowType = "Fee refund"
	TypeTax         RowType = "Tax"
	TypeTaxRefund   RowType = "Tax refund"
	TypeInterest    RowType = "Interest"
	TypeDeposit     RowType = "Deposit"
	TypeWithdrawal  RowType = "Withdrawal"
	TypeTransferOut RowType = "Transfer out"
	TypeTransferIn  RowType = "Transfer in"
	TypeDividend    RowType = "Dividend"
)

// Row is one classified report record. Optional columns are left invalid
// when they do not apply.
type Row struct {
	Date     time.Time
	Type     RowType
	Amount   decimal.Decimal
	Currency string
	Fee      decimal.NullDecimal
	Tax      decimal.NullDecimal
	Quantity decimal.NullDecimal
	Security *Commodity // nil when no security applies or none was identified
	Note     string
}
