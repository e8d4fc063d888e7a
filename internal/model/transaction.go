package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionID is the ledger-assigned GUID of a transaction. It is the
// identity key used for deduplication.
type TransactionID = uuid.UUID

// Transaction is a balanced set of splits sharing a date and description.
type Transaction struct {
	ID          TransactionID
	PostDate    time.Time // calendar date, midnight UTC
	Description string
	Splits      []*Split
}

// Split is one posting of a transaction against a single account.
// Positive values are inflows to the account.
type Split struct {
	ID          uuid.UUID
	Account     *Account
	Transaction *Transaction
	Value       decimal.Decimal // reporting currency
	Quantity    decimal.Decimal // account commodity units (shares for securities)
}
