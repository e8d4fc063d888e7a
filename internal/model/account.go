package model

import "github.com/google/uuid"

// AccountID is the ledger-assigned GUID of an account.
type AccountID = uuid.UUID

// Account is a node of the ledger's account tree. Accounts are read-only
// once the book is loaded.
type Account struct {
	ID        AccountID
	Name      string
	FullName  string // "Parent:Child", root omitted
	Type      string // ledger account type, e.g. BANK, STOCK, INCOME
	Commodity *Commodity
	Parent    *Account
	Children  []*Account
	Splits    []*Split // in ledger order
}

// Securities returns the commodities held by the account's children, in
// child order, skipping children without a security.
func (a *Account) Securities() []*Commodity {
	var out []*Commodity
	seen := make(map[*Commodity]bool)
	for _, c := range a.Children {
		if c.Commodity == nil || !c.Commodity.IsSecurity() || seen[c.Commodity] {
			continue
		}
		seen[c.Commodity] = true
		out = append(out, c.Commodity)
	}
	return out
}
