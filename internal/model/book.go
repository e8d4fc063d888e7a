package model

// Book is an in-memory ledger.
type Book struct {
	Accounts     []*Account // in ledger order
	Commodities  []*Commodity
	Transactions []*Transaction
}

// AccountByName returns the account with the given full name.
func (b *Book) AccountByName(fullName string) (*Account, bool) {
	for _, a := range b.Accounts {
		if a.FullName == fullName {
			return a, true
		}
	}
	return nil, false
}

// Securities returns all commodities outside the currency and template
// namespaces.
func (b *Book) Securities() []*Commodity {
	var out []*Commodity
	for _, c := range b.Commodities {
		if c.IsSecurity() {
			out = append(out, c)
		}
	}
	return out
}
