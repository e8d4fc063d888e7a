package journal

import (
	"github.com/shopspring/decimal"

	"github.com/gncexport/gncexport/internal/accounts"
	"github.com/gncexport/gncexport/internal/model"
)

// Membership tests whether an account is bound to a role.
type Membership interface {
	Contains(role accounts.Role, acct *model.Account) bool
}

// Totals is the summed split value per role. Missing roles are zero.
type Totals map[accounts.Role]decimal.Decimal

// Get returns the total for role.
func (t Totals) Get(role accounts.Role) decimal.Decimal {
	return t[role]
}

// Sum adds the totals of roles.
func (t Totals) Sum(roles ...accounts.Role) decimal.Decimal {
	sum := decimal.Zero
	for _, r := range roles {
		sum = sum.Add(t[r])
	}
	return sum
}

// Allocate buckets the split values of tx into roles. A split counts toward
// every listed role its account is bound to.
func Allocate(tx *model.Transaction, m Membership, roles ...accounts.Role) Totals {
	totals := make(Totals, len(roles))
	for _, r := range roles {
		totals[r] = decimal.Zero
	}
	for _, sp := range tx.Splits {
		for _, r := range roles {
			if m.Contains(r, sp.Account) {
				totals[r] = totals[r].Add(sp.Value)
			}
		}
	}
	return totals
}
