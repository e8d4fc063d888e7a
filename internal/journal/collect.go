package journal

import (
	"slices"
	"time"

	"github.com/gncexport/gncexport/internal/model"
)

// Day truncates t to its calendar date at midnight UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Collect returns the transactions touching any of accts posted on or after
// cutoff. Each transaction appears once. The result is ordered by posting
// date; transactions on the same date keep the order in which they were
// first encountered.
func Collect(cutoff time.Time, accts ...*model.Account) []*model.Transaction {
	cutoff = Day(cutoff)
	seen := make(map[model.TransactionID]bool)
	var txns []*model.Transaction
	for _, a := range accts {
		for _, sp := range a.Splits {
			tx := sp.Transaction
			if tx == nil || seen[tx.ID] {
				continue
			}
			if Day(tx.PostDate).Before(cutoff) {
				continue
			}
			seen[tx.ID] = true
			txns = append(txns, tx)
		}
	}
	slices.SortStableFunc(txns, func(a, b *model.Transaction) int {
		return Day(a.PostDate).Compare(Day(b.PostDate))
	})
	return txns
}

// Set is a membership set of transactions keyed by identity.
type Set map[model.TransactionID]struct{}

// NewSet builds a Set from txns.
func NewSet(txns []*model.Transaction) Set {
	s := make(Set, len(txns))
	for _, tx := range txns {
		s[tx.ID] = struct{}{}
	}
	return s
}

// Has reports whether tx is in the set.
func (s Set) Has(tx *model.Transaction) bool {
	_, ok := s[tx.ID]
	return ok
}
