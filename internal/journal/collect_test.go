package journal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gncexport/gncexport/internal/ledgertest"
	"github.com/gncexport/gncexport/internal/model"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func descriptions(txns []*model.Transaction) []string {
	out := make([]string, len(txns))
	for i, tx := range txns {
		out[i] = tx.Description
	}
	return out
}

func TestCollect_FiltersByCutoff(t *testing.T) {
	b := ledgertest.New()
	bank := b.Account("Assets:Bank")
	income := b.Account("Income:Salary")

	b.Tx("2016-06-30", "before", ledgertest.V(bank, "10"), ledgertest.V(income, "-10"))
	b.Tx("2016-07-01", "on", ledgertest.V(bank, "20"), ledgertest.V(income, "-20"))
	b.Tx("2016-07-02", "after", ledgertest.V(bank, "30"), ledgertest.V(income, "-30"))

	got := Collect(date(2016, 7, 1), bank)
	assert.Equal(t, []string{"on", "after"}, descriptions(got))
}

func TestCollect_IgnoresTimeOfDay(t *testing.T) {
	b := ledgertest.New()
	bank := b.Account("Assets:Bank")
	income := b.Account("Income:Salary")
	tx := b.Tx("2016-07-01", "late", ledgertest.V(bank, "10"), ledgertest.V(income, "-10"))
	tx.PostDate = time.Date(2016, 7, 1, 23, 59, 0, 0, time.UTC)

	got := Collect(time.Date(2016, 7, 1, 12, 0, 0, 0, time.UTC), bank)
	require.Len(t, got, 1)
}

func TestCollect_DeduplicatesAcrossAccounts(t *testing.T) {
	b := ledgertest.New()
	bank := b.Account("Assets:Bank")
	savings := b.Account("Assets:Savings")
	fee := b.Account("Expenses:Fees")

	b.Tx("2016-07-05", "transfer", ledgertest.V(bank, "-100"), ledgertest.V(savings, "100"))
	b.Tx("2016-07-03", "fee", ledgertest.V(bank, "-1"), ledgertest.V(fee, "1"))
	b.Tx("2016-07-04", "fee twice", ledgertest.V(bank, "-1"), ledgertest.V(bank, "-1"), ledgertest.V(fee, "2"))

	got := Collect(date(2016, 1, 1), bank, savings, fee)
	assert.Equal(t, []string{"fee", "fee twice", "transfer"}, descriptions(got))
}

func TestCollect_StableOnSameDate(t *testing.T) {
	b := ledgertest.New()
	a := b.Account("Assets:A")
	c := b.Account("Assets:C")
	eq := b.Account("Equity")

	b.Tx("2016-07-01", "c first", ledgertest.V(c, "1"), ledgertest.V(eq, "-1"))
	b.Tx("2016-07-01", "a second", ledgertest.V(a, "1"), ledgertest.V(eq, "-1"))

	// Encounter order follows the account argument order.
	got := Collect(date(2016, 1, 1), a, c)
	assert.Equal(t, []string{"a second", "c first"}, descriptions(got))
}

func TestCollect_NoAccounts(t *testing.T) {
	assert.Empty(t, Collect(date(2016, 1, 1)))
}

func TestSet(t *testing.T) {
	b := ledgertest.New()
	bank := b.Account("Assets:Bank")
	eq := b.Account("Equity")
	in := b.Tx("2016-07-01", "in", ledgertest.V(bank, "1"), ledgertest.V(eq, "-1"))
	out := b.Tx("2016-07-01", "out", ledgertest.V(eq, "1"), ledgertest.V(eq, "-1"))

	s := NewSet([]*model.Transaction{in})
	assert.True(t, s.Has(in))
	assert.False(t, s.Has(out))
}
