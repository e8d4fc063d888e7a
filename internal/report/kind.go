// Package report writes classified rows as semicolon-delimited CSV files
// in the Portfolio Performance import layout.
package report

import (
	"fmt"
	"strings"
)

// Kind names one report file.
type Kind string

const (
	KindBank        Kind = "bank"
	KindMoneyMarket Kind = "money-market"
	KindInvestment  Kind = "investment"
	KindSecurities  Kind = "securities"
)

// Kinds lists every report in the order they are written.
var Kinds = []Kind{KindBank, KindMoneyMarket, KindInvestment, KindSecurities}

// ParseKinds parses a comma-separated report list. An empty list selects
// every report.
func ParseKinds(s string) ([]Kind, error) {
	if strings.TrimSpace(s) == "" {
		return Kinds, nil
	}
	seen := make(map[Kind]bool)
	var out []Kind
	for _, part := range strings.Split(s, ",") {
		k := Kind(strings.TrimSpace(part))
		if !k.valid() {
			return nil, fmt.Errorf("unknown report %q", part)
		}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out, nil
}

func (k Kind) valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}
