package model

// Namespaces that do not denote tradable securities.
const (
	SpaceCurrency = "ISO4217"
	SpaceTemplate = "template"
)

// Commodity is a currency or a security.
type Commodity struct {
	Space  string // namespace, e.g. ISO4217, FUND, XETRA
	Ticker string // short mnemonic
	Name   string // display name
	Code   string // identifying code (ISIN)
}

// IsSecurity reports whether c belongs to the security universe.
func (c *Commodity) IsSecurity() bool {
	return c.Space != SpaceCurrency && c.Space != SpaceTemplate
}
