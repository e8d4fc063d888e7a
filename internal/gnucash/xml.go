package gnucash

// Element names are matched by local name; GnuCash prefixes every element
// with a namespace (act:, trn:, split:, cmdty:).

type xmlDocument struct {
	Book xmlBook `xml:"book"`
}

type xmlBook struct {
	Commodities  []xmlCommodity   `xml:"commodity"`
	Accounts     []xmlAccount     `xml:"account"`
	Transactions []xmlTransaction `xml:"transaction"`
}

type xmlCommodity struct {
	Space string `xml:"space"`
	ID    string `xml:"id"`
	Name  string `xml:"name"`
	XCode string `xml:"xcode"`
}

type xmlCommodityRef struct {
	Space string `xml:"space"`
	ID    string `xml:"id"`
}

type xmlAccount struct {
	Name      string          `xml:"name"`
	ID        string          `xml:"id"`
	Type      string          `xml:"type"`
	Commodity xmlCommodityRef `xml:"commodity"`
	Parent    string          `xml:"parent"`
}

type xmlTransaction struct {
	ID          string     `xml:"id"`
	DatePosted  string     `xml:"date-posted>date"`
	Description string     `xml:"description"`
	Splits      []xmlSplit `xml:"splits>split"`
}

type xmlSplit struct {
	ID       string `xml:"id"`
	Value    string `xml:"value"`
	Quantity string `xml:"quantity"`
	Account  string `xml:"account"`
}
