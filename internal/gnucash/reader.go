// Package gnucash reads GnuCash XML books, plain or gzip-compressed.
package gnucash

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gncexport/gncexport/internal/model"
)

const (
	dateFormat     = "2006-01-02 15:04:05 -0700"
	rootType       = "ROOT"
	nameSep        = ":"
	gzipMagic      = "\x1f\x8b"
	maxParentDepth = 64
)

// Open reads the book at path.
func Open(path string) (*model.Book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	book, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading ledger %s: %w", path, err)
	}
	return book, nil
}

// Read decodes a GnuCash XML book from r.
func Read(r io.Reader) (*model.Book, error) {
	br := bufio.NewReader(r)
	if magic, err := br.Peek(2); err == nil && bytes.Equal(magic, []byte(gzipMagic)) {
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("opening gzip stream: %w", err)
		}
		defer zr.Close()
		return decode(zr)
	}
	return decode(br)
}

func decode(r io.Reader) (*model.Book, error) {
	var doc xmlDocument
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding XML: %w", err)
	}
	return build(doc.Book)
}

func build(xb xmlBook) (*model.Book, error) {
	book := &model.Book{}

	type cmdtyKey struct{ space, id string }
	commodities := make(map[cmdtyKey]*model.Commodity)
	for _, xc := range xb.Commodities {
		c := &model.Commodity{
			Space:  strings.TrimSpace(xc.Space),
			Ticker: strings.TrimSpace(xc.ID),
			Name:   strings.TrimSpace(xc.Name),
			Code:   strings.TrimSpace(xc.XCode),
		}
		commodities[cmdtyKey{c.Space, c.Ticker}] = c
		book.Commodities = append(book.Commodities, c)
	}
	commodity := func(ref xmlCommodityRef) *model.Commodity {
		key := cmdtyKey{strings.TrimSpace(ref.Space), strings.TrimSpace(ref.ID)}
		if key.id == "" {
			return nil
		}
		if c, ok := commodities[key]; ok {
			return c
		}
		c := &model.Commodity{Space: key.space, Ticker: key.id, Name: key.id}
		commodities[key] = c
		book.Commodities = append(book.Commodities, c)
		return c
	}

	byID := make(map[model.AccountID]*model.Account, len(xb.Accounts))
	parents := make(map[model.AccountID]model.AccountID)
	for _, xa := range xb.Accounts {
		id, err := parseGUID(xa.ID)
		if err != nil {
			return nil, fmt.Errorf("account %q: %w", xa.Name, err)
		}
		a := &model.Account{
			ID:        id,
			Name:      xa.Name,
			Type:      strings.TrimSpace(xa.Type),
			Commodity: commodity(xa.Commodity),
		}
		if strings.TrimSpace(xa.Parent) != "" {
			pid, err := parseGUID(xa.Parent)
			if err != nil {
				return nil, fmt.Errorf("account %q parent: %w", xa.Name, err)
			}
			parents[id] = pid
		}
		byID[id] = a
		book.Accounts = append(book.Accounts, a)
	}

	// Link in ledger order so children keep file order.
	for _, a := range book.Accounts {
		pid, ok := parents[a.ID]
		if !ok {
			continue
		}
		p, ok := byID[pid]
		if !ok {
			return nil, fmt.Errorf("account %q: unknown parent %s", a.Name, pid)
		}
		a.Parent = p
		p.Children = append(p.Children, a)
	}
	for _, a := range book.Accounts {
		name, err := fullName(a)
		if err != nil {
			return nil, err
		}
		a.FullName = name
	}

	for _, xt := range xb.Transactions {
		tx, err := transaction(xt, byID)
		if err != nil {
			return nil, err
		}
		book.Transactions = append(book.Transactions, tx)
	}
	return book, nil
}

func transaction(xt xmlTransaction, accounts map[model.AccountID]*model.Account) (*model.Transaction, error) {
	id, err := parseGUID(xt.ID)
	if err != nil {
		return nil, fmt.Errorf("transaction %q: %w", xt.Description, err)
	}
	posted, err := parseDate(xt.DatePosted)
	if err != nil {
		return nil, fmt.Errorf("transaction %s: %w", id, err)
	}
	tx := &model.Transaction{
		ID:          id,
		PostDate:    posted,
		Description: xt.Description,
	}
	for _, xs := range xt.Splits {
		sp, err := split(xs, tx, accounts)
		if err != nil {
			return nil, fmt.Errorf("transaction %s: %w", id, err)
		}
		tx.Splits = append(tx.Splits, sp)
		sp.Account.Splits = append(sp.Account.Splits, sp)
	}
	return tx, nil
}

func split(xs xmlSplit, tx *model.Transaction, accounts map[model.AccountID]*model.Account) (*model.Split, error) {
	id, err := parseGUID(xs.ID)
	if err != nil {
		return nil, fmt.Errorf("split: %w", err)
	}
	aid, err := parseGUID(xs.Account)
	if err != nil {
		return nil, fmt.Errorf("split %s account: %w", id, err)
	}
	acct, ok := accounts[aid]
	if !ok {
		return nil, fmt.Errorf("split %s: unknown account %s", id, aid)
	}
	value, err := parseRational(xs.Value)
	if err != nil {
		return nil, fmt.Errorf("split %s value: %w", id, err)
	}
	quantity, err := parseRational(xs.Quantity)
	if err != nil {
		return nil, fmt.Errorf("split %s quantity: %w", id, err)
	}
	return &model.Split{
		ID:          id,
		Account:     acct,
		Transaction: tx,
		Value:       value,
		Quantity:    quantity,
	}, nil
}

// fullName joins the names from below the root account down to a.
func fullName(a *model.Account) (string, error) {
	var parts []string
	for cur, depth := a, 0; cur != nil && cur.Type != rootType; cur, depth = cur.Parent, depth+1 {
		if depth > maxParentDepth {
			return "", fmt.Errorf("account %q: parent cycle", a.Name)
		}
		parts = append(parts, cur.Name)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, nameSep), nil
}

func parseGUID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil, fmt.Errorf("parsing guid %q: %w", s, err)
	}
	return id, nil
}

// parseDate keeps the calendar date as written, dropping time of day and
// offset.
func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateFormat, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}

// parseRational parses GnuCash "num/denom" amounts.
func parseRational(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	numStr, denStr, ok := strings.Cut(s, "/")
	if !ok {
		denStr = "1"
	}
	num, err := strconv.ParseInt(numStr, 10, 64)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	den, err := strconv.ParseInt(denStr, 10, 64)
	if err != nil || den == 0 {
		return decimal.Zero, fmt.Errorf("parsing amount %q: bad denominator", s)
	}
	return decimal.NewFromInt(num).Div(decimal.NewFromInt(den)), nil
}
