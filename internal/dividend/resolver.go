// Package dividend identifies the security a dividend booking refers to
// from its free-text description.
package dividend

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/gncexport/gncexport/internal/model"
)

var (
	// "WKN 840400 / DE0008404005 ... MENGE 50"
	byCode = regexp.MustCompile(`WKN [A-Z0-9]{6} / (?P<code>[A-Z]{2}[A-Z0-9]{9}[0-9]).*?MENGE (?P<quantity>[0-9]*)`)

	// "STK/NOM: 50 ALLIANZ SE VINK.NAMENS-AKTIEN"
	byName = regexp.MustCompile(`STK/NOM: (?P<quantity>[0-9]*) (?P<name>.*)`)
)

// noise is stripped from a name fragment before matching.
var noise = []string{
	"INHABER",
	"NAMENS",
	"VORZUGS",
	"STAMM",
	"AKTIEN",
	"SHARES",
	"REGISTERED",
}

// Match is a resolved dividend security. Quantity is invalid when the
// description carries no share count.
type Match struct {
	Security *model.Commodity
	Quantity decimal.NullDecimal
}

// Resolver finds securities in dividend descriptions.
type Resolver struct {
	securities []*model.Commodity
	matcher    Matcher
}

// NewResolver returns a Resolver over the known securities. A nil matcher
// uses a RatioMatcher with DefaultCutoff.
func NewResolver(securities []*model.Commodity, matcher Matcher) *Resolver {
	if matcher == nil {
		matcher = NewRatioMatcher(DefaultCutoff)
	}
	return &Resolver{securities: securities, matcher: matcher}
}

// Resolve returns the security named by description. The identifying code
// pattern is tried first; the name pattern is only consulted when it yields
// no known security.
func (r *Resolver) Resolve(description string) (Match, bool) {
	if m, ok := r.resolveCode(description); ok {
		return m, true
	}
	return r.resolveName(description)
}

func (r *Resolver) resolveCode(description string) (Match, bool) {
	sub := byCode.FindStringSubmatch(description)
	if sub == nil {
		return Match{}, false
	}
	code := sub[byCode.SubexpIndex("code")]
	for _, s := range r.securities {
		if s.Code == code {
			return Match{Security: s, Quantity: quantity(sub[byCode.SubexpIndex("quantity")])}, true
		}
	}
	return Match{}, false
}

func (r *Resolver) resolveName(description string) (Match, bool) {
	sub := byName.FindStringSubmatch(description)
	if sub == nil {
		return Match{}, false
	}
	name := sub[byName.SubexpIndex("name")]
	for _, n := range noise {
		name = strings.ReplaceAll(name, n, "")
	}
	name = strings.Join(strings.Fields(name), " ")

	names := make([]string, len(r.securities))
	for i, s := range r.securities {
		names[i] = s.Name
	}
	best, ok := r.matcher.BestMatch(name, names)
	if !ok {
		return Match{}, false
	}
	for _, s := range r.securities {
		if s.Name == best {
			return Match{Security: s, Quantity: quantity(sub[byName.SubexpIndex("quantity")])}, true
		}
	}
	return Match{}, false
}

func quantity(s string) decimal.NullDecimal {
	q, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(q)
}
