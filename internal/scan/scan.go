// Package scan finds currency amounts and links in free-form message text.
package scan

import (
	"regexp"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// Rs.1,500.00 / Rs 500 / INR 8,750.00 / ₹45,000
	leadingAmountRe = regexp.MustCompile(`(?i)(?:\brs\.?|\binr|₹)\s*([0-9][0-9,]*(?:\.[0-9]+)?)`)

	// 1,200 INR / 500 rupees
	trailingAmountRe = regexp.MustCompile(`(?i)\b([0-9][0-9,]*(?:\.[0-9]+)?)\s*(?:rs|inr|rupees)\b`)

	// https://x.y/z / www.x.y / bit.ly/abc / amazon.in
	linkRe = regexp.MustCompile(`(?i)(?:\bhttps?://[^\s]+|\bwww\.[^\s]+|\b[a-z0-9][a-z0-9-]*(?:\.[a-z0-9-]+)*\.(?:com|in|net|org|co|io|ly|gl|gd|me|info|biz|xyz|link|app|site|online|top|click)\b(?:/[^\s]*)?)`)
)

// Amount is a currency amount found in text.
type Amount struct {
	Value decimal.Decimal
	Raw   string // full match, including the currency marker
	Start int    // byte offset of Raw in the text
	End   int
}

// Amounts returns every currency amount in text ordered by position.
// Overlapping matches keep the one that starts first.
func Amounts(text string) []Amount {
	var found []Amount
	for _, re := range []*regexp.Regexp{leadingAmountRe, trailingAmountRe} {
		for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
			value, ok := ParseAmount(text[loc[2]:loc[3]])
			if !ok {
				continue
			}
			found = append(found, Amount{Value: value, Raw: text[loc[0]:loc[1]], Start: loc[0], End: loc[1]})
		}
	}
	sort.SliceStable(found, func(i, j int) bool { return found[i].Start < found[j].Start })

	var out []Amount
	for _, a := range found {
		if len(out) > 0 && a.Start < out[len(out)-1].End {
			continue
		}
		out = append(out, a)
	}
	return out
}

// HasAmount reports whether text contains a currency amount.
func HasAmount(text string) bool {
	return leadingAmountRe.MatchString(text) || trailingAmountRe.MatchString(text)
}

// ParseAmount parses "12,345.67" style numbers. Commas are digit-group
// separators in any position (Indian lakh grouping included).
func ParseAmount(s string) (decimal.Decimal, bool) {
	s = strings.TrimRight(strings.ReplaceAll(strings.TrimSpace(s), ",", ""), ".")
	if s == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// Link is a URL or bare domain found in text.
type Link struct {
	Raw    string
	Domain string // lower-case host without scheme or "www."
}

// Links returns every link in text ordered by position.
func Links(text string) []Link {
	var links []Link
	for _, raw := range linkRe.FindAllString(text, -1) {
		raw = strings.TrimRight(raw, ".,;:)!?'\"")
		if d := Domain(raw); d != "" {
			links = append(links, Link{Raw: raw, Domain: d})
		}
	}
	return links
}

// HasLink reports whether text contains a URL or bare domain.
func HasLink(text string) bool {
	return linkRe.MatchString(text)
}

// Domain extracts the host from a URL-like string.
func Domain(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
	}
	s = strings.TrimPrefix(s, "www.")
	if i := strings.IndexAny(s, "/?#"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimRight(s, ".")
}
