package extract

import (
	"regexp"
	"strings"

	"github.com/cleared-dev/smsledger/internal/model"
)

// merchantStop ends a merchant candidate.
const merchantStop = `(?:\s+(?:on|for|via|using|dated|ref|with|avl|txn|info|is|has|was)\b|[.,;:!]\s|[.,;:!]?$|\s*\(|\s*\n|\s+-\s)`

var merchantRes = []*regexp.Regexp{
	// at MCDONALD'S on 03-Apr-25
	regexp.MustCompile(`(?i)\bat\s+([a-z0-9][a-z0-9&'’.\-* ]{1,40}?)` + merchantStop),
	// to Ram Kumar via PhonePe
	regexp.MustCompile(`(?i)\bto\s+([a-z0-9][a-z0-9&'’.\-* ]{1,40}?)` + merchantStop),
	// from ACME PAYROLL
	regexp.MustCompile(`(?i)\bfrom\s+([a-z0-9][a-z0-9&'’.\-* ]{1,40}?)` + merchantStop),
	// UPI/AMAZON PAY/ or UPI-ZOMATO-
	regexp.MustCompile(`(?i)\bupi[/\-]([a-z][a-z0-9&' ]{1,40}?)[/\-@]`),
}

var (
	// To Ram Kumar (on its own line)
	toLineRe = regexp.MustCompile(`(?im)^\s*to\s*:?\s+(.+?)\s*$`)

	phoneLikeRe   = regexp.MustCompile(`^\+?[0-9][0-9\s\-]{6,}$`)
	longDigitsRe  = regexp.MustCompile(`[0-9]{6,}`)
	accountLikeRe = regexp.MustCompile(`(?i)^(?:a/c|ac|acct|account|card|x+[0-9]+|[*]+[0-9]+)\b`)
)

// merchantStopWords cannot start a merchant name.
var merchantStopWords = map[string]bool{
	"a": true, "an": true, "the": true, "your": true, "you": true, "this": true, "that": true,
	"our": true, "us": true, "my": true, "report": true, "avoid": true, "be": true, "claim": true,
	"update": true, "verify": true, "get": true, "call": true, "bank": true, "mobile": true,
	"number": true, "beneficiary": true, "upi": true, "vpa": true, "rs": true, "inr": true,
	"block": true, "know": true, "continue": true, "cancel": true, "check": true, "login": true,
	"avail": true, "earn": true, "pay": true, "reach": true, "prevent": true,
	"view": true, "see": true, "receive": true, "read": true, "unsubscribe": true, "stop": true,
}

// MerchantResult is the outcome of merchant extraction.
type MerchantResult struct {
	Name       string
	Category   string // from the merchant table, empty when not a dictionary hit
	Dictionary bool
}

// Merchant finds the merchant named in text. Known-merchant hits win over raw
// regex candidates, and every returned name occurs in text.
func (e *Extractor) Merchant(text string) MerchantResult {
	candidates := merchantCandidates(text)

	for _, c := range candidates {
		if m, ok := e.ref.LookupMerchant(c); ok {
			if name, ok := verifiedName(text, m.Name, c); ok {
				return MerchantResult{Name: name, Category: m.Category, Dictionary: true}
			}
		}
	}

	if m, span, ok := e.ref.FindMerchant(text); ok {
		if name, ok := verifiedName(text, m.Name, span); ok {
			return MerchantResult{Name: name, Category: m.Category, Dictionary: true}
		}
	}

	if len(candidates) > 0 {
		return MerchantResult{Name: candidates[0]}
	}
	return MerchantResult{}
}

// ToLineMerchant looks for a merchant on a "To <name>" line of a
// multi-line message.
func (e *Extractor) ToLineMerchant(text string) MerchantResult {
	if !strings.Contains(text, "\n") {
		return MerchantResult{}
	}
	for _, m := range toLineRe.FindAllStringSubmatch(text, -1) {
		c, ok := cleanCandidate(m[1])
		if !ok || !Verify(text, c) {
			continue
		}
		if known, ok := e.ref.LookupMerchant(c); ok {
			if name, ok := verifiedName(text, known.Name, c); ok {
				return MerchantResult{Name: name, Category: known.Category, Dictionary: true}
			}
		}
		return MerchantResult{Name: c}
	}
	return MerchantResult{}
}

func merchantCandidates(text string) []string {
	var out []string
	for _, re := range merchantRes {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			c, ok := cleanCandidate(m[1])
			if ok && Verify(text, c) {
				out = append(out, c)
			}
		}
	}
	return out
}

func cleanCandidate(s string) (string, bool) {
	s = strings.Join(strings.Fields(s), " ")
	s = strings.Trim(s, " .,-*'’")
	if len(s) < 2 || len(s) > 40 {
		return "", false
	}
	if phoneLikeRe.MatchString(s) || longDigitsRe.MatchString(s) || accountLikeRe.MatchString(s) {
		return "", false
	}
	if !strings.ContainsFunc(s, isLetter) {
		return "", false
	}
	first := strings.ToLower(strings.Fields(s)[0])
	if merchantStopWords[first] {
		return "", false
	}
	return s, true
}

// verifiedName prefers the canonical dictionary name when text spells it out
// and falls back to the literal span otherwise.
func verifiedName(text, canonical, span string) (string, bool) {
	if containsName(text, canonical) {
		return canonical, true
	}
	if containsName(text, span) {
		return span, true
	}
	return "", false
}

// containsName reports whether name occurs in text as a case-insensitive
// substring, apostrophes ignored.
func containsName(text, name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	return strings.Contains(foldApostrophes(strings.ToLower(text)), foldApostrophes(strings.ToLower(name)))
}

// Verify reports whether name is literally present in text: a
// case-insensitive substring (apostrophes ignored) or sharing a word of at
// least three characters.
func Verify(text, name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	if containsName(text, name) {
		return true
	}
	lt, ln := strings.ToLower(text), strings.ToLower(name)

	words := make(map[string]bool)
	for _, w := range tokens(lt) {
		words[w] = true
	}
	for _, w := range tokens(ln) {
		if len(w) >= 3 && words[w] {
			return true
		}
	}
	return false
}

func foldApostrophes(s string) string {
	return strings.NewReplacer("'", "", "’", "").Replace(s)
}

func tokens(s string) []string {
	return strings.FieldsFunc(foldApostrophes(s), func(r rune) bool {
		return !isLetter(r) && !(r >= '0' && r <= '9') && r != '&'
	})
}

func isLetter(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'
}

// Category resolves the spending category: the merchant table first, then
// category keywords in the merchant name, then in the whole message.
func (e *Extractor) Category(text string, m MerchantResult) string {
	if m.Dictionary && m.Category != "" {
		return m.Category
	}
	if m.Name != "" {
		if c, ok := e.ref.CategoryForName(m.Name); ok {
			return c
		}
	}
	if c, ok := e.ref.CategoryForText(text); ok {
		return c
	}
	return model.UncategorizedCategory
}
