// Package refdata holds the immutable lookup tables shared by every
// classification stage.
package refdata

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/cleared-dev/smsledger/internal/model"
	"github.com/cleared-dev/smsledger/internal/scan"
)

// ErrInvalidTable is returned when a reference table cannot be compiled.
var ErrInvalidTable = errors.New("invalid reference table")

// ReferenceData is the compiled, read-only form of Tables. It is safe for
// concurrent use because nothing mutates it after New returns.
type ReferenceData struct {
	tables Tables

	nonFinancial  *Matcher
	financial     *Matcher
	currencyVerbs *Matcher
	auth          *Matcher
	authPassCues  *Matcher
	blacklist     *Matcher

	promoKeywords *Matcher

	securityAlerts *Matcher
	legitimate     *Matcher
	fraudRules     []fraudRule
	shorteners     map[string]bool
	transferCues   *Matcher

	txnIndicators map[model.TxnType]*Matcher
	txnVerbs      *Matcher
	balanceCues   *Matcher

	categories []category

	merchants     []merchantEntry // longest name first
	merchantIndex map[string]int
	senderIndex   map[string]string
	banks         []bankEntry
}

type bankEntry struct {
	name    string
	re      *regexp.Regexp
	senders map[string]bool
}

type fraudRule struct {
	category model.IndicatorCategory
	re       *regexp.Regexp
}

type category struct {
	name     string
	keywords []string
	matcher  *Matcher
}

type merchantEntry struct {
	merchant model.Merchant
	re       *regexp.Regexp
	key      string
}

// New compiles tables into a ReferenceData.
func New(t Tables) (*ReferenceData, error) {
	rd := &ReferenceData{
		tables:        t,
		txnIndicators: make(map[model.TxnType]*Matcher),
		shorteners:    make(map[string]bool),
		merchantIndex: make(map[string]int),
		senderIndex:   make(map[string]string),
	}

	var err error
	patterns := []struct {
		dst  **Matcher
		list []string
		name string
	}{
		{&rd.nonFinancial, t.Prefilter.NonFinancial, "prefilter.non_financial"},
		{&rd.financial, t.Prefilter.Financial, "prefilter.financial"},
		{&rd.auth, t.Prefilter.Auth, "prefilter.auth"},
		{&rd.legitimate, t.Fraud.Legitimate, "fraud.legitimate"},
	}
	for _, p := range patterns {
		if *p.dst, err = CompilePatterns(p.list); err != nil {
			return nil, fmt.Errorf("%s: %w", p.name, err)
		}
	}

	phrases := []struct {
		dst  **Matcher
		list []string
		name string
	}{
		{&rd.currencyVerbs, t.Prefilter.CurrencyVerbs, "prefilter.currency_verbs"},
		{&rd.authPassCues, t.Prefilter.AuthPassCues, "prefilter.auth_pass_cues"},
		{&rd.blacklist, t.Prefilter.Blacklist, "prefilter.blacklist"},
		{&rd.promoKeywords, t.Promotional.Keywords, "promotional.keywords"},
		{&rd.securityAlerts, t.Fraud.SecurityAlerts, "fraud.security_alerts"},
		{&rd.transferCues, t.Fraud.TransferCues, "fraud.transfer_cues"},
		{&rd.txnVerbs, t.TransactionVerbs, "transaction_verbs"},
		{&rd.balanceCues, t.BalanceCues, "balance_cues"},
	}
	for _, p := range phrases {
		if *p.dst, err = CompilePhrases(p.list); err != nil {
			return nil, fmt.Errorf("%s: %w", p.name, err)
		}
	}

	indicators := map[model.TxnType][]string{
		model.TxnDebit:    t.TxnIndicators.Debit,
		model.TxnCredit:   t.TxnIndicators.Credit,
		model.TxnRefund:   t.TxnIndicators.Refund,
		model.TxnTransfer: t.TxnIndicators.Transfer,
		model.TxnEMI:      t.TxnIndicators.EMI,
	}
	for typ, list := range indicators {
		m, err := CompilePhrases(list)
		if err != nil {
			return nil, fmt.Errorf("transaction_indicators.%s: %w", typ, err)
		}
		rd.txnIndicators[typ] = m
	}

	for i, r := range t.Fraud.Rules {
		if r.Category == "" {
			return nil, fmt.Errorf("fraud.rules[%d]: %w: missing category", i, ErrInvalidTable)
		}
		re, err := regexp.Compile("(?i)" + r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("fraud.rules[%d]: failed to compile pattern %s: %w", i, r.Pattern, err)
		}
		rd.fraudRules = append(rd.fraudRules, fraudRule{category: r.Category, re: re})
	}

	for _, s := range t.Fraud.Shorteners {
		rd.shorteners[strings.ToLower(strings.TrimSpace(s))] = true
	}

	for _, c := range t.Categories {
		m, err := CompilePhrases(c.Keywords)
		if err != nil {
			return nil, fmt.Errorf("categories.%s: %w", c.Category, err)
		}
		kw := make([]string, len(c.Keywords))
		for i, k := range c.Keywords {
			kw[i] = strings.ToLower(k)
		}
		rd.categories = append(rd.categories, category{name: c.Category, keywords: kw, matcher: m})
	}

	if err := rd.indexMerchants(t.Merchants); err != nil {
		return nil, err
	}

	for _, b := range t.Banks {
		re, err := bankRegexp(b.Name)
		if err != nil {
			return nil, fmt.Errorf("banks %s: %w", b.Name, err)
		}
		entry := bankEntry{name: b.Name, re: re, senders: make(map[string]bool)}
		for _, id := range b.SenderIDs {
			if key := normalizeSender(id); key != "" {
				rd.senderIndex[key] = b.Name
				entry.senders[key] = true
			}
		}
		rd.banks = append(rd.banks, entry)
	}

	return rd, nil
}

// Default returns the compiled built-in tables.
func Default() *ReferenceData {
	rd, err := New(DefaultTables())
	if err != nil {
		panic("refdata: built-in tables do not compile: " + err.Error())
	}
	return rd
}

func (rd *ReferenceData) indexMerchants(merchants []model.Merchant) error {
	for i, m := range merchants {
		if strings.TrimSpace(m.Name) == "" {
			return fmt.Errorf("merchants row %d: %w: empty name", i+2, ErrInvalidTable)
		}
		re, err := merchantRegexp(m)
		if err != nil {
			return fmt.Errorf("merchants row %d: %w", i+2, err)
		}
		rd.merchants = append(rd.merchants, merchantEntry{merchant: m, re: re, key: merchantKey(m.Name)})
	}
	sort.SliceStable(rd.merchants, func(i, j int) bool {
		return len(rd.merchants[i].key) > len(rd.merchants[j].key)
	})
	for i, e := range rd.merchants {
		if _, ok := rd.merchantIndex[e.key]; !ok {
			rd.merchantIndex[e.key] = i
		}
		if abbr := merchantKey(e.merchant.Abbreviation); abbr != "" {
			if _, ok := rd.merchantIndex[abbr]; !ok {
				rd.merchantIndex[abbr] = i
			}
		}
	}
	return nil
}

// merchantRegexp matches a merchant's name or abbreviation with optional
// apostrophes and spacing, so "McDonald's" also finds "MCDONALDS".
func merchantRegexp(m model.Merchant) (*regexp.Regexp, error) {
	var alts []string
	for _, s := range []string{m.Name, m.Abbreviation} {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		body := regexp.QuoteMeta(strings.ToLower(s))
		body = strings.ReplaceAll(body, "'", `['’]?`)
		body = strings.Join(strings.Fields(body), `\s*`)
		if isWordByte(s[0]) {
			body = `\b` + body
		}
		if isWordByte(s[len(s)-1]) {
			body += `\b`
		}
		alts = append(alts, body)
	}
	return regexp.Compile("(?i)(?:" + strings.Join(alts, "|") + ")")
}

// merchantKey folds a name to lower-case letters and digits.
func merchantKey(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// normalizeSender strips operator prefixes ("VK-") and route suffixes ("-S").
func normalizeSender(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) > 3 && s[2] == '-' {
		s = s[3:]
	}
	if n := len(s); n > 2 && s[n-2] == '-' {
		s = s[:n-2]
	}
	return s
}

// NonFinancial returns the override patterns that reject a message outright.
func (rd *ReferenceData) NonFinancial() *Matcher { return rd.nonFinancial }

// Financial returns the financial-indicator patterns.
func (rd *ReferenceData) Financial() *Matcher { return rd.financial }

// CurrencyVerbs returns the verbs that make a bare currency amount financial.
func (rd *ReferenceData) CurrencyVerbs() *Matcher { return rd.currencyVerbs }

// Auth returns the authentication-only patterns (OTP and friends).
func (rd *ReferenceData) Auth() *Matcher { return rd.auth }

// AuthPassCues returns cues that let an authentication message through.
func (rd *ReferenceData) AuthPassCues() *Matcher { return rd.authPassCues }

// Blacklist returns the generic non-financial phrases.
func (rd *ReferenceData) Blacklist() *Matcher { return rd.blacklist }

// PromoKeywords returns the promotional keyword table.
func (rd *ReferenceData) PromoKeywords() *Matcher { return rd.promoKeywords }

// SecurityAlerts returns the bank security-warning phrases.
func (rd *ReferenceData) SecurityAlerts() *Matcher { return rd.securityAlerts }

// Legitimate returns canonical bank transaction phrasing.
func (rd *ReferenceData) Legitimate() *Matcher { return rd.legitimate }

// TransferCues returns the payment-rail phrases (UPI, NEFT, IMPS).
func (rd *ReferenceData) TransferCues() *Matcher { return rd.transferCues }

// TxnIndicators returns the keyword phrases for a transaction type.
func (rd *ReferenceData) TxnIndicators(t model.TxnType) *Matcher { return rd.txnIndicators[t] }

// TransactionVerbs returns the verbs that mark a message as a transaction.
func (rd *ReferenceData) TransactionVerbs() *Matcher { return rd.txnVerbs }

// BalanceCues returns balance-notice phrases.
func (rd *ReferenceData) BalanceCues() *Matcher { return rd.balanceCues }

// FraudIndicators returns one indicator per fraud rule matching text, in table order.
func (rd *ReferenceData) FraudIndicators(text string) []model.Indicator {
	var out []model.Indicator
	for _, r := range rd.fraudRules {
		if s := r.re.FindString(text); s != "" {
			out = append(out, model.NewIndicator(r.category, s))
		}
	}
	return out
}

// IsShortener reports whether domain is a known URL shortener.
func (rd *ReferenceData) IsShortener(domain string) bool {
	return rd.shorteners[strings.ToLower(domain)]
}

// FindShortener returns the first shortened link in text.
func (rd *ReferenceData) FindShortener(text string) (scan.Link, bool) {
	for _, l := range scan.Links(text) {
		if rd.IsShortener(l.Domain) {
			return l, true
		}
	}
	return scan.Link{}, false
}

// BankForSender returns the bank owning a sender ID such as "AD-HDFCBK".
func (rd *ReferenceData) BankForSender(sender string) (string, bool) {
	name, ok := rd.senderIndex[normalizeSender(sender)]
	return name, ok
}

// MismatchedBanks returns the banks named in text that do not own sender.
func (rd *ReferenceData) MismatchedBanks(text, sender string) []string {
	key := normalizeSender(sender)
	if key == "" {
		return nil
	}
	var out []string
	for _, b := range rd.banks {
		if b.re.MatchString(text) && !b.senders[key] {
			out = append(out, b.name)
		}
	}
	return out
}

// bankRegexp matches "<name> Bank" in any case, and names of four or more
// letters on their own when written in capitals ("Dear HDFC customer").
// Short names like "YES" need the "Bank" suffix.
func bankRegexp(name string) (*regexp.Regexp, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: empty bank name", ErrInvalidTable)
	}
	q := strings.Join(strings.Fields(regexp.QuoteMeta(name)), `\s+`)
	expr := `(?i:\b` + q + `\s+bank\b)`
	if len(name) >= 4 {
		expr += `|\b` + strings.Join(strings.Fields(regexp.QuoteMeta(strings.ToUpper(name))), `\s+`) + `\b`
	}
	return regexp.Compile(expr)
}

// LookupMerchant resolves a merchant candidate against the known-merchant
// table: exact name or abbreviation first, then a known name contained in
// the candidate. A candidate is never expanded into a longer known name.
func (rd *ReferenceData) LookupMerchant(candidate string) (model.Merchant, bool) {
	key := merchantKey(candidate)
	if key == "" {
		return model.Merchant{}, false
	}
	if i, ok := rd.merchantIndex[key]; ok {
		return rd.merchants[i].merchant, true
	}
	for _, e := range rd.merchants {
		if len(e.key) >= 4 && strings.Contains(key, e.key) {
			return e.merchant, true
		}
	}
	return model.Merchant{}, false
}

// FindMerchant scans text for a known merchant, longest name first, and
// returns it with the text span that matched.
func (rd *ReferenceData) FindMerchant(text string) (model.Merchant, string, bool) {
	for _, e := range rd.merchants {
		if s := e.re.FindString(text); s != "" {
			return e.merchant, s, true
		}
	}
	return model.Merchant{}, "", false
}

// CategoryForName returns the first category whose keyword occurs in name.
func (rd *ReferenceData) CategoryForName(name string) (string, bool) {
	lower := strings.ToLower(name)
	if lower == "" {
		return "", false
	}
	for _, c := range rd.categories {
		for _, kw := range c.keywords {
			if strings.Contains(lower, kw) {
				return c.name, true
			}
		}
	}
	return "", false
}

// CategoryForText returns the first category with a keyword in text,
// matched on word boundaries.
func (rd *ReferenceData) CategoryForText(text string) (string, bool) {
	for _, c := range rd.categories {
		if c.matcher.Any(text) {
			return c.name, true
		}
	}
	return "", false
}

// Merchants returns a copy of the merchant table.
func (rd *ReferenceData) Merchants() []model.Merchant {
	return append([]model.Merchant(nil), rd.tables.Merchants...)
}

// Banks returns a copy of the bank table.
func (rd *ReferenceData) Banks() []model.Bank {
	out := make([]model.Bank, len(rd.tables.Banks))
	for i, b := range rd.tables.Banks {
		out[i] = model.Bank{Name: b.Name, SenderIDs: append([]string(nil), b.SenderIDs...)}
	}
	return out
}
