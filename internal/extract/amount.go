package extract

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/smsledger/internal/model"
	"github.com/cleared-dev/smsledger/internal/scan"
)

const (
	verbWindow    = 35
	balanceWindow = 45
)

var (
	// "Available balance: Rs." / "Avl Limit: INR " immediately before an amount
	balancePrefixRe = regexp.MustCompile(`(?i)\b(?:bal(?:ance)?|avl|available|limit|lmt)\b[^0-9]{0,30}$`)

	// "Rs.45,000 is your available balance"
	balanceSuffixRe = regexp.MustCompile(`(?i)^\s*(?:is\s+(?:your\s+)?|as\s+)?(?:avl|available|closing|current)\.?\s*bal`)
)

// sentenceBreaks end the context a verb can share with an amount.
var sentenceBreaks = []string{". ", "; ", ";", "\n", "! "}

// candidate is an amount together with the text it shares with its verbs.
type candidate struct {
	scan.Amount
	before string
	after  string
}

// Amount picks the transaction amount among the currency amounts in text:
// an amount next to a verb of the detected type, then next to any
// transaction verb, then the largest. Amounts in a balance or limit context
// are never chosen.
func (e *Extractor) Amount(text string, typ model.TxnType) decimal.NullDecimal {
	all := scan.Amounts(text)

	var candidates []candidate
	for i, a := range all {
		if inBalanceContext(text, a) {
			continue
		}
		lo, hi := 0, len(text)
		if i > 0 {
			lo = all[i-1].End
		}
		if i+1 < len(all) {
			hi = all[i+1].Start
		}
		before, after := verbContext(text, a, lo, hi)
		candidates = append(candidates, candidate{Amount: a, before: before, after: after})
	}
	if len(candidates) == 0 {
		return decimal.NullDecimal{}
	}

	if typ != model.TxnUnknown && typ != model.TxnPromotional {
		if c, ok := largest(candidates, func(c candidate) bool { return e.nearVerb(c, typ) }); ok {
			return decimal.NewNullDecimal(c.Value)
		}
	}

	if c, ok := largest(candidates, e.nearAnyVerb); ok {
		return decimal.NewNullDecimal(c.Value)
	}

	c, _ := largest(candidates, func(candidate) bool { return true })
	return decimal.NewNullDecimal(c.Value)
}

func inBalanceContext(text string, a scan.Amount) bool {
	start := a.Start - balanceWindow
	if start < 0 {
		start = 0
	}
	end := a.End + balanceWindow
	if end > len(text) {
		end = len(text)
	}
	return balancePrefixRe.MatchString(text[start:a.Start]) || balanceSuffixRe.MatchString(text[a.End:end])
}

func (e *Extractor) nearVerb(c candidate, typ model.TxnType) bool {
	m := e.ref.TxnIndicators(typ)
	return m.Any(c.before) || m.Any(c.after)
}

func (e *Extractor) nearAnyVerb(c candidate) bool {
	verbs := e.ref.TransactionVerbs()
	if verbs.Any(c.before) || verbs.Any(c.after) {
		return true
	}
	for _, t := range keywordOrder {
		if e.nearVerb(c, t) {
			return true
		}
	}
	return false
}

// verbContext returns the text around a, bounded by verbWindow, by the
// neighbouring amounts at lo and hi, and by sentence breaks.
func verbContext(text string, a scan.Amount, lo, hi int) (before, after string) {
	start := a.Start - verbWindow
	if start < lo {
		start = lo
	}
	end := a.End + verbWindow
	if end > hi {
		end = hi
	}

	before = text[start:a.Start]
	for _, sep := range sentenceBreaks {
		if i := strings.LastIndex(before, sep); i >= 0 {
			before = before[i+len(sep):]
		}
	}
	after = text[a.End:end]
	for _, sep := range sentenceBreaks {
		if i := strings.Index(after, sep); i >= 0 {
			after = after[:i]
		}
	}
	return before, after
}

// largest returns the biggest candidate satisfying keep; ties go to the earliest.
func largest(candidates []candidate, keep func(candidate) bool) (candidate, bool) {
	var best candidate
	found := false
	for _, c := range candidates {
		if !keep(c) {
			continue
		}
		if !found || c.Value.GreaterThan(best.Value) {
			best = c
			found = true
		}
	}
	return best, found
}
