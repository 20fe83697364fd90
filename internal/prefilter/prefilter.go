// Package prefilter is the cheap accept/reject gate run before any
// extraction.
package prefilter

import (
	"strings"

	"github.com/cleared-dev/smsledger/internal/refdata"
	"github.com/cleared-dev/smsledger/internal/scan"
)

// Reason names the rule that decided a message.
type Reason string

const (
	ReasonEmpty        Reason = "empty"
	ReasonNonFinancial Reason = "non_financial"
	ReasonFinancial    Reason = "financial_indicator"
	ReasonAuthOnly     Reason = "auth_only"
	ReasonBlacklisted  Reason = "blacklisted"
	ReasonDefault      Reason = "default_accept"
)

// Decision is the outcome of the gate.
type Decision struct {
	Accept bool
	Reason Reason
	Match  string // phrase that decided, if any
}

type rule struct {
	reason Reason
	decide func(f *Filter, text string) (accept bool, match string, applies bool)
}

// rules are evaluated top to bottom; the first one that applies decides.
var rules = []rule{
	{ReasonNonFinancial, func(f *Filter, text string) (bool, string, bool) {
		m, ok := f.ref.NonFinancial().First(text)
		return false, m, ok
	}},
	{ReasonFinancial, func(f *Filter, text string) (bool, string, bool) {
		if m, ok := f.ref.Financial().First(text); ok {
			return true, m, true
		}
		if scan.HasAmount(text) {
			if m, ok := f.ref.CurrencyVerbs().First(text); ok {
				return true, m, true
			}
		}
		return false, "", false
	}},
	{ReasonAuthOnly, func(f *Filter, text string) (bool, string, bool) {
		m, ok := f.ref.Auth().First(text)
		if !ok || f.ref.AuthPassCues().Any(text) {
			return false, "", false
		}
		return false, m, true
	}},
	{ReasonBlacklisted, func(f *Filter, text string) (bool, string, bool) {
		m, ok := f.ref.Blacklist().First(text)
		return false, m, ok
	}},
}

// Filter decides whether a message is worth classifying.
type Filter struct {
	ref *refdata.ReferenceData
}

// New creates a Filter over the given reference data.
func New(ref *refdata.ReferenceData) *Filter {
	return &Filter{ref: ref}
}

// Filter reports whether text should be processed.
func (f *Filter) Filter(text string) bool {
	return f.Decide(text).Accept
}

// Decide runs the ordered rules and explains the outcome.
func (f *Filter) Decide(text string) Decision {
	if strings.TrimSpace(text) == "" {
		return Decision{Reason: ReasonEmpty}
	}
	for _, r := range rules {
		if accept, match, ok := r.decide(f, text); ok {
			return Decision{Accept: accept, Reason: r.reason, Match: match}
		}
	}
	return Decision{Accept: true, Reason: ReasonDefault}
}
