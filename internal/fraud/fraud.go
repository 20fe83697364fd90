// Package fraud scores messages for fraud risk from layered indicators.
package fraud

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/smsledger/internal/extract"
	"github.com/cleared-dev/smsledger/internal/model"
	"github.com/cleared-dev/smsledger/internal/refdata"
	"github.com/cleared-dev/smsledger/internal/scan"
)

// DefaultLargeAmount is the amount above which a transaction is unusual.
var DefaultLargeAmount = decimal.NewFromInt(100000)

const (
	capsMinLength      = 20
	capsRatio          = 0.3
	maxExclamations    = 2
	shortenerURLTag    = "url_shortener"
	urlTagPrefix       = "url_"
	maxIndicatorsToLow = 2
)

// Detector assesses fraud risk.
type Detector struct {
	ref         *refdata.ReferenceData
	largeAmount decimal.Decimal
}

// New creates a Detector. A non-positive largeAmount selects DefaultLargeAmount.
func New(ref *refdata.ReferenceData, largeAmount decimal.Decimal) *Detector {
	if !largeAmount.IsPositive() {
		largeAmount = DefaultLargeAmount
	}
	return &Detector{ref: ref, largeAmount: largeAmount}
}

// Assess scores text. sender may be empty; txn is the extracted transaction,
// if any. Security alerts and canonical bank phrasing decide early; otherwise
// every layer contributes indicators and Aggregate sets the level.
func (d *Detector) Assess(text, sender string, txn *model.ExtractedTransaction) model.RiskAssessment {
	_, senderKnown := d.ref.BankForSender(sender)
	mismatched := d.ref.MismatchedBanks(text, sender)
	a := model.RiskAssessment{
		RiskLevel:                  model.RiskNone,
		Indicators:                 []model.Indicator{},
		SenderValid:                sender != "" && senderKnown && len(mismatched) == 0,
		AccountFormatValid:         extract.Account(text) != "",
		TransactionSeemsLegitimate: true,
	}

	if m, ok := d.ref.SecurityAlerts().First(text); ok {
		a.Suspicious = true
		a.RiskLevel = model.RiskMedium
		a.ShortCircuit = model.ShortCircuitSecurityAlert
		a.Indicators = []model.Indicator{
			model.NewIndicator(model.IndicatorSecurityAlert, m),
			model.NewIndicator(model.IndicatorActionRequired, ""),
		}
		return a
	}

	if d.ref.Legitimate().Any(text) {
		a.ShortCircuit = model.ShortCircuitLegitimate
		return a
	}

	if sender != "" && !senderKnown {
		a.Indicators = append(a.Indicators, model.NewIndicator(model.IndicatorUnknownSender, sender))
	}
	for _, bank := range mismatched {
		a.Indicators = append(a.Indicators, model.NewIndicator(model.IndicatorMismatchedSender, bank))
	}
	a.Indicators = append(a.Indicators, d.ref.FraudIndicators(text)...)
	a.Indicators = append(a.Indicators, d.linkIndicators(text)...)
	a.Indicators = append(a.Indicators, styleIndicators(text)...)

	plausibility := d.plausibilityIndicators(text, txn)
	if len(plausibility) > 0 {
		a.TransactionSeemsLegitimate = false
		a.Indicators = append(a.Indicators, plausibility...)
	}

	a.RiskLevel = Aggregate(a.Indicators)
	a.Suspicious = a.RiskLevel != model.RiskNone
	return a
}

func (d *Detector) linkIndicators(text string) []model.Indicator {
	var out []model.Indicator
	for _, l := range scan.Links(text) {
		tag := urlTagPrefix + l.Domain
		if d.ref.IsShortener(l.Domain) {
			tag = shortenerURLTag
		}
		out = append(out, model.Indicator{Category: model.IndicatorURL, Tag: tag, Match: l.Raw})
	}
	return out
}

func styleIndicators(text string) []model.Indicator {
	var out []model.Indicator

	if utf8.RuneCountInString(text) > capsMinLength {
		letters, upper := 0, 0
		for _, r := range text {
			if unicode.IsLetter(r) {
				letters++
				if unicode.IsUpper(r) {
					upper++
				}
			}
		}
		if letters > 0 && float64(upper)/float64(letters) > capsRatio {
			out = append(out, model.NewIndicator(model.IndicatorExcessiveCaps, ""))
		}
	}

	if strings.Count(text, "!") > maxExclamations {
		out = append(out, model.NewIndicator(model.IndicatorExcessiveExclaim, ""))
	}
	return out
}

func (d *Detector) plausibilityIndicators(text string, txn *model.ExtractedTransaction) []model.Indicator {
	if txn == nil || !txn.HasAmount() {
		return nil
	}

	var out []model.Indicator
	if txn.Merchant == "" && !d.ref.TransferCues().Any(text) {
		out = append(out, model.NewIndicator(model.IndicatorMissingMerchant, ""))
	}
	if txn.Amount.Decimal.GreaterThan(d.largeAmount) {
		out = append(out, model.NewIndicator(model.IndicatorHighAmount, txn.Amount.Decimal.String()))
	}
	return out
}

// Aggregate maps a set of indicators to a risk level. Adding an indicator
// never lowers the result.
func Aggregate(indicators []model.Indicator) model.RiskLevel {
	has := make(map[model.IndicatorCategory]bool, len(indicators))
	for _, ind := range indicators {
		has[ind.Category] = true
	}

	switch {
	case has[model.IndicatorKYCScam] || has[model.IndicatorCredentialPhishing]:
		return model.RiskHigh
	case has[model.IndicatorURL] && (has[model.IndicatorUrgentAction] || has[model.IndicatorPrizeScam]):
		return model.RiskHigh
	case len(indicators) > maxIndicatorsToLow || has[model.IndicatorPrizeScam]:
		return model.RiskMedium
	case len(indicators) > 0:
		return model.RiskLow
	default:
		return model.RiskNone
	}
}
