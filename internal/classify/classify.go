// Package classify runs the full message pipeline and reconciles the stage
// outputs into one ClassifiedRecord.
package classify

import (
	"regexp"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/smsledger/internal/extract"
	"github.com/cleared-dev/smsledger/internal/fraud"
	"github.com/cleared-dev/smsledger/internal/model"
	"github.com/cleared-dev/smsledger/internal/prefilter"
	"github.com/cleared-dev/smsledger/internal/promo"
	"github.com/cleared-dev/smsledger/internal/refdata"
)

// Options tunes the pipeline thresholds. Zero values select the defaults.
type Options struct {
	PromoThreshold float64
	LargeAmount    decimal.Decimal
}

// Classifier classifies messages against one immutable ReferenceData. It is
// safe for concurrent use.
type Classifier struct {
	ref       *refdata.ReferenceData
	filter    *prefilter.Filter
	promo     *promo.Scorer
	extractor *extract.Extractor
	fraud     *fraud.Detector
}

// New creates a Classifier.
func New(ref *refdata.ReferenceData, opts Options) *Classifier {
	return &Classifier{
		ref:       ref,
		filter:    prefilter.New(ref),
		promo:     promo.New(ref, opts.PromoThreshold),
		extractor: extract.New(ref),
		fraud:     fraud.New(ref, opts.LargeAmount),
	}
}

// Classify classifies message. sender may be empty when unknown. Classify
// never fails: unrecognizable input yields a filtered or low-confidence record.
func (c *Classifier) Classify(message, sender string) model.ClassifiedRecord {
	rec, _ := c.classify(message, sender)
	return rec
}

// Explain classifies message like Classify and also names the arbiter rule
// that fixed the message type.
func (c *Classifier) Explain(message, sender string) (model.ClassifiedRecord, string) {
	return c.classify(message, sender)
}

func (c *Classifier) classify(message, sender string) (model.ClassifiedRecord, string) {
	in := &stages{text: message, decision: c.filter.Decide(message)}
	if in.decision.Accept {
		in.promo = c.promo.Score(message)
		in.txn = c.extractor.Extract(message)
		in.risk = c.fraud.Assess(message, sender, &in.txn)
	}

	for _, r := range rules {
		if !r.matches(c, in) {
			continue
		}
		rec := r.apply(c, in)
		if rec.MessageType != model.MessageFiltered {
			c.flagShortenedURL(in.text, &rec)
		}
		return rec, r.name
	}
	// The final rule always matches.
	panic("classify: no arbiter rule matched")
}

// stages holds the outputs of stages 0 to 3 for one message.
type stages struct {
	text     string
	decision prefilter.Decision
	promo    promo.Result
	txn      model.ExtractedTransaction
	risk     model.RiskAssessment
}

// Arbiter rule names, in evaluation order.
const (
	RuleFiltered      = "filtered"
	RuleSecurityAlert = "security_alert"
	RuleKYC           = "kyc_phishing"
	RuleBalance       = "balance_update"
	RulePromotional   = "promotional"
	RuleTransaction   = "transaction"
)

type rule struct {
	name    string
	matches func(c *Classifier, in *stages) bool
	apply   func(c *Classifier, in *stages) model.ClassifiedRecord
}

// rules is evaluated top to bottom; the first match decides.
var rules = []rule{
	{
		name:    RuleFiltered,
		matches: func(_ *Classifier, in *stages) bool { return !in.decision.Accept },
		apply: func(_ *Classifier, _ *stages) model.ClassifiedRecord {
			return model.ClassifiedRecord{MessageType: model.MessageFiltered}
		},
	},
	{
		name: RuleSecurityAlert,
		matches: func(_ *Classifier, in *stages) bool {
			return in.risk.ShortCircuit == model.ShortCircuitSecurityAlert
		},
		apply: (*Classifier).securityAlert,
	},
	{
		name: RuleKYC,
		matches: func(_ *Classifier, in *stages) bool {
			return kycRe.MatchString(in.text) && kycCueRe.MatchString(in.text)
		},
		apply: (*Classifier).kycPhishing,
	},
	{
		name: RuleBalance,
		matches: func(c *Classifier, in *stages) bool {
			return c.ref.BalanceCues().Any(in.text) && !c.ref.TransactionVerbs().Any(in.text)
		},
		apply: (*Classifier).balanceUpdate,
	},
	{
		name:    RulePromotional,
		matches: func(_ *Classifier, in *stages) bool { return in.promo.IsPromotional },
		apply: func(_ *Classifier, in *stages) model.ClassifiedRecord {
			txn := in.txn
			txn.Type = model.TxnPromotional
			return record(model.MessagePromotional, txn, in.risk, &in.promo.Details)
		},
	},
	{
		name:    RuleTransaction,
		matches: func(_ *Classifier, _ *stages) bool { return true },
		apply: func(_ *Classifier, in *stages) model.ClassifiedRecord {
			return record(model.MessageTransaction, in.txn, in.risk, nil)
		},
	},
}

var (
	kycRe    = regexp.MustCompile(`(?i)\bkyc\b`)
	kycCueRe = regexp.MustCompile(`(?i)\b(?:expir\w*|update\w*)`)

	debitCueRe    = regexp.MustCompile(`(?i)\b(?:sent|debited|paid)\b`)
	creditCueRe   = regexp.MustCompile(`(?i)\b(?:received|credited)\b`)
	transferCueRe = regexp.MustCompile(`(?i)\bupi\b`)
)

func (c *Classifier) securityAlert(in *stages) model.ClassifiedRecord {
	txn := in.txn
	if txn.Type == model.TxnUnknown {
		switch {
		case debitCueRe.MatchString(in.text):
			txn.Type = model.TxnDebit
		case creditCueRe.MatchString(in.text):
			txn.Type = model.TxnCredit
		case transferCueRe.MatchString(in.text):
			txn.Type = model.TxnTransfer
		}
	}
	if txn.Merchant == "" {
		if m := c.extractor.ToLineMerchant(in.text); m.Name != "" {
			txn.Merchant = m.Name
			if m.Category != "" {
				txn.Category = m.Category
			}
		}
	}
	return record(model.MessageSecurityAlert, txn, in.risk, nil)
}

func (c *Classifier) kycPhishing(in *stages) model.ClassifiedRecord {
	risk := in.risk
	risk.Indicators = append([]model.Indicator(nil), risk.Indicators...)
	if !risk.Has(model.IndicatorKYCScam) {
		risk.Indicators = append(risk.Indicators, model.NewIndicator(model.IndicatorKYCScam, kycRe.FindString(in.text)))
	}
	if !risk.Has(model.IndicatorPhishingAttempt) {
		risk.Indicators = append(risk.Indicators, model.NewIndicator(model.IndicatorPhishingAttempt, kycCueRe.FindString(in.text)))
	}
	risk.Suspicious = true
	risk.RiskLevel = model.RiskHigh
	return record(model.MessageOther, in.txn, risk, nil)
}

func (c *Classifier) balanceUpdate(in *stages) model.ClassifiedRecord {
	txn := in.txn
	if !txn.Balance.Valid {
		txn.Balance = extract.Balance(in.text)
	}
	risk := in.risk
	risk.Suspicious = false
	risk.RiskLevel = model.RiskNone
	risk.Indicators = []model.Indicator{}
	risk.TransactionSeemsLegitimate = true
	return record(model.MessageBalanceUpdate, txn, risk, nil)
}

// flagShortenedURL applies after the type is fixed, whatever rule fixed it.
func (c *Classifier) flagShortenedURL(text string, rec *model.ClassifiedRecord) {
	link, ok := c.ref.FindShortener(text)
	if !ok {
		return
	}
	risk := rec.Risk
	risk.Suspicious = true
	risk.RiskLevel = risk.RiskLevel.AtLeast(model.RiskMedium)
	if !risk.Has(model.IndicatorShortenedURL) {
		risk.Indicators = append(risk.Indicators, model.NewIndicator(model.IndicatorShortenedURL, link.Raw))
	}
}

func record(typ model.MessageType, txn model.ExtractedTransaction, risk model.RiskAssessment, details *model.PromotionalDetails) model.ClassifiedRecord {
	if risk.Indicators == nil {
		risk.Indicators = []model.Indicator{}
	}
	rec := model.ClassifiedRecord{
		MessageType: typ,
		Transaction: &txn,
		Risk:        &risk,
	}
	if details != nil {
		d := *details
		d.MatchedKeywords = append([]string(nil), details.MatchedKeywords...)
		rec.Promotional = &d
	}
	return rec
}
