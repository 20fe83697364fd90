package model

// RiskLevel is the ordinal fraud classification of a message.
type RiskLevel string

const (
	RiskNone   RiskLevel = "none"
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Rank returns the ordinal position of the level (none=0 .. high=3).
// Unknown levels rank as none.
func (r RiskLevel) Rank() int {
	switch r {
	case RiskLow:
		return 1
	case RiskMedium:
		return 2
	case RiskHigh:
		return 3
	default:
		return 0
	}
}

// AtLeast returns the higher of r and floor.
func (r RiskLevel) AtLeast(floor RiskLevel) RiskLevel {
	if floor.Rank() > r.Rank() {
		return floor
	}
	if r == "" {
		return RiskNone
	}
	return r
}

// IndicatorCategory groups fraud indicators for risk aggregation.
type IndicatorCategory string

const (
	IndicatorUnknownSender      IndicatorCategory = "unknown_sender"
	IndicatorMismatchedSender   IndicatorCategory = "mismatched_bank_sender"
	IndicatorKYCScam            IndicatorCategory = "kyc_scam"
	IndicatorUrgentAction       IndicatorCategory = "urgent_action"
	IndicatorCredentialPhishing IndicatorCategory = "credential_phishing"
	IndicatorPrizeScam          IndicatorCategory = "prize_scam"
	IndicatorSuspiciousPhrase   IndicatorCategory = "suspicious_phrase"
	IndicatorURL                IndicatorCategory = "url"
	IndicatorExcessiveCaps      IndicatorCategory = "language_excessive_caps"
	IndicatorExcessiveExclaim   IndicatorCategory = "language_excessive_exclamation"
	IndicatorMissingMerchant    IndicatorCategory = "missing_merchant"
	IndicatorHighAmount         IndicatorCategory = "unusually_high_amount"
	IndicatorSecurityAlert      IndicatorCategory = "security_alert"
	IndicatorActionRequired     IndicatorCategory = "action_required"
	IndicatorPhishingAttempt    IndicatorCategory = "phishing_attempt"
	IndicatorShortenedURL       IndicatorCategory = "shortened_url"
)

// Indicator is one piece of fraud evidence found in a message.
type Indicator struct {
	Category IndicatorCategory `json:"category"`
	Tag      string            `json:"tag"`             // category name, or url_<domain> / url_shortener for URLs
	Match    string            `json:"match,omitempty"` // phrase that triggered it
}

// NewIndicator returns an indicator tagged with its category name.
func NewIndicator(category IndicatorCategory, match string) Indicator {
	return Indicator{Category: category, Tag: string(category), Match: match}
}

// ShortCircuit names the precedence check that decided a risk assessment early.
type ShortCircuit string

const (
	ShortCircuitNone          ShortCircuit = ""
	ShortCircuitSecurityAlert ShortCircuit = "security_alert"
	ShortCircuitLegitimate    ShortCircuit = "legitimate_pattern"
)

// RiskAssessment is the fraud verdict for a single message.
type RiskAssessment struct {
	Suspicious                 bool         `json:"suspicious"`
	RiskLevel                  RiskLevel    `json:"risk_level"`
	Indicators                 []Indicator  `json:"indicators"`
	SenderValid                bool         `json:"sender_valid"`
	AccountFormatValid         bool         `json:"account_format_valid"`
	TransactionSeemsLegitimate bool         `json:"transaction_seems_legitimate"`
	ShortCircuit               ShortCircuit `json:"short_circuit,omitempty"`
}

// Tags returns the indicator tags in order.
func (a RiskAssessment) Tags() []string {
	tags := make([]string, 0, len(a.Indicators))
	for _, ind := range a.Indicators {
		tags = append(tags, ind.Tag)
	}
	return tags
}

// HasTag reports whether an indicator with the given tag is present.
func (a RiskAssessment) HasTag(tag string) bool {
	for _, ind := range a.Indicators {
		if ind.Tag == tag {
			return true
		}
	}
	return false
}

// Has reports whether any indicator of the category is present.
func (a RiskAssessment) Has(category IndicatorCategory) bool {
	for _, ind := range a.Indicators {
		if ind.Category == category {
			return true
		}
	}
	return false
}
