package model

// MessageType is the final classification of a message.
type MessageType string

const (
	MessageFiltered      MessageType = "filtered"
	MessagePromotional   MessageType = "promotional"
	MessageTransaction   MessageType = "transaction"
	MessageBalanceUpdate MessageType = "balance_update"
	MessageSecurityAlert MessageType = "security_alert"
	MessageOther         MessageType = "other"
)

// PromotionalDetails explains a promotional score.
type PromotionalDetails struct {
	Score           float64  `json:"score"`
	MatchedKeywords []string `json:"matched_keywords,omitempty"`
	HasURL          bool     `json:"has_url"`
	HasDiscount     bool     `json:"has_discount"`
	HasTimeLimit    bool     `json:"has_time_limit"`
	HasAmountOffer  bool     `json:"has_amount_offer"`
}

// ClassifiedRecord is the single output of classifying one message.
// A filtered record carries nothing but its MessageType.
type ClassifiedRecord struct {
	MessageType MessageType           `json:"message_type"`
	Transaction *ExtractedTransaction `json:"transaction,omitempty"`
	Risk        *RiskAssessment       `json:"risk,omitempty"`
	Promotional *PromotionalDetails   `json:"promotional,omitempty"`
}

// Suspicious reports whether the record carries a suspicious risk assessment.
func (r ClassifiedRecord) Suspicious() bool {
	return r.Risk != nil && r.Risk.Suspicious
}

// RiskLevel returns the record's risk level, none when unassessed.
func (r ClassifiedRecord) RiskLevel() RiskLevel {
	if r.Risk == nil {
		return RiskNone
	}
	return r.Risk.RiskLevel
}

// Classified pairs an inbound message with its classification.
type Classified struct {
	ID          string           `json:"id"`
	Fingerprint string           `json:"fingerprint"`
	Message     Message          `json:"message"`
	Record      ClassifiedRecord `json:"record"`
}
