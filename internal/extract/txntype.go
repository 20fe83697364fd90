package extract

import (
	"regexp"

	"github.com/cleared-dev/smsledger/internal/model"
)

var (
	// card was used for / spent using your HDFC Bank Credit Card
	cardUsedRe = regexp.MustCompile(`(?i)\bcard\s+(?:was|has\s+been)\s+used\s+for\b|\bspent\s+using\s+your\b[^.]{0,40}?\bcard\b`)

	// EMI deducted / EMI of Rs 2,000 deducted
	emiDeductedRe = regexp.MustCompile(`(?i)\bemi\b[^.]{0,30}?\bdeducted\b`)

	refundRe = regexp.MustCompile(`(?i)\brefund`)
)

// keywordOrder is the precedence of keyword-set matches.
var keywordOrder = []model.TxnType{
	model.TxnDebit,
	model.TxnCredit,
	model.TxnRefund,
	model.TxnTransfer,
	model.TxnEMI,
}

// DetectType applies the fixed type precedence: a refund always forces
// credit, then forced debits, then the first keyword set that matches.
func (e *Extractor) DetectType(text string) model.TxnType {
	switch {
	case refundRe.MatchString(text):
		return model.TxnCredit
	case cardUsedRe.MatchString(text):
		return model.TxnDebit
	case emiDeductedRe.MatchString(text):
		return model.TxnDebit
	}
	for _, t := range keywordOrder {
		if e.ref.TxnIndicators(t).Any(text) {
			return t
		}
	}
	return model.TxnUnknown
}
