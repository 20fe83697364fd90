// Package extract pulls structured transaction fields out of a message.
package extract

import (
	"github.com/cleared-dev/smsledger/internal/model"
	"github.com/cleared-dev/smsledger/internal/refdata"
)

// Confidence tiers and penalties, in hundredths.
const (
	confidenceDictionary = 90
	confidenceRegex      = 60
	confidenceNoMerchant = 50
	missingFieldPenalty  = 10
	minConfidence        = 10
)

// Extractor extracts transaction fields using the reference tables.
type Extractor struct {
	ref *refdata.ReferenceData
}

// New creates an Extractor.
func New(ref *refdata.ReferenceData) *Extractor {
	return &Extractor{ref: ref}
}

// Extract returns the transaction fields found in text. It never fails;
// fields that cannot be found are left empty and lower the confidence.
func (e *Extractor) Extract(text string) model.ExtractedTransaction {
	typ := e.DetectType(text)
	merchant := e.Merchant(text)

	txn := model.ExtractedTransaction{
		Type:     typ,
		Amount:   e.Amount(text, typ),
		Merchant: merchant.Name,
		Account:  Account(text),
		Date:     Date(text),
		Balance:  Balance(text),
		Category: e.Category(text, merchant),
	}
	txn.Confidence = confidence(txn, merchant)
	return txn
}

func confidence(txn model.ExtractedTransaction, m MerchantResult) float64 {
	score := confidenceNoMerchant
	switch {
	case m.Dictionary:
		score = confidenceDictionary
	case m.Name != "":
		score = confidenceRegex
	}
	if !txn.Amount.Valid {
		score -= missingFieldPenalty
	}
	if txn.Type == model.TxnUnknown {
		score -= missingFieldPenalty
	}
	if txn.Date == nil {
		score -= missingFieldPenalty
	}
	if score < minConfidence {
		score = minConfidence
	}
	return float64(score) / 100
}
