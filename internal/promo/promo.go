// Package promo scores how promotional a message reads.
package promo

import (
	"regexp"

	"github.com/cleared-dev/smsledger/internal/model"
	"github.com/cleared-dev/smsledger/internal/refdata"
	"github.com/cleared-dev/smsledger/internal/scan"
)

// DefaultThreshold is the score at which a message counts as promotional.
const DefaultThreshold = 0.3

// Weights in hundredths, so sums stay exact.
const (
	keywordPoints     = 5
	urlPoints         = 20
	discountPoints    = 15
	timeLimitPoints   = 10
	amountOfferPoints = 10
	maxPoints         = 100
)

var (
	// 50% off / 20 % discount
	discountRe = regexp.MustCompile(`(?i)\d+\s*%\s*(?:off|discount)\b`)

	// valid till 31-05-2023 / offer ends 5th June / until 12/08/24
	timeLimitRe = regexp.MustCompile(`(?i)\b(?:valid|till|until|offer\s+ends|expires?)\b[^.\d]{0,20}\b\d{1,2}(?:[-/.]\d{1,2}[-/.]\d{2,4}|\s*(?:st|nd|rd|th)?\s*(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*)`)

	// Rs 100 off / flat ₹500 cashback / cashback of Rs 50
	amountOfferRe = regexp.MustCompile(`(?i)(?:(?:\brs\.?|\binr|₹)\s*\d[\d,]*(?:\.\d+)?\s*(?:off|discount|cashback)\b|\b(?:cashback|discount)\s+of\s+(?:\brs\.?|\binr|₹)\s*\d)`)
)

// Result is the promotional verdict for a message.
type Result struct {
	IsPromotional bool
	Details       model.PromotionalDetails
}

// Scorer computes additive, capped promotional scores.
type Scorer struct {
	ref       *refdata.ReferenceData
	threshold float64
}

// New creates a Scorer. A non-positive threshold selects DefaultThreshold.
func New(ref *refdata.ReferenceData, threshold float64) *Scorer {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Scorer{ref: ref, threshold: threshold}
}

// Score rates text and records which signals fired.
func (s *Scorer) Score(text string) Result {
	var d model.PromotionalDetails
	points := 0

	d.MatchedKeywords = s.ref.PromoKeywords().All(text)
	points += keywordPoints * len(d.MatchedKeywords)

	if scan.HasLink(text) {
		d.HasURL = true
		points += urlPoints
	}
	if discountRe.MatchString(text) {
		d.HasDiscount = true
		points += discountPoints
	}
	if timeLimitRe.MatchString(text) {
		d.HasTimeLimit = true
		points += timeLimitPoints
	}
	if amountOfferRe.MatchString(text) {
		d.HasAmountOffer = true
		points += amountOfferPoints
	}

	if points > maxPoints {
		points = maxPoints
	}
	d.Score = float64(points) / 100

	return Result{IsPromotional: d.Score >= s.threshold, Details: d}
}
