package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRiskLevel_Rank(t *testing.T) {
	assert.Equal(t, 0, RiskNone.Rank())
	assert.Equal(t, 1, RiskLow.Rank())
	assert.Equal(t, 2, RiskMedium.Rank())
	assert.Equal(t, 3, RiskHigh.Rank())
	assert.Equal(t, 0, RiskLevel("bogus").Rank())
}

func TestRiskLevel_AtLeast(t *testing.T) {
	assert.Equal(t, RiskMedium, RiskNone.AtLeast(RiskMedium))
	assert.Equal(t, RiskMedium, RiskLow.AtLeast(RiskMedium))
	assert.Equal(t, RiskHigh, RiskHigh.AtLeast(RiskMedium))
	assert.Equal(t, RiskNone, RiskLevel("").AtLeast(RiskNone))
}

func TestRiskAssessment_Tags(t *testing.T) {
	a := RiskAssessment{Indicators: []Indicator{
		NewIndicator(IndicatorKYCScam, "update kyc"),
		{Category: IndicatorURL, Tag: "url_shortener", Match: "bit.ly/x"},
	}}

	assert.Equal(t, []string{"kyc_scam", "url_shortener"}, a.Tags())
	assert.True(t, a.HasTag("url_shortener"))
	assert.False(t, a.HasTag("url"))
	assert.True(t, a.Has(IndicatorURL))
	assert.False(t, a.Has(IndicatorPrizeScam))
}

func TestClassifiedRecord_Filtered(t *testing.T) {
	rec := ClassifiedRecord{MessageType: MessageFiltered}

	assert.False(t, rec.Suspicious())
	assert.Equal(t, RiskNone, rec.RiskLevel())
}
