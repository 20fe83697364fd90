package refdata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/smsledger/internal/model"
)

func TestDefault_Compiles(t *testing.T) {
	rd := Default()
	require.NotNil(t, rd)
	assert.NotZero(t, rd.PromoKeywords().Len())
	assert.NotEmpty(t, rd.Merchants())
	assert.NotEmpty(t, rd.Banks())
}

func TestNew_InvalidFraudRule(t *testing.T) {
	tables := DefaultTables()
	tables.Fraud.Rules = append(tables.Fraud.Rules, FraudRule{Category: model.IndicatorKYCScam, Pattern: `(`})

	_, err := New(tables)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fraud.rules")
}

func TestNew_MissingRuleCategory(t *testing.T) {
	tables := DefaultTables()
	tables.Fraud.Rules = []FraudRule{{Pattern: `kyc`}}

	_, err := New(tables)
	require.ErrorIs(t, err, ErrInvalidTable)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Save(dir, DefaultTables()))

	for _, name := range []string{KeywordsFile, MerchantsFile, BanksFile} {
		_, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, "%s should exist", name)
	}

	rd, err := Load(dir)
	require.NoError(t, err)

	got, err := ReadTables(dir)
	require.NoError(t, err)
	assert.Equal(t, DefaultTables(), got)

	m, ok := rd.LookupMerchant("swiggy")
	require.True(t, ok)
	assert.Equal(t, "Swiggy", m.Name)
}

func TestLoad_MissingDir(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading keywords")
}

func TestLoad_MalformedKeywords(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Save(dir, DefaultTables()))
	require.NoError(t, os.WriteFile(filepath.Join(dir, KeywordsFile), []byte("prefilter: [unclosed"), 0o644))

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing keywords")
}

func TestMismatchedBanks(t *testing.T) {
	rd := Default()

	tests := []struct {
		name   string
		text   string
		sender string
		want   []string
	}{
		{"owner sender", "Rs 500 sent from HDFC Bank A/C *1234", "VM-HDFCBK", nil},
		{"other bank sender", "Rs 500 sent from HDFC Bank A/C *1234", "AX-AXISBK", []string{"HDFC"}},
		{"capitalised name", "Dear ICICI customer", "SBIINB", []string{"ICICI"}},
		{"lower-case name needs bank", "visit hdfc today", "SBIINB", nil},
		{"short name needs bank", "Reply YES to confirm", "HDFCBK", nil},
		{"short name with bank", "Your Yes Bank card", "HDFCBK", []string{"YES"}},
		{"domain is not a name", "visit www.hdfcbank.com", "SBIINB", nil},
		{"no sender", "Dear HDFC customer", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rd.MismatchedBanks(tt.text, tt.sender))
		})
	}
}

func TestLookupMerchant(t *testing.T) {
	rd := Default()

	tests := []struct {
		name      string
		candidate string
		want      string
		found     bool
	}{
		{"exact", "SWIGGY", "Swiggy", true},
		{"apostrophe", "MCDONALDS", "McDonald's", true},
		{"abbreviation", "AMZN", "Amazon", true},
		{"candidate contains known", "AMAZON PAY INDIA PVT LTD", "Amazon Pay", true},
		{"candidate not expanded", "Bigbask", "", false},
		{"prefix of known name", "Indian", "", false},
		{"unknown", "Ram Kumar", "", false},
		{"short unknown", "abc", "", false},
		{"empty", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := rd.LookupMerchant(tt.candidate)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, m.Name)
		})
	}
}

func TestFindMerchant(t *testing.T) {
	rd := Default()

	m, span, ok := rd.FindMerchant("INR 689.00 spent at MCDONALD'S. Avl Limit: INR 12,310.00")
	require.True(t, ok)
	assert.Equal(t, "McDonald's", m.Name)
	assert.Equal(t, "MCDONALD'S", span)

	m, _, ok = rd.FindMerchant("Paid via UPI to AMAZON PAY India")
	require.True(t, ok)
	assert.Equal(t, "Amazon Pay", m.Name)

	_, _, ok = rd.FindMerchant("Your OTP for login is 123456")
	assert.False(t, ok)
}

func TestBankForSender(t *testing.T) {
	rd := Default()

	for _, sender := range []string{"HDFCBK", "VK-HDFCBK", "ad-hdfcbk", "JM-HDFCBK-S"} {
		name, ok := rd.BankForSender(sender)
		assert.True(t, ok, sender)
		assert.Equal(t, "HDFC", name, sender)
	}

	_, ok := rd.BankForSender("VM-FREEGIFT")
	assert.False(t, ok)
	_, ok = rd.BankForSender("")
	assert.False(t, ok)
}

func TestCategories(t *testing.T) {
	rd := Default()

	cat, ok := rd.CategoryForName("Reliance Fresh")
	require.True(t, ok)
	assert.Equal(t, "Groceries", cat)

	cat, ok = rd.CategoryForText("Paid Rs 300 at City Pizza corner")
	require.True(t, ok)
	assert.Equal(t, "Fast Food", cat)

	_, ok = rd.CategoryForText("Available balance as of today is Rs.45,000.")
	assert.False(t, ok)
}

func TestFraudIndicators(t *testing.T) {
	rd := Default()

	got := rd.FraudIndicators("URGENT: Your account will be blocked. Update KYC immediately.")
	var cats []model.IndicatorCategory
	for _, ind := range got {
		cats = append(cats, ind.Category)
	}
	assert.Contains(t, cats, model.IndicatorKYCScam)
	assert.Contains(t, cats, model.IndicatorUrgentAction)
}

func TestFindShortener(t *testing.T) {
	rd := Default()

	l, ok := rd.FindShortener("Click here: bit.ly/upd8kyc")
	require.True(t, ok)
	assert.Equal(t, "bit.ly", l.Domain)

	_, ok = rd.FindShortener("visit www.hdfcbank.com")
	assert.False(t, ok)
}
