package extract

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/smsledger/internal/model"
	"github.com/cleared-dev/smsledger/internal/refdata"
)

func newTestExtractor() *Extractor {
	return New(refdata.Default())
}

func TestExtract_DebitWithBalance(t *testing.T) {
	e := newTestExtractor()

	txn := e.Extract("Your a/c XX1234 is debited with Rs.1500.00 for Swiggy order on 2023-07-15. Available balance: Rs.12,345.67.")
	assert.Equal(t, model.TxnDebit, txn.Type)
	require.True(t, txn.Amount.Valid)
	assert.Equal(t, "1500", txn.Amount.Decimal.String())
	assert.Equal(t, "Swiggy", txn.Merchant)
	assert.Equal(t, "xxxx1234", txn.Account)
	require.NotNil(t, txn.Date)
	assert.Equal(t, time.Date(2023, 7, 15, 0, 0, 0, 0, time.UTC), *txn.Date)
	require.True(t, txn.Balance.Valid)
	assert.Equal(t, "12345.67", txn.Balance.Decimal.String())
	assert.Equal(t, "Food Delivery", txn.Category)
	assert.Equal(t, 0.9, txn.Confidence)
}

func TestExtract_CreditCardSpend(t *testing.T) {
	e := newTestExtractor()

	txn := e.Extract("INR 689.00 spent using your HDFC Bank Credit Card XX1823 on 03-Apr-25 at MCDONALD'S. Avl Limit: INR 12,310.00")
	assert.Equal(t, model.TxnDebit, txn.Type)
	assert.Equal(t, "689", txn.Amount.Decimal.String())
	assert.Equal(t, "McDonald's", txn.Merchant)
	assert.Equal(t, "xxxx1823", txn.Account)
	require.NotNil(t, txn.Date)
	assert.Equal(t, time.Date(2025, 4, 3, 0, 0, 0, 0, time.UTC), *txn.Date)
	assert.False(t, txn.Balance.Valid)
	assert.Equal(t, "Fast Food", txn.Category)
}

func TestExtract_EMIDeducted(t *testing.T) {
	e := newTestExtractor()

	txn := e.Extract("EMI deducted for loan A/C 12345678. INR 8,750.00 debited from A/C XX3456 on 05-04-2025.")
	assert.Equal(t, model.TxnDebit, txn.Type)
	assert.Equal(t, "8750", txn.Amount.Decimal.String())
	assert.Equal(t, "xxxx3456", txn.Account)
	assert.Empty(t, txn.Merchant)
	assert.Equal(t, "Loan", txn.Category)
}

func TestExtract_BalanceOnly(t *testing.T) {
	e := newTestExtractor()

	txn := e.Extract("Available balance as of today is Rs.45,000.")
	assert.False(t, txn.Amount.Valid, "balance must not become the amount")
	require.True(t, txn.Balance.Valid)
	assert.Equal(t, "45000", txn.Balance.Decimal.String())
	assert.Equal(t, model.TxnUnknown, txn.Type)
	assert.Equal(t, model.UncategorizedCategory, txn.Category)
	assert.Equal(t, 0.2, txn.Confidence)
}

func TestExtract_Garbage(t *testing.T) {
	e := newTestExtractor()

	txn := e.Extract("\x00\x01 ??? ₹ ,,, 99/99/99")
	assert.Equal(t, model.TxnUnknown, txn.Type)
	assert.False(t, txn.Amount.Valid)
	assert.Nil(t, txn.Date)
	assert.Empty(t, txn.Merchant)
}

func TestDetectType(t *testing.T) {
	e := newTestExtractor()

	tests := []struct {
		name string
		text string
		want model.TxnType
	}{
		{"refund overrides card used", "Your card was used for Rs 200 at Amazon refund desk", model.TxnCredit},
		{"refund overrides card used for", "Refund of Rs 689 processed for the txn where your card was used for MCDONALD'S", model.TxnCredit},
		{"spent using card", "INR 50 spent using your ICICI Bank card XX1111", model.TxnDebit},
		{"emi deducted", "EMI of Rs 2,000 deducted for loan 1234", model.TxnDebit},
		{"refund forces credit", "Refund of Rs 499 processed, amount debited earlier", model.TxnCredit},
		{"debit before credit", "Rs 100 debited and Rs 100 credited", model.TxnDebit},
		{"credit", "Rs 5,000 credited to your a/c XX9999", model.TxnCredit},
		{"reversal", "Txn reversal of Rs 120 processed", model.TxnRefund},
		{"transfer", "Rs 500 sent to Ram via UPI", model.TxnTransfer},
		{"emi keyword", "Your EMI of Rs 3,200 is due on 05-06-2025", model.TxnEMI},
		{"unknown", "Available balance as of today is Rs.45,000.", model.TxnUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.DetectType(tt.text))
		})
	}
}

func TestAmount_Disambiguation(t *testing.T) {
	e := newTestExtractor()

	tests := []struct {
		name string
		text string
		typ  model.TxnType
		want string
	}{
		{"typed verb wins over larger", "Rs 250 debited. Cashback of Rs 1,000 credited later", model.TxnDebit, "250"},
		{"any verb", "Rs 75 paid; Rs 900 pending", model.TxnUnknown, "75"},
		{"largest fallback", "Bill Rs 120 and Rs 340", model.TxnUnknown, "340"},
		{"balance excluded even when larger", "Rs 500 debited. Avl Bal Rs 99,000", model.TxnDebit, "500"},
		{"limit excluded", "INR 10 spent. Avl Limit: INR 12,310.00", model.TxnDebit, "10"},
		{"balance suffix excluded", "Rs 80 debited. Rs 4,000 is your available balance", model.TxnDebit, "80"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Amount(tt.text, tt.typ)
			require.True(t, got.Valid)
			assert.Equal(t, tt.want, got.Decimal.String())
		})
	}
}

func TestAmount_OnlyBalance(t *testing.T) {
	e := newTestExtractor()
	assert.False(t, e.Amount("Your Avl Bal is Rs 1,234.00", model.TxnUnknown).Valid)
}

func TestMerchant(t *testing.T) {
	e := newTestExtractor()

	tests := []struct {
		name       string
		text       string
		want       string
		dictionary bool
	}{
		{"dictionary via at", "Rs 300 spent at ZOMATO on 01-02-2025", "Zomato", true},
		{"dictionary scan", "Your a/c is debited with Rs.1500.00 for Swiggy order", "Swiggy", true},
		{"canonical name", "INR 689.00 spent at MCDONALD'S. Avl Limit", "McDonald's", true},
		{"abbreviation kept literal", "Rs 999 paid at AMZN Mktp on 02-02-2025", "AMZN", true},
		{"regex fallback", "Rs 500 sent to Ram Kumar via UPI", "Ram Kumar", false},
		{"upi path", "Rs 250 debited UPI/CORNER BAKERY/123456", "CORNER BAKERY", false},
		{"rejects account", "Rs 100 transferred from A/C XX1234", "", false},
		{"rejects stop word", "Call 18001234 to report.", "", false},
		{"rejects phone number", "Rs 100 sent to 9876543210 on 01-01-2025", "", false},
		{"partial name not expanded", "Rs 2000 paid to Indian on 12-03-25", "Indian", false},
		{"rejects trailing verb", "Your current balance is Rs 5,000. Click bit.ly/abc to view", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Merchant(tt.text)
			assert.Equal(t, tt.want, got.Name)
			assert.Equal(t, tt.dictionary, got.Dictionary)
			if got.Name != "" {
				assert.True(t, Verify(tt.text, got.Name))
			}
		})
	}
}

func TestMerchant_NeverInvented(t *testing.T) {
	e := newTestExtractor()

	texts := []string{
		"Rs 1 debited at X",
		"Paid Rs 10 to ab",
		"Rs 999 paid at AMZN Mktp",
		"INR 5 spent at the Coffee Place, Bengaluru",
		"URGENT: Your account will be blocked. Update KYC immediately to avoid service disruption.",
		"Rs 2000 paid to Indian on 12-03-25",
		"Rs 450 paid at Bigbask on 01-03-25",
	}
	for _, text := range texts {
		got := e.Extract(text)
		if got.Merchant != "" {
			assert.True(t, containsName(text, got.Merchant), "%q not found in %q", got.Merchant, text)
		}
	}
}

func TestToLineMerchant(t *testing.T) {
	e := newTestExtractor()

	got := e.ToLineMerchant("Sent Rs.250.00\nFrom HDFC Bank A/C x1234\nTo RAHUL SHARMA\nOn 12/05/25")
	assert.Equal(t, "RAHUL SHARMA", got.Name)

	got = e.ToLineMerchant("Sent Rs.250.00\nTo 9876543210\nOn 12/05/25")
	assert.Empty(t, got.Name)

	got = e.ToLineMerchant("single line To Someone")
	assert.Empty(t, got.Name)
}

func TestVerify(t *testing.T) {
	assert.True(t, Verify("spent at MCDONALDS", "McDonald's"))
	assert.True(t, Verify("paid to amazon pay india", "Amazon Pay"))
	assert.True(t, Verify("AMAZON PAY INDIA", "Amazon"))
	assert.False(t, Verify("paid to amazon", "Flipkart"))
	assert.False(t, Verify("anything", ""))
}

func TestAccount(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Your a/c XX1234 is debited", "xxxx1234"},
		{"A/c no.XX5678 credited", "xxxx5678"},
		{"card ending with 9876 used", "xxxx9876"},
		{"Acct *12345 debited", "12345"},
		{"account 123 opened", "123"},
		{"loan A/C 12345678 closed", ""},
		{"Your account will be blocked", ""},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, Account(tt.text))
		})
	}
}

func TestDate(t *testing.T) {
	tests := []struct {
		name string
		text string
		want time.Time
	}{
		{"numeric", "debited on 31-05-2023.", time.Date(2023, 5, 31, 0, 0, 0, 0, time.UTC)},
		{"two digit year 2000s", "on 16/02/25", time.Date(2025, 2, 16, 0, 0, 0, 0, time.UTC)},
		{"two digit year 1900s", "on 16/02/99", time.Date(1999, 2, 16, 0, 0, 0, 0, time.UTC)},
		{"month abbreviation", "on 03-Apr-25 at", time.Date(2025, 4, 3, 0, 0, 0, 0, time.UTC)},
		{"long month", "on April 5, 2025", time.Date(2025, 4, 5, 0, 0, 0, 0, time.UTC)},
		{"iso", "for order on 2023-07-15.", time.Date(2023, 7, 15, 0, 0, 0, 0, time.UTC)},
		{"invalid numeric falls through", "ref 45-13-2024 on 05-Apr-2024", time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC)},
		{"feb 30 rejected", "on 30-02-2024 then 01-03-2024", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Date(tt.text)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}

	assert.Nil(t, Date("Valid for 10 minutes"))
}

func TestBalance(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Available balance: Rs.12,345.67.", "12345.67"},
		{"Avl Bal INR 500.50", "500.5"},
		{"Avl Bal: 2,000", "2000"},
		{"A/c balance is INR 2,000", "2000"},
		{"Bal: Rs 1,000", "1000"},
		{"Rs.45,000 is your available balance", "45000"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := Balance(tt.text)
			require.True(t, got.Valid)
			assert.Equal(t, tt.want, got.Decimal.String())
		})
	}

	assert.False(t, Balance("Available balance as of 15-07-2023 unavailable").Valid)
	assert.False(t, Balance(strings.Repeat("x", 100)).Valid)
}
