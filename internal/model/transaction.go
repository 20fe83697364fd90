package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TxnType is the direction of money movement reported by a message.
type TxnType string

const (
	TxnDebit       TxnType = "debit"
	TxnCredit      TxnType = "credit"
	TxnRefund      TxnType = "refund"
	TxnTransfer    TxnType = "transfer"
	TxnEMI         TxnType = "emi"
	TxnUnknown     TxnType = "unknown"
	TxnPromotional TxnType = "promotional"
)

// UncategorizedCategory is the category of a transaction no keyword matched.
const UncategorizedCategory = "Uncategorized"

// ExtractedTransaction holds the fields pulled out of a transaction message.
// Every field is independently optional: empty strings, invalid decimals and
// nil dates mean "not found".
type ExtractedTransaction struct {
	Type       TxnType             `json:"type"`
	Amount     decimal.NullDecimal `json:"amount"`
	Merchant   string              `json:"merchant,omitempty"`
	Account    string              `json:"account,omitempty"` // masked, e.g. "xxxx1234"
	Date       *time.Time          `json:"date,omitempty"`
	Balance    decimal.NullDecimal `json:"balance"`
	Category   string              `json:"category"`
	Confidence float64             `json:"confidence"`
}

// HasAmount reports whether a positive amount was extracted.
func (t ExtractedTransaction) HasAmount() bool {
	return t.Amount.Valid && t.Amount.Decimal.IsPositive()
}
