package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cleared-dev/smsledger/internal/model"
)

// Header is the CSV export header.
const Header = "id,sender,message_type,txn_type,amount,merchant,account,date,balance,category,confidence,risk_level,suspicious,indicators,promo_score"

const (
	numFields     = 15
	dateFormat    = "2006-01-02"
	tagSep        = ";"
	colID         = 0
	colSender     = 1
	colType       = 2
	colTxnType    = 3
	colAmount     = 4
	colMerchant   = 5
	colAccount    = 6
	colDate       = 7
	colBalance    = 8
	colCategory   = 9
	colConfidence = 10
	colRiskLevel  = 11
	colSuspicious = 12
	colIndicators = 13
	colPromoScore = 14
)

// WriteCSV writes records to w (including header).
func WriteCSV(w io.Writer, recs []model.Classified) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, c := range recs {
		if err := cw.Write(MarshalRecord(c)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalRecord converts a classified message to a CSV row. Fields the
// record does not carry are left empty.
func MarshalRecord(c model.Classified) []string {
	row := make([]string, numFields)
	row[colID] = c.ID
	row[colSender] = c.Message.Sender
	row[colType] = string(c.Record.MessageType)

	if txn := c.Record.Transaction; txn != nil {
		row[colTxnType] = string(txn.Type)
		if txn.Amount.Valid {
			row[colAmount] = txn.Amount.Decimal.StringFixed(2)
		}
		row[colMerchant] = txn.Merchant
		row[colAccount] = txn.Account
		if txn.Date != nil {
			row[colDate] = txn.Date.Format(dateFormat)
		}
		if txn.Balance.Valid {
			row[colBalance] = txn.Balance.Decimal.StringFixed(2)
		}
		row[colCategory] = txn.Category
		row[colConfidence] = strconv.FormatFloat(txn.Confidence, 'f', 2, 64)
	}

	if risk := c.Record.Risk; risk != nil {
		row[colRiskLevel] = string(risk.RiskLevel)
		row[colSuspicious] = strconv.FormatBool(risk.Suspicious)
		row[colIndicators] = strings.Join(risk.Tags(), tagSep)
	}

	if p := c.Record.Promotional; p != nil {
		row[colPromoScore] = strconv.FormatFloat(p.Score, 'f', 2, 64)
	}
	return row
}
