package refdata

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/cleared-dev/smsledger/internal/model"
)

const (
	merchantNumFields = 3
	colMerchantName   = 0
	colMerchantAbbr   = 1
	colMerchantCat    = 2

	bankNumFields = 2
	colBankName   = 0
	colBankIDs    = 1

	senderIDSep = ";"
)

// ReadMerchants reads merchants.csv.
func ReadMerchants(r io.Reader) ([]model.Merchant, error) {
	records, err := readRecords(r, merchantNumFields)
	if err != nil {
		return nil, fmt.Errorf("reading merchants CSV: %w", err)
	}

	var merchants []model.Merchant
	for i, rec := range records {
		m, err := UnmarshalMerchant(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		merchants = append(merchants, m)
	}
	return merchants, nil
}

// WriteMerchants writes merchants.csv.
func WriteMerchants(w io.Writer, merchants []model.Merchant) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"merchant_name", "abbreviation", "category"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, m := range merchants {
		if err := cw.Write(MarshalMerchant(m)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalMerchant converts a Merchant to a CSV row.
func MarshalMerchant(m model.Merchant) []string {
	row := make([]string, merchantNumFields)
	row[colMerchantName] = m.Name
	row[colMerchantAbbr] = m.Abbreviation
	row[colMerchantCat] = m.Category
	return row
}

// UnmarshalMerchant converts a CSV row to a Merchant.
func UnmarshalMerchant(record []string) (model.Merchant, error) {
	if len(record) != merchantNumFields {
		return model.Merchant{}, fmt.Errorf("expected %d fields, got %d", merchantNumFields, len(record))
	}
	name := strings.TrimSpace(record[colMerchantName])
	if name == "" {
		return model.Merchant{}, fmt.Errorf("%w: empty merchant_name", ErrInvalidTable)
	}
	return model.Merchant{
		Name:         name,
		Abbreviation: strings.TrimSpace(record[colMerchantAbbr]),
		Category:     strings.TrimSpace(record[colMerchantCat]),
	}, nil
}

// ReadBanks reads banks.csv.
func ReadBanks(r io.Reader) ([]model.Bank, error) {
	records, err := readRecords(r, bankNumFields)
	if err != nil {
		return nil, fmt.Errorf("reading banks CSV: %w", err)
	}

	var banks []model.Bank
	for i, rec := range records {
		b, err := UnmarshalBank(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		banks = append(banks, b)
	}
	return banks, nil
}

// WriteBanks writes banks.csv.
func WriteBanks(w io.Writer, banks []model.Bank) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"bank_name", "sender_ids"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, b := range banks {
		if err := cw.Write(MarshalBank(b)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalBank converts a Bank to a CSV row.
func MarshalBank(b model.Bank) []string {
	row := make([]string, bankNumFields)
	row[colBankName] = b.Name
	row[colBankIDs] = strings.Join(b.SenderIDs, senderIDSep)
	return row
}

// UnmarshalBank converts a CSV row to a Bank.
func UnmarshalBank(record []string) (model.Bank, error) {
	if len(record) != bankNumFields {
		return model.Bank{}, fmt.Errorf("expected %d fields, got %d", bankNumFields, len(record))
	}
	name := strings.TrimSpace(record[colBankName])
	if name == "" {
		return model.Bank{}, fmt.Errorf("%w: empty bank_name", ErrInvalidTable)
	}

	var ids []string
	for _, id := range strings.Split(record[colBankIDs], senderIDSep) {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return model.Bank{Name: name, SenderIDs: ids}, nil
}

// readRecords reads a CSV with a header row and returns the data rows.
func readRecords(r io.Reader, fields int) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = fields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) <= 1 {
		return nil, nil
	}
	return records[1:], nil
}
