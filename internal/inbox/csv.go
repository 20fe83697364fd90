package inbox

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cleared-dev/smsledger/internal/model"
)

// CSVParser parses "sender,message[,received_at]" files. A header row is
// optional.
type CSVParser struct{}

const (
	csvMinFields     = 2
	csvMaxFields     = 3
	csvColSender     = 0
	csvColMessage    = 1
	csvColReceivedAt = 2
)

// Format returns the parser name.
func (p *CSVParser) Format() string { return "csv" }

// Parse reads a message CSV.
func (p *CSVParser) Parse(r io.Reader) ([]model.Message, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading message CSV: %w", err)
	}

	if len(records) > 0 && isHeader(records[0]) {
		records = records[1:]
	}

	var msgs []model.Message
	for i, rec := range records {
		msg, err := parseCSVRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}

func isHeader(rec []string) bool {
	return len(rec) >= csvMinFields &&
		strings.EqualFold(strings.TrimSpace(rec[csvColSender]), "sender") &&
		strings.EqualFold(strings.TrimSpace(rec[csvColMessage]), "message")
}

func parseCSVRow(rec []string) (model.Message, error) {
	if len(rec) < csvMinFields || len(rec) > csvMaxFields {
		return model.Message{}, fmt.Errorf("expected %d or %d fields, got %d", csvMinFields, csvMaxFields, len(rec))
	}

	msg := model.Message{
		Sender: strings.TrimSpace(rec[csvColSender]),
		Body:   rec[csvColMessage],
	}
	if len(rec) == csvMaxFields {
		ts, err := parseTime(rec[csvColReceivedAt])
		if err != nil {
			return model.Message{}, err
		}
		msg.ReceivedAt = ts
	}
	return msg, nil
}

var timeLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"}

// parseTime accepts RFC3339, "YYYY-MM-DD HH:MM:SS" or a bare date. Empty
// input is the zero time.
func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("parsing received_at %q", s)
}
