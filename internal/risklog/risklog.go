package risklog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cleared-dev/smsledger/internal/model"
)

// Entry is one row in the high-risk message log.
type Entry struct {
	Timestamp  time.Time
	Sender     string
	RiskLevel  model.RiskLevel
	Indicators []string
	Message    string
}

// Header is the CSV header for high-risk-sms.csv.
const Header = "timestamp,sender,risk_level,indicators,message"

const (
	numFields     = 5
	logDir        = "logs"
	logFile       = "logs/high-risk-sms.csv"
	tagSep        = ";"
	colTimestamp  = 0
	colSender     = 1
	colRiskLevel  = 2
	colIndicators = 3
	colMessage    = 4
)

// NewEntry builds a log entry for a classified message.
func NewEntry(ts time.Time, sender, message string, rec model.ClassifiedRecord) Entry {
	var tags []string
	if rec.Risk != nil {
		tags = rec.Risk.Tags()
	}
	return Entry{
		Timestamp:  ts.UTC(),
		Sender:     sender,
		RiskLevel:  rec.RiskLevel(),
		Indicators: tags,
		Message:    message,
	}
}

// ShouldLog reports whether a record belongs in the high-risk log.
func ShouldLog(rec model.ClassifiedRecord) bool {
	return rec.RiskLevel() == model.RiskHigh
}

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colSender] = e.Sender
	row[colRiskLevel] = string(e.RiskLevel)
	row[colIndicators] = strings.Join(e.Indicators, tagSep)
	row[colMessage] = e.Message
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	var tags []string
	if record[colIndicators] != "" {
		tags = strings.Split(record[colIndicators], tagSep)
	}

	return Entry{
		Timestamp:  ts,
		Sender:     record[colSender],
		RiskLevel:  model.RiskLevel(record[colRiskLevel]),
		Indicators: tags,
		Message:    record[colMessage],
	}, nil
}

// Path returns the log file location under root.
func Path(root string) string {
	return filepath.Join(root, logFile)
}

// Append writes entries to <root>/logs/high-risk-sms.csv, creating the file and header if needed.
func Append(root string, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}

	dir := filepath.Join(root, logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := Path(root)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening risk log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Read returns all entries from <root>/logs/high-risk-sms.csv.
// Returns an empty slice if the file does not exist.
func Read(root string) ([]Entry, error) {
	f, err := os.Open(Path(root))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening risk log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading risk log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
