package inbox

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/cleared-dev/smsledger/internal/model"
)

// JSONLParser parses one {"sender","message","received_at"} object per line.
type JSONLParser struct{}

const maxLineBytes = 1 << 20

// Format returns the parser name.
func (p *JSONLParser) Format() string { return "jsonl" }

type jsonlRow struct {
	Sender     string  `json:"sender"`
	Message    *string `json:"message"`
	ReceivedAt string  `json:"received_at"`
}

// Parse reads a JSON-lines message file. Blank lines are skipped.
func (p *JSONLParser) Parse(r io.Reader) ([]model.Message, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var msgs []model.Message
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		var row jsonlRow
		if err := json.Unmarshal([]byte(line), &row); err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		if row.Message == nil {
			return nil, fmt.Errorf("line %d: missing message", n)
		}
		ts, err := parseTime(row.ReceivedAt)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		msgs = append(msgs, model.Message{
			Sender:     strings.TrimSpace(row.Sender),
			Body:       *row.Message,
			ReceivedAt: ts,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading message JSONL: %w", err)
	}
	return msgs, nil
}
