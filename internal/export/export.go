// Package export writes classified messages as CSV or JSON lines.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cleared-dev/smsledger/internal/model"
)

// ErrUnknownFormat is returned for export paths with an unsupported extension.
var ErrUnknownFormat = errors.New("unknown export format")

// WriteJSONL writes one JSON object per record.
func WriteJSONL(w io.Writer, recs []model.Classified) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for i, c := range recs {
		if err := enc.Encode(c); err != nil {
			return fmt.Errorf("writing record %d: %w", i, err)
		}
	}
	return nil
}

// WriteFile writes recs to path, choosing CSV or JSON lines by extension.
func WriteFile(path string, recs []model.Classified) error {
	var write func(io.Writer, []model.Classified) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		write = WriteCSV
	case ".jsonl", ".ndjson":
		write = WriteJSONL
	default:
		return fmt.Errorf("%s: %w", filepath.Base(path), ErrUnknownFormat)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating export dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export: %w", err)
	}
	if err := write(f, recs); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing export: %w", err)
	}
	return nil
}
