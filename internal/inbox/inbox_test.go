package inbox

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVParser_Parse(t *testing.T) {
	data := "sender,message,received_at\n" +
		"HDFCBK,\"Rs 500 debited from a/c XX1234, avl bal Rs 1,000\",2025-03-12T10:15:00Z\n" +
		"AX-AMAZON,SPECIAL OFFER! 50% off,\n" +
		"ICICIB,Your OTP is 123456\n"

	p := &CSVParser{}
	msgs, err := p.Parse(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, msgs, 3)

	assert.Equal(t, "HDFCBK", msgs[0].Sender)
	assert.Equal(t, "Rs 500 debited from a/c XX1234, avl bal Rs 1,000", msgs[0].Body)
	assert.Equal(t, time.Date(2025, 3, 12, 10, 15, 0, 0, time.UTC), msgs[0].ReceivedAt)

	assert.True(t, msgs[1].ReceivedAt.IsZero())
	assert.Equal(t, "ICICIB", msgs[2].Sender)
}

func TestCSVParser_NoHeader(t *testing.T) {
	p := &CSVParser{}
	msgs, err := p.Parse(strings.NewReader("HDFCBK,Rs 500 debited\n"))
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "Rs 500 debited", msgs[0].Body)
}

func TestCSVParser_EmptyFile(t *testing.T) {
	p := &CSVParser{}
	msgs, err := p.Parse(strings.NewReader("sender,message\n"))
	require.NoError(t, err)
	assert.Nil(t, msgs)
}

func TestCSVParser_BadRow(t *testing.T) {
	p := &CSVParser{}
	_, err := p.Parse(strings.NewReader("sender,message\nonly-one-field\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 1")
}

func TestCSVParser_BadTime(t *testing.T) {
	p := &CSVParser{}
	_, err := p.Parse(strings.NewReader("HDFCBK,hello,yesterday\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing received_at")
}

func TestJSONLParser_Parse(t *testing.T) {
	data := `{"sender":"HDFCBK","message":"Rs 500 debited","received_at":"2025-03-12 10:15:00"}

{"message":"Available balance as of today is Rs.45,000."}
`
	p := &JSONLParser{}
	msgs, err := p.Parse(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, msgs, 2)

	assert.Equal(t, "HDFCBK", msgs[0].Sender)
	assert.Equal(t, 10, msgs[0].ReceivedAt.Hour())
	assert.Empty(t, msgs[1].Sender)
	assert.Equal(t, "Available balance as of today is Rs.45,000.", msgs[1].Body)
}

func TestJSONLParser_Errors(t *testing.T) {
	p := &JSONLParser{}

	_, err := p.Parse(strings.NewReader("{\"sender\":\"X\",\"message\":\"ok\"}\nnot json\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")

	_, err = p.Parse(strings.NewReader(`{"sender":"X"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing message")
}

func TestRegistry_GetUnknown(t *testing.T) {
	r := NewRegistry()
	assert.Nil(t, r.Get("nonexistent"))
}

func TestRegistry_CaseInsensitive(t *testing.T) {
	r := DefaultRegistry()
	assert.NotNil(t, r.Get("CSV"))
	assert.NotNil(t, r.Get("JsonL"))
	assert.ElementsMatch(t, []string{"csv", "jsonl"}, r.Formats())
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	r := NewRegistry()
	r.Register(&CSVParser{})
	assert.Panics(t, func() { r.Register(&CSVParser{}) })
}

func TestRegistry_ReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sms.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(`{"sender":"HDFCBK","message":"hi"}`+"\n"), 0o644))

	msgs, err := DefaultRegistry().ReadFile(path)
	require.NoError(t, err)
	require.Len(t, msgs, 1)

	_, err = DefaultRegistry().ReadFile(filepath.Join(dir, "sms.xml"))
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}

func TestScan_FindsMessageFiles(t *testing.T) {
	dir := t.TempDir()
	inboxDir := filepath.Join(dir, "inbox")
	require.NoError(t, os.MkdirAll(filepath.Join(inboxDir, "processed"), 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(inboxDir, "a.csv"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(inboxDir, "b.jsonl"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(inboxDir, "notes.txt"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(inboxDir, "processed", "old.csv"), []byte("data"), 0o644))

	files, err := DefaultRegistry().Scan(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "a.csv", files[0].Name)
	assert.Equal(t, "csv", files[0].Format)
	assert.Equal(t, "b.jsonl", files[1].Name)
	assert.Equal(t, int64(4), files[1].Size)
}

func TestScan_EmptyDir(t *testing.T) {
	files, err := DefaultRegistry().Scan(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, files)
}

func TestMarkProcessed(t *testing.T) {
	dir := t.TempDir()
	inboxDir := filepath.Join(dir, "inbox")
	require.NoError(t, os.MkdirAll(inboxDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(inboxDir, "a.csv"), []byte("data"), 0o644))

	require.NoError(t, MarkProcessed(dir, "a.csv"))

	_, err := os.Stat(filepath.Join(inboxDir, "a.csv"))
	assert.True(t, os.IsNotExist(err))

	_, err = os.Stat(filepath.Join(dir, "inbox", "processed", "a.csv"))
	assert.NoError(t, err)
}
