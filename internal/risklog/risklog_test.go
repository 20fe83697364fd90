package risklog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/smsledger/internal/model"
)

var testTime = time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)

func testEntry() Entry {
	return Entry{
		Timestamp:  testTime,
		Sender:     "VM-KYCUPD",
		RiskLevel:  model.RiskHigh,
		Indicators: []string{"kyc_scam", "url_shortener"},
		Message:    "Update KYC immediately, click bit.ly/x",
	}
}

func TestAppend_NewFile(t *testing.T) {
	dir := t.TempDir()
	err := Append(dir, []Entry{testEntry()})
	require.NoError(t, err)

	entries, err := Read(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "VM-KYCUPD", entries[0].Sender)
}

func TestAppend_ExistingFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Append(dir, []Entry{testEntry()}))

	e2 := testEntry()
	e2.Sender = "AD-PRIZES"
	require.NoError(t, Append(dir, []Entry{e2}))

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "VM-KYCUPD", entries[0].Sender)
	assert.Equal(t, "AD-PRIZES", entries[1].Sender)

	data, err := os.ReadFile(Path(dir))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), Header))
}

func TestAppend_NothingToWrite(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Append(dir, nil))

	_, err := os.Stat(filepath.Join(dir, "logs"))
	assert.True(t, os.IsNotExist(err))
}

func TestRead_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	original := testEntry()
	require.NoError(t, Append(dir, []Entry{original}))

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, original, entries[0])
}

func TestRead_NoFile(t *testing.T) {
	entries, err := Read(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestRead_BadTimestamp(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "logs"), 0o755))
	content := Header + "\nyesterday,X,high,,msg\n"
	require.NoError(t, os.WriteFile(Path(dir), []byte(content), 0o644))

	_, err := Read(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

func TestNewEntry(t *testing.T) {
	rec := model.ClassifiedRecord{
		MessageType: model.MessageOther,
		Risk: &model.RiskAssessment{
			Suspicious: true,
			RiskLevel:  model.RiskHigh,
			Indicators: []model.Indicator{model.NewIndicator(model.IndicatorKYCScam, "update kyc")},
		},
	}

	e := NewEntry(testTime, "VM-X", "Update KYC", rec)
	assert.Equal(t, model.RiskHigh, e.RiskLevel)
	assert.Equal(t, []string{"kyc_scam"}, e.Indicators)
	assert.True(t, ShouldLog(rec))
	assert.False(t, ShouldLog(model.ClassifiedRecord{MessageType: model.MessageFiltered}))
}
