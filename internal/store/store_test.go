package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/smsledger/internal/classify"
	"github.com/cleared-dev/smsledger/internal/id"
	"github.com/cleared-dev/smsledger/internal/model"
	"github.com/cleared-dev/smsledger/internal/refdata"
)

func createTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "data", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func classified(c *classify.Classifier, sender, body string) model.Classified {
	return model.Classified{
		ID:          id.NewRecordID(),
		Fingerprint: id.Fingerprint(sender, body),
		Message:     model.Message{Sender: sender, Body: body, ReceivedAt: time.Date(2025, 3, 12, 10, 15, 0, 0, time.UTC)},
		Record:      c.Classify(body, sender),
	}
}

var testMessages = []struct{ sender, body string }{
	{"HDFCBK", "Your a/c XX1234 is debited with Rs.1500.00 for Swiggy order on 2023-07-15. Available balance: Rs.12,345.67."},
	{"", "URGENT: Your account will be blocked. Update KYC immediately to avoid service disruption. Click here: bit.ly/upd8kyc"},
	{"", "Your OTP for login is 123456. Valid for 10 minutes."},
	{"", "SPECIAL OFFER! Get 50% off on your next order at Swiggy. Use code SAVE50. Offer valid till 31-05-2023."},
	{"", "Available balance as of today is Rs.45,000."},
}

func TestMigrate_Idempotent(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Migrate(ctx))
	v, err := s.version(ctx)
	require.NoError(t, err)
	assert.Equal(t, SchemaVersion, v)
}

func TestSave_AtMostOnce(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	c := classify.New(refdata.Default(), classify.Options{})

	rec := classified(c, testMessages[0].sender, testMessages[0].body)
	saved, err := s.Save(ctx, rec)
	require.NoError(t, err)
	assert.True(t, saved)

	again := classified(c, testMessages[0].sender, testMessages[0].body)
	saved, err = s.Save(ctx, again)
	require.NoError(t, err)
	assert.False(t, saved)

	seen, err := s.Seen(ctx, rec.Fingerprint)
	require.NoError(t, err)
	assert.True(t, seen)

	st, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Messages)
	assert.Equal(t, 1, st.Transactions)
}

func TestSaveAll_Routing(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	c := classify.New(refdata.Default(), classify.Options{})

	var recs []model.Classified
	for _, m := range testMessages {
		recs = append(recs, classified(c, m.sender, m.body))
	}
	recs = append(recs, classified(c, testMessages[0].sender, testMessages[0].body))

	saved, dupes, err := s.SaveAll(ctx, recs)
	require.NoError(t, err)
	assert.Equal(t, 5, saved)
	assert.Equal(t, 1, dupes)

	st, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, st.Messages)
	assert.Equal(t, 1, st.ByType[model.MessageTransaction])
	assert.Equal(t, 1, st.ByType[model.MessageOther])
	assert.Equal(t, 1, st.ByType[model.MessageFiltered])
	assert.Equal(t, 1, st.ByType[model.MessagePromotional])
	assert.Equal(t, 1, st.ByType[model.MessageBalanceUpdate])
	assert.Equal(t, 1, st.ByRisk[model.RiskHigh])

	// transaction, kyc (other) and balance update carry transactions.
	assert.Equal(t, 3, st.Transactions)
	assert.Equal(t, 1, st.Promotional)
	assert.GreaterOrEqual(t, st.FraudLogs, 1)
}

func TestRecords_RoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	c := classify.New(refdata.Default(), classify.Options{})

	orig := classified(c, testMessages[0].sender, testMessages[0].body)
	_, err := s.Save(ctx, orig)
	require.NoError(t, err)

	got, err := s.Records(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)

	r := got[0]
	assert.Equal(t, orig.ID, r.ID)
	assert.Equal(t, orig.Fingerprint, r.Fingerprint)
	assert.Equal(t, orig.Message, r.Message)
	assert.Equal(t, model.MessageTransaction, r.Record.MessageType)
	require.NotNil(t, r.Record.Transaction)
	assert.Equal(t, "Swiggy", r.Record.Transaction.Merchant)
	assert.True(t, orig.Record.Transaction.Amount.Decimal.Equal(r.Record.Transaction.Amount.Decimal))
	assert.True(t, orig.Record.Transaction.Balance.Decimal.Equal(r.Record.Transaction.Balance.Decimal))
	assert.Equal(t, model.RiskNone, r.Record.RiskLevel())
}

func TestRecords_FilteredStaysBare(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	c := classify.New(refdata.Default(), classify.Options{})

	_, err := s.Save(ctx, classified(c, "", testMessages[2].body))
	require.NoError(t, err)

	got, err := s.Records(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, model.ClassifiedRecord{MessageType: model.MessageFiltered}, got[0].Record)

	st, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, st.Transactions)
	assert.Zero(t, st.FraudLogs)
	assert.Zero(t, st.Promotional)
}

func TestOpen_EmptyPath(t *testing.T) {
	_, err := Open("")
	require.Error(t, err)
}
