package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cleared-dev/smsledger/internal/model"
)

const (
	dateFormat = "2006-01-02"
	listSep    = ";"
)

// Save persists a classified message and routes it to the per-kind tables.
// It returns false when a message with the same fingerprint already exists.
func (s *Store) Save(ctx context.Context, c model.Classified) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("beginning save: %w", err)
	}
	defer rollback(tx)

	saved, err := insert(ctx, tx, c)
	if err != nil || !saved {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("committing save: %w", err)
	}
	return true, nil
}

// SaveAll persists recs in one transaction and reports how many were new
// and how many were duplicates.
func (s *Store) SaveAll(ctx context.Context, recs []model.Classified) (saved, duplicates int, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("beginning save: %w", err)
	}
	defer rollback(tx)

	for i, c := range recs {
		ok, err := insert(ctx, tx, c)
		if err != nil {
			return 0, 0, fmt.Errorf("record %d: %w", i, err)
		}
		if ok {
			saved++
		} else {
			duplicates++
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("committing save: %w", err)
	}
	return saved, duplicates, nil
}

// Seen reports whether a message with the fingerprint is stored.
func (s *Store) Seen(ctx context.Context, fingerprint string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM messages WHERE fingerprint = ?`, fingerprint).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking fingerprint: %w", err)
	}
	return n > 0, nil
}

func insert(ctx context.Context, tx *sql.Tx, c model.Classified) (bool, error) {
	recJSON, err := json.Marshal(c.Record)
	if err != nil {
		return false, fmt.Errorf("encoding record: %w", err)
	}

	res, err := tx.ExecContext(ctx, `
		INSERT OR IGNORE INTO messages (id, fingerprint, sender, body, received_at, message_type, risk_level, record_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Fingerprint, c.Message.Sender, c.Message.Body, nullTime(c.Message.ReceivedAt),
		string(c.Record.MessageType), string(c.Record.RiskLevel()), string(recJSON))
	if err != nil {
		return false, fmt.Errorf("inserting message: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("inserting message: %w", err)
	}
	if n == 0 {
		return false, nil
	}

	rec := c.Record
	if rec.Transaction != nil && rec.MessageType != model.MessagePromotional && rec.MessageType != model.MessageFiltered {
		if err := insertTransaction(ctx, tx, c.ID, rec.Transaction); err != nil {
			return false, err
		}
	}
	if rec.Suspicious() {
		if err := insertFraudLog(ctx, tx, c.ID, rec.Risk); err != nil {
			return false, err
		}
	}
	if rec.MessageType == model.MessagePromotional && rec.Promotional != nil {
		if err := insertPromotional(ctx, tx, c.ID, rec.Promotional); err != nil {
			return false, err
		}
	}
	return true, nil
}

func insertTransaction(ctx context.Context, tx *sql.Tx, id string, t *model.ExtractedTransaction) error {
	var amount, balance, date sql.NullString
	if t.Amount.Valid {
		amount = sql.NullString{String: t.Amount.Decimal.String(), Valid: true}
	}
	if t.Balance.Valid {
		balance = sql.NullString{String: t.Balance.Decimal.String(), Valid: true}
	}
	if t.Date != nil {
		date = sql.NullString{String: t.Date.Format(dateFormat), Valid: true}
	}

	_, err := tx.ExecContext(ctx, `
		INSERT INTO transactions (message_id, txn_type, amount, merchant, account, txn_date, balance, category, confidence)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, string(t.Type), amount, t.Merchant, t.Account, date, balance, t.Category, t.Confidence)
	if err != nil {
		return fmt.Errorf("inserting transaction: %w", err)
	}
	return nil
}

func insertFraudLog(ctx context.Context, tx *sql.Tx, id string, r *model.RiskAssessment) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO fraud_logs (message_id, risk_level, indicators, sender_valid, account_format_valid, transaction_seems_legitimate)
		VALUES (?, ?, ?, ?, ?, ?)`,
		id, string(r.RiskLevel), strings.Join(r.Tags(), listSep), r.SenderValid, r.AccountFormatValid, r.TransactionSeemsLegitimate)
	if err != nil {
		return fmt.Errorf("inserting fraud log: %w", err)
	}
	return nil
}

func insertPromotional(ctx context.Context, tx *sql.Tx, id string, p *model.PromotionalDetails) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO promotional_sms (message_id, score, matched_keywords, has_url, has_discount, has_time_limit, has_amount_offer)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, p.Score, strings.Join(p.MatchedKeywords, listSep), p.HasURL, p.HasDiscount, p.HasTimeLimit, p.HasAmountOffer)
	if err != nil {
		return fmt.Errorf("inserting promotional: %w", err)
	}
	return nil
}

// Records returns stored messages in insertion order.
func (s *Store) Records(ctx context.Context) ([]model.Classified, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, fingerprint, sender, body, received_at, record_json
		FROM messages ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("querying messages: %w", err)
	}
	defer rows.Close()

	var out []model.Classified
	for rows.Next() {
		var (
			c          model.Classified
			receivedAt sql.NullString
			recJSON    string
		)
		if err := rows.Scan(&c.ID, &c.Fingerprint, &c.Message.Sender, &c.Message.Body, &receivedAt, &recJSON); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		if receivedAt.Valid {
			ts, err := time.Parse(time.RFC3339Nano, receivedAt.String)
			if err != nil {
				return nil, fmt.Errorf("message %s: parsing received_at: %w", c.ID, err)
			}
			c.Message.ReceivedAt = ts
		}
		if err := json.Unmarshal([]byte(recJSON), &c.Record); err != nil {
			return nil, fmt.Errorf("message %s: decoding record: %w", c.ID, err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating messages: %w", err)
	}
	return out, nil
}

func nullTime(t time.Time) sql.NullString {
	if t.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: t.UTC().Format(time.RFC3339Nano), Valid: true}
}
