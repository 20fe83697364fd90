package store

import (
	"context"
	"database/sql"
	"fmt"
)

// SchemaVersion is the schema version Migrate brings the database to.
const SchemaVersion = 2

type migration struct {
	version     int
	description string
	queries     []string
}

var migrations = []migration{
	{
		version:     1,
		description: "initial schema",
		queries: []string{
			`CREATE TABLE IF NOT EXISTS messages (
				id TEXT PRIMARY KEY,
				fingerprint TEXT UNIQUE NOT NULL,
				sender TEXT NOT NULL DEFAULT '',
				body TEXT NOT NULL,
				received_at TEXT,
				message_type TEXT NOT NULL,
				risk_level TEXT NOT NULL,
				record_json TEXT NOT NULL,
				classified_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE TABLE IF NOT EXISTS transactions (
				message_id TEXT PRIMARY KEY,
				txn_type TEXT NOT NULL,
				amount TEXT,
				merchant TEXT,
				account TEXT,
				txn_date TEXT,
				balance TEXT,
				category TEXT NOT NULL,
				confidence REAL NOT NULL DEFAULT 0,
				FOREIGN KEY (message_id) REFERENCES messages(id)
			)`,
			`CREATE TABLE IF NOT EXISTS fraud_logs (
				message_id TEXT PRIMARY KEY,
				risk_level TEXT NOT NULL,
				indicators TEXT NOT NULL,
				sender_valid INTEGER NOT NULL,
				account_format_valid INTEGER NOT NULL,
				transaction_seems_legitimate INTEGER NOT NULL,
				FOREIGN KEY (message_id) REFERENCES messages(id)
			)`,
			`CREATE TABLE IF NOT EXISTS promotional_sms (
				message_id TEXT PRIMARY KEY,
				score REAL NOT NULL,
				matched_keywords TEXT NOT NULL,
				has_url INTEGER NOT NULL,
				has_discount INTEGER NOT NULL,
				has_time_limit INTEGER NOT NULL,
				has_amount_offer INTEGER NOT NULL,
				FOREIGN KEY (message_id) REFERENCES messages(id)
			)`,
		},
	},
	{
		version:     2,
		description: "index lookups by type and risk",
		queries: []string{
			`CREATE INDEX IF NOT EXISTS idx_messages_type ON messages(message_type)`,
			`CREATE INDEX IF NOT EXISTS idx_messages_risk ON messages(risk_level)`,
			`CREATE INDEX IF NOT EXISTS idx_transactions_merchant ON transactions(merchant)`,
		},
	},
}

// Migrate applies pending migrations.
func (s *Store) Migrate(ctx context.Context) error {
	current, err := s.version(ctx)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		if err := s.apply(ctx, m); err != nil {
			return err
		}
	}

	final, err := s.version(ctx)
	if err != nil {
		return err
	}
	if final != SchemaVersion {
		return fmt.Errorf("schema version mismatch: expected %d, got %d", SchemaVersion, final)
	}
	return nil
}

func (s *Store) version(ctx context.Context) (int, error) {
	var v int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&v); err != nil {
		return 0, fmt.Errorf("reading schema version: %w", err)
	}
	return v, nil
}

func (s *Store) apply(ctx context.Context, m migration) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning migration %d: %w", m.version, err)
	}
	defer rollback(tx)

	for _, q := range m.queries {
		if _, err := tx.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("migration %d (%s): %w", m.version, m.description, err)
		}
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", m.version)); err != nil {
		return fmt.Errorf("updating schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing migration %d: %w", m.version, err)
	}
	return nil
}

// rollback is a no-op after Commit.
func rollback(tx *sql.Tx) {
	_ = tx.Rollback()
}
