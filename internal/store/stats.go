package store

import (
	"context"
	"fmt"

	"github.com/cleared-dev/smsledger/internal/model"
)

// Stats summarizes the stored messages.
type Stats struct {
	Messages     int
	ByType       map[model.MessageType]int
	ByRisk       map[model.RiskLevel]int
	Transactions int
	FraudLogs    int
	Promotional  int
}

// Stats counts stored messages per message type and risk level.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	st := Stats{
		ByType: make(map[model.MessageType]int),
		ByRisk: make(map[model.RiskLevel]int),
	}

	if err := s.groupCount(ctx, "message_type", func(k string, n int) {
		st.ByType[model.MessageType(k)] = n
		st.Messages += n
	}); err != nil {
		return Stats{}, err
	}
	if err := s.groupCount(ctx, "risk_level", func(k string, n int) {
		st.ByRisk[model.RiskLevel(k)] = n
	}); err != nil {
		return Stats{}, err
	}

	counts := []struct {
		table string
		dst   *int
	}{
		{"transactions", &st.Transactions},
		{"fraud_logs", &st.FraudLogs},
		{"promotional_sms", &st.Promotional},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+c.table).Scan(c.dst); err != nil {
			return Stats{}, fmt.Errorf("counting %s: %w", c.table, err)
		}
	}
	return st, nil
}

func (s *Store) groupCount(ctx context.Context, column string, fn func(key string, n int)) error {
	rows, err := s.db.QueryContext(ctx, "SELECT "+column+", COUNT(*) FROM messages GROUP BY "+column)
	if err != nil {
		return fmt.Errorf("counting by %s: %w", column, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			key string
			n   int
		)
		if err := rows.Scan(&key, &n); err != nil {
			return fmt.Errorf("scanning %s count: %w", column, err)
		}
		fn(key, n)
	}
	return rows.Err()
}
