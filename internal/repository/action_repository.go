package repository

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"

	"global-terrorism-dashboard/internal/model"
)

// ActionRepository defines database operations for the action journal.
type ActionRepository interface {
	// CreateBatch inserts entries in one ClickHouse batch.
	CreateBatch(ctx context.Context, entries []model.JournalEntry) error

	// CountByAction returns how many entries of each action type are stored.
	CountByAction(ctx context.Context) (map[string]uint64, error)
}

type actionRepository struct {
	conn clickhouse.Conn
}

// NewActionRepository creates an ActionRepository backed by ClickHouse.
func NewActionRepository(conn clickhouse.Conn) ActionRepository {
	return &actionRepository{conn: conn}
}

const insertActionsQuery = `INSERT INTO dashboard_actions (id, action, event_ids, errors, dispatched_at)`

const countByActionQuery = `SELECT action, count() AS total FROM dashboard_actions GROUP BY action ORDER BY action`

func (r *actionRepository) CreateBatch(ctx context.Context, entries []model.JournalEntry) error {
	if len(entries) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertActionsQuery)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, entry := range entries {
		err := batch.Append(
			entry.ID,
			entry.Action,
			nonNilInts(entry.EventIDs),
			nonNilStrings(entry.Errors),
			entry.DispatchedAt.UTC(),
		)
		if err != nil {
			_ = batch.Abort()
			return fmt.Errorf("append journal entry: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}
	return nil
}

type actionCount struct {
	Action string `ch:"action"`
	Total  uint64 `ch:"total"`
}

func (r *actionRepository) CountByAction(ctx context.Context) (map[string]uint64, error) {
	var rows []actionCount
	if err := r.conn.Select(ctx, &rows, countByActionQuery); err != nil {
		return nil, fmt.Errorf("count actions: %w", err)
	}

	counts := make(map[string]uint64, len(rows))
	for _, row := range rows {
		counts[row.Action] = row.Total
	}
	return counts, nil
}

// ClickHouse rejects nil for Array columns.
func nonNilInts(v []int64) []int64 {
	if v == nil {
		return []int64{}
	}
	return v
}

func nonNilStrings(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
