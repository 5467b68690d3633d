package db

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"
)

const createActionsTable = `
CREATE TABLE IF NOT EXISTS dashboard_actions
(
	id              UUID,
	action          LowCardinality(String),
	event_ids       Array(Int64),
	errors          Array(String),
	dispatched_at   DateTime64(3, 'UTC'),
	ingested_at     DateTime DEFAULT now()
)
ENGINE = MergeTree
PARTITION BY toYYYYMM(dispatched_at)
ORDER BY (action, dispatched_at, id)
SETTINGS index_granularity = 8192;
`

// RunMigrations ensures the journal table exists. This keeps the service
// self-contained without an external migration step.
func RunMigrations(ctx context.Context, conn clickhouse.Conn) error {
	if err := conn.Exec(ctx, createActionsTable); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
