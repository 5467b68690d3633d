package mockclickhouseconnection

import (
	"context"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/stretchr/testify/mock"
)

// Connection records calls made against the ClickHouse journal connection.
// Variadic query arguments are expanded, so expectations list them one by one
// after the query.
type Connection struct {
	mock.Mock
}

var _ clickhouse.Conn = &Connection{}

func withQuery(head []any, args []any) []any {
	return append(head, args...)
}

func (m *Connection) Exec(ctx context.Context, query string, args ...any) error {
	return m.Called(withQuery([]any{ctx, query}, args)...).Error(0)
}

func (m *Connection) PrepareBatch(ctx context.Context, query string) (driver.Batch, error) {
	mockArgs := m.Called(ctx, query)
	batch, _ := mockArgs.Get(0).(driver.Batch)
	return batch, mockArgs.Error(1)
}

func (m *Connection) AsyncInsert(ctx context.Context, query string, wait bool) error {
	return m.Called(ctx, query, wait).Error(0)
}

func (m *Connection) Close() error {
	return m.Called().Error(0)
}

func (m *Connection) Contributors() []string {
	contributors, _ := m.Called().Get(0).([]string)
	return contributors
}

func (m *Connection) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *Connection) ServerVersion() (*driver.ServerVersion, error) {
	mockArgs := m.Called()
	version, _ := mockArgs.Get(0).(*driver.ServerVersion)
	return version, mockArgs.Error(1)
}

// Select hands dest to the expectation so a Run callback can fill it.
func (m *Connection) Select(ctx context.Context, dest any, query string, args ...any) error {
	return m.Called(withQuery([]any{ctx, dest, query}, args)...).Error(0)
}

func (m *Connection) Query(ctx context.Context, query string, args ...any) (driver.Rows, error) {
	mockArgs := m.Called(withQuery([]any{ctx, query}, args)...)
	rows, _ := mockArgs.Get(0).(driver.Rows)
	return rows, mockArgs.Error(1)
}

func (m *Connection) QueryRow(ctx context.Context, query string, args ...any) driver.Row {
	row, _ := m.Called(withQuery([]any{ctx, query}, args)...).Get(0).(driver.Row)
	return row
}

func (m *Connection) Stats() driver.Stats {
	stats, _ := m.Called().Get(0).(driver.Stats)
	return stats
}
