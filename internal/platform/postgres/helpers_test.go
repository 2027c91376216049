package postgres_test

import (
	"database/sql"
	"database/sql/driver"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/phrazzld/vsconnect-api/internal/platform/logger"
	"github.com/stretchr/testify/require"
)

// arrayConverter lets []string arguments reach the mock untouched, the way
// the pgx stdlib driver accepts them for text[] columns.
type arrayConverter struct{}

func (arrayConverter) ConvertValue(v any) (driver.Value, error) {
	if s, ok := v.([]string); ok {
		return s, nil
	}
	return driver.DefaultParameterConverter.ConvertValue(v)
}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.ValueConverterOption(arrayConverter{}))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

func newQuietLogger() *slog.Logger {
	l, _ := logger.NewTestLogger()
	return l
}
