package repositories

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// sqlRecorder matches when the actual statement contains the expected
// fragment, and keeps every matched statement for later assertions.
type sqlRecorder struct {
	mu         sync.Mutex
	statements []string
}

func (r *sqlRecorder) Match(expectedSQL, actualSQL string) error {
	if !strings.Contains(actualSQL, expectedSQL) {
		return fmt.Errorf("sql %q does not contain %q", actualSQL, expectedSQL)
	}
	r.mu.Lock()
	r.statements = append(r.statements, actualSQL)
	r.mu.Unlock()
	return nil
}

func (r *sqlRecorder) last(t *testing.T) string {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.statements, "no statement was executed")
	return r.statements[len(r.statements)-1]
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sqlRecorder) {
	t.Helper()

	rec := &sqlRecorder{}
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(rec))
	require.NoError(t, err)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		sqlDB.Close()
	})
	return db, mock, rec
}

// upsertAssignments returns the DO UPDATE SET part of an upsert statement.
func upsertAssignments(t *testing.T, statement string) string {
	t.Helper()
	_, set, found := strings.Cut(statement, "DO UPDATE SET")
	require.True(t, found, statement)
	set, _, _ = strings.Cut(set, "RETURNING")
	return set
}
