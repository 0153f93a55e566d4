package repositories

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillbridge/readiness-api/internal/models"
)

func TestPlanCreateIfAbsent(t *testing.T) {
	ctx := context.Background()

	t.Run("insert is a no-op when a plan already exists", func(t *testing.T) {
		db, mock, rec := newMockDB(t)
		// A conflicting row returns nothing; that is not an error.
		mock.ExpectQuery(`INSERT INTO "plans"`).WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}))

		err := NewPlanRepository(db).CreateIfAbsent(ctx, models.NewPlan(uuid.New()))

		require.NoError(t, err)
		stmt := rec.last(t)
		assert.Contains(t, stmt, `ON CONFLICT ("profile_uuid") DO NOTHING`)
		assert.NotContains(t, stmt, "DO UPDATE")
	})
}

func TestPlanSaveProgress(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	progress := models.Progress{"day1": {true, true, false}}

	t.Run("matching version is written", func(t *testing.T) {
		db, mock, rec := newMockDB(t)
		mock.ExpectExec(`UPDATE "plans" SET`).
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), id, 4).
			WillReturnResult(sqlmock.NewResult(0, 1))

		saved, err := NewPlanRepository(db).SaveProgress(ctx, id, progress, 4)

		require.NoError(t, err)
		assert.True(t, saved)
		stmt := rec.last(t)
		assert.Contains(t, stmt, `"version"=version + 1`)
		assert.Contains(t, stmt, "WHERE profile_uuid = $3 AND version = $4")
	})

	t.Run("stale version reports a lost race", func(t *testing.T) {
		db, mock, _ := newMockDB(t)
		mock.ExpectExec(`UPDATE "plans" SET`).WillReturnResult(sqlmock.NewResult(0, 0))

		saved, err := NewPlanRepository(db).SaveProgress(ctx, id, progress, 3)

		require.NoError(t, err)
		assert.False(t, saved)
	})

	t.Run("store failure", func(t *testing.T) {
		db, mock, _ := newMockDB(t)
		mock.ExpectExec(`UPDATE "plans" SET`).WillReturnError(assert.AnError)

		saved, err := NewPlanRepository(db).SaveProgress(ctx, id, progress, 3)

		require.Error(t, err)
		assert.False(t, saved)
	})
}

func TestPlanUpdateCurrentDay(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("missing plan", func(t *testing.T) {
		db, mock, _ := newMockDB(t)
		mock.ExpectExec(`UPDATE "plans" SET`).WillReturnResult(sqlmock.NewResult(0, 0))

		err := NewPlanRepository(db).UpdateCurrentDay(ctx, id, 5)

		assert.ErrorIs(t, err, ErrNotFound)
	})
}
