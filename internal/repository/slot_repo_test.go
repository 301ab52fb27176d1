package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newDryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=test dbname=test",
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	return db
}

// The booking critical section depends on FindByIDForUpdate actually taking a
// row lock; a SELECT without FOR UPDATE would let concurrent attempts
// interleave between the confirmed-booking check and the insert.
func TestFindByIDForUpdateLocksRow(t *testing.T) {
	db := newDryRunDB(t)

	var rendered string
	require.NoError(t, db.Callback().Query().After("gorm:query").Register("capture_sql", func(tx *gorm.DB) {
		rendered = tx.Statement.SQL.String()
	}))

	repo := NewSlotRepository(db)
	_, err := repo.FindByIDForUpdate(context.Background(), db, 1)
	require.NoError(t, err)

	assert.Contains(t, rendered, "FOR UPDATE")
	assert.Contains(t, rendered, `"slots"`)
}

func TestFindByIDDoesNotLock(t *testing.T) {
	db := newDryRunDB(t)

	var rendered string
	require.NoError(t, db.Callback().Query().After("gorm:query").Register("capture_sql", func(tx *gorm.DB) {
		rendered = tx.Statement.SQL.String()
	}))

	repo := NewSlotRepository(db)
	_, err := repo.FindByID(context.Background(), 1)
	require.NoError(t, err)

	assert.NotContains(t, rendered, "FOR UPDATE")
}
