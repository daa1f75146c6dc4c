// internal/database/connection_test.go
package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db
}

func TestWithTransactionRetriesConflicts(t *testing.T) {
	db := openTestDB(t)

	attempts := 0
	err := WithTransaction(db, func(tx *gorm.DB) error {
		attempts++
		if attempts < 3 {
			return ErrTransactionConflict
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestWithTransactionExhaustsRetries(t *testing.T) {
	db := openTestDB(t)

	attempts := 0
	err := WithTransaction(db, func(tx *gorm.DB) error {
		attempts++
		return ErrTransactionConflict
	})

	require.Error(t, err)
	assert.Equal(t, maxTxAttempts, attempts)
	// the sentinel survives the exhaustion wrapper
	assert.ErrorIs(t, err, ErrTransactionConflict)
}

func TestWithTransactionDoesNotRetryOtherErrors(t *testing.T) {
	db := openTestDB(t)

	boom := errors.New("boom")
	attempts := 0
	err := WithTransaction(db, func(tx *gorm.DB) error {
		attempts++
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, attempts)
}

func TestWithTransactionSucceedsFirstTry(t *testing.T) {
	db := openTestDB(t)

	attempts := 0
	err := WithTransaction(db, func(tx *gorm.DB) error {
		attempts++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, attempts)
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, isRetryable(ErrTransactionConflict))
	assert.True(t, isRetryable(fmt.Errorf("wrapped: %w", ErrTransactionConflict)))
	assert.True(t, isRetryable(&pq.Error{Code: "40001"}))
	assert.True(t, isRetryable(&pq.Error{Code: "40P01"}))
	assert.False(t, isRetryable(&pq.Error{Code: "23505"}))
	assert.False(t, isRetryable(errors.New("boom")))
	assert.False(t, isRetryable(nil))
}
