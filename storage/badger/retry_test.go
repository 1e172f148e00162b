package badger

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
)

func TestRetryOnConflict(t *testing.T) {
	t.Run("succeeds after conflicts", func(t *testing.T) {
		attempts := 0
		err := retryOnConflict(context.Background(), func() error {
			attempts++
			if attempts < 3 {
				return badger.ErrConflict
			}
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 3, attempts)
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		attempts := 0
		err := retryOnConflict(context.Background(), func() error {
			attempts++
			return fmt.Errorf("commit: %w", badger.ErrConflict)
		})
		assert.ErrorIs(t, err, badger.ErrConflict)
		assert.Equal(t, conflictMaxAttempts, attempts)
	})

	t.Run("does not retry other errors", func(t *testing.T) {
		boom := errors.New("boom")
		attempts := 0
		err := retryOnConflict(context.Background(), func() error {
			attempts++
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 1, attempts)
	})

	t.Run("respects cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		attempts := 0
		err := retryOnConflict(ctx, func() error {
			attempts++
			return nil
		})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 0, attempts)
	})
}

func TestRetryWithBackoff_MinimumOneAttempt(t *testing.T) {
	attempts := 0
	err := retryWithBackoff(context.Background(), func() error {
		attempts++
		return badger.ErrConflict
	}, isConflict, 0, time.Millisecond)
	assert.ErrorIs(t, err, badger.ErrConflict)
	assert.Equal(t, 1, attempts)
}
