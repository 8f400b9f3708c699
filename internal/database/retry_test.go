package database_test

import (
	"context"
	"database/sql/driver"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/cadencia/cadencia-api/internal/database"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRetryer_Do(t *testing.T) {
	newRetryer := func(attempts int) *database.Retryer {
		return database.NewRetryer(attempts, time.Millisecond, zap.NewNop())
	}

	t.Run("success passes through", func(t *testing.T) {
		calls := 0
		err := newRetryer(3).Do(context.Background(), func() error {
			calls++
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries transient errors until success", func(t *testing.T) {
		calls := 0
		err := newRetryer(3).Do(context.Background(), func() error {
			calls++
			if calls < 3 {
				return driver.ErrBadConn
			}
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		calls := 0
		err := newRetryer(2).Do(context.Background(), func() error {
			calls++
			return driver.ErrBadConn
		})
		assert.ErrorIs(t, err, driver.ErrBadConn)
		assert.Equal(t, 2, calls)
	})

	t.Run("non-transient errors fail immediately", func(t *testing.T) {
		calls := 0
		boom := errors.New("duplicate key value violates unique constraint")
		err := newRetryer(5).Do(context.Background(), func() error {
			calls++
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 1, calls)
	})

	t.Run("cancelled context stops the loop", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := newRetryer(5).Do(ctx, func() error {
			return driver.ErrBadConn
		})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestIsTransientError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"bad conn", driver.ErrBadConn, true},
		{"eof", io.EOF, true},
		{"pq connection exception", &pq.Error{Code: "08006"}, true},
		{"pq admin shutdown", &pq.Error{Code: "57P01"}, true},
		{"pq unique violation", &pq.Error{Code: "23505"}, false},
		{"closed connection message", errors.New("driver: connection is closed"), true},
		{"logical error", errors.New("record not found"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, database.IsTransientError(tt.err))
		})
	}
}
