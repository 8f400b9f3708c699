package database

import (
	"context"
	"database/sql/driver"
	"errors"
	"io"
	"net"
	"strings"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// Retryer re-executes store operations that fail on transient connection
// errors, with bounded exponential backoff. It wraps repository calls from the
// outside so the domain rules never see a retry.
type Retryer struct {
	attempts  int
	baseDelay time.Duration
	logger    *zap.Logger
}

// NewRetryer creates a Retryer. attempts is the total number of tries;
// values below 1 disable retrying.
func NewRetryer(attempts int, baseDelay time.Duration, logger *zap.Logger) *Retryer {
	if attempts < 1 {
		attempts = 1
	}
	if baseDelay <= 0 {
		baseDelay = 100 * time.Millisecond
	}
	return &Retryer{attempts: attempts, baseDelay: baseDelay, logger: logger}
}

// Do runs op, retrying on transient connection failures. Non-transient errors
// propagate immediately. The delay doubles per attempt starting at baseDelay.
func (r *Retryer) Do(ctx context.Context, op func() error) error {
	var err error
	delay := r.baseDelay
	for attempt := 1; ; attempt++ {
		err = op()
		if err == nil || !IsTransientError(err) || attempt >= r.attempts {
			return err
		}

		r.logger.Warn("transient database error, retrying",
			zap.Error(err),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", r.attempts),
			zap.Duration("delay", delay),
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
}

// Postgres classes 08 (connection exception) and 57 (operator intervention,
// e.g. admin shutdown) indicate a connection-level failure worth retrying.
var transientPqClasses = map[string]bool{
	"08": true,
	"57": true,
}

var transientMessages = []string{
	"connection closed",
	"connection is closed",
	"server closed the connection",
	"connection terminated",
	"broken pipe",
	"connection reset",
	"connection refused",
}

// IsTransientError reports whether err is a connection-level failure that a
// fresh attempt could succeed on. Constraint violations, not-found and other
// logical errors are never transient.
func IsTransientError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, io.EOF) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return transientPqClasses[string(pqErr.Code.Class())]
	}

	msg := strings.ToLower(err.Error())
	for _, candidate := range transientMessages {
		if strings.Contains(msg, candidate) {
			return true
		}
	}

	return false
}
