package saves

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/preston-bernstein/league-sim-service/internal/domain/league"
	"github.com/preston-bernstein/league-sim-service/internal/logging"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 50 * time.Millisecond
)

type backoffFunc func(attempt int) time.Duration

// retryingStore wraps a Store and retries calls that fail with a busy
// database. Every other error is returned on the first attempt.
type retryingStore struct {
	Store
	logger      *slog.Logger
	maxAttempts int
	backoffFn   backoffFunc
}

// NewRetryingStore wraps inner with retries. If maxAttempts/backoff are <= 0, defaults are used.
func NewRetryingStore(inner Store, logger *slog.Logger, maxAttempts int, backoff time.Duration) Store {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if backoff <= 0 {
		backoff = defaultBackoff
	}
	return &retryingStore{
		Store:       inner,
		logger:      logger,
		maxAttempts: maxAttempts,
		backoffFn: func(attempt int) time.Duration {
			return time.Duration(attempt) * backoff
		},
	}
}

// IsBusy reports whether err is a transient lock conflict from SQLite.
func IsBusy(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func (r *retryingStore) Save(ctx context.Context, slot string, state league.State) (Revision, error) {
	var rev Revision
	err := r.retry(ctx, "save", slot, func() error {
		var err error
		rev, err = r.Store.Save(ctx, slot, state)
		return err
	})
	return rev, err
}

func (r *retryingStore) Load(ctx context.Context, slot string) (league.State, Revision, error) {
	var (
		state league.State
		rev   Revision
	)
	err := r.retry(ctx, "load", slot, func() error {
		var err error
		state, rev, err = r.Store.Load(ctx, slot)
		return err
	})
	return state, rev, err
}

func (r *retryingStore) List(ctx context.Context) ([]SlotInfo, error) {
	var out []SlotInfo
	err := r.retry(ctx, "list", "", func() error {
		var err error
		out, err = r.Store.List(ctx)
		return err
	})
	return out, err
}

func (r *retryingStore) retry(ctx context.Context, op, slot string, fn func() error) error {
	var lastErr error
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		err := fn()
		if err == nil || !IsBusy(err) {
			return err
		}
		lastErr = err

		if attempt == r.maxAttempts {
			break
		}

		logging.Warn(logging.FromContext(ctx, r.logger), "save store busy, retrying",
			"op", op, logging.FieldSlot, slot, "attempt", attempt, "max_attempts", r.maxAttempts, "err", err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.backoffFn(attempt)):
		}
	}

	logging.Warn(logging.FromContext(ctx, r.logger), "save store busy, giving up",
		"op", op, logging.FieldSlot, slot, "attempts", r.maxAttempts, "err", lastErr)
	return lastErr
}
