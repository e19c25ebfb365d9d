// Package guard throttles repeated failed sign-in attempts. State lives in
// a resumekit.KeyValueStore so lockouts survive restarts.
package guard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fwojciec/resumekit"
)

// Guard applies the resumekit.RateLimitRecord state machine to a stored
// record. Every read-modify-write runs under a mutex, and every mutation
// persists the full record.
type Guard struct {
	store resumekit.KeyValueStore
	codec resumekit.RecordCodec
	key   string
	now   func() time.Time
	mu    sync.Mutex
}

// Option configures a Guard.
type Option func(*Guard)

// WithClock overrides the clock.
func WithClock(now func() time.Time) Option {
	return func(g *Guard) {
		g.now = now
	}
}

// WithKey stores the record under key instead of resumekit.RateLimitKey.
func WithKey(key string) Option {
	return func(g *Guard) {
		g.key = key
	}
}

// NewGuard creates a Guard.
func NewGuard(store resumekit.KeyValueStore, codec resumekit.RecordCodec, opts ...Option) *Guard {
	g := &Guard{
		store: store,
		codec: codec,
		key:   resumekit.RateLimitKey,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Status returns the current throttle status.
func (g *Guard) Status(ctx context.Context) (resumekit.LoginStatus, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	rec, err := g.load(ctx, now)
	if err != nil {
		return resumekit.LoginStatus{}, err
	}
	return rec.Status(now), nil
}

// Check returns an ERATELIMITED error while a lockout is in effect.
func (g *Guard) Check(ctx context.Context) error {
	status, err := g.Status(ctx)
	if err != nil {
		return err
	}
	if status.Locked {
		return lockedError(status)
	}
	return nil
}

// RecordFailure counts a failed attempt and returns the resulting status.
// Failures while locked do not extend the lockout.
func (g *Guard) RecordFailure(ctx context.Context) (resumekit.LoginStatus, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	rec, err := g.load(ctx, now)
	if err != nil {
		return resumekit.LoginStatus{}, err
	}

	rec = rec.Fail(now)
	value, err := g.codec.EncodeRecord(rec)
	if err != nil {
		return resumekit.LoginStatus{}, fmt.Errorf("encode rate limit record: %w", err)
	}
	if err := g.store.Set(ctx, g.key, value); err != nil {
		return resumekit.LoginStatus{}, fmt.Errorf("save rate limit record: %w", err)
	}
	return rec.Status(now), nil
}

// RecordSuccess forgets all failed attempts.
func (g *Guard) RecordSuccess(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.store.Clear(ctx, g.key); err != nil {
		return fmt.Errorf("clear rate limit record: %w", err)
	}
	return nil
}

// Attempt runs submit unless locked out and records its outcome. An error
// with code EAUTH counts as a failed attempt; other errors are returned
// without being counted.
func (g *Guard) Attempt(ctx context.Context, submit func(ctx context.Context) error) error {
	if err := g.Check(ctx); err != nil {
		return err
	}

	err := submit(ctx)
	switch {
	case err == nil:
		return g.RecordSuccess(ctx)
	case resumekit.ErrorCode(err) == resumekit.EAUTH:
		if _, ferr := g.RecordFailure(ctx); ferr != nil {
			return ferr
		}
		return err
	default:
		return err
	}
}

// load reads the stored record and applies time-based transitions,
// clearing records that expired or cannot be decoded. Must be called with
// mu held.
func (g *Guard) load(ctx context.Context, now time.Time) (resumekit.RateLimitRecord, error) {
	value, ok, err := g.store.Get(ctx, g.key)
	if err != nil {
		return resumekit.RateLimitRecord{}, fmt.Errorf("load rate limit record: %w", err)
	}
	if !ok {
		return resumekit.RateLimitRecord{}, nil
	}

	rec, err := g.codec.DecodeRecord(value)
	purge := err != nil
	if err == nil {
		rec, purge = rec.Normalize(now)
	}
	if purge {
		if err := g.store.Clear(ctx, g.key); err != nil {
			return resumekit.RateLimitRecord{}, fmt.Errorf("clear rate limit record: %w", err)
		}
		return resumekit.RateLimitRecord{}, nil
	}
	return rec, nil
}

func lockedError(s resumekit.LoginStatus) error {
	minutes := s.RemainingLockoutMinutes()
	unit := "minutes"
	if minutes == 1 {
		unit = "minute"
	}
	return resumekit.Errorf(resumekit.ERATELIMITED, "Too many failed sign-in attempts. Try again in %d %s.", minutes, unit)
}
