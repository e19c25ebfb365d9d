package resumekit

import (
	"context"
	"time"
)

// Login throttling parameters.
const (
	MaxAttempts     = 5
	AttemptWindow   = 5 * time.Minute
	LockoutDuration = 15 * time.Minute
)

// RateLimitKey is the storage key of the persisted RateLimitRecord.
const RateLimitKey = "login_rate_limit"

// RateLimitRecord is the persisted state of the login throttle.
//
// LockedUntil is set if and only if Attempts >= MaxAttempts. All methods
// are pure and take the current time explicitly.
type RateLimitRecord struct {
	Attempts      int
	LockedUntil   *time.Time
	LastAttemptAt time.Time
}

// Validate returns an error if the record breaks its invariants.
func (r RateLimitRecord) Validate() error {
	if r.Attempts < 0 {
		return Errorf(EINVALID, "attempts must not be negative")
	}
	if (r.LockedUntil != nil) != (r.Attempts >= MaxAttempts) {
		return Errorf(EINVALID, "lockout must be set exactly when attempts reach %d", MaxAttempts)
	}
	return nil
}

// IsZero reports whether the record holds no state worth persisting.
func (r RateLimitRecord) IsZero() bool {
	return r.Attempts == 0 && r.LockedUntil == nil
}

// Normalize applies the time-based transitions lazily: an expired lockout
// and an attempt window that elapsed without a lockout both collapse to a
// fresh record. purge reports that the stored record should be cleared.
func (r RateLimitRecord) Normalize(now time.Time) (_ RateLimitRecord, purge bool) {
	if r.LockedUntil != nil {
		if !now.Before(*r.LockedUntil) {
			return RateLimitRecord{}, true
		}
		return r, false
	}
	if r.Attempts > 0 && now.Sub(r.LastAttemptAt) > AttemptWindow {
		return RateLimitRecord{}, true
	}
	return r, false
}

// Locked reports whether a lockout is in effect at now.
func (r RateLimitRecord) Locked(now time.Time) bool {
	return r.LockedUntil != nil && now.Before(*r.LockedUntil)
}

// Fail records a failed attempt at now. Reaching MaxAttempts starts a
// lockout of LockoutDuration. A locked record is returned unchanged.
func (r RateLimitRecord) Fail(now time.Time) RateLimitRecord {
	r, _ = r.Normalize(now)
	if r.Locked(now) {
		return r
	}
	r.Attempts++
	r.LastAttemptAt = now
	if r.Attempts >= MaxAttempts {
		until := now.Add(LockoutDuration)
		r.LockedUntil = &until
	}
	return r
}

// RemainingAttempts returns how many failures are left before lockout.
func (r RateLimitRecord) RemainingAttempts(now time.Time) int {
	r, _ = r.Normalize(now)
	return max(0, MaxAttempts-r.Attempts)
}

// RemainingLockout returns the time left until the lockout ends.
func (r RateLimitRecord) RemainingLockout(now time.Time) time.Duration {
	if !r.Locked(now) {
		return 0
	}
	return r.LockedUntil.Sub(now)
}

// RemainingLockoutMinutes returns the lockout time left in whole minutes,
// rounded up.
func (r RateLimitRecord) RemainingLockoutMinutes(now time.Time) int {
	d := r.RemainingLockout(now)
	return int((d + time.Minute - 1) / time.Minute)
}

// Status summarizes the record at now.
func (r RateLimitRecord) Status(now time.Time) LoginStatus {
	n, _ := r.Normalize(now)
	return LoginStatus{
		Locked:            n.Locked(now),
		Attempts:          n.Attempts,
		RemainingAttempts: n.RemainingAttempts(now),
		RemainingLockout:  n.RemainingLockout(now),
		LockedUntil:       n.LockedUntil,
	}
}

// LoginStatus is a derived, never stored, view of the login throttle.
type LoginStatus struct {
	Locked            bool
	Attempts          int
	RemainingAttempts int
	RemainingLockout  time.Duration
	LockedUntil       *time.Time
}

// RemainingLockoutMinutes returns the lockout time left in whole minutes,
// rounded up.
func (s LoginStatus) RemainingLockoutMinutes() int {
	return int((s.RemainingLockout + time.Minute - 1) / time.Minute)
}

// KeyValueStore is durable storage of string values under named keys.
type KeyValueStore interface {
	// Get returns ok=false when the key does not exist.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Clear(ctx context.Context, key string) error
}

// RecordCodec serializes rate limit records for a KeyValueStore.
type RecordCodec interface {
	EncodeRecord(r RateLimitRecord) (string, error)

	// DecodeRecord returns EINVALID for malformed or inconsistent data.
	DecodeRecord(s string) (RateLimitRecord, error)
}
