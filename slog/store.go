package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/resumekit"
)

// Ensure LoggingKeyValueStore implements resumekit.KeyValueStore.
var _ resumekit.KeyValueStore = (*LoggingKeyValueStore)(nil)

// LoggingKeyValueStore wraps a KeyValueStore with debug logging. Values
// are not logged.
type LoggingKeyValueStore struct {
	next   resumekit.KeyValueStore
	logger *slog.Logger
}

// NewLoggingKeyValueStore creates a new LoggingKeyValueStore.
func NewLoggingKeyValueStore(next resumekit.KeyValueStore, logger *slog.Logger) *LoggingKeyValueStore {
	return &LoggingKeyValueStore{next: next, logger: logger}
}

func (s *LoggingKeyValueStore) Get(ctx context.Context, key string) (value string, ok bool, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("kv get", "key", key, "found", ok, "duration", time.Since(begin), "err", err)
	}(time.Now())
	return s.next.Get(ctx, key)
}

func (s *LoggingKeyValueStore) Set(ctx context.Context, key, value string) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("kv set", "key", key, "bytes", len(value), "duration", time.Since(begin), "err", err)
	}(time.Now())
	return s.next.Set(ctx, key, value)
}

func (s *LoggingKeyValueStore) Clear(ctx context.Context, key string) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("kv clear", "key", key, "duration", time.Since(begin), "err", err)
	}(time.Now())
	return s.next.Clear(ctx, key)
}
