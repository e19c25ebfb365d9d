package mock

import (
	"context"
	"sync"

	"github.com/fwojciec/resumekit"
)

var _ resumekit.KeyValueStore = (*KeyValueStore)(nil)

// KeyValueStore is a mock implementation of resumekit.KeyValueStore.
type KeyValueStore struct {
	GetFn   func(ctx context.Context, key string) (string, bool, error)
	SetFn   func(ctx context.Context, key, value string) error
	ClearFn func(ctx context.Context, key string) error
}

func (s *KeyValueStore) Get(ctx context.Context, key string) (string, bool, error) {
	return s.GetFn(ctx, key)
}

func (s *KeyValueStore) Set(ctx context.Context, key, value string) error {
	return s.SetFn(ctx, key, value)
}

func (s *KeyValueStore) Clear(ctx context.Context, key string) error {
	return s.ClearFn(ctx, key)
}

// NewMemoryStore returns a KeyValueStore backed by a map, with every
// function field wired. Tests can still replace individual functions.
func NewMemoryStore() *KeyValueStore {
	var mu sync.Mutex
	values := make(map[string]string)
	return &KeyValueStore{
		GetFn: func(_ context.Context, key string) (string, bool, error) {
			mu.Lock()
			defer mu.Unlock()
			v, ok := values[key]
			return v, ok, nil
		},
		SetFn: func(_ context.Context, key, value string) error {
			mu.Lock()
			defer mu.Unlock()
			values[key] = value
			return nil
		},
		ClearFn: func(_ context.Context, key string) error {
			mu.Lock()
			defer mu.Unlock()
			delete(values, key)
			return nil
		},
	}
}

var _ resumekit.RecordCodec = (*RecordCodec)(nil)

// RecordCodec is a mock implementation of resumekit.RecordCodec.
type RecordCodec struct {
	EncodeRecordFn func(r resumekit.RateLimitRecord) (string, error)
	DecodeRecordFn func(s string) (resumekit.RateLimitRecord, error)
}

func (c *RecordCodec) EncodeRecord(r resumekit.RateLimitRecord) (string, error) {
	return c.EncodeRecordFn(r)
}

func (c *RecordCodec) DecodeRecord(s string) (resumekit.RateLimitRecord, error) {
	return c.DecodeRecordFn(s)
}
