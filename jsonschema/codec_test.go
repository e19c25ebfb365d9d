package jsonschema_test

import (
	"testing"
	"time"

	"github.com/fwojciec/resumekit"
	"github.com/fwojciec/resumekit/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCodec(t *testing.T) *jsonschema.Codec {
	t.Helper()
	c, err := jsonschema.NewCodec()
	require.NoError(t, err)
	return c
}

func TestCodec_EncodeRecord(t *testing.T) {
	t.Parallel()

	c := newCodec(t)
	last := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	t.Run("writes null lockedUntil while open", func(t *testing.T) {
		t.Parallel()

		s, err := c.EncodeRecord(resumekit.RateLimitRecord{Attempts: 2, LastAttemptAt: last})

		require.NoError(t, err)
		assert.JSONEq(t, `{"attempts":2,"lockedUntil":null,"lastAttempt":1748768400000}`, s)
	})

	t.Run("writes epoch milliseconds when locked", func(t *testing.T) {
		t.Parallel()

		until := last.Add(resumekit.LockoutDuration)
		s, err := c.EncodeRecord(resumekit.RateLimitRecord{Attempts: 5, LockedUntil: &until, LastAttemptAt: last})

		require.NoError(t, err)
		assert.JSONEq(t, `{"attempts":5,"lockedUntil":1748769300000,"lastAttempt":1748768400000}`, s)
	})

	t.Run("refuses records that break invariants", func(t *testing.T) {
		t.Parallel()

		_, err := c.EncodeRecord(resumekit.RateLimitRecord{Attempts: 5, LastAttemptAt: last})

		assert.Equal(t, resumekit.EINVALID, resumekit.ErrorCode(err))
	})
}

func TestCodec_DecodeRecord(t *testing.T) {
	t.Parallel()

	c := newCodec(t)

	t.Run("reads a locked record", func(t *testing.T) {
		t.Parallel()

		r, err := c.DecodeRecord(`{"attempts":5,"lockedUntil":1748769300000,"lastAttempt":1748768400000}`)

		require.NoError(t, err)
		assert.Equal(t, 5, r.Attempts)
		require.NotNil(t, r.LockedUntil)
		assert.Equal(t, time.Date(2025, 6, 1, 9, 15, 0, 0, time.UTC), *r.LockedUntil)
		assert.Equal(t, time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC), r.LastAttemptAt)
	})

	t.Run("reads an open record without lockedUntil", func(t *testing.T) {
		t.Parallel()

		r, err := c.DecodeRecord(`{"attempts":1,"lastAttempt":1748768400000}`)

		require.NoError(t, err)
		assert.Equal(t, 1, r.Attempts)
		assert.Nil(t, r.LockedUntil)
	})

	t.Run("rejects malformed documents", func(t *testing.T) {
		t.Parallel()

		for _, s := range []string{
			``,
			`not json`,
			`[]`,
			`{"attempts":"three","lastAttempt":0}`,
			`{"attempts":-1,"lastAttempt":0}`,
			`{"attempts":1.5,"lastAttempt":0}`,
			`{"lockedUntil":null}`,
			`{"attempts":5,"lockedUntil":null,"lastAttempt":0}`,
			`{"attempts":2,"lockedUntil":1748769300000,"lastAttempt":0}`,
		} {
			_, err := c.DecodeRecord(s)
			assert.Equal(t, resumekit.EINVALID, resumekit.ErrorCode(err), s)
		}
	})
}
