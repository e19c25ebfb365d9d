// Package jsonschema encodes rate limit records as JSON and validates
// stored records with github.com/xeipuuv/gojsonschema before use.
package jsonschema

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/fwojciec/resumekit"
	"github.com/xeipuuv/gojsonschema"
)

// RecordSchema describes the persisted login throttle record. Times are
// milliseconds since the Unix epoch.
const RecordSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["attempts", "lastAttempt"],
  "properties": {
    "attempts": {"type": "integer", "minimum": 0},
    "lockedUntil": {"type": ["integer", "null"]},
    "lastAttempt": {"type": "integer", "minimum": 0}
  }
}`

// Ensure Codec implements resumekit.RecordCodec at compile time.
var _ resumekit.RecordCodec = (*Codec)(nil)

// Codec is the JSON RecordCodec.
type Codec struct {
	schema *gojsonschema.Schema
}

// NewCodec compiles RecordSchema and returns a Codec.
func NewCodec() (*Codec, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(RecordSchema))
	if err != nil {
		return nil, err
	}
	return &Codec{schema: schema}, nil
}

type record struct {
	Attempts    int    `json:"attempts"`
	LockedUntil *int64 `json:"lockedUntil"`
	LastAttempt int64  `json:"lastAttempt"`
}

// EncodeRecord returns the JSON form of r.
func (c *Codec) EncodeRecord(r resumekit.RateLimitRecord) (string, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}
	out := record{
		Attempts:    r.Attempts,
		LastAttempt: r.LastAttemptAt.UnixMilli(),
	}
	if r.LockedUntil != nil {
		ms := r.LockedUntil.UnixMilli()
		out.LockedUntil = &ms
	}
	b, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeRecord parses s, rejecting documents that do not match
// RecordSchema or break the record invariants.
func (c *Codec) DecodeRecord(s string) (resumekit.RateLimitRecord, error) {
	res, err := c.schema.Validate(gojsonschema.NewStringLoader(s))
	if err != nil {
		return resumekit.RateLimitRecord{}, resumekit.Errorf(resumekit.EINVALID, "rate limit record is not JSON")
	}
	if !res.Valid() {
		msgs := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			msgs = append(msgs, e.String())
		}
		return resumekit.RateLimitRecord{}, resumekit.Errorf(resumekit.EINVALID, "rate limit record failed validation: %s", strings.Join(msgs, "; "))
	}

	var in record
	if err := json.Unmarshal([]byte(s), &in); err != nil {
		return resumekit.RateLimitRecord{}, resumekit.Errorf(resumekit.EINVALID, "rate limit record is not JSON")
	}

	r := resumekit.RateLimitRecord{
		Attempts:      in.Attempts,
		LastAttemptAt: time.UnixMilli(in.LastAttempt).UTC(),
	}
	if in.LockedUntil != nil {
		until := time.UnixMilli(*in.LockedUntil).UTC()
		r.LockedUntil = &until
	}
	if err := r.Validate(); err != nil {
		return resumekit.RateLimitRecord{}, err
	}
	return r, nil
}
