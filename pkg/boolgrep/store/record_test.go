package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecord(t *testing.T) {
	before := time.Now().UTC()
	rec := NewRecord("run-1", "a.log", "x OR y", "a OR b")

	assert.Equal(t, Version, rec.Version)
	assert.Equal(t, "run-1", rec.RunID)
	assert.Equal(t, "a.log", rec.Document)
	assert.Equal(t, "x OR y", rec.Query)
	assert.Equal(t, "a OR b", rec.Canonical)
	assert.False(t, rec.Timestamp.Before(before))
	assert.Equal(t, time.UTC, rec.Timestamp.Location())
}

func TestRecord_OmitsEmptyFields(t *testing.T) {
	rec := NewRecord("run-1", "a.log", "x", "a")
	data, err := rec.Marshal()
	require.NoError(t, err)

	s := string(data)
	assert.Contains(t, s, `"matched":false`)
	assert.NotContains(t, s, "short_circuited")
	assert.NotContains(t, s, "matches")
	assert.NotContains(t, s, `"error"`)

	rec.Error = "permission denied"
	rec.Matches = []Span{{Start: 0, Length: 1, Line: 1}}
	data, err = rec.Marshal()
	require.NoError(t, err)

	decoded, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, "permission denied", decoded.Error)
	assert.Equal(t, rec.Matches, decoded.Matches)
	assert.True(t, rec.Timestamp.Equal(decoded.Timestamp))
}

func TestUnmarshal_Invalid(t *testing.T) {
	_, err := Unmarshal([]byte("nope"))
	assert.Error(t, err)
}
