package store

import (
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDGeneratorMonotonic(t *testing.T) {
	gen := NewIDGenerator()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	prev := gen.New(now)
	for i := 0; i < 100; i++ {
		next := gen.New(now)
		assert.Greater(t, next, prev)
		prev = next
	}

	id, err := ulid.Parse(prev)
	require.NoError(t, err)
	assert.Equal(t, ulid.Timestamp(now), id.Time())
}
