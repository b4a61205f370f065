package store

import (
	"context"
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/maude/pkg/maude/report"
)

// Sink persists the annotated output of one run.
type Sink interface {
	SaveRun(ctx context.Context, run Run, records []report.Record) error
	Close() error
}

// Run describes one analysis run.
type Run struct {
	ID           string
	StartedAt    time.Time
	Input        string
	TotalReports int
	Selected     int
}

// IDGenerator issues lexicographically sortable run IDs.
type IDGenerator struct {
	entropy *ulid.MonotonicEntropy
}

// NewIDGenerator creates a generator
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{entropy: ulid.Monotonic(rand.Reader, 0)}
}

// New returns a ULID for time t. IDs from one generator increase strictly,
// even within the same millisecond.
func (g *IDGenerator) New(t time.Time) string {
	return ulid.MustNew(ulid.Timestamp(t), g.entropy).String()
}
