package document

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator allocates entity ids. Ids are assigned once at creation and never reassigned.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator allocates random 128-bit ids.
type UUIDGenerator struct{}

// NewID returns a new random UUID string.
func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// SequenceGenerator allocates ids from a counter with an optional prefix.
// It is deterministic and mostly useful in tests and CLI fixtures.
type SequenceGenerator struct {
	Prefix string
	next   atomic.Uint64
}

// NewID returns the next id in the sequence, starting at 1.
func (g *SequenceGenerator) NewID() string {
	return g.Prefix + strconv.FormatUint(g.next.Add(1), 10)
}
