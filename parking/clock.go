// clock.go - Host collaborators: clock and unique ID generation.
package parking

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Clock supplies monotonically non-decreasing nanosecond timestamps.
type Clock interface {
	Now() int64
}

// IDGenerator produces collision-free string identifiers.
type IDGenerator interface {
	NewID() string
}

// =============================================================================
// SYSTEM IMPLEMENTATIONS
// =============================================================================

// SystemClock reads the wall clock but never goes backwards: if the wall
// clock jumps back, it returns the last value handed out plus one.
type SystemClock struct {
	mu   sync.Mutex
	last int64
}

func NewSystemClock() *SystemClock { return &SystemClock{} }

func (c *SystemClock) Now() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now().UnixNano()
	if now <= c.last {
		now = c.last + 1
	}
	c.last = now
	return now
}

// UUIDGenerator issues random v4 UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string { return uuid.NewString() }
