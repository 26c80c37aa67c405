// Package uid provides unique identifier generators.
//
// Page identifiers must be unique across a site and use UUIDs. Temporary
// container names only need to be unique within an editing session and use the
// shorter, time-ordered TimeGenerator.
package uid

import (
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Generator produces unique identifiers.
type Generator interface {
	NewID() string
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func() string

// NewID implements Generator.
func (f GeneratorFunc) NewID() string { return f() }

// UUIDGenerator returns random (version 4) UUID strings.
type UUIDGenerator struct{}

// NewID implements Generator.
func (UUIDGenerator) NewID() string { return uuid.NewString() }

// TimeGenerator returns lowercase hex microsecond timestamps. Calls within the
// same microsecond are bumped forward so ids never repeat within a process.
type TimeGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewTimeGenerator returns a TimeGenerator reading the wall clock.
func NewTimeGenerator() *TimeGenerator {
	return &TimeGenerator{now: time.Now}
}

// NewID implements Generator.
func (g *TimeGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now
	if g.now != nil {
		now = g.now
	}
	v := now().UnixMicro()
	if v <= g.last {
		v = g.last + 1
	}
	g.last = v
	return strconv.FormatInt(v, 16)
}

// Sequence returns Prefix followed by an increasing counter starting at 1.
// It is deterministic and intended for tests.
type Sequence struct {
	Prefix string

	mu sync.Mutex
	n  int
}

// NewID implements Generator.
func (s *Sequence) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return s.Prefix + strconv.Itoa(s.n)
}

// ForKind returns the generator configured by name: "uuid" or "time".
// Unknown names fall back to "time".
func ForKind(kind string) Generator {
	if kind == "uuid" {
		return UUIDGenerator{}
	}
	return NewTimeGenerator()
}
