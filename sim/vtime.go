package sim

import (
	"math"
	"time"
)

// VTime is a timestamp in the simulated space, counted in nanosecond
// ticks. It has no relation to wall-clock time. VTime(0) is the epoch of a
// simulation.
type VTime int64

// Units for building VTime values.
const (
	Nanosecond  VTime = 1
	Microsecond       = 1000 * Nanosecond
	Millisecond       = 1000 * Microsecond
	Second            = 1000 * Millisecond
)

// MaxVTime is the largest representable virtual time. Callers can use it
// as a sentinel meaning "never".
const MaxVTime VTime = math.MaxInt64

func (t VTime) String() string {
	return time.Duration(t).String()
}
