// Package clock abstracts the current time so services can be tested
// against a deterministic instant.
package clock

import "time"

// Clock yields the current instant in UTC.
type Clock interface {
	Now() time.Time
}

// Func adapts a plain function to the Clock interface.
type Func func() time.Time

func (f Func) Now() time.Time {
	return f()
}

// NewSystem returns a clock backed by time.Now.
func NewSystem() Clock {
	return Func(func() time.Time {
		return time.Now().UTC()
	})
}

// NewFixed returns a clock frozen at the given instant, for tests.
func NewFixed(t time.Time) Clock {
	frozen := t.UTC()
	return Func(func() time.Time {
		return frozen
	})
}
