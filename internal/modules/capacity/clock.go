package capacity

import "time"

// Clock supplies "now" for current-date awareness.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time {
	return time.Now()
}

type fixedClock time.Time

func (c fixedClock) Now() time.Time {
	return time.Time(c)
}

// FixedClock returns a Clock that always reports t.
func FixedClock(t time.Time) Clock {
	return fixedClock(t)
}
