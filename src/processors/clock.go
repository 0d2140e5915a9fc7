package processors

import "time"

// Clock supplies the current instant. Open transactions are always dated "now".
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// SystemClock reads the wall clock in UTC.
var SystemClock Clock = systemClock{}

// FixedClock always returns the same instant. Handy for reports pinned to a date.
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }
