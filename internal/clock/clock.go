package clock

import "time"

// Clock abstracts time.Now so services can be tested at a fixed instant.
type Clock interface {
	Now() time.Time
}

type clockFunc func() time.Time

func (f clockFunc) Now() time.Time {
	return f()
}

// NewSystem returns a clock backed by time.Now, normalized to UTC.
func NewSystem() Clock {
	return clockFunc(func() time.Time {
		return time.Now().UTC()
	})
}

// NewFixed returns a clock pinned to t so tests see a stable instant.
func NewFixed(t time.Time) Clock {
	t = t.UTC()
	return clockFunc(func() time.Time {
		return t
	})
}
