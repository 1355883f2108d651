package temporal

import "time"

// TimeExtent is a closed interval [start, end] of absolute timestamps.
// The zero value is the empty extent, which is distinct from a
// zero-length extent at a known instant. Extents are immutable; a new
// extent replaces an old one rather than being mutated in place.
type TimeExtent struct {
	start time.Time
	end   time.Time
}

// NewTimeExtent constructs an extent covering [start, end].
func NewTimeExtent(start, end time.Time) TimeExtent {
	return TimeExtent{start: start, end: end}
}

// NewInstant constructs a zero-length extent at a single instant.
func NewInstant(at time.Time) TimeExtent {
	return TimeExtent{start: at, end: at}
}

// IsEmpty reports whether the extent carries no interval at all.
func (e TimeExtent) IsEmpty() bool {
	return e.start.IsZero() && e.end.IsZero()
}

// Start returns the start of the interval.
func (e TimeExtent) Start() time.Time {
	return e.start
}

// End returns the end of the interval.
func (e TimeExtent) End() time.Time {
	return e.end
}

// RangeMillis returns the width of the interval in milliseconds.
func (e TimeExtent) RangeMillis() int64 {
	if e.IsEmpty() {
		return 0
	}
	return e.end.UnixMilli() - e.start.UnixMilli()
}

// Equal reports whether both extents cover the same interval.
func (e TimeExtent) Equal(other TimeExtent) bool {
	if e.IsEmpty() || other.IsEmpty() {
		return e.IsEmpty() == other.IsEmpty()
	}
	return e.start.Equal(other.start) && e.end.Equal(other.end)
}

// Union returns the smallest extent covering both operands. The empty
// extent is the identity element: unioning with it returns the other
// operand unchanged.
func (e TimeExtent) Union(other TimeExtent) TimeExtent {
	if other.IsEmpty() {
		return e
	}
	if e.IsEmpty() {
		return other
	}

	start := e.start
	if other.start.Before(start) {
		start = other.start
	}
	end := e.end
	if other.end.After(end) {
		end = other.end
	}
	return TimeExtent{start: start, end: end}
}
