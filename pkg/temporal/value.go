package temporal

// TimeValue is a duration expressed as a magnitude of some TimeUnit
// (e.g. 2 weeks, 0.5 hours). The zero value is the empty TimeValue,
// meaning no duration is known. Values are immutable once constructed.
type TimeValue struct {
	magnitude float64
	unit      TimeUnit
	set       bool
}

// NewTimeValue constructs a TimeValue from a magnitude and unit.
func NewTimeValue(magnitude float64, unit TimeUnit) TimeValue {
	return TimeValue{magnitude: magnitude, unit: unit, set: true}
}

// IsEmpty reports whether no duration is known.
func (v TimeValue) IsEmpty() bool {
	return !v.set
}

// Magnitude returns the duration magnitude in units of Unit().
func (v TimeValue) Magnitude() float64 {
	return v.magnitude
}

// Unit returns the unit the magnitude is expressed in.
func (v TimeValue) Unit() TimeUnit {
	return v.unit
}

// Milliseconds converts the value to absolute milliseconds using the
// fixed unit ratios. An empty value converts to 0.
func (v TimeValue) Milliseconds() float64 {
	if !v.set {
		return 0
	}
	return v.magnitude * v.unit.Milliseconds()
}

// GreaterThan reports whether v is a longer duration than other.
// Same-unit values compare magnitudes directly; otherwise both are
// reduced to milliseconds first.
func (v TimeValue) GreaterThan(other TimeValue) bool {
	if v.unit == other.unit {
		return v.magnitude > other.magnitude
	}
	return v.Milliseconds() > other.Milliseconds()
}
