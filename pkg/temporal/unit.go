package temporal

import "fmt"

// TimeUnit represents a calendar granularity used to express layer update
// intervals and step spacing.
type TimeUnit int

const (
	UnitMilliseconds TimeUnit = iota
	UnitSeconds
	UnitMinutes
	UnitHours
	UnitDays
	UnitWeeks
	UnitMonths
	UnitYears
	UnitDecades
	UnitCenturies
)

// Fixed conversion ratios. Calendar irregularities (leap years, month
// lengths) are deliberately ignored: a year is always 365 days, a month
// is 365/12 days.
const (
	millisPerSecond = 1000.0
	millisPerMinute = 60000.0
	millisPerHour   = 3600000.0
	millisPerDay    = 86400000.0
	millisPerWeek   = 604800000.0

	daysPerYear    = 365.0
	daysPerDecade  = 3650.0
	daysPerCentury = 36500.0
	monthsPerYear  = 12
)

func (u TimeUnit) String() string {
	switch u {
	case UnitMilliseconds:
		return "milliseconds"
	case UnitSeconds:
		return "seconds"
	case UnitMinutes:
		return "minutes"
	case UnitHours:
		return "hours"
	case UnitDays:
		return "days"
	case UnitWeeks:
		return "weeks"
	case UnitMonths:
		return "months"
	case UnitYears:
		return "years"
	case UnitDecades:
		return "decades"
	case UnitCenturies:
		return "centuries"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", u)
	}
}

// Milliseconds returns the absolute width of one unit in milliseconds.
func (u TimeUnit) Milliseconds() float64 {
	switch u {
	case UnitCenturies:
		return millisPerDay * daysPerCentury
	case UnitDecades:
		return millisPerDay * daysPerDecade
	case UnitYears:
		return millisPerDay * daysPerYear
	case UnitMonths:
		return (daysPerYear / monthsPerYear) * millisPerDay
	case UnitWeeks:
		return millisPerWeek
	case UnitDays:
		return millisPerDay
	case UnitHours:
		return millisPerHour
	case UnitMinutes:
		return millisPerMinute
	case UnitSeconds:
		return millisPerSecond
	default:
		return 1
	}
}

// EstimateUnit picks a step granularity for a temporal range of the given
// width in milliseconds. Narrow ranges get fine units, multi-century
// ranges get coarse ones.
func EstimateUnit(rangeMillis float64) TimeUnit {
	switch {
	case rangeMillis < millisPerMinute:
		return UnitSeconds
	case rangeMillis < millisPerHour:
		return UnitMinutes
	case rangeMillis < millisPerDay:
		return UnitHours
	case rangeMillis < millisPerDay*daysPerYear:
		return UnitDays
	case rangeMillis > millisPerDay*daysPerYear*100:
		return UnitCenturies
	default:
		return UnitYears
	}
}
