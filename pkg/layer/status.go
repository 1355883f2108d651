package layer

import "fmt"

// LoadStatus represents where a layer is in its load lifecycle.
type LoadStatus int

const (
	StatusNotLoaded LoadStatus = iota
	StatusLoading
	StatusLoaded
	StatusFailedToLoad
)

func (s LoadStatus) String() string {
	switch s {
	case StatusNotLoaded:
		return "not_loaded"
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusFailedToLoad:
		return "failed_to_load"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", s)
	}
}

// Terminal reports whether loading has finished, successfully or not.
// Layers in a terminal status are candidates for time aggregation;
// layers still loading are deferred.
func (s LoadStatus) Terminal() bool {
	return s == StatusLoaded || s == StatusFailedToLoad
}
