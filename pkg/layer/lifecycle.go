package layer

import (
	"fmt"
	"sync"

	"github.com/BYTE-6D65/timeaxis/pkg/event"
)

// Legal load-status transitions. A failed layer may be retried.
var transitions = map[LoadStatus][]LoadStatus{
	StatusNotLoaded:    {StatusLoading},
	StatusLoading:      {StatusLoaded, StatusFailedToLoad},
	StatusFailedToLoad: {StatusLoading},
}

// Lifecycle tracks a layer's load status and announces completion.
// The DoneLoading signal fires on every entry into a terminal status,
// whether the load succeeded or failed.
type Lifecycle struct {
	mu     sync.Mutex
	status LoadStatus
	done   event.Signal[LoadStatus]
}

// NewLifecycle creates a lifecycle in StatusNotLoaded.
func NewLifecycle() *Lifecycle {
	return &Lifecycle{status: StatusNotLoaded}
}

// Status returns the current load status.
func (l *Lifecycle) Status() LoadStatus {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.status
}

// Transition moves to a new status, rejecting illegal jumps (e.g.
// NotLoaded straight to Loaded).
func (l *Lifecycle) Transition(to LoadStatus) error {
	l.mu.Lock()
	from := l.status

	allowed := false
	for _, next := range transitions[from] {
		if next == to {
			allowed = true
			break
		}
	}
	if !allowed {
		l.mu.Unlock()
		return fmt.Errorf("no transition from %s to %s", from, to)
	}

	l.status = to
	l.mu.Unlock()

	if to.Terminal() {
		l.done.Emit(to)
	}
	return nil
}

// DoneLoading exposes the load-completion signal.
func (l *Lifecycle) DoneLoading() *event.Signal[LoadStatus] {
	return &l.done
}
