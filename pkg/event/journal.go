package event

import (
	"sort"
	"sync"
	"time"
)

// Journal keeps published notifications in chronological order and
// supports querying by time range. The sim binary uses it to replay
// what the controller announced; tests use it to assert emission
// order.
type Journal struct {
	mu     sync.RWMutex
	events []Event
}

// NewJournal creates an empty journal.
func NewJournal() *Journal {
	return &Journal{
		events: make([]Event, 0, 256),
	}
}

// Append adds an event, maintaining chronological order. Events are
// expected to arrive mostly in order, so appending to the tail is the
// fast path.
func (j *Journal) Append(evt Event) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if len(j.events) == 0 || !evt.Timestamp.Before(j.events[len(j.events)-1].Timestamp) {
		j.events = append(j.events, evt)
		return
	}

	idx := sort.Search(len(j.events), func(i int) bool {
		return j.events[i].Timestamp.After(evt.Timestamp)
	})

	j.events = append(j.events, Event{})
	copy(j.events[idx+1:], j.events[idx:])
	j.events[idx] = evt
}

// Range returns all events with timestamps in [start, end).
func (j *Journal) Range(start, end time.Time) []Event {
	j.mu.RLock()
	defer j.mu.RUnlock()

	if len(j.events) == 0 {
		return nil
	}

	startIdx := sort.Search(len(j.events), func(i int) bool {
		return !j.events[i].Timestamp.Before(start)
	})
	if startIdx >= len(j.events) {
		return nil
	}

	endIdx := sort.Search(len(j.events), func(i int) bool {
		return !j.events[i].Timestamp.Before(end)
	})

	out := make([]Event, endIdx-startIdx)
	copy(out, j.events[startIdx:endIdx])
	return out
}

// All returns a copy of every recorded event in order.
func (j *Journal) All() []Event {
	j.mu.RLock()
	defer j.mu.RUnlock()

	out := make([]Event, len(j.events))
	copy(out, j.events)
	return out
}

// Len returns the number of recorded events.
func (j *Journal) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return len(j.events)
}
