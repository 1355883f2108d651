package event

import "time"

// Topics published by the time slider controller, one per exposed
// property. Subscribers can match individual topics or use the
// "slider.*" wildcard for the full fan-out.
const (
	TopicFullTimeExtent    = "slider.full_time_extent"
	TopicCurrentTimeExtent = "slider.current_time_extent"
	TopicNumberOfSteps     = "slider.number_of_steps"
	TopicStepTimes         = "slider.step_times"
	TopicStartStep         = "slider.start_step"
	TopicEndStep           = "slider.end_step"
)

// ExtentPayload carries the new value for an extent-valued property.
// An empty extent is encoded as two zero timestamps.
type ExtentPayload struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Empty bool      `json:"empty,omitempty"`
}

// StepCountPayload carries the new total step count.
type StepCountPayload struct {
	NumberOfSteps int `json:"number_of_steps"`
}

// StepTimesPayload carries the regenerated step timestamp axis.
type StepTimesPayload struct {
	Times []time.Time `json:"times"`
}

// StepPayload carries a new start or end step index.
type StepPayload struct {
	Step int `json:"step"`
}
