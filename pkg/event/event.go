package event

import (
	"time"

	"github.com/go-json-experiment/json"
	"github.com/google/uuid"
)

// Event is the envelope carried by property-change notifications. The
// payload is serialized so that subscribers can decode only the topics
// they care about.
type Event struct {
	// ID is a unique identifier for this event instance
	ID string `json:"id"`

	// Type is a namespaced topic (e.g. "slider.number_of_steps")
	Type string `json:"type"`

	// Source identifies the originating component (e.g. "controller:TimeSlider")
	Source string `json:"source"`

	// Timestamp indicates when the event was created
	Timestamp time.Time `json:"timestamp"`

	// Data contains the serialized payload (use a Codec to marshal/unmarshal)
	Data []byte `json:"data,omitempty"`

	// Metadata provides additional context for filtering and debugging
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Codec defines how event payloads are serialized.
type Codec interface {
	// Marshal converts a payload struct to bytes
	Marshal(v any) ([]byte, error)

	// Unmarshal deserializes bytes into a payload struct
	Unmarshal(data []byte, v any) error
}

// JSONCodec implements Codec using JSON.
type JSONCodec struct{}

// Marshal converts a payload to JSON bytes.
func (c JSONCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Unmarshal deserializes JSON bytes into a payload.
func (c JSONCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// New creates an event with a generated ID and the given timestamp.
// The timestamp comes from the caller's clock so that tests stay
// deterministic.
func New(topic, source string, at time.Time, payload any, codec Codec) (*Event, error) {
	data, err := codec.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:        uuid.New().String(),
		Type:      topic,
		Source:    source,
		Timestamp: at,
		Data:      data,
	}, nil
}

// WithMetadata adds a metadata key-value pair to the event.
func (e *Event) WithMetadata(key, value string) *Event {
	if e.Metadata == nil {
		e.Metadata = make(map[string]string)
	}
	e.Metadata[key] = value
	return e
}

// DecodePayload deserializes the event data into the provided struct.
func (e *Event) DecodePayload(v any, codec Codec) error {
	if len(e.Data) == 0 {
		return nil
	}
	return codec.Unmarshal(e.Data, v)
}
