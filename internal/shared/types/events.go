package types

// Event types pushed to desktop views.
const (
	EventLauncher = "launcher"
	EventWindows  = "windows"
)

// Event is a state change published to desktop views.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Publisher receives state changes. Implementations must not block and
// must not call back into the publisher's caller.
type Publisher interface {
	Publish(Event)
}

// PublisherFunc adapts a function to Publisher.
type PublisherFunc func(Event)

// Publish calls f(e).
func (f PublisherFunc) Publish(e Event) { f(e) }

// NopPublisher discards every event.
type NopPublisher struct{}

// Publish does nothing.
func (NopPublisher) Publish(Event) {}
