package entities

// Event is what the guest emits: a text kind label and an opaque payload.
type Event struct {
	Kind string
	Data Buffer
}

// NewEvent builds an event over borrowed data.
func NewEvent(kind string, data Buffer) Event {
	return Event{Kind: kind, Data: data}
}
