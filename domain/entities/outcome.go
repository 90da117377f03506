package entities

import (
	"fmt"
	"time"
)

// EmittedEvent is an event recorded by the host, with owned copies of the
// guest data.
type EmittedEvent struct {
	Kind    string `json:"kind"`
	Data    []byte `json:"data"`
	Handler []byte `json:"handler,omitempty"`
}

// HasHandler reports whether the event was emitted with a handler token.
func (e EmittedEvent) HasHandler() bool {
	return e.Handler != nil
}

// Commit is one root/artifact pair handed to the host by the guest.
type Commit struct {
	Root     []byte `json:"root"`
	Artifact []byte `json:"artifact"`
}

// Outcome is what a single guest call produced on the host side.
type Outcome struct {
	// StartedAt is when the host began serving the call.
	StartedAt time.Time `json:"started_at"`

	// Returned is the value handed back through value_return, if any.
	Returned []byte `json:"returned,omitempty"`

	// ReturnedError marks Returned as an error value.
	ReturnedError bool `json:"returned_error,omitempty"`

	// Logs holds guest log lines in emission order.
	Logs []string `json:"logs,omitempty"`

	// Events holds emitted events in emission order.
	Events []EmittedEvent `json:"events,omitempty"`

	// Commits holds every commit the guest issued.
	Commits []Commit `json:"commits,omitempty"`

	// Panic is set when the guest aborted through panic_utf8.
	Panic *GuestPanicError `json:"panic,omitempty"`
}

// Failed reports whether the guest aborted.
func (o *Outcome) Failed() bool {
	return o.Panic != nil
}

// GuestPanicError is a guest abort reported through panic_utf8.
type GuestPanicError struct {
	Message  string `json:"message"`
	Location string `json:"location,omitempty"`
}

func (e *GuestPanicError) Error() string {
	if e.Location != "" {
		return fmt.Sprintf("guest panicked at %s: %s", e.Location, e.Message)
	}
	return fmt.Sprintf("guest panicked: %s", e.Message)
}
