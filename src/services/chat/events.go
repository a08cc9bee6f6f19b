// events.go - Events the lifecycle controller emits toward the UI.

package chat

import "urdugpt/src/models"

// Event is delivered to the UI sink as the controller moves a send
// transaction along.
type Event interface {
	isEvent()
}

// MessageAppended carries a newly created message, emitted before the store
// write so the UI renders optimistically.
type MessageAppended struct {
	Message models.Message
}

// StatusChanged reports a status transition for the user message with the
// given id.
type StatusChanged struct {
	ID     string
	Status models.Status
}

// LoadingChanged reports the single-flight gate state.
type LoadingChanged struct {
	Loading bool
}

// ErrorOccurred carries an error the UI should surface as a banner.
type ErrorOccurred struct {
	Err error
}

func (MessageAppended) isEvent() {}
func (StatusChanged) isEvent()   {}
func (LoadingChanged) isEvent()  {}
func (ErrorOccurred) isEvent()   {}
