package form

import "errors"

var (
	// ErrUnknownField is returned when an event names a field the model does
	// not declare.
	ErrUnknownField = errors.New("form: unknown field")
	// ErrUnknownEvent is returned by Dispatch for unsupported event types.
	ErrUnknownEvent = errors.New("form: unknown event type")
)
