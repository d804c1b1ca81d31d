package form

import (
	"context"
	"fmt"
	"strings"
)

// EventType names the discrete UI events a form reacts to.
type EventType string

const (
	EventChange EventType = "change"
	EventFocus  EventType = "focus"
	EventSubmit EventType = "submit"
)

// Event is one UI event. Field is ignored for submit events and Value is only
// read for change events.
type Event struct {
	Type  EventType `json:"type"`
	Field string    `json:"field,omitempty"`
	Value string    `json:"value,omitempty"`
}

// Result is the outcome of dispatching an event.
type Result struct {
	Snapshot
	Submitted bool `json:"submitted"`
}

// ParseEventType normalises a raw event name.
func ParseEventType(raw string) (EventType, error) {
	switch EventType(strings.ToLower(strings.TrimSpace(raw))) {
	case EventChange:
		return EventChange, nil
	case EventFocus:
		return EventFocus, nil
	case EventSubmit:
		return EventSubmit, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownEvent, raw)
	}
}

// Dispatch applies one event and returns the resulting snapshot.
func (f *Form) Dispatch(ctx context.Context, ev Event) (Result, error) {
	var (
		submitted bool
		err       error
	)
	switch ev.Type {
	case EventChange:
		err = f.Change(ev.Field, ev.Value)
	case EventFocus:
		err = f.Focus(ev.Field)
	case EventSubmit:
		submitted = f.Submit(ctx)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Type)
	}
	if err != nil {
		return Result{}, err
	}
	return Result{Snapshot: f.Snapshot(), Submitted: submitted}, nil
}
