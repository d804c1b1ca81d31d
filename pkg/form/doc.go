// Package form implements the form container: an explicit state object that
// holds field values, recomputes a field's error messages on every change,
// clears them on focus, and gates submission on a derived validity flag.
//
// A Form is not safe for concurrent use. Callers that share one across
// goroutines (the HTTP session store, for example) must serialize events.
package form
