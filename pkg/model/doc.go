// Package model defines the typed form model consumed by the form container
// and the renderers. Builders live in internal/model but return the types
// defined here.
//
// Validation rules use canonical kinds (required, minLength/maxLength,
// min/max, pattern) with string parameters. Params["value"] carries the
// threshold and Params["message"] the display message read from the
// x-formplay-messages extension. A field's rules are evaluated in slice order.
//
// Fields whose x-formplay-widget is "hidden" stay part of form state and the
// submitted snapshot but render as hidden inputs.
package model
