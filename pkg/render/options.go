package render

import "github.com/goliatone/go-formplay/pkg/form"

// RenderOptions carry the per-request form state a renderer draws. The model
// describes the fields; the options describe what they currently hold.
type RenderOptions struct {
	// Action is the URL the form posts to. Empty falls back to the model
	// endpoint.
	Action string
	// Method overrides the HTTP method declared by the form model.
	Method string
	// Values pre-populates controls keyed by field name.
	Values map[string]string
	// Errors holds the messages displayed next to each field.
	Errors map[string][]string
	// FormErrors are messages that belong to no single field.
	FormErrors []string
	// Notice is a status line shown above the fields, such as a submit
	// confirmation.
	Notice string
	// Hidden are extra hidden inputs emitted alongside hidden-widget fields,
	// such as the session identifier.
	Hidden map[string]string
	// Valid is the validity flag that gates submission.
	Valid bool
	// SubmitLabel is the label of the submit control.
	SubmitLabel string
	// Page wraps the form in a complete HTML document.
	Page bool
	// ThemeVariant selects a theme variant; empty uses the base tokens.
	ThemeVariant string
}

// OptionsFromSnapshot copies a form snapshot into render options.
func OptionsFromSnapshot(snapshot form.Snapshot) RenderOptions {
	opts := RenderOptions{
		Values:      snapshot.Values.Clone(),
		Valid:       snapshot.Valid,
		SubmitLabel: snapshot.SubmitLabel,
	}
	if len(snapshot.Errors) > 0 {
		opts.Errors = make(map[string][]string, len(snapshot.Errors))
		for name, messages := range snapshot.Errors {
			opts.Errors[name] = append([]string(nil), messages...)
		}
	}
	return opts
}

// ResolvedSubmitLabel returns SubmitLabel, deriving it from Valid when unset.
func (o RenderOptions) ResolvedSubmitLabel() string {
	if o.SubmitLabel != "" {
		return o.SubmitLabel
	}
	if o.Valid {
		return form.LabelSubmit
	}
	return form.LabelFixForm
}
