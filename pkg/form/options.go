package form

import (
	"context"

	"github.com/goliatone/go-formplay/pkg/validation"
)

// SubmitFunc receives a copy of the form values after a successful submit.
type SubmitFunc func(ctx context.Context, values Values)

// Hooks observe state transitions. Every hook is optional.
type Hooks struct {
	// OnValidate runs after a field's rules were evaluated, including on mount.
	OnValidate func(field string, messages []string)
	// OnSubmit runs after the submit callback accepted the values.
	OnSubmit func(values Values)
	// OnBlocked runs when a submit was suppressed; it receives the errors that
	// blocked it.
	OnBlocked func(errors map[string][]string)
}

// Option configures a Form.
type Option func(*Form)

// WithSubmit sets the completion callback.
func WithSubmit(fn SubmitFunc) Option {
	return func(f *Form) {
		f.onSubmit = fn
	}
}

// WithDefaults prefills field values. Keys that name no field are ignored and
// fields without an entry fall back to their schema default.
func WithDefaults(values Values) Option {
	return func(f *Form) {
		if len(values) == 0 {
			return
		}
		if f.prefill == nil {
			f.prefill = make(Values, len(values))
		}
		for key, value := range values {
			f.prefill[key] = value
		}
	}
}

// WithResetOnSubmit replaces the state with the defaults after each
// successful submit.
func WithResetOnSubmit(enabled bool) Option {
	return func(f *Form) {
		f.resetOnSubmit = enabled
	}
}

// WithHooks installs transition observers.
func WithHooks(hooks Hooks) Option {
	return func(f *Form) {
		f.hooks = hooks
	}
}

// WithValidator shares a validator between forms.
func WithValidator(v *validation.Validator) Option {
	return func(f *Form) {
		if v != nil {
			f.validator = v
		}
	}
}
