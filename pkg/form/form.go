package form

import (
	"context"
	"fmt"

	"github.com/goliatone/go-formplay/pkg/model"
	"github.com/goliatone/go-formplay/pkg/validation"
)

const (
	// LabelSubmit is the submit button label while the form is valid.
	LabelSubmit = "Submit"
	// LabelFixForm is the submit button label while any field has errors.
	LabelFixForm = "Fix Form"
)

// Form is the form container. It owns the values and error state of every
// field declared by its model.
type Form struct {
	model     model.FormModel
	rules     map[string]validation.RuleSet
	validator *validation.Validator

	prefill       Values
	defaults      Values
	state         *state
	onSubmit      SubmitFunc
	resetOnSubmit bool
	hooks         Hooks
}

// Snapshot is a read-only copy of the form state.
type Snapshot struct {
	Values      Values              `json:"values"`
	Errors      map[string][]string `json:"errors,omitempty"`
	Valid       bool                `json:"valid"`
	SubmitLabel string              `json:"submitLabel"`
}

// New mounts a form for the given model. Values start from the defaults and
// every field is validated immediately, so invalid defaults are reported
// before the first event.
func New(m model.FormModel, options ...Option) (*Form, error) {
	if len(m.Fields) == 0 {
		return nil, fmt.Errorf("form: model %q has no fields", m.OperationID)
	}

	f := &Form{
		model: m,
		rules: make(map[string]validation.RuleSet, len(m.Fields)),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	if f.validator == nil {
		f.validator = validation.New()
	}

	for _, field := range m.Fields {
		if _, exists := f.rules[field.Name]; exists {
			return nil, fmt.Errorf("form: duplicate field %q", field.Name)
		}
		rules, err := validation.Compile(field.Validations)
		if err != nil {
			return nil, fmt.Errorf("form: field %q: %w", field.Name, err)
		}
		f.rules[field.Name] = rules
	}

	f.defaults = f.resolveDefaults()
	f.mount()
	return f, nil
}

func (f *Form) resolveDefaults() Values {
	defaults := make(Values, len(f.model.Fields))
	for _, field := range f.model.Fields {
		if value, ok := f.prefill[field.Name]; ok {
			defaults[field.Name] = value
			continue
		}
		if field.Default != nil {
			defaults[field.Name] = fmt.Sprint(field.Default)
			continue
		}
		defaults[field.Name] = ""
	}
	return defaults
}

func (f *Form) mount() {
	f.state = newState(f.defaults)
	for _, field := range f.model.Fields {
		f.validate(field.Name)
	}
}

func (f *Form) validate(name string) {
	messages := f.validator.Messages(f.state.values[name], f.rules[name])
	f.state.setErrors(name, messages)
	if f.hooks.OnValidate != nil {
		f.hooks.OnValidate(name, messages)
	}
}

func (f *Form) checkField(name string) error {
	if _, ok := f.rules[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return nil
}

// Model returns the form model the container was mounted with.
func (f *Form) Model() model.FormModel {
	return f.model
}

// Change commits a new value for a field and recomputes that field's errors.
func (f *Form) Change(name, value string) error {
	if err := f.checkField(name); err != nil {
		return err
	}
	f.state.values[name] = value
	f.validate(name)
	return nil
}

// Focus clears the field's displayed errors regardless of its value.
func (f *Form) Focus(name string) error {
	if err := f.checkField(name); err != nil {
		return err
	}
	f.state.clearErrors(name)
	return nil
}

// Valid reports the validity flag: true iff no field holds an error message.
func (f *Form) Valid() bool {
	return f.state.valid()
}

// SubmitLabel returns the label the submit control should show.
func (f *Form) SubmitLabel() string {
	if f.Valid() {
		return LabelSubmit
	}
	return LabelFixForm
}

// Submit invokes the completion callback with a copy of the values when the
// form is valid. While any field holds errors it does nothing. Every field is
// re-validated before the callback runs, so a field whose errors were only
// cleared by focus still blocks the submit. Submit reports whether the
// callback ran.
func (f *Form) Submit(ctx context.Context) bool {
	if !f.Valid() {
		f.blocked()
		return false
	}
	for _, field := range f.model.Fields {
		f.validate(field.Name)
	}
	if !f.Valid() {
		f.blocked()
		return false
	}

	values := f.state.values.Clone()
	if f.onSubmit != nil {
		f.onSubmit(ctx, values.Clone())
	}
	if f.hooks.OnSubmit != nil {
		f.hooks.OnSubmit(values)
	}
	if f.resetOnSubmit {
		f.Reset()
	}
	return true
}

func (f *Form) blocked() {
	if f.hooks.OnBlocked != nil {
		f.hooks.OnBlocked(f.state.cloneErrors())
	}
}

// Reset replaces the whole state with the defaults and re-validates, exactly
// like a fresh mount.
func (f *Form) Reset() {
	f.mount()
}

// Value returns the current value of a field.
func (f *Form) Value(name string) (string, bool) {
	value, ok := f.state.values[name]
	return value, ok
}

// Values returns a copy of the current values.
func (f *Form) Values() Values {
	return f.state.values.Clone()
}

// Defaults returns a copy of the values the form mounts with.
func (f *Form) Defaults() Values {
	return f.defaults.Clone()
}

// FieldErrors returns a copy of the messages currently shown for a field.
func (f *Form) FieldErrors(name string) []string {
	messages := f.state.errors[name]
	if len(messages) == 0 {
		return nil
	}
	return append([]string(nil), messages...)
}

// Errors returns a copy of every non-empty error list keyed by field.
func (f *Form) Errors() map[string][]string {
	return f.state.cloneErrors()
}

// Snapshot captures values, errors, and the derived flags.
func (f *Form) Snapshot() Snapshot {
	return Snapshot{
		Values:      f.Values(),
		Errors:      f.Errors(),
		Valid:       f.Valid(),
		SubmitLabel: f.SubmitLabel(),
	}
}
