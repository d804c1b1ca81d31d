package model

import "strings"

// FieldType is the simplified enum for form-friendly field kinds.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeInteger FieldType = "integer"
	FieldTypeNumber  FieldType = "number"
	FieldTypeBoolean FieldType = "boolean"
)

const (
	ValidationRuleRequired  = "required"
	ValidationRuleMinLength = "minLength"
	ValidationRuleMaxLength = "maxLength"
	ValidationRuleMin       = "min"
	ValidationRuleMax       = "max"
	ValidationRulePattern   = "pattern"
)

const (
	// ParamValue holds the threshold of length and numeric rules.
	ParamValue = "value"
	// ParamPattern holds the expression of pattern rules.
	ParamPattern = "pattern"
	// ParamMessage holds the display message reported when the rule fails.
	ParamMessage = "message"
)

// WidgetHidden marks fields carried in form state but rendered as hidden
// inputs.
const WidgetHidden = "hidden"

// ValidationRule represents a single validation constraint applied to a field.
// Rules are evaluated in slice order, so the order of a field's Validations is
// also the order of its reported messages.
type ValidationRule struct {
	Kind   string            `json:"kind"`
	Params map[string]string `json:"params,omitempty"`
}

// Message returns the configured display message, if any.
func (r ValidationRule) Message() string {
	return strings.TrimSpace(r.Params[ParamMessage])
}

// Field models an individual input inside a form.
type Field struct {
	Name        string            `json:"name"`
	Type        FieldType         `json:"type"`
	Format      string            `json:"format,omitempty"`
	Required    bool              `json:"required"`
	Label       string            `json:"label,omitempty"`
	Placeholder string            `json:"placeholder,omitempty"`
	Description string            `json:"description,omitempty"`
	Default     any               `json:"default,omitempty"`
	Widget      string            `json:"widget,omitempty"`
	Order       int               `json:"order,omitempty"`
	Validations []ValidationRule  `json:"validations,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Hidden reports whether the field is rendered as a hidden input.
func (f Field) Hidden() bool {
	return strings.EqualFold(f.Widget, WidgetHidden)
}

// FormModel is the top-level representation renderers and the form container
// consume.
type FormModel struct {
	OperationID string            `json:"operationId"`
	Endpoint    string            `json:"endpoint"`
	Method      string            `json:"method"`
	Title       string            `json:"title,omitempty"`
	Description string            `json:"description,omitempty"`
	Fields      []Field           `json:"fields"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Field looks up a field by name.
func (m FormModel) Field(name string) (Field, bool) {
	for _, field := range m.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// Visible returns the fields rendered as inputs, in model order.
func (m FormModel) Visible() []Field {
	var out []Field
	for _, field := range m.Fields {
		if !field.Hidden() {
			out = append(out, field)
		}
	}
	return out
}

// Hidden returns the fields rendered as hidden inputs, in model order.
func (m FormModel) Hidden() []Field {
	var out []Field
	for _, field := range m.Fields {
		if field.Hidden() {
			out = append(out, field)
		}
	}
	return out
}

// Names returns every field name in model order.
func (m FormModel) Names() []string {
	names := make([]string, 0, len(m.Fields))
	for _, field := range m.Fields {
		names = append(names, field.Name)
	}
	return names
}
