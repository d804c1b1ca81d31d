package model

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	pkgopenapi "github.com/goliatone/go-formplay/pkg/openapi"
)

// Builder converts OpenAPI operations into form models.
type Builder struct {
	opts Options
}

// New creates a Builder with the supplied options.
func New(options Options) *Builder {
	opts := defaultOptions()
	if options.Labeler != nil {
		opts.Labeler = options.Labeler
	}
	return &Builder{opts: opts}
}

// Build flattens the operation's request body into an ordered list of fields.
// Fields are sorted by their x-formplay-order extension and then by name.
func (b *Builder) Build(op pkgopenapi.Operation) (FormModel, error) {
	if err := validateOperation(op); err != nil {
		return FormModel{}, err
	}

	form := FormModel{
		OperationID: op.ID,
		Endpoint:    op.Path,
		Method:      strings.ToUpper(op.Method),
		Title:       firstNonEmpty(op.Summary, op.RequestBody.Title),
		Description: firstNonEmpty(op.Description, op.RequestBody.Description),
		Metadata:    metadataFromExtensions(formplayExtensions(op.Extensions)),
	}

	required := make(map[string]struct{}, len(op.RequestBody.Required))
	for _, name := range op.RequestBody.Required {
		required[name] = struct{}{}
	}

	for name, prop := range op.RequestBody.Properties {
		_, isRequired := required[name]
		field, err := b.fieldFromPrimitive(name, prop, isRequired)
		if err != nil {
			return FormModel{}, err
		}
		form.Fields = append(form.Fields, field)
	}

	sort.SliceStable(form.Fields, func(i, j int) bool {
		if form.Fields[i].Order != form.Fields[j].Order {
			return form.Fields[i].Order < form.Fields[j].Order
		}
		return form.Fields[i].Name < form.Fields[j].Name
	})

	return form, nil
}

func (b *Builder) fieldFromPrimitive(name string, schema pkgopenapi.Schema, required bool) (Field, error) {
	ext := formplayExtensions(schema.Extensions)

	field := Field{
		Name:        name,
		Type:        mapType(schema.Type),
		Format:      schema.Format,
		Label:       b.opts.Labeler(name),
		Description: schema.Description,
		Required:    required,
		Default:     schema.Default,
	}
	if label, ok := CanonicalizeExtensionValue(ext[extLabel]); ok {
		field.Label = label
	}
	if placeholder, ok := CanonicalizeExtensionValue(ext[extPlaceholder]); ok {
		field.Placeholder = placeholder
	}
	if widget, ok := CanonicalizeExtensionValue(ext[extWidget]); ok {
		field.Widget = strings.ToLower(widget)
	}
	if raw, ok := ext[extOrder]; ok {
		order, valid := extensionInt(raw)
		if !valid {
			return Field{}, fmt.Errorf("model builder: field %q: %s-%s must be an integer", name, extensionNamespace, extOrder)
		}
		field.Order = order
	}

	messages, err := extensionMessages(ext[extMessages])
	if err != nil {
		return Field{}, fmt.Errorf("model builder: field %q: %w", name, err)
	}
	applyValidations(&field, schema, messages)

	delete(ext, extMessages)
	field.Metadata = metadataFromExtensions(ext)
	return field, nil
}

func mapType(schemaType string) FieldType {
	switch schemaType {
	case "integer":
		return FieldTypeInteger
	case "number":
		return FieldTypeNumber
	case "boolean":
		return FieldTypeBoolean
	default:
		return FieldTypeString
	}
}

// applyValidations emits rules in evaluation order: required, minLength,
// maxLength, min, max, pattern.
func applyValidations(field *Field, schema pkgopenapi.Schema, messages map[string]string) {
	add := func(kind string, params map[string]string) {
		if msg := messages[kind]; msg != "" {
			if params == nil {
				params = make(map[string]string, 1)
			}
			params[ParamMessage] = msg
		}
		field.Validations = append(field.Validations, ValidationRule{Kind: kind, Params: params})
	}

	if field.Required {
		add(ValidationRuleRequired, nil)
	}
	if schema.MinLength != nil {
		add(ValidationRuleMinLength, map[string]string{ParamValue: strconv.Itoa(*schema.MinLength)})
	}
	if schema.MaxLength != nil {
		add(ValidationRuleMaxLength, map[string]string{ParamValue: strconv.Itoa(*schema.MaxLength)})
	}
	if schema.Minimum != nil {
		add(ValidationRuleMin, map[string]string{ParamValue: formatFloat(*schema.Minimum)})
	}
	if schema.Maximum != nil {
		add(ValidationRuleMax, map[string]string{ParamValue: formatFloat(*schema.Maximum)})
	}
	if schema.Pattern != "" {
		add(ValidationRulePattern, map[string]string{ParamPattern: schema.Pattern})
	}
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
