package tui

import (
	"io"

	"github.com/goliatone/go-formplay/pkg/form"
)

// OutputFormat controls how submitted values are serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits application/json payloads.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatYAML emits a YAML document.
	OutputFormatYAML OutputFormat = "yaml"
	// OutputFormatFormURLEncoded emits application/x-www-form-urlencoded payloads.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits one "name=value" line per field in form
	// order.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// Theme captures optional prefixes the renderer applies to printed messages.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// SubmitTransformer mutates submitted values before serialization.
type SubmitTransformer func(form.Values) (form.Values, error)

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutput redirects the default driver's output. Prompts follow it only
// when out is a terminal file such as os.Stderr; other writers receive the
// informational lines alone.
func WithOutput(out io.Writer) Option {
	return func(r *Renderer) {
		r.out = out
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithSubmitTransformer allows callers to mutate submitted values prior to
// serialization.
func WithSubmitTransformer(fn SubmitTransformer) Option {
	return func(r *Renderer) {
		r.submitTransformer = fn
	}
}

// WithSubmit sets the completion callback invoked when the terminal session
// submits.
func WithSubmit(fn form.SubmitFunc) Option {
	return func(r *Renderer) {
		r.onSubmit = fn
	}
}

// WithFormOptions forwards options to the form container each Render mounts,
// such as hooks. A form.WithSubmit passed here is replaced; use WithSubmit.
func WithFormOptions(opts ...form.Option) Option {
	return func(r *Renderer) {
		r.formOptions = append(r.formOptions, opts...)
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}

// ParseOutputFormat validates a raw format name.
func ParseOutputFormat(raw string) (OutputFormat, bool) {
	switch format := OutputFormat(raw); format {
	case OutputFormatJSON, OutputFormatYAML, OutputFormatFormURLEncoded, OutputFormatPrettyText:
		return format, true
	default:
		return "", false
	}
}
