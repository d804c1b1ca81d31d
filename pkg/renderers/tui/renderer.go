package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formplay/pkg/form"
	"github.com/goliatone/go-formplay/pkg/model"
	"github.com/goliatone/go-formplay/pkg/render"
)

// Renderer implements render.Renderer for terminal sessions. It drives a form
// container through the same focus, change, and submit events the browser
// runtime sends and returns the submitted values.
type Renderer struct {
	driver            PromptDriver
	out               io.Writer
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	formOptions       []form.Option
	onSubmit          form.SubmitFunc
	theme             Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		theme:        Theme{ErrorPrefix: "✗ "},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if _, ok := ParseOutputFormat(string(r.outputFormat)); !ok {
		return nil, fmt.Errorf("tui: unsupported output format %q", r.outputFormat)
	}
	if r.driver == nil {
		r.driver = newSurveyDriver(r.out)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatYAML:
		return "application/yaml"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render mounts a form seeded with opts.Values, prompts for every visible
// field until it holds no errors, asks for confirmation, and submits. The
// serialized submitted values are returned.
func (r *Renderer) Render(ctx context.Context, fm model.FormModel, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	var submitted form.Values
	formOpts := append([]form.Option{
		form.WithDefaults(opts.Values),
	}, r.formOptions...)
	formOpts = append(formOpts, form.WithSubmit(func(ctx context.Context, values form.Values) {
		submitted = values.Clone()
		if r.onSubmit != nil {
			r.onSubmit(ctx, values)
		}
	}))

	f, err := form.New(fm, formOpts...)
	if err != nil {
		return nil, fmt.Errorf("tui: mount form: %w", err)
	}

	if title := strings.TrimSpace(fm.Title); title != "" {
		if err := r.info(ctx, title); err != nil {
			return nil, err
		}
	}

	for _, field := range fm.Visible() {
		if err := r.promptField(ctx, f, field); err != nil {
			return nil, err
		}
	}

	ok, err := r.driver.Confirm(ctx, ConfirmConfig{Message: f.SubmitLabel() + "?", Default: true})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotSubmitted
	}
	if !f.Submit(ctx) {
		return nil, fmt.Errorf("tui: submit blocked: %s", describeErrors(fm, f.Errors()))
	}

	values := submitted
	if r.submitTransformer != nil {
		values, err = r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}
	return r.serialize(fm, values)
}

// promptField shows the field's current errors, focuses it, and re-prompts
// until a changed value validates.
func (r *Renderer) promptField(ctx context.Context, f *form.Form, field model.Field) error {
	label := field.Label
	if label == "" {
		label = field.Name
	}

	if messages := f.FieldErrors(field.Name); len(messages) > 0 {
		if err := r.errorf(ctx, "%s: %s", label, render.JoinMessages(messages)); err != nil {
			return err
		}
	}

	for {
		if err := f.Focus(field.Name); err != nil {
			return err
		}
		current, _ := f.Value(field.Name)
		cfg := InputConfig{
			Message: label,
			Default: current,
			Help:    field.Description,
		}

		var (
			response string
			err      error
		)
		if strings.EqualFold(field.Format, "password") {
			response, err = r.driver.Password(ctx, cfg)
		} else {
			response, err = r.driver.Input(ctx, cfg)
		}
		if err != nil {
			return err
		}

		if err := f.Change(field.Name, response); err != nil {
			return err
		}
		messages := f.FieldErrors(field.Name)
		if len(messages) == 0 {
			return nil
		}
		if err := r.errorf(ctx, "Invalid %s: %s", label, render.JoinMessages(messages)); err != nil {
			return err
		}
	}
}

func (r *Renderer) info(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, r.theme.InfoPrefix+msg)
}

func (r *Renderer) errorf(ctx context.Context, format string, args ...any) error {
	return r.driver.Info(ctx, r.theme.ErrorPrefix+fmt.Sprintf(format, args...))
}

func describeErrors(fm model.FormModel, errs map[string][]string) string {
	parts := make([]string, 0, len(errs))
	for _, name := range fm.Names() {
		if messages := errs[name]; len(messages) > 0 {
			parts = append(parts, name+": "+render.JoinMessages(messages))
		}
	}
	return strings.Join(parts, "; ")
}

func (r *Renderer) serialize(fm model.FormModel, values form.Values) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		encoded := url.Values{}
		for name, value := range values {
			encoded.Set(name, value)
		}
		return []byte(encoded.Encode()), nil
	case OutputFormatYAML:
		out, err := yaml.Marshal(map[string]string(values))
		if err != nil {
			return nil, fmt.Errorf("tui: encode yaml: %w", err)
		}
		return out, nil
	case OutputFormatPrettyText:
		var b strings.Builder
		for _, name := range fm.Names() {
			if value, ok := values[name]; ok {
				fmt.Fprintf(&b, "%s=%s\n", name, value)
			}
		}
		return []byte(b.String()), nil
	default:
		out, err := json.Marshal(values)
		if err != nil {
			return nil, fmt.Errorf("tui: encode json: %w", err)
		}
		return out, nil
	}
}
