package vanilla

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formplay/pkg/model"
	"github.com/goliatone/go-formplay/pkg/render"
	rendertemplate "github.com/goliatone/go-formplay/pkg/render/template"
	"github.com/goliatone/go-formplay/pkg/render/template/pongo"
)

const (
	formTemplate = "form.tmpl"
	pageTemplate = "page.tmpl"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	manifest         *theme.Manifest
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithTheme replaces the built-in theme manifest.
func WithTheme(manifest *theme.Manifest) Option {
	return func(cfg *config) {
		if manifest != nil {
			cfg.manifest = manifest
		}
	}
}

// Renderer draws a form as plain HTML that works without JavaScript and is
// progressively enhanced by the runtime script.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	manifest  *theme.Manifest
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS: TemplatesFS(),
		manifest:   DefaultManifest(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if err := ValidateManifest(cfg.manifest); err != nil {
		return nil, err
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := pongo.New(
			pongo.WithFS(cfg.templateFS),
			pongo.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer, manifest: cfg.manifest}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render draws the form, or a full page when options.Page is set.
func (r *Renderer) Render(_ context.Context, form model.FormModel, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, errors.New("vanilla renderer: template renderer is nil")
	}
	if len(form.Fields) == 0 {
		return nil, fmt.Errorf("vanilla renderer: form %q has no fields", form.OperationID)
	}

	themeCfg, err := ThemeConfig(r.manifest, options.ThemeVariant)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: %w", err)
	}

	name := partial(themeCfg, PartialForm, formTemplate)
	if options.Page {
		name = partial(themeCfg, PartialPage, pageTemplate)
	}
	result, err := r.templates.RenderTemplate(name, buildView(form, options, themeCfg))
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

type view struct {
	Form    formView          `json:"form"`
	Theme   themeView         `json:"theme"`
	Assets  map[string]string `json:"assets"`
	Classes map[string]string `json:"classes"`
}

type formView struct {
	ID          string        `json:"id"`
	Title       string        `json:"title,omitempty"`
	Description string        `json:"description,omitempty"`
	Action      string        `json:"action"`
	Method      string        `json:"method"`
	EventsURL   string        `json:"eventsUrl,omitempty"`
	Notice      string        `json:"notice,omitempty"`
	FormErrors  []string      `json:"formErrors,omitempty"`
	Fields      []fieldView   `json:"fields"`
	Hidden      []hiddenInput `json:"hidden,omitempty"`
	Valid       bool          `json:"valid"`
	SubmitLabel string        `json:"submitLabel"`
}

type fieldView struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Label       string   `json:"label"`
	InputType   string   `json:"inputType"`
	Placeholder string   `json:"placeholder,omitempty"`
	Value       string   `json:"value"`
	Errors      []string `json:"errors,omitempty"`
	Invalid     bool     `json:"invalid"`
}

type hiddenInput struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type themeView struct {
	Name    string `json:"name,omitempty"`
	Variant string `json:"variant,omitempty"`
	CSSVars string `json:"cssVars,omitempty"`
}

func buildView(form model.FormModel, options render.RenderOptions, cfg *theme.RendererConfig) view {
	action := strings.TrimSpace(options.Action)
	if action == "" {
		action = form.Endpoint
	}
	method := strings.ToLower(strings.TrimSpace(options.Method))
	if method == "" {
		method = strings.ToLower(form.Method)
	}
	if method != "get" {
		// Browsers only submit GET and POST.
		method = "post"
	}

	out := view{
		Form: formView{
			ID:          "fp-" + form.OperationID,
			Title:       plainText(form.Title),
			Description: richText(form.Description),
			Action:      action,
			Method:      method,
			Notice:      strings.TrimSpace(options.Notice),
			FormErrors:  render.MergeFormErrors(options.FormErrors),
			Valid:       options.Valid,
			SubmitLabel: options.ResolvedSubmitLabel(),
		},
		Classes: chromeClasses(),
		Assets:  map[string]string{},
	}
	if session := options.Hidden[render.SessionFieldName]; session != "" && action != "" {
		out.Form.EventsURL = eventsURL(action)
	}

	hidden := make(map[string]string, len(options.Hidden))
	for _, field := range form.Fields {
		value := options.Values[field.Name]
		if field.Hidden() {
			hidden[field.Name] = value
			continue
		}
		errs := options.Errors[field.Name]
		out.Form.Fields = append(out.Form.Fields, fieldView{
			ID:          "fp-" + field.Name,
			Name:        field.Name,
			Label:       fieldLabel(field),
			InputType:   inputType(field),
			Placeholder: plainText(field.Placeholder),
			Value:       value,
			Errors:      append([]string(nil), errs...),
			Invalid:     len(errs) > 0,
		})
	}
	for _, field := range render.SortedHiddenFields(render.MergeHiddenFields(hidden, hiddenFields(options.Hidden)...)) {
		out.Form.Hidden = append(out.Form.Hidden, hiddenInput{Name: field.Name, Value: field.Value})
	}

	if cfg != nil {
		out.Theme = themeView{Name: cfg.Theme, Variant: cfg.Variant, CSSVars: cssVarsStyle(cfg.CSSVars)}
		if cfg.AssetURL != nil {
			out.Assets[AssetStylesheet] = cfg.AssetURL(AssetStylesheet)
			out.Assets[AssetRuntime] = cfg.AssetURL(AssetRuntime)
		}
	}
	return out
}

func partial(cfg *theme.RendererConfig, key, fallback string) string {
	if cfg != nil {
		if name := strings.TrimSpace(cfg.Partials[key]); name != "" {
			return name
		}
	}
	return fallback
}

func hiddenFields(values map[string]string) []render.HiddenField {
	out := make([]render.HiddenField, 0, len(values))
	for name, value := range values {
		out = append(out, render.Hidden(name, value))
	}
	return out
}

// eventsURL derives the event endpoint from a submit action of the form
// ".../submit".
func eventsURL(action string) string {
	base, ok := strings.CutSuffix(strings.TrimRight(action, "/"), "/submit")
	if !ok {
		return ""
	}
	return base + "/events"
}

func fieldLabel(field model.Field) string {
	if label := plainText(field.Label); label != "" {
		return label
	}
	return field.Name
}

func inputType(field model.Field) string {
	switch field.Type {
	case model.FieldTypeInteger, model.FieldTypeNumber:
		return "number"
	}
	switch strings.ToLower(field.Format) {
	case "email":
		return "email"
	case "password":
		return "password"
	}
	return "text"
}
