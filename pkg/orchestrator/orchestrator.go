package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	internalLoader "github.com/goliatone/go-formplay/internal/openapi/loader"
	internalParser "github.com/goliatone/go-formplay/internal/openapi/parser"
	"github.com/goliatone/go-formplay/pkg/form"
	"github.com/goliatone/go-formplay/pkg/model"
	pkgopenapi "github.com/goliatone/go-formplay/pkg/openapi"
	"github.com/goliatone/go-formplay/pkg/render"
	"github.com/goliatone/go-formplay/pkg/renderers/vanilla"
)

const defaultRendererName = "vanilla"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom OpenAPI loader.
func WithLoader(loader pkgopenapi.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithParser injects a custom OpenAPI parser.
func WithParser(parser pkgopenapi.Parser) Option {
	return func(o *Orchestrator) {
		o.parser = parser
	}
}

// WithModelBuilder injects a custom form model builder.
func WithModelBuilder(builder model.Builder) Option {
	return func(o *Orchestrator) {
		o.builder = builder
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithFileSystem backs SourceFromFS lookups of the default loader. Ignored
// when WithLoader is supplied.
func WithFileSystem(files fs.FS) Option {
	return func(o *Orchestrator) {
		o.files = files
	}
}

// WithFormOptions appends options used when Generate mounts the form.
func WithFormOptions(options ...form.Option) Option {
	return func(o *Orchestrator) {
		o.formOptions = append(o.formOptions, options...)
	}
}

// Orchestrator coordinates the pipeline from OpenAPI document to rendered
// output. Missing dependencies fall back to the built-in implementations.
type Orchestrator struct {
	loader          pkgopenapi.Loader
	parser          pkgopenapi.Parser
	builder         model.Builder
	registry        *render.Registry
	files           fs.FS
	defaultRenderer string
	formOptions     []form.Option
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

func (o *Orchestrator) applyDefaults() {
	if o.loader == nil {
		o.loader = internalLoader.New(pkgopenapi.NewLoaderOptions(pkgopenapi.WithFileSystem(o.files)))
	}
	if o.parser == nil {
		o.parser = internalParser.New(pkgopenapi.NewParserOptions())
	}
	if o.builder == nil {
		o.builder = model.NewBuilder()
	}
	if o.registry == nil {
		renderer, err := vanilla.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
			return
		}
		registry, err := render.NewRegistry(renderer)
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default registry: %w", err)
			return
		}
		o.registry = registry
	}
}

// Request describes the inputs required to render a form from an OpenAPI
// operation.
type Request struct {
	// Source identifies where the OpenAPI document lives. Optional when Document
	// is supplied.
	Source pkgopenapi.Source

	// Document allows callers to bypass the loader.
	Document *pkgopenapi.Document

	// OperationID selects which OpenAPI operation to render into a form.
	OperationID string

	// Renderer names the renderer to use. Empty means the default renderer.
	Renderer string

	// Defaults prefill the mounted form.
	Defaults form.Values

	// RenderOptions carries per-request overrides. Values, errors and the
	// submit state are replaced by the mounted form's snapshot.
	RenderOptions render.RenderOptions
}

// Model runs the loader → parser → builder stages and returns the form model
// for the requested operation.
func (o *Orchestrator) Model(ctx context.Context, req Request) (model.FormModel, error) {
	if ctx == nil {
		return model.FormModel{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return model.FormModel{}, err
	}
	if err := o.initialiseErr; err != nil {
		return model.FormModel{}, err
	}
	if req.OperationID == "" {
		return model.FormModel{}, errors.New("orchestrator: operation id is required")
	}

	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return model.FormModel{}, err
	}

	operations, err := o.parser.Operations(ctx, doc)
	if err != nil {
		return model.FormModel{}, fmt.Errorf("orchestrator: parse operations: %w", err)
	}

	op, ok := operations[req.OperationID]
	if !ok {
		return model.FormModel{}, fmt.Errorf("orchestrator: operation %q not found", req.OperationID)
	}

	built, err := o.builder.Build(op)
	if err != nil {
		return model.FormModel{}, fmt.Errorf("orchestrator: build form model: %w", err)
	}
	return built, nil
}

// Generate builds the model, mounts a form with the request defaults, and
// renders the mounted state with the selected renderer.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	built, err := o.Model(ctx, req)
	if err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	options := append([]form.Option{form.WithDefaults(req.Defaults)}, o.formOptions...)
	mounted, err := form.New(built, options...)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: mount form: %w", err)
	}

	renderOptions := req.RenderOptions
	snapshot := render.OptionsFromSnapshot(mounted.Snapshot())
	renderOptions.Values = snapshot.Values
	renderOptions.Errors = snapshot.Errors
	renderOptions.Valid = snapshot.Valid
	renderOptions.SubmitLabel = snapshot.SubmitLabel

	output, err := renderer.Render(ctx, built, renderOptions)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render with %q: %w", renderer.Name(), err)
	}
	return output, nil
}

// Registry exposes the renderer registry.
func (o *Orchestrator) Registry() *render.Registry {
	return o.registry
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (pkgopenapi.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return pkgopenapi.Document{}, errors.New("orchestrator: source or document is required")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return pkgopenapi.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return doc, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if name == "" {
		name = o.defaultRenderer
	}
	renderer, err := o.registry.Get(name)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	return renderer, nil
}
