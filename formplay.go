// Package formplay is the entry point for the profile form demo: it bundles
// the OpenAPI document describing the form, the default prefill values, and
// helpers that build the form model and render it.
package formplay

import (
	"context"
	"embed"
	"io/fs"

	"github.com/goliatone/go-formplay/pkg/form"
	"github.com/goliatone/go-formplay/pkg/model"
	pkgopenapi "github.com/goliatone/go-formplay/pkg/openapi"
	"github.com/goliatone/go-formplay/pkg/orchestrator"
)

const (
	// DefaultDocument is the bundled OpenAPI document inside SchemaFS.
	DefaultDocument = "schemas/profile.openapi.yaml"
	// DefaultOperation is the operation the demo form is built from.
	DefaultOperation = "submitProfile"
)

//go:embed schemas/*.yaml
var embeddedSchemas embed.FS

// SchemaFS exposes the bundled OpenAPI documents.
func SchemaFS() fs.FS {
	return embeddedSchemas
}

// DefaultSource points at the bundled profile document.
func DefaultSource() pkgopenapi.Source {
	return pkgopenapi.SourceFromFS(DefaultDocument)
}

// DefaultValues returns the values the demo form mounts with. The age default
// is deliberately too short, so the form starts invalid.
func DefaultValues() form.Values {
	return form.Values{
		"name":  "Reem",
		"age":   "29",
		"color": "Blue",
	}
}

// NewOrchestrator returns an orchestrator whose loader resolves fs sources
// against SchemaFS unless another file system is supplied.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	base := []orchestrator.Option{orchestrator.WithFileSystem(SchemaFS())}
	return orchestrator.New(append(base, options...)...)
}

// LoadForm builds the form model for operationID from src. A nil src loads
// the bundled document and an empty operationID selects DefaultOperation.
func LoadForm(ctx context.Context, src pkgopenapi.Source, operationID string) (model.FormModel, error) {
	if src == nil {
		src = DefaultSource()
	}
	if operationID == "" {
		operationID = DefaultOperation
	}
	return NewOrchestrator().Model(ctx, orchestrator.Request{
		Source:      src,
		OperationID: operationID,
	})
}
