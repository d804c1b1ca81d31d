package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	formplay "github.com/goliatone/go-formplay"
	"github.com/goliatone/go-formplay/pkg/model"
	pkgopenapi "github.com/goliatone/go-formplay/pkg/openapi"
	"github.com/goliatone/go-formplay/pkg/orchestrator"
	"github.com/goliatone/go-formplay/pkg/render"
)

const snapshotRendererName = "form-model-snapshot"

type snapshotRenderer struct {
	path string
}

func (r *snapshotRenderer) Name() string {
	return snapshotRendererName
}

func (r *snapshotRenderer) ContentType() string {
	return "application/json"
}

func (r *snapshotRenderer) Render(_ context.Context, form model.FormModel, _ render.RenderOptions) ([]byte, error) {
	payload, err := json.MarshalIndent(form, "", "  ")
	if err != nil {
		return nil, err
	}
	payload = append(payload, '\n')
	if err := os.WriteFile(r.path, payload, 0o644); err != nil {
		return nil, err
	}
	return payload, nil
}

func main() {
	var (
		schemaPath  = flag.String("schema", "", "OpenAPI document path (bundled profile document when empty)")
		operationID = flag.String("operation", formplay.DefaultOperation, "operation ID to snapshot")
		outputPath  = flag.String("output", "pkg/testsupport/testdata/profile.form.json", "output path for the serialized form model")
	)
	flag.Parse()

	ctx := context.Background()

	registry, err := render.NewRegistry(&snapshotRenderer{path: *outputPath})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to register snapshot renderer: %v\n", err)
		os.Exit(1)
	}

	source := formplay.DefaultSource()
	if *schemaPath != "" {
		source = pkgopenapi.SourceFromFile(*schemaPath)
	}

	orch := formplay.NewOrchestrator(
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(snapshotRendererName),
	)
	_, err = orch.Generate(ctx, orchestrator.Request{
		Source:      source,
		OperationID: *operationID,
		Defaults:    formplay.DefaultValues(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to snapshot form model: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Wrote form model snapshot to %s\n", *outputPath)
}
