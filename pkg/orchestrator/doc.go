// Package orchestrator wires the loader → parser → model builder → renderer
// pipeline behind a single entry point. Generate mounts a form container for
// the built model so the rendered output reflects the validated mount state.
package orchestrator
