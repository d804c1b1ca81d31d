package model

import (
	"errors"
	"fmt"

	pkgopenapi "github.com/goliatone/go-formplay/pkg/openapi"
)

var (
	errOperationIDMissing     = errors.New("model builder: operation id is required")
	errOperationPathMissing   = errors.New("model builder: operation path is required")
	errOperationMethodMissing = errors.New("model builder: operation method is required")
	errNoFields               = errors.New("model builder: request body has no properties")
)

func validateOperation(op pkgopenapi.Operation) error {
	if op.ID == "" {
		return errOperationIDMissing
	}
	if op.Path == "" {
		return errOperationPathMissing
	}
	if op.Method == "" {
		return errOperationMethodMissing
	}
	body := op.RequestBody
	if body.Type != "" && body.Type != "object" {
		return fmt.Errorf("model builder: request body must be an object, got %q", body.Type)
	}
	if len(body.Properties) == 0 {
		return errNoFields
	}
	for name, prop := range body.Properties {
		if prop.Type == "object" || prop.Type == "array" {
			return fmt.Errorf("model builder: field %q: nested %s properties are not supported", name, prop.Type)
		}
	}
	return nil
}
