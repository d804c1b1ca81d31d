package testsupport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	pkgmodel "github.com/goliatone/go-formplay/pkg/model"
)

// ProfileModel returns the form model built from the bundled profile document:
// "name" and "age" with a [3,10] length rule each, plus a hidden "color".
func ProfileModel() pkgmodel.FormModel {
	lengthRules := func() []pkgmodel.ValidationRule {
		return []pkgmodel.ValidationRule{
			{Kind: pkgmodel.ValidationRuleMinLength, Params: map[string]string{"value": "3", "message": "min 3 chars"}},
			{Kind: pkgmodel.ValidationRuleMaxLength, Params: map[string]string{"value": "10", "message": "max 10 characters"}},
		}
	}
	return pkgmodel.FormModel{
		OperationID: "submitProfile",
		Endpoint:    "/profile",
		Method:      "POST",
		Title:       "Form example",
		Fields: []pkgmodel.Field{
			{Name: "name", Type: pkgmodel.FieldTypeString, Label: "name", Order: 1, Validations: lengthRules(), Metadata: map[string]string{"label": "name", "order": "1"}},
			{Name: "age", Type: pkgmodel.FieldTypeString, Label: "age", Order: 2, Validations: lengthRules(), Metadata: map[string]string{"label": "age", "order": "2"}},
			{Name: "color", Type: pkgmodel.FieldTypeString, Label: "Color", Order: 3, Widget: pkgmodel.WidgetHidden, Metadata: map[string]string{"order": "3", "widget": "hidden"}},
		},
	}
}

// ProfileDefaults returns the prefill values the demo mounts with.
func ProfileDefaults() map[string]string {
	return map[string]string{
		"name":  "Reem",
		"age":   "29",
		"color": "Blue",
	}
}

// MustLoadFormModel loads a JSON fixture into a FormModel structure.
func MustLoadFormModel(t *testing.T, path string) pkgmodel.FormModel {
	t.Helper()

	form, err := LoadFormModel(path)
	if err != nil {
		t.Fatalf("load form model: %v", err)
	}
	return form
}

// LoadFormModel reads a JSON fixture into a FormModel, returning an error for
// callers managing setup outside of *testing.T.
func LoadFormModel(path string) (pkgmodel.FormModel, error) {
	if path == "" {
		return pkgmodel.FormModel{}, errors.New("testsupport: form model path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return pkgmodel.FormModel{}, fmt.Errorf("testsupport: read form model: %w", err)
	}
	var out pkgmodel.FormModel
	if err := json.Unmarshal(data, &out); err != nil {
		return pkgmodel.FormModel{}, fmt.Errorf("testsupport: unmarshal form model: %w", err)
	}
	return out, nil
}

// WriteFile writes a fixture into a temporary directory and returns its path.
func WriteFile(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
