package model

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	pkgopenapi "github.com/goliatone/go-formplay/pkg/openapi"
)

func intPtr(v int) *int { return &v }

func profileOperation() pkgopenapi.Operation {
	messages := map[string]any{
		"minLength": "min 3 chars",
		"maxLength": "max 10 characters",
	}
	body := pkgopenapi.Schema{
		Type: "object",
		Properties: map[string]pkgopenapi.Schema{
			"name": {
				Type:      "string",
				MinLength: intPtr(3),
				MaxLength: intPtr(10),
				Extensions: map[string]any{
					"x-formplay-order":    float64(1),
					"x-formplay-messages": messages,
				},
			},
			"age": {
				Type:      "string",
				MinLength: intPtr(3),
				MaxLength: intPtr(10),
				Extensions: map[string]any{
					"x-formplay": map[string]any{
						"order": float64(2),
						"label": "age",
					},
					"x-formplay-messages": messages,
				},
			},
			"color": {
				Type: "string",
				Extensions: map[string]any{
					"x-formplay-order":  float64(3),
					"x-formplay-widget": "Hidden",
				},
			},
		},
	}
	op := pkgopenapi.MustNewOperation("submitProfile", "post", "/profile", body)
	op.Summary = "Form example"
	return op
}

func TestBuilder_BuildProfile(t *testing.T) {
	form, err := New(Options{}).Build(profileOperation())
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	lengthRules := []ValidationRule{
		{Kind: ValidationRuleMinLength, Params: map[string]string{"value": "3", "message": "min 3 chars"}},
		{Kind: ValidationRuleMaxLength, Params: map[string]string{"value": "10", "message": "max 10 characters"}},
	}
	want := FormModel{
		OperationID: "submitProfile",
		Endpoint:    "/profile",
		Method:      "POST",
		Title:       "Form example",
		Fields: []Field{
			{Name: "name", Type: FieldTypeString, Label: "Name", Order: 1, Validations: lengthRules, Metadata: map[string]string{"order": "1"}},
			{Name: "age", Type: FieldTypeString, Label: "age", Order: 2, Validations: lengthRules, Metadata: map[string]string{"order": "2", "label": "age"}},
			{Name: "color", Type: FieldTypeString, Label: "Color", Order: 3, Widget: "hidden", Metadata: map[string]string{"order": "3", "widget": "Hidden"}},
		},
	}
	if diff := cmp.Diff(want, form); diff != "" {
		t.Fatalf("form model mismatch (-want +got):\n%s", diff)
	}

	if got := len(form.Visible()); got != 2 {
		t.Fatalf("expected 2 visible fields, got %d", got)
	}
	hidden := form.Hidden()
	if len(hidden) != 1 || hidden[0].Name != "color" {
		t.Fatalf("expected color to be the only hidden field, got %+v", hidden)
	}
}

func TestBuilder_RequiredRuleComesFirst(t *testing.T) {
	body := pkgopenapi.Schema{
		Type:     "object",
		Required: []string{"code"},
		Properties: map[string]pkgopenapi.Schema{
			"code": {Type: "string", MinLength: intPtr(2), Pattern: "^[A-Z]+$"},
		},
	}
	form, err := New(Options{}).Build(pkgopenapi.MustNewOperation("op", "POST", "/x", body))
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	var kinds []string
	for _, rule := range form.Fields[0].Validations {
		kinds = append(kinds, rule.Kind)
	}
	want := []string{ValidationRuleRequired, ValidationRuleMinLength, ValidationRulePattern}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Fatalf("rule order mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilder_OrderFallsBackToName(t *testing.T) {
	body := pkgopenapi.Schema{
		Type: "object",
		Properties: map[string]pkgopenapi.Schema{
			"zeta":  {Type: "string"},
			"alpha": {Type: "string"},
			"mid":   {Type: "string", Extensions: map[string]any{"x-formplay-order": "-1"}},
		},
	}
	form, err := New(Options{}).Build(pkgopenapi.MustNewOperation("op", "POST", "/x", body))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if diff := cmp.Diff([]string{"mid", "alpha", "zeta"}, form.Names()); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilder_Errors(t *testing.T) {
	cases := []struct {
		name string
		op   pkgopenapi.Operation
		want string
	}{
		{
			name: "no properties",
			op:   pkgopenapi.MustNewOperation("op", "POST", "/x", pkgopenapi.Schema{Type: "object"}),
			want: "no properties",
		},
		{
			name: "nested object",
			op: pkgopenapi.MustNewOperation("op", "POST", "/x", pkgopenapi.Schema{
				Type:       "object",
				Properties: map[string]pkgopenapi.Schema{"address": {Type: "object"}},
			}),
			want: "nested object",
		},
		{
			name: "bad order",
			op: pkgopenapi.MustNewOperation("op", "POST", "/x", pkgopenapi.Schema{
				Type: "object",
				Properties: map[string]pkgopenapi.Schema{
					"a": {Type: "string", Extensions: map[string]any{"x-formplay-order": 1.5}},
				},
			}),
			want: "must be an integer",
		},
		{
			name: "bad messages",
			op: pkgopenapi.MustNewOperation("op", "POST", "/x", pkgopenapi.Schema{
				Type: "object",
				Properties: map[string]pkgopenapi.Schema{
					"a": {Type: "string", Extensions: map[string]any{"x-formplay-messages": "oops"}},
				},
			}),
			want: "must be an object",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(Options{}).Build(tc.op)
			if err == nil {
				t.Fatalf("expected error containing %q", tc.want)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not contain %q", err.Error(), tc.want)
			}
		})
	}
}

func TestDefaultLabeler(t *testing.T) {
	cases := map[string]string{
		"name":          "Name",
		"favoriteColor": "Favorite Color",
		"user_age":      "User Age",
		"address2":      "Address 2",
		"":              "",
	}
	for input, want := range cases {
		if got := DefaultLabeler(input); got != want {
			t.Fatalf("DefaultLabeler(%q) = %q, want %q", input, got, want)
		}
	}
}
