package validation_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formplay/pkg/model"
	"github.com/goliatone/go-formplay/pkg/validation"
)

func lengthRules() []model.ValidationRule {
	return []model.ValidationRule{
		{Kind: model.ValidationRuleMinLength, Params: map[string]string{"value": "3", "message": "min 3 chars"}},
		{Kind: model.ValidationRuleMaxLength, Params: map[string]string{"value": "10", "message": "max 10 characters"}},
	}
}

func TestMessages_LengthBounds(t *testing.T) {
	rules, err := validation.Compile(lengthRules())
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	v := validation.New()

	cases := []struct {
		value string
		want  []string
	}{
		{value: "", want: []string{"min 3 chars"}},
		{value: "a", want: []string{"min 3 chars"}},
		{value: "29", want: []string{"min 3 chars"}},
		{value: "abc", want: nil},
		{value: "Reem", want: nil},
		{value: "abcdefghij", want: nil},
		{value: "abcdefghijk", want: []string{"max 10 characters"}},
		{value: strings.Repeat("x", 40), want: []string{"max 10 characters"}},
	}

	for _, tc := range cases {
		got := v.Messages(tc.value, rules)
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Fatalf("messages for %q mismatch (-want +got):\n%s", tc.value, diff)
		}
	}
}

func TestMessages_CountsUTF16Units(t *testing.T) {
	rules, err := validation.Compile(lengthRules())
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	v := validation.New()

	// three runes, six bytes
	if got := v.Messages("héé", rules); got != nil {
		t.Fatalf("expected no messages for three-rune value, got %v", got)
	}
	// ten runes, twenty bytes
	if got := v.Messages(strings.Repeat("é", 10), rules); got != nil {
		t.Fatalf("expected no messages for ten-rune value, got %v", got)
	}
}

func TestMessages_AstralRunesCountTwice(t *testing.T) {
	rules, err := validation.Compile(lengthRules())
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	v := validation.New()

	cases := []struct {
		value string
		want  []string
	}{
		{value: "😀", want: []string{"min 3 chars"}},
		{value: "😀😀", want: nil},
		{value: strings.Repeat("😀", 5), want: nil},
		{value: strings.Repeat("😀", 5) + "a", want: []string{"max 10 characters"}},
	}
	for _, tc := range cases {
		got := v.Messages(tc.value, rules)
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Fatalf("messages for %q mismatch (-want +got):\n%s", tc.value, diff)
		}
	}
}

func TestMessages_DefaultsAndOtherKinds(t *testing.T) {
	rules, err := validation.Compile([]model.ValidationRule{
		{Kind: model.ValidationRuleRequired},
		{Kind: model.ValidationRuleMin, Params: map[string]string{"value": "18"}},
		{Kind: model.ValidationRuleMax, Params: map[string]string{"value": "120"}},
		{Kind: model.ValidationRulePattern, Params: map[string]string{"pattern": `^\d+$`}},
	})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	v := validation.New()

	if diff := cmp.Diff([]string{"required", "must be at least 18", "must be at most 120", "has an invalid format"}, v.Messages("", rules)); diff != "" {
		t.Fatalf("empty value mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"must be at least 18"}, v.Messages("12", rules)); diff != "" {
		t.Fatalf("low value mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"must be at most 120"}, v.Messages("121", rules)); diff != "" {
		t.Fatalf("high value mismatch (-want +got):\n%s", diff)
	}
	if got := v.Messages("29", rules); got != nil {
		t.Fatalf("expected valid, got %v", got)
	}
}

func TestCompile_Errors(t *testing.T) {
	cases := []model.ValidationRule{
		{Kind: model.ValidationRuleMinLength, Params: map[string]string{"value": "three"}},
		{Kind: model.ValidationRuleMaxLength, Params: map[string]string{"value": "-1"}},
		{Kind: model.ValidationRuleMin, Params: map[string]string{"value": ""}},
		{Kind: model.ValidationRulePattern, Params: map[string]string{"pattern": "("}},
		{Kind: "email"},
	}
	for _, rule := range cases {
		if _, err := validation.Compile([]model.ValidationRule{rule}); err == nil {
			t.Fatalf("expected compile error for %+v", rule)
		}
	}
}
