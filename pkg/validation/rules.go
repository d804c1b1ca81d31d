package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/goliatone/go-formplay/pkg/model"
)

// Validator evaluates compiled field rules. Length and bound checks are
// delegated to go-playground/validator. String lengths are counted in UTF-16
// code units, the way browser form validation counts them, so an emoji
// outside the basic plane counts as two.
// A Validator is safe for concurrent use.
type Validator struct {
	engine *validator.Validate
}

// New returns a Validator backed by a fresh validator engine.
func New() *Validator {
	return &Validator{engine: validator.New()}
}

// Rule is a compiled validation rule ready for evaluation.
type Rule struct {
	Kind    string
	Message string

	tag     string
	numeric bool
	length  bool
	pattern *regexp.Regexp
}

// RuleSet is an ordered list of compiled rules for one field.
type RuleSet []Rule

// Compile converts model rules into a RuleSet, preserving order. Unknown kinds
// and malformed parameters are reported as errors so configuration mistakes
// surface when a form mounts rather than on the first keystroke.
func Compile(rules []model.ValidationRule) (RuleSet, error) {
	if len(rules) == 0 {
		return nil, nil
	}
	out := make(RuleSet, 0, len(rules))
	for _, rule := range rules {
		compiled, err := compileRule(rule)
		if err != nil {
			return nil, err
		}
		out = append(out, compiled)
	}
	return out, nil
}

func compileRule(rule model.ValidationRule) (Rule, error) {
	compiled := Rule{Kind: rule.Kind, Message: rule.Message()}
	value := strings.TrimSpace(rule.Params[model.ParamValue])

	switch rule.Kind {
	case model.ValidationRuleRequired:
		compiled.tag = "required"
	case model.ValidationRuleMinLength, model.ValidationRuleMaxLength:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return Rule{}, fmt.Errorf("validation: %s requires a non-negative integer, got %q", rule.Kind, value)
		}
		compiled.length = true
		if rule.Kind == model.ValidationRuleMinLength {
			compiled.tag = "min=" + value
		} else {
			compiled.tag = "max=" + value
		}
	case model.ValidationRuleMin, model.ValidationRuleMax:
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return Rule{}, fmt.Errorf("validation: %s requires a number, got %q", rule.Kind, value)
		}
		compiled.numeric = true
		if rule.Kind == model.ValidationRuleMin {
			compiled.tag = "gte=" + value
		} else {
			compiled.tag = "lte=" + value
		}
	case model.ValidationRulePattern:
		expr := rule.Params[model.ParamPattern]
		re, err := regexp.Compile(expr)
		if err != nil {
			return Rule{}, fmt.Errorf("validation: pattern %q: %w", expr, err)
		}
		compiled.pattern = re
	default:
		return Rule{}, fmt.Errorf("validation: unsupported rule kind %q", rule.Kind)
	}

	if compiled.Message == "" {
		compiled.Message = defaultMessage(rule.Kind, value)
	}
	return compiled, nil
}

func defaultMessage(kind, value string) string {
	switch kind {
	case model.ValidationRuleRequired:
		return "required"
	case model.ValidationRuleMinLength:
		return fmt.Sprintf("must be at least %s characters", value)
	case model.ValidationRuleMaxLength:
		return fmt.Sprintf("must be at most %s characters", value)
	case model.ValidationRuleMin:
		return fmt.Sprintf("must be at least %s", value)
	case model.ValidationRuleMax:
		return fmt.Sprintf("must be at most %s", value)
	default:
		return "has an invalid format"
	}
}

// Messages returns the messages of every failing rule, in rule order. A nil
// result means the value is valid.
func (v *Validator) Messages(value string, rules RuleSet) []string {
	var out []string
	for _, rule := range rules {
		if !v.passes(value, rule) {
			out = append(out, rule.Message)
		}
	}
	return out
}

func (v *Validator) passes(value string, rule Rule) bool {
	switch {
	case rule.pattern != nil:
		return rule.pattern.MatchString(value)
	case rule.numeric:
		number, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return false
		}
		return v.engine.Var(number, rule.tag) == nil
	case rule.length:
		return v.engine.Var(utf16Len(value), rule.tag) == nil
	default:
		return v.engine.Var(value, rule.tag) == nil
	}
}

func utf16Len(value string) int {
	n := 0
	for _, r := range value {
		if r > 0xFFFF && r <= utf8.MaxRune {
			n += 2
			continue
		}
		n++
	}
	return n
}
