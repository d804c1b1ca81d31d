// Package validation compiles form model rules and evaluates them against
// field values. Evaluation is pure: the same value and RuleSet always yield the
// same ordered messages.
package validation
