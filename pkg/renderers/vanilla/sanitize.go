package vanilla

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicyOnce sync.Once
	strictPolicy     *bluemonday.Policy

	richPolicyOnce sync.Once
	richPolicy     *bluemonday.Policy
)

// plainText strips every tag from schema-provided text such as titles and
// labels. Entities are decoded again because the template engine escapes the
// result.
func plainText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	strictPolicyOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(trimmed)))
}

// richText keeps safe inline markup in descriptions, which are emitted
// unescaped.
func richText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	richPolicyOnce.Do(func() {
		richPolicy = bluemonday.UGCPolicy()
	})
	return strings.TrimSpace(richPolicy.Sanitize(trimmed))
}
