package model

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const extensionNamespace = "x-formplay"

const (
	extLabel       = "label"
	extPlaceholder = "placeholder"
	extWidget      = "widget"
	extOrder       = "order"
	extMessages    = "messages"
)

// formplayExtensions flattens both accepted spellings (a nested x-formplay
// object and x-formplay-<key> entries) into one map. Prefixed keys win.
func formplayExtensions(ext map[string]any) map[string]any {
	if len(ext) == 0 {
		return nil
	}
	out := make(map[string]any)
	if nested, ok := ext[extensionNamespace].(map[string]any); ok {
		for key, value := range nested {
			out[key] = value
		}
	}
	for key, value := range ext {
		if trimmed, ok := strings.CutPrefix(key, extensionNamespace+"-"); ok && trimmed != "" {
			out[trimmed] = value
		}
	}
	return out
}

// CanonicalizeExtensionValue converts scalar extension values into strings so
// metadata maps stay JSON-stable.
func CanonicalizeExtensionValue(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		trimmed := strings.TrimSpace(v)
		return trimmed, trimmed != ""
	case bool:
		return strconv.FormatBool(v), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case json.Number:
		return v.String(), true
	default:
		return "", false
	}
}

func extensionInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int(v), true
	case json.Number:
		n, err := v.Int64()
		return int(n), err == nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		return n, err == nil
	default:
		return 0, false
	}
}

// extensionMessages reads the x-formplay-messages map keyed by rule kind.
func extensionMessages(value any) (map[string]string, error) {
	if value == nil {
		return nil, nil
	}
	raw, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s-%s must be an object, got %T", extensionNamespace, extMessages, value)
	}
	out := make(map[string]string, len(raw))
	for kind, msg := range raw {
		str, ok := CanonicalizeExtensionValue(msg)
		if !ok {
			continue
		}
		out[kind] = str
	}
	return out, nil
}

// metadataFromExtensions keeps every scalar x-formplay value as metadata so
// renderers can read hints the builder does not interpret.
func metadataFromExtensions(ext map[string]any) map[string]string {
	if len(ext) == 0 {
		return nil
	}
	out := make(map[string]string)
	for key, value := range ext {
		if str, ok := CanonicalizeExtensionValue(value); ok {
			out[key] = str
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
