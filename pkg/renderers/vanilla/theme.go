package vanilla

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

const (
	// DefaultThemeName names the built-in manifest.
	DefaultThemeName = "formplay"
	// AssetStylesheet and AssetRuntime are the manifest asset keys the page
	// template links.
	AssetStylesheet = "stylesheet"
	AssetRuntime    = "runtime"
	// PartialForm and PartialPage are the manifest template keys for the form
	// fragment and the full page.
	PartialForm = "forms.form"
	PartialPage = "forms.page"
)

// DefaultManifest returns the built-in theme: a light base and a "dark"
// variant. Assets resolve under /assets.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"fp-accent":  "#2457d6",
			"fp-error":   "#b42318",
			"fp-surface": "#ffffff",
			"fp-text":    "#1d2433",
			"fp-radius":  "6px",
		},
		Templates: map[string]string{
			PartialForm: formTemplate,
			PartialPage: pageTemplate,
		},
		Assets: theme.Assets{
			Prefix: "/assets",
			Files: map[string]string{
				AssetStylesheet: StylesheetName,
				AssetRuntime:    RuntimeScriptName,
			},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"fp-accent":  "#8fb0ff",
					"fp-error":   "#ff8a80",
					"fp-surface": "#141821",
					"fp-text":    "#e6e9f0",
				},
			},
		},
	}
}

// ValidateManifest registers the manifest with a fresh go-theme registry,
// which rejects malformed manifests.
func ValidateManifest(manifest *theme.Manifest) error {
	if manifest == nil {
		return errors.New("vanilla: theme manifest is required")
	}
	if err := theme.NewRegistry().Register(manifest); err != nil {
		return fmt.Errorf("vanilla: register theme %q: %w", manifest.Name, err)
	}
	return nil
}

// ThemeConfig resolves a manifest and variant into renderer configuration.
// Variant tokens and asset files override the base ones and every token is
// exposed as a CSS custom property named "--<token>".
func ThemeConfig(manifest *theme.Manifest, variant string) (*theme.RendererConfig, error) {
	if manifest == nil {
		return nil, nil
	}
	variant = strings.TrimSpace(variant)

	tokens := copyStringMap(manifest.Tokens)
	partials := copyStringMap(manifest.Templates)
	files := copyStringMap(manifest.Assets.Files)
	prefix := manifest.Assets.Prefix
	if variant != "" {
		override, ok := manifest.Variants[variant]
		if !ok {
			return nil, fmt.Errorf("vanilla: theme %q has no variant %q", manifest.Name, variant)
		}
		tokens = mergeStringMaps(tokens, override.Tokens)
		partials = mergeStringMaps(partials, override.Templates)
		files = mergeStringMaps(files, override.Assets.Files)
		if override.Assets.Prefix != "" {
			prefix = override.Assets.Prefix
		}
	}

	vars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		vars["--"+key] = value
	}

	return &theme.RendererConfig{
		Theme:    manifest.Name,
		Variant:  variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  vars,
		AssetURL: func(key string) string {
			file, ok := files[key]
			if !ok || file == "" {
				return ""
			}
			return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(file, "/")
		},
	}, nil
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {")
	for _, key := range keys {
		fmt.Fprintf(&b, " %s: %s;", key, vars[key])
	}
	b.WriteString(" }")
	return b.String()
}

func copyStringMap(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

func mergeStringMaps(base, override map[string]string) map[string]string {
	for key, value := range override {
		base[key] = value
	}
	return base
}
