package vanilla

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

//go:embed assets/*
var embeddedAssets embed.FS

const (
	StylesheetName    = "formplay.css"
	RuntimeScriptName = "formplay-runtime.js"
)

// TemplatesFS exposes the embedded template bundle rooted at the template
// directory, so templates are addressed as "form.tmpl" and "page.tmpl".
func TemplatesFS() fs.FS {
	return mustSub(embeddedTemplates, "templates")
}

// AssetsFS exposes the embedded stylesheet and runtime script so callers can
// serve them over HTTP.
func AssetsFS() fs.FS {
	return mustSub(embeddedAssets, "assets")
}

func mustSub(files embed.FS, dir string) fs.FS {
	sub, err := fs.Sub(files, dir)
	if err != nil {
		// fs.Sub only fails on an invalid path literal.
		panic(err)
	}
	return sub
}
