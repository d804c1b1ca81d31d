package formplay

import (
	internalLoader "github.com/goliatone/go-formplay/internal/openapi/loader"
	internalParser "github.com/goliatone/go-formplay/internal/openapi/parser"
	pkgopenapi "github.com/goliatone/go-formplay/pkg/openapi"
)

// NewLoader constructs a loader using the internal implementation while keeping
// the concrete type hidden from consumers. Fs sources resolve against SchemaFS
// unless WithFileSystem overrides it.
func NewLoader(options ...pkgopenapi.LoaderOption) pkgopenapi.Loader {
	base := []pkgopenapi.LoaderOption{pkgopenapi.WithFileSystem(SchemaFS())}
	cfg := pkgopenapi.NewLoaderOptions(append(base, options...)...)
	return internalLoader.New(cfg)
}

// NewParser constructs a parser backed by the internal implementation.
func NewParser(options ...pkgopenapi.ParserOption) pkgopenapi.Parser {
	cfg := pkgopenapi.NewParserOptions(options...)
	return internalParser.New(cfg)
}
