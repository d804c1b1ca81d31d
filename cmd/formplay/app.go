package main

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	formplay "github.com/goliatone/go-formplay"
	"github.com/goliatone/go-formplay/internal/config"
	"github.com/goliatone/go-formplay/internal/logging"
	"github.com/goliatone/go-formplay/internal/watch"
	"github.com/goliatone/go-formplay/pkg/form"
	"github.com/goliatone/go-formplay/pkg/model"
	pkgopenapi "github.com/goliatone/go-formplay/pkg/openapi"
)

// app holds what every command needs: configuration, the logger, and a way to
// load the form model.
type app struct {
	cfg    config.Config
	logger *zap.Logger
}

func newApp(flags *globalFlags) (*app, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if level := strings.TrimSpace(flags.logLevel); level != "" {
		cfg.Log.Level = level
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("configure logging: %w", err)
	}
	return &app{cfg: cfg, logger: logger}, nil
}

func (a *app) close() {
	_ = a.logger.Sync()
}

func (a *app) source() pkgopenapi.Source {
	if path := strings.TrimSpace(a.cfg.Form.Document); path != "" {
		return pkgopenapi.SourceFromFile(path)
	}
	return formplay.DefaultSource()
}

func (a *app) loadModel(ctx context.Context) (model.FormModel, error) {
	return formplay.LoadForm(ctx, a.source(), a.cfg.Form.Operation)
}

// modelSource returns a static source, or a reloading one when the document
// is a file on disk and watching is enabled. The caller runs the reloader.
func (a *app) modelSource(ctx context.Context) (watch.Source, *watch.Reloader, error) {
	path := strings.TrimSpace(a.cfg.Form.Document)
	if path == "" || !a.cfg.Form.Watch {
		m, err := a.loadModel(ctx)
		if err != nil {
			return nil, nil, err
		}
		return watch.Static{Model: m}, nil, nil
	}
	reloader, err := watch.NewReloader(ctx, path, a.loadModel, a.logger)
	if err != nil {
		return nil, nil, err
	}
	return reloader, reloader, nil
}

func (a *app) defaults() form.Values {
	return form.Values(a.cfg.Form.Defaults).Clone()
}

// logSubmission is the completion callback of the terminal and one-shot
// commands.
func (a *app) logSubmission(m model.FormModel) form.SubmitFunc {
	return func(_ context.Context, values form.Values) {
		fields := []zap.Field{zap.Namespace("values")}
		for _, name := range m.Names() {
			fields = append(fields, zap.String(name, values[name]))
		}
		a.logger.Info("form submitted", fields...)
	}
}
