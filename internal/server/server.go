// Package server exposes form sessions over HTTP: HTML pages for browsers,
// JSON event endpoints for the runtime script, and operational endpoints.
package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/goliatone/go-formplay/internal/metrics"
	"github.com/goliatone/go-formplay/internal/session"
	"github.com/goliatone/go-formplay/internal/watch"
	"github.com/goliatone/go-formplay/pkg/form"
	"github.com/goliatone/go-formplay/pkg/render"
)

// Options configure a Server. Source and Renderer are required.
type Options struct {
	Source        watch.Source
	Renderer      render.Renderer
	Assets        fs.FS
	Logger        *zap.Logger
	Metrics       *metrics.Metrics
	Defaults      form.Values
	ResetOnSubmit bool
	SessionTTL    time.Duration
	// MaxSessions caps live sessions; zero means no cap.
	MaxSessions   int
	ThemeVariant  string
	Mode          string
	// OnSubmit runs after the built-in submission log record.
	OnSubmit form.SubmitFunc
}

// Server wires the session store to a gin engine.
type Server struct {
	opts    Options
	engine  *gin.Engine
	store   *session.Store
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// New validates the options and builds the router.
func New(opts Options) (*Server, error) {
	if opts.Source == nil {
		return nil, errors.New("server: form source is required")
	}
	if opts.Renderer == nil {
		return nil, errors.New("server: renderer is required")
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.New()
	}
	if opts.Mode != "" {
		gin.SetMode(opts.Mode)
	}

	s := &Server{
		opts:    opts,
		logger:  opts.Logger.Named("server"),
		metrics: opts.Metrics,
	}
	s.store = session.NewStore(s.mountForm, opts.SessionTTL,
		session.WithMaxSessions(opts.MaxSessions),
		session.WithOnClose(func(id string) {
			s.metrics.SessionClosed()
			s.logger.Debug("session closed", zap.String("session", id))
		}),
	)
	s.engine = s.routes()
	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Store exposes the session store.
func (s *Server) Store() *session.Store {
	return s.store
}

func (s *Server) mountForm() (*form.Form, error) {
	return form.New(s.opts.Source.Current(),
		form.WithDefaults(s.opts.Defaults),
		form.WithResetOnSubmit(s.opts.ResetOnSubmit),
		form.WithHooks(s.metrics.Hooks()),
		form.WithSubmit(s.submitted),
	)
}

// submitted is the completion callback: it logs every submitted value.
func (s *Server) submitted(ctx context.Context, values form.Values) {
	fields := []zap.Field{zap.Namespace("values")}
	for _, name := range s.opts.Source.Current().Names() {
		if value, ok := values[name]; ok {
			fields = append(fields, zap.String(name, value))
		}
	}
	s.logger.Info("form submitted", fields...)
	if s.opts.OnSubmit != nil {
		s.opts.OnSubmit(ctx, values)
	}
}

// ListenAndServe serves on addr and sweeps idle sessions until ctx is done,
// then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.sweep(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: listen: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server: shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) sweep(ctx context.Context) {
	if s.opts.SessionTTL <= 0 {
		return
	}
	ticker := time.NewTicker(s.opts.SessionTTL / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := s.store.Sweep(now); n > 0 {
				s.logger.Info("expired idle sessions", zap.Int("count", n))
			}
		}
	}
}
