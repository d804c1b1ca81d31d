package server

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/goliatone/go-formplay/internal/session"
	"github.com/goliatone/go-formplay/pkg/form"
	"github.com/goliatone/go-formplay/pkg/render"
)

// submitRequest is the JSON body of a submit. Values are applied as change
// events before submitting.
type submitRequest struct {
	Values map[string]string `json:"values"`
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.logger))

	r.GET("/", s.handleIndex)
	r.GET("/healthz", s.handleHealth)
	r.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	if s.opts.Assets != nil {
		r.StaticFS("/assets", http.FS(s.opts.Assets))
	}

	sessions := r.Group("/sessions/:id")
	sessions.GET("", s.handlePage)
	sessions.DELETE("", s.handleDelete)
	sessions.POST("/events", s.handleEvent)
	sessions.POST("/submit", s.handleSubmit)
	return r
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": s.store.Len()})
}

// handleIndex opens a new session. A reload that still carries a live
// session id keeps that session instead of opening another one.
func (s *Server) handleIndex(c *gin.Context) {
	if id := c.Query(render.SessionFieldName); id != "" {
		if sess, err := s.store.Get(id); err == nil {
			s.renderPage(c, http.StatusOK, sess, "")
			return
		}
	}
	sess, err := s.store.Create()
	if err != nil {
		s.fail(c, err)
		return
	}
	s.metrics.SessionOpened()
	s.renderPage(c, http.StatusOK, sess, "")
}

func (s *Server) handlePage(c *gin.Context) {
	sess, err := s.store.Get(c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	s.renderPage(c, http.StatusOK, sess, "")
}

func (s *Server) handleDelete(c *gin.Context) {
	if err := s.store.Delete(c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleEvent(c *gin.Context) {
	sess, err := s.store.Get(c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}

	var ev form.Event
	if err := c.ShouldBindJSON(&ev); err != nil {
		s.fail(c, StatusError{Code: http.StatusBadRequest, Err: fmt.Errorf("decode event: %w", err)})
		return
	}
	kind, err := form.ParseEventType(string(ev.Type))
	if err != nil {
		s.fail(c, err)
		return
	}
	ev.Type = kind

	var result form.Result
	err = sess.Do(func(f *form.Form) error {
		res, err := f.Dispatch(c.Request.Context(), ev)
		result = res
		return err
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	s.metrics.Event(kind)
	c.JSON(http.StatusOK, result)
}

// handleSubmit accepts either a JSON body or a browser form post. Posted
// values are applied as change events first; for form posts only keys naming
// model fields are applied.
func (s *Server) handleSubmit(c *gin.Context) {
	sess, err := s.store.Get(c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}

	jsonBody := strings.HasPrefix(c.ContentType(), gin.MIMEJSON)
	values, err := s.submittedValues(c, jsonBody)
	if err != nil {
		s.fail(c, err)
		return
	}

	var result form.Result
	err = sess.Do(func(f *form.Form) error {
		m := f.Model()
		if jsonBody {
			if unknown := unknownFields(values, m.Names()); len(unknown) > 0 {
				return fmt.Errorf("%w: %q", form.ErrUnknownField, unknown[0])
			}
		}
		for _, name := range m.Names() {
			value, ok := values[name]
			if !ok {
				continue
			}
			if err := f.Change(name, value); err != nil {
				return err
			}
			s.metrics.Event(form.EventChange)
		}
		res, err := f.Dispatch(c.Request.Context(), form.Event{Type: form.EventSubmit})
		result = res
		return err
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	s.metrics.Event(form.EventSubmit)

	if jsonBody || wantsJSON(c) {
		c.JSON(http.StatusOK, result)
		return
	}
	notice := ""
	status := http.StatusUnprocessableEntity
	if result.Submitted {
		notice = "Submitted"
		status = http.StatusOK
	}
	s.renderPage(c, status, sess, notice)
}

func (s *Server) submittedValues(c *gin.Context, jsonBody bool) (map[string]string, error) {
	if jsonBody {
		var req submitRequest
		if c.Request.ContentLength == 0 {
			return map[string]string{}, nil
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			return nil, StatusError{Code: http.StatusBadRequest, Err: fmt.Errorf("decode submit: %w", err)}
		}
		if req.Values == nil {
			req.Values = map[string]string{}
		}
		return req.Values, nil
	}

	if err := c.Request.ParseForm(); err != nil {
		return nil, StatusError{Code: http.StatusBadRequest, Err: fmt.Errorf("parse form: %w", err)}
	}
	values := make(map[string]string, len(c.Request.PostForm))
	for key := range c.Request.PostForm {
		if key == render.SessionFieldName {
			continue
		}
		values[key] = c.Request.PostForm.Get(key)
	}
	return values, nil
}

func (s *Server) renderPage(c *gin.Context, status int, sess *session.Session, notice string) {
	var (
		body []byte
		err  error
	)
	err = sess.Do(func(f *form.Form) error {
		opts := render.OptionsFromSnapshot(f.Snapshot())
		opts.Page = true
		opts.Action = "/sessions/" + sess.ID + "/submit"
		opts.Hidden = render.MergeHiddenFields(nil, render.SessionField(sess.ID))
		opts.ThemeVariant = s.opts.ThemeVariant
		opts.Notice = notice
		body, err = s.opts.Renderer.Render(c.Request.Context(), f.Model(), opts)
		return err
	})
	if err != nil {
		s.fail(c, fmt.Errorf("render session %s: %w", sess.ID, err))
		return
	}
	c.Data(status, s.opts.Renderer.ContentType(), body)
}

func unknownFields(values map[string]string, names []string) []string {
	known := make(map[string]struct{}, len(names))
	for _, name := range names {
		known[name] = struct{}{}
	}
	var unknown []string
	for name := range values {
		if _, ok := known[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	return unknown
}

func wantsJSON(c *gin.Context) bool {
	return c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON
}
