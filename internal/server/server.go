// Package server hosts the shortcode and widget adapters over HTTP.
//
// It plays the part of the host application: content is posted for
// shortcode expansion, widget instances are created and edited through
// their settings form, and rendered fragments are served as text/html.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/ghrepos/pkg/buildinfo"
	"github.com/matzehuels/ghrepos/pkg/display"
	apperrors "github.com/matzehuels/ghrepos/pkg/errors"
	"github.com/matzehuels/ghrepos/pkg/settings"
	"github.com/matzehuels/ghrepos/pkg/shortcode"
	"github.com/matzehuels/ghrepos/pkg/widget"
)

const (
	maxBodyBytes    = 1 << 20
	shutdownTimeout = 10 * time.Second
	readTimeout     = 15 * time.Second
)

// Server routes requests to the presentation adapters.
type Server struct {
	shortcodes *shortcode.Handler
	widget     *widget.Widget
	layout     widget.Layout
	store      settings.Store
	logger     *log.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger. The default discards output.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithLayout sets the markup wrapped around rendered widgets.
func WithLayout(layout widget.Layout) Option {
	return func(s *Server) {
		s.layout = layout
	}
}

// New creates a Server rendering through r and persisting widgets in store.
func New(r *display.Renderer, store settings.Store, opts ...Option) *Server {
	s := &Server{
		shortcodes: shortcode.New(r),
		layout:     widget.DefaultLayout,
		store:      store,
		logger:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.widget = widget.New(r, s.layout)
	return s
}

// Handler returns the HTTP handler with all routes and middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/shortcode", s.handleShortcode)
	r.Post("/expand", s.handleExpand)
	r.Get("/assets/"+display.StylesheetName, s.handleStylesheet)
	r.Get("/version", s.handleVersion)

	r.Route("/widgets", func(r chi.Router) {
		r.Get("/", s.handleListWidgets)
		r.Post("/", s.handleCreateWidget)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleRenderWidget)
			r.Post("/", s.handleUpdateWidget)
			r.Delete("/", s.handleDeleteWidget)
			r.Get("/form", s.handleWidgetForm)
		})
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("Listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return apperrors.Wrap(apperrors.ErrCodeNetwork, err, "listen on %s", addr)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return ctx.Err()
}

func (s *Server) handleShortcode(w http.ResponseWriter, r *http.Request) {
	attrs := make(map[string]string)
	for k, v := range r.URL.Query() {
		if len(v) > 0 {
			attrs[k] = v[0]
		}
	}
	writeHTML(w, http.StatusOK, s.shortcodes.Render(r.Context(), attrs))
}

func (s *Server) handleExpand(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
		return
	}
	writeHTML(w, http.StatusOK, s.shortcodes.Expand(r.Context(), string(body)))
}

func (s *Server) handleStylesheet(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	_, _ = w.Write(display.Stylesheet())
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleListWidgets(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.List(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if list == nil {
		list = []settings.Instance{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleCreateWidget(w http.ResponseWriter, r *http.Request) {
	cfg, err := formConfig(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	id := r.PostFormValue("id")
	if id == "" {
		id = settings.NewID()
	} else if _, err := s.store.Get(r.Context(), id); err == nil {
		s.fail(w, r, apperrors.New(apperrors.ErrCodeWidgetExists, "widget %q already exists", id))
		return
	} else if !errors.Is(err, settings.ErrNotFound) {
		s.fail(w, r, err)
		return
	}
	cfg = widget.Update(cfg, widget.Config{})
	if err := s.store.Set(r.Context(), id, cfg); err != nil {
		s.fail(w, r, err)
		return
	}
	s.logger.Debug("Widget created", "id", id)
	writeJSON(w, http.StatusCreated, instanceResponse{ID: id, Config: cfg})
}

func (s *Server) handleRenderWidget(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	cfg, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeHTML(w, http.StatusOK, s.widget.Render(r.Context(), *cfg))
}

func (s *Server) handleUpdateWidget(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	old, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	cfg, err := formConfig(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	cfg = widget.Update(cfg, *old)
	if err := s.store.Set(r.Context(), id, cfg); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, instanceResponse{ID: id, Config: cfg})
}

func (s *Server) handleDeleteWidget(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleWidgetForm draws the settings form. An unknown ID gets the form for
// a new instance.
func (s *Server) handleWidgetForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var cfg widget.Config
	stored, err := s.store.Get(r.Context(), id)
	switch {
	case err == nil:
		cfg = *stored
	case !errors.Is(err, settings.ErrNotFound):
		s.fail(w, r, err)
		return
	}
	form, err := s.widget.Form(id, cfg)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeHTML(w, http.StatusOK, form)
}

type instanceResponse struct {
	ID     string        `json:"id"`
	Config widget.Config `json:"config"`
}

func formConfig(r *http.Request) (widget.Config, error) {
	if err := r.ParseForm(); err != nil {
		return widget.Config{}, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "parse form")
	}
	return widget.Config{
		Title:     r.PostFormValue("title"),
		GitHubURL: r.PostFormValue("github_url"),
	}, nil
}

// fail maps an error to a status code and logs server-side failures.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeInvalidID, apperrors.ErrCodeInvalidInput:
		status = http.StatusBadRequest
	case apperrors.ErrCodeWidgetExists:
		status = http.StatusConflict
	case apperrors.ErrCodeWidgetNotFound:
		status = http.StatusNotFound
	}
	if errors.Is(err, settings.ErrNotFound) {
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("Request failed", "path", r.URL.Path, "err", err)
		http.Error(w, "internal error", status)
		return
	}
	http.Error(w, apperrors.UserMessage(err), status)
}

func writeHTML(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
