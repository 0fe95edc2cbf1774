package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/pixelgrid/pkg/background"
	"github.com/matzehuels/pixelgrid/pkg/channel"
	pgerrors "github.com/matzehuels/pixelgrid/pkg/errors"
	"github.com/matzehuels/pixelgrid/pkg/httputil"
	"github.com/matzehuels/pixelgrid/pkg/overlay"
	"github.com/matzehuels/pixelgrid/pkg/placement"
	"github.com/matzehuels/pixelgrid/pkg/settings"
)

// forwardFunc delivers saved settings to the page.
type forwardFunc func(ctx context.Context, s settings.GridSettings) error

// server exposes the settings API. Every accepted change is saved and then
// forwarded to the page.
type server struct {
	repo       *settings.Repository
	controller *overlay.Controller
	forward    forwardFunc
	viewport   placement.Viewport
	logger     *log.Logger

	// mu serializes writes so a read-modify-write is never interleaved with
	// another change, and pages receive changes in save order.
	mu sync.Mutex
}

// localForwarder forwards through an in-process channel and reports render
// failures from the receiving side.
func localForwarder(page *channel.Local) forwardFunc {
	return func(ctx context.Context, s settings.GridSettings) error {
		resp, err := page.Send(ctx, s)
		if err != nil {
			return err
		}
		if !resp.Success {
			return pgerrors.New(pgerrors.ErrCodeInternal, "%s", resp.Error)
		}
		return nil
	}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.logger))

	r.Get("/healthz", s.handleHealth)
	r.Get("/api/settings", s.handleGetSettings)
	r.Put("/api/settings", s.handlePutSettings)
	r.Post("/api/settings/reset", s.handleResetSettings)
	r.Get("/api/placement", s.handlePlacement)
	r.Get("/api/overlay", s.handleOverlay)
	r.Get("/overlay.css", s.handleCSS)
	r.Mount(channel.MessagesPath, channel.NewHandler(channel.HandlerFunc(s.handleMessage), s.logger))

	return r
}

func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start).Round(time.Microsecond),
				"id", middleware.GetReqID(r.Context()),
			)
		})
	}
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	gs, err := s.repo.Load(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, gs)
}

// handlePutSettings merges a partial update onto the stored settings.
func (s *server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	var p settings.Partial
	if err := httputil.DecodeJSON(r, &p); err != nil {
		httputil.WriteError(w, err)
		return
	}
	s.respond(w, r, func(ctx context.Context) (settings.GridSettings, error) {
		return s.repo.Update(ctx, func(cur settings.GridSettings) settings.GridSettings {
			return cur.Apply(p)
		})
	})
}

func (s *server) handleResetSettings(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, s.repo.Reset)
}

func (s *server) respond(w http.ResponseWriter, r *http.Request, write func(context.Context) (settings.GridSettings, error)) {
	gs, err := s.write(r.Context(), write)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, gs)
}

// handleMessage serves POST /api/messages.
func (s *server) handleMessage(ctx context.Context, msg channel.Message) error {
	_, err := s.write(ctx, func(ctx context.Context) (settings.GridSettings, error) {
		return msg.Settings, s.repo.Save(ctx, msg.Settings)
	})
	return err
}

// write persists a change under mu and forwards the saved settings.
func (s *server) write(ctx context.Context, fn func(context.Context) (settings.GridSettings, error)) (settings.GridSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	gs, err := fn(ctx)
	if err != nil {
		return gs, err
	}
	if err := s.forward(ctx, gs); err != nil {
		return gs, fmt.Errorf("forward settings: %w", err)
	}
	return gs, nil
}

type placementResponse struct {
	Visible   bool                 `json:"visible"`
	Placement *placement.Placement `json:"placement,omitempty"`
	Style     placement.Style      `json:"style,omitempty"`
}

func (s *server) handlePlacement(w http.ResponseWriter, r *http.Request) {
	vp, err := viewportFromQuery(r, s.viewport)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	gs, err := s.repo.Load(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	resp := placementResponse{}
	if p, ok := placement.Resolve(vp, gs); ok {
		resp.Visible = true
		resp.Placement = &p
		resp.Style = placement.NewStyle(p, background.Generate(gs))
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

type overlayResponse struct {
	State    string                `json:"state"`
	Settings settings.GridSettings `json:"settings"`
	Style    placement.Style       `json:"style,omitempty"`
}

func (s *server) handleOverlay(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, overlayResponse{
		State:    s.controller.State().String(),
		Settings: s.controller.Settings(),
		Style:    s.controller.Style(),
	})
}

// handleCSS serves the base stylesheet followed by the overlay rule for the
// requested viewport. The rule is omitted while the grid is hidden.
func (s *server) handleCSS(w http.ResponseWriter, r *http.Request) {
	vp, err := viewportFromQuery(r, s.viewport)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	gs, err := s.repo.Load(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	fmt.Fprintln(w, placement.BaseStylesheet)
	if style, ok := placement.Compute(vp, gs); ok {
		fmt.Fprintln(w)
		fmt.Fprintln(w, style.Rule("#"+placement.ElementID))
	}
}

// viewportFromQuery reads ?width=&height=, falling back to def for missing
// values.
func viewportFromQuery(r *http.Request, def placement.Viewport) (placement.Viewport, error) {
	vp := def
	for _, q := range []struct {
		name string
		dst  *int
	}{{"width", &vp.Width}, {"height", &vp.Height}} {
		raw := r.URL.Query().Get(q.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return def, pgerrors.New(pgerrors.ErrCodeInvalidViewport, "%s must be an integer, got %q", q.name, raw)
		}
		*q.dst = n
	}
	if err := pgerrors.ValidateViewport(vp.Width, vp.Height); err != nil {
		return def, err
	}
	return vp, nil
}

// listen runs srv until ctx is done, then shuts it down gracefully.
func listen(ctx context.Context, srv *http.Server, logger *log.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Debug("shutting down http server", "addr", srv.Addr)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
