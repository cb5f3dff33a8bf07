package cli

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	mgerrors "github.com/mindgrove/mindgrove/pkg/errors"
	"github.com/mindgrove/mindgrove/pkg/pipeline"
	"github.com/mindgrove/mindgrove/pkg/store"
	"github.com/mindgrove/mindgrove/pkg/tree"
	"github.com/mindgrove/mindgrove/pkg/view"
)

// newServeCmd creates the serve command, exposing maps and renders over HTTP.
func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve mind maps over HTTP",
		Long: `Serve starts an HTTP API for stored mind maps.

Routes:
  GET    /maps                      list maps
  GET    /maps/{id}                 fetch a map
  PUT    /maps/{id}                 create or replace a map
  DELETE /maps/{id}                 delete a map
  GET    /maps/{id}/render.{format} render (svg, png, json)
  POST   /maps/{id}/hit             resolve a pointer position`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}

func runServe(cmd *cobra.Command, addr string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	cfg := loadConfig(logger)

	st, err := openStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	c, err := openCache(ctx, cfg.Cache)
	if err != nil {
		return err
	}
	defer c.Close()

	srv := &server{
		store:  st,
		runner: pipeline.NewRunner(pipeline.WithCache(c), pipeline.WithLogger(logger)),
		cfg:    cfg,
		logger: logger,
	}

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	printInfo("Serving on %s", StyleHighlight.Render(addr))
	logger.Info("http server starting", "addr", addr)
	if err := httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// server holds the HTTP handler dependencies.
type server struct {
	store  store.Store
	runner *pipeline.Runner
	cfg    Config
	logger *log.Logger
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/maps", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Put("/", s.handlePut)
			r.Delete("/", s.handleDelete)
			r.Get("/render.{format}", s.handleRender)
			r.Post("/hit", s.handleHit)
		})
	})
	return r
}

func (s *server) handleList(w http.ResponseWriter, r *http.Request) {
	infos, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, infos)
}

func (s *server) handleGet(w http.ResponseWriter, r *http.Request) {
	m, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, m)
}

func (s *server) handlePut(w http.ResponseWriter, r *http.Request) {
	var m store.Map
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		s.writeError(w, mgerrors.Wrap(mgerrors.ErrCodeInvalidFormat, err, "parse map body"))
		return
	}
	m.ID = chi.URLParam(r, "id")
	if m.Root != nil {
		if dups := tree.Validate(m.Root); len(dups) > 0 {
			s.writeError(w, mgerrors.New(mgerrors.ErrCodeInvalidTree,
				"tree contains %d duplicate node ID(s)", len(dups)))
			return
		}
	}
	if err := s.store.Put(r.Context(), &m); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, m)
}

func (s *server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleRender renders a stored map. Viewport parameters come from the query
// string: width, height, pan_x, pan_y, scale.
func (s *server) handleRender(w http.ResponseWriter, r *http.Request) {
	m, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	format := pipeline.Format(chi.URLParam(r, "format"))
	opts := pipeline.Options{
		Viz:     pipeline.VizMap,
		Formats: []pipeline.Format{format},
		Width:   queryInt(r, "width", s.cfg.Render.Width),
		Height:  queryInt(r, "height", s.cfg.Render.Height),
		Layout:  s.cfg.Layout,
	}
	if t, ok := queryTransform(r); ok {
		opts.Transform = t
	}

	res, err := s.runner.Run(r.Context(), m.Root, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	switch format {
	case pipeline.FormatSVG:
		w.Header().Set("Content-Type", "image/svg+xml")
	case pipeline.FormatPNG:
		w.Header().Set("Content-Type", "image/png")
	default:
		w.Header().Set("Content-Type", "application/json")
	}
	_, _ = w.Write(res.Artifacts[format])
}

// hitRequest is the body of a hit-test call: a screen position and the
// client's viewport transform.
type hitRequest struct {
	X         float64        `json:"x"`
	Y         float64        `json:"y"`
	Transform view.Transform `json:"transform"`
}

// hitResponse describes what the pointer position resolves to.
type hitResponse struct {
	Kind   string `json:"kind"`
	NodeID string `json:"node_id,omitempty"`
}

func (s *server) handleHit(w http.ResponseWriter, r *http.Request) {
	m, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	var req hitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, mgerrors.Wrap(mgerrors.ErrCodeInvalidFormat, err, "parse hit body"))
		return
	}

	res, err := s.runner.Run(r.Context(), m.Root, pipeline.Options{
		Viz:     pipeline.VizMap,
		Formats: []pipeline.Format{pipeline.FormatJSON},
		Layout:  s.cfg.Layout,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	hit := view.HitTest(res.Scene, req.Transform, req.X, req.Y)
	s.writeJSON(w, http.StatusOK, hitResponse{Kind: hit.Kind.String(), NodeID: hit.NodeID})
}

// writeJSON writes a JSON response.
func (s *server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "err", err)
	}
}

// errorResponse is the JSON error body.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError maps an error code onto an HTTP status.
func (s *server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch mgerrors.GetCode(err) {
	case mgerrors.ErrCodeMapNotFound, mgerrors.ErrCodeNodeNotFound, mgerrors.ErrCodeNotFound:
		status = http.StatusNotFound
	case mgerrors.ErrCodeInvalidMapID, mgerrors.ErrCodeInvalidInput, mgerrors.ErrCodeInvalidTree,
		mgerrors.ErrCodeInvalidFormat, mgerrors.ErrCodeInvalidVizType:
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	s.writeJSON(w, status, errorResponse{
		Code:    string(mgerrors.GetCode(err)),
		Message: mgerrors.UserMessage(err),
	})
}

// queryInt reads an integer query parameter with a fallback.
func queryInt(r *http.Request, key string, def int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

// queryTransform reads pan and scale from the query string. Returns false
// when none are present so the render recenters by default.
func queryTransform(r *http.Request) (view.Transform, bool) {
	q := r.URL.Query()
	if q.Get("pan_x") == "" && q.Get("pan_y") == "" && q.Get("scale") == "" {
		return view.Transform{}, false
	}
	t := view.Identity()
	if v, err := strconv.ParseFloat(q.Get("pan_x"), 64); err == nil {
		t.PanX = v
	}
	if v, err := strconv.ParseFloat(q.Get("pan_y"), 64); err == nil {
		t.PanY = v
	}
	if v, err := strconv.ParseFloat(q.Get("scale"), 64); err == nil && v > 0 {
		t.Scale = v
	}
	return t, true
}
