// Package server exposes the dispatcher over a stateless JSON API.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/dispatch"
	"github.com/san-kum/algoviz/internal/experiment"
	"github.com/san-kum/algoviz/internal/logging"
	"github.com/san-kum/algoviz/internal/notify"
	"github.com/san-kum/algoviz/internal/random"
	"github.com/san-kum/algoviz/internal/store"
	"github.com/san-kum/algoviz/internal/structure"
	"github.com/san-kum/algoviz/internal/trace"
)

// maxBody bounds request bodies; the largest valid structure is tiny.
const maxBody = 1 << 20

type Server struct {
	disp     *dispatch.Dispatcher
	examples *experiment.Registry
	metrics  *Metrics
	random   random.Options
	log      *slog.Logger
}

type Option func(*Server)

func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.log = l }
}

// WithRandom sets the options used for random examples.
func WithRandom(o random.Options) Option {
	return func(s *Server) { s.random = o }
}

func New(opts ...Option) *Server {
	s := &Server{
		examples: experiment.NewRegistry(),
		metrics:  NewMetrics(),
		random:   random.DefaultOptions(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logging.NewNop()
	}
	s.disp = dispatch.New(
		dispatch.WithLogger(s.log),
		dispatch.WithNotifier(notify.LogNotifier{Log: s.log}),
		dispatch.WithObserver(s.metrics.Observe),
	)
	return s
}

func (s *Server) Metrics() *Metrics { return s.metrics }

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLog)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/algorithms", s.listAlgorithms)
		r.Get("/algorithms/{kind}/{name}", s.getAlgorithm)
		r.Get("/examples", s.listExamples)
		r.Post("/examples/{kind}", s.randomExample)
		r.Post("/dispatch", s.dispatch)
		r.Post("/export", s.export)
	})
	return r
}

func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Debug("request", "method", r.Method, "path", r.URL.Path, "status", ww.Status(),
			"duration", time.Since(start), "request_id", middleware.GetReqID(r.Context()))
	})
}

func (s *Server) listAlgorithms(w http.ResponseWriter, r *http.Request) {
	reg := s.disp.Registry()
	kind := r.URL.Query().Get("kind")
	if kind == "" {
		writeJSON(w, http.StatusOK, reg.List())
		return
	}
	k, err := structure.ParseKind(kind)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, reg.ForKind(k))
}

func (s *Server) getAlgorithm(w http.ResponseWriter, r *http.Request) {
	info, ok := s.disp.Registry().Lookup(structure.Kind(chi.URLParam(r, "kind")), chi.URLParam(r, "name"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown algorithm")
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) listExamples(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.examples.ListExamples())
}

type exampleResponse struct {
	Seed      uint64             `json:"seed"`
	Example   string             `json:"example"`
	Structure structure.Envelope `json:"structure"`
}

// randomExample draws an example of {kind}. Query parameters: seed (to
// reproduce an earlier example), operation (picks a suitable example, e.g.
// a sorted array for binary search) and example (a named example).
func (s *Server) randomExample(w http.ResponseWriter, r *http.Request) {
	k, err := structure.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	q := r.URL.Query()

	seed := uint64(uuid.New().ID())
	if v := q.Get("seed"); v != "" {
		if seed, err = strconv.ParseUint(v, 10, 64); err != nil {
			writeError(w, http.StatusBadRequest, "seed must be a non-negative integer")
			return
		}
	}

	var ex experiment.Example
	if name := q.Get("example"); name != "" {
		ex, err = s.examples.GetExample(name)
		if err == nil && ex.Kind != k {
			err = fmt.Errorf("example %s is a %s", name, ex.Kind)
		}
	} else {
		ex, err = s.examples.ExampleFor(k, q.Get("operation"))
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	env, err := structure.Wrap(ex.Build(random.New(seed, s.random)))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.metrics.examples.WithLabelValues(string(k)).Inc()
	writeJSON(w, http.StatusOK, exampleResponse{Seed: seed, Example: ex.Name, Structure: env})
}

type dispatchRequest struct {
	Kind      structure.Kind     `json:"kind"`
	Operation string             `json:"operation"`
	Structure structure.Envelope `json:"structure"`
	Params    map[string]any     `json:"params"`
	// CurrentStep is only used by /api/export.
	CurrentStep int `json:"currentStep"`
}

type dispatchResponse struct {
	Algorithm string              `json:"algorithm"`
	Steps     trace.Steps         `json:"steps"`
	Final     *structure.Envelope `json:"final,omitempty"`
	Value     *int                `json:"value,omitempty"`
	Applied   bool                `json:"applied"`
	Log       []string            `json:"log"`
}

type errorResponse struct {
	Error string `json:"error"`
	Op    string `json:"operation,omitempty"`
	Field string `json:"field,omitempty"`
	// Steps is always present so clients can treat a failure as an empty
	// trace.
	Steps trace.Steps `json:"steps"`
}

func (s *Server) run(w http.ResponseWriter, r *http.Request) (*dispatch.Result, *dispatchRequest, bool) {
	var req dispatchRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		s.log.Warn("dispatch: invalid request body", "error", err)
		return nil, nil, false
	}
	if req.Kind == "" {
		req.Kind = req.Structure.Kind
	}
	in, err := req.Structure.Unwrap()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, nil, false
	}

	res, err := s.disp.Dispatch(r.Context(), req.Kind, req.Operation, in, req.Params)
	var vf *dispatch.ValidationFailure
	var gf *dispatch.GenerationFailure
	switch {
	case errors.As(err, &vf):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: vf.Message, Op: vf.Op, Field: vf.Field, Steps: trace.Steps{}})
		return nil, nil, false
	case errors.As(err, &gf):
		status := http.StatusInternalServerError
		if errors.Is(err, algo.ErrUnknownAlgorithm) || errors.Is(err, structure.ErrUnknownKind) {
			status = http.StatusNotFound
		}
		writeJSON(w, status, errorResponse{Error: gf.Error(), Op: gf.Op, Steps: trace.Steps{}})
		return nil, nil, false
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return nil, nil, false
	}
	return res, &req, true
}

func (s *Server) dispatch(w http.ResponseWriter, r *http.Request) {
	res, _, ok := s.run(w, r)
	if !ok {
		return
	}
	resp := dispatchResponse{
		Algorithm: res.Algorithm,
		Steps:     res.Steps,
		Value:     res.Value,
		Applied:   res.Applied,
		Log:       res.Log,
	}
	if res.Final != nil {
		env, err := structure.Wrap(res.Final)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		resp.Final = &env
	}
	writeJSON(w, http.StatusOK, resp)
}

// export runs the operation and returns the trace as a downloadable
// export artifact.
func (s *Server) export(w http.ResponseWriter, r *http.Request) {
	res, req, ok := s.run(w, r)
	if !ok {
		return
	}
	e := store.Export{Algorithm: res.Algorithm, Steps: res.Steps, CurrentStep: req.CurrentStep}
	if e.CurrentStep < 0 || e.CurrentStep >= len(e.Steps) {
		writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("currentStep must be between 0 and %d", len(e.Steps)-1))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Algorithm+"-trace.json"))
	if err := store.Write(w, e); err != nil {
		s.log.Error("export: write failed", "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
