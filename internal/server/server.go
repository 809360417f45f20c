// Package server exposes the expression evaluator over HTTP.
//
// Endpoints:
//
//	POST /eval     evaluate {"expr": "...", "vars": {"x": "123"}}
//	GET  /metrics  prometheus text exposition
//	GET  /health   liveness with a heap snapshot
//
// Every request gets its own evaluator, so requests never share variables.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/bigcalc/bigint"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/expr"
	"github.com/agbru/bigcalc/internal/logging"
	"github.com/agbru/bigcalc/internal/metrics"
)

const shutdownGrace = 5 * time.Second

// Config holds the server settings.
type Config struct {
	Addr string
	// Timeout bounds a single evaluation; 0 disables it.
	Timeout  time.Duration
	Security SecurityConfig
}

// Server serves the HTTP API.
type Server struct {
	cfg      Config
	logger   logging.Logger
	metrics  *metrics.Collector
	memory   *metrics.MemoryCollector
	tracer   trace.Tracer
	httpSrv  *http.Server
	started  time.Time
	security SecurityConfig
}

// EvalRequest is the body of POST /eval.
type EvalRequest struct {
	Expr string            `json:"expr"`
	Vars map[string]string `json:"vars,omitempty"`
}

// EvalResponse is the successful answer of POST /eval.
type EvalResponse struct {
	Result   string `json:"result"`
	Digits   int    `json:"digits"`
	Duration string `json:"duration"`
}

// ErrorResponse is returned with every non-2xx status.
type ErrorResponse struct {
	Error string `json:"error"`
}

// New builds a Server. A nil collector gets a fresh one.
func New(cfg Config, logger logging.Logger, collector *metrics.Collector) *Server {
	if collector == nil {
		collector = metrics.NewCollector()
	}
	s := &Server{
		cfg:      cfg,
		logger:   logger,
		metrics:  collector,
		memory:   metrics.NewMemoryCollector(),
		tracer:   otel.Tracer("github.com/agbru/bigcalc/internal/server"),
		started:  time.Now(),
		security: cfg.Security,
	}
	s.httpSrv = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the routed handler with all middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/eval", s.wrap(s.handleEval))
	mux.HandleFunc("/metrics", s.wrap(s.handleMetrics))
	mux.HandleFunc("/health", s.wrap(s.handleHealth))
	return mux
}

func (s *Server) wrap(h http.HandlerFunc) http.HandlerFunc {
	return SecurityMiddleware(s.security, s.metricsMiddleware(h))
}

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", logging.String("addr", s.cfg.Addr))
		errCh <- s.httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return apperrors.WrapError(err, "listen on %s", s.cfg.Addr)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	s.logger.Info("server shutting down")
	if err := s.httpSrv.Shutdown(shutdownCtx); err != nil {
		return apperrors.WrapError(err, "shutdown")
	}
	return nil
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware tracks active and completed requests.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()

		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		next(rec, r)
		s.metrics.ObserveRequest(r.URL.Path, rec.code)
	}
}

func (s *Server) handleEval(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.methodNotAllowed(w, r, http.MethodPost)
		return
	}
	ctx, span := s.tracer.Start(r.Context(), "http.eval")
	defer span.End()

	var req EvalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, apperrors.ValidationError{Field: "body", Message: err.Error()})
		return
	}
	ev, err := s.evaluatorFor(req)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	span.SetAttributes(attribute.Int("expr.length", len(req.Expr)), attribute.Int("vars", len(req.Vars)))

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	start := time.Now()
	res, err := ev.Eval(ctx, req.Expr)
	elapsed := time.Since(start)
	s.metrics.ObserveDuration(elapsed)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.writeError(w, statusFor(err), err)
		return
	}

	text := res.String()
	digits := len(text)
	if res.Sign() < 0 {
		digits--
	}
	s.writeJSON(w, http.StatusOK, EvalResponse{
		Result:   text,
		Digits:   digits,
		Duration: elapsed.String(),
	})
}

// evaluatorFor validates the request and returns an evaluator holding its
// variables.
func (s *Server) evaluatorFor(req EvalRequest) (*expr.Evaluator, error) {
	if req.Expr == "" {
		return nil, apperrors.ValidationError{Field: "expr", Message: "must not be empty"}
	}
	if limit := s.security.MaxExprLength; limit > 0 && len(req.Expr) > limit {
		return nil, apperrors.ValidationError{Field: "expr", Message: fmt.Sprintf("longer than %d bytes", limit)}
	}
	if limit := s.security.MaxVars; limit > 0 && len(req.Vars) > limit {
		return nil, apperrors.ValidationError{Field: "vars", Message: fmt.Sprintf("more than %d variables", limit)}
	}
	ev := expr.NewEvaluator(
		expr.WithObserver(s.metrics),
		expr.WithLogger(s.logger),
		expr.WithLimits(expr.Limits{MaxBits: s.security.MaxResultBits, MaxWork: s.security.MaxWork}),
	)
	for name, text := range req.Vars {
		if !expr.IsIdent(name) {
			return nil, apperrors.ValidationError{Field: "vars", Message: fmt.Sprintf("%q is not an identifier", name)}
		}
		v, err := bigint.Parse(text)
		if err != nil {
			return nil, apperrors.ValidationError{Field: "vars." + name, Message: err.Error()}
		}
		ev.Set(name, v)
	}
	return ev, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusUnprocessableEntity
	}
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r, http.MethodGet)
		return
	}
	s.metrics.WritePrometheus(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r, http.MethodGet)
		return
	}
	snap := s.memory.Snapshot()
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"uptime":     time.Since(s.started).Round(time.Second).String(),
		"heap_bytes": snap.HeapAlloc,
		"heap_words": snap.HeapWords(),
		"word_bits":  bigint.WordBits,
	})
}

func (s *Server) methodNotAllowed(w http.ResponseWriter, r *http.Request, allow string) {
	s.logger.Debug("method not allowed", logging.String("method", r.Method), logging.String("path", r.URL.Path))
	w.Header().Set("Allow", allow)
	s.writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("method %s not allowed", r.Method))
}

func (s *Server) writeError(w http.ResponseWriter, code int, err error) {
	if code >= http.StatusInternalServerError {
		s.logger.Error("request failed", err, logging.Int("status", code))
	}
	s.writeJSON(w, code, ErrorResponse{Error: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", err)
	}
}
