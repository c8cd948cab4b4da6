package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"budgetbot/internal/advisor"
	"budgetbot/internal/common"
	"budgetbot/internal/expenses"
	"budgetbot/internal/export"
	"budgetbot/internal/extract"
	"budgetbot/internal/ocr"
)

// HealthChecker reports whether the storage backend is reachable.
type HealthChecker func(ctx context.Context) error

// Server wires the HTTP surface to the domain services.
type Server struct {
	cfg       common.ServerConfig
	expenses  *expenses.Service
	extractor *extract.Extractor
	scanner   *ocr.Scanner
	advisor   *advisor.Service
	exporter  *export.Service
	health    HealthChecker
	logger    *slog.Logger
	httpSrv   *http.Server
}

type Deps struct {
	Expenses  *expenses.Service
	Extractor *extract.Extractor
	Scanner   *ocr.Scanner
	Advisor   *advisor.Service
	Exporter  *export.Service
	Health    HealthChecker
}

func New(cfg common.ServerConfig, deps Deps, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:       cfg,
		expenses:  deps.Expenses,
		extractor: deps.Extractor,
		scanner:   deps.Scanner,
		advisor:   deps.Advisor,
		exporter:  deps.Exporter,
		health:    deps.Health,
		logger:    logger,
	}
	s.httpSrv = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.routes(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/expenses", s.handleCreateExpense)
	mux.HandleFunc("GET /api/expenses", s.handleListExpenses)
	mux.HandleFunc("DELETE /api/expenses/{id}", s.handleDeleteExpense)
	mux.HandleFunc("GET /api/expenses/export", s.handleExportExpenses)
	mux.HandleFunc("POST /api/receipts/extract", s.handleExtractReceipt)
	mux.HandleFunc("POST /api/receipts/scan", s.handleScanReceipt)
	mux.HandleFunc("POST /api/query-advisor", s.handleQueryAdvisor)
	mux.HandleFunc("GET /api/health", s.handleHealth)

	return s.withRequestID(s.withLogging(s.withCORS(mux)))
}

// Handler exposes the composed handler for tests.
func (s *Server) Handler() http.Handler {
	return s.routes()
}

// ListenAndServe blocks until the context is canceled, then shuts the
// server down within the configured grace period.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server.listen.start", "addr", s.cfg.Addr)
		if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("server.shutdown.start")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := s.httpSrv.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("server.shutdown.failed", "error", err)
		return err
	}
	s.logger.Info("server.shutdown.complete")
	return nil
}

func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := s.cfg.AllowedOrigin
		if origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-User-ID")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("http.request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"request_id", common.RequestIDFromContext(r.Context()),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
	})
}

func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		ctx := common.WithRequestID(r.Context(), id)
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
