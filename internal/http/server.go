package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"planner/internal/catalog"
	"planner/internal/core"
	"planner/internal/log"
	"planner/internal/middleware/ratelimit"
	"planner/internal/middleware/security"
	"planner/internal/middleware/trace"
	"planner/internal/progress"
)

// Journal is the planner service the API exposes.
// *services.JournalService satisfies it.
type Journal interface {
	Catalog() *catalog.Catalog
	Weights() catalog.Weights
	Today(ctx context.Context) (core.DailyRecord, error)
	Record(ctx context.Context, date core.Date) (core.DailyRecord, error)
	Trailing(ctx context.Context, n int) ([]core.DailyRecord, error)
	UpdateField(ctx context.Context, date core.Date, key string, v core.Value) (core.DailyRecord, error)
	AppendTransaction(ctx context.Context, tx core.Transaction) error
	MonthTransactions(ctx context.Context) ([]core.Transaction, error)
	Transactions(ctx context.Context) ([]core.Transaction, error)
	Report(ctx context.Context, date core.Date) (progress.Report, error)
	Finance(ctx context.Context) (core.FinanceSummary, error)
	Series(ctx context.Context, key string) ([]progress.Point, error)
	Ping(ctx context.Context) error
}

// Options tunes the server. Zero values select the defaults.
type Options struct {
	TrailingDays int
	Logger       *log.Logger
	RateLimit    ratelimit.Config
	// Now is the clock used for defaults such as a new transaction's date.
	Now func() time.Time
}

type Server struct {
	http.Server
	journal      Journal
	trailingDays int
	now          func() time.Time
	limiter      *ratelimit.Limiter
	detector     *security.Detector

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, j Journal, opts Options) *Server {
	if opts.TrailingDays <= 0 {
		opts.TrailingDays = 7
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.FromContext(context.Background())
	}
	logger = logger.WithComponent(log.ComponentHTTP)

	s := &Server{
		journal:      j,
		trailingDays: opts.TrailingDays,
		now:          opts.Now,
		limiter:      ratelimit.NewLimiter(opts.RateLimit),
		detector:     security.NewDetector(),
	}

	var handler http.Handler = s.routes()
	handler = s.limiter.Middleware(s.detector.ExtractClientIP, ratelimit.WritesOnly)(handler)
	handler = s.detector.Middleware(handler)
	handler = security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware(handler)
	handler = log.Middleware(logger, trace.GetRequestID)(handler)
	handler = trace.NewMiddleware(s.detector.ExtractClientIP).Middleware(handler)

	s.Server = http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("GET /api/catalog", s.handleCatalog)
	mux.HandleFunc("GET /api/today", s.handleToday)
	mux.HandleFunc("GET /api/records", s.handleTrailing)
	mux.HandleFunc("GET /api/records/{date}", s.handleRecord)
	mux.HandleFunc("PUT /api/records/{date}/{key}", s.handleUpdateField)

	mux.HandleFunc("GET /api/transactions", s.handleTransactions)
	mux.HandleFunc("POST /api/transactions", s.handleAppendTransaction)
	mux.HandleFunc("GET /api/finance", s.handleFinance)

	mux.HandleFunc("GET /api/progress", s.handleProgress)
	mux.HandleFunc("GET /api/series/{key}", s.handleSeries)
	mux.HandleFunc("GET /api/quote", s.handleQuote)

	return mux
}

// Shutdown gracefully shuts down the server and its rate limiter.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.limiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func (s *Server) today() core.Date {
	return core.DateOf(s.now())
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleReady reports 503 while the backing tables cannot be read.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if err := s.journal.Ping(ctx); err != nil {
		log.FromContext(ctx).WarnContext(ctx, "Readiness check failed", log.FieldError, err)
		ErrorResponse(http.StatusServiceUnavailable, "storage unavailable").Write(w)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
