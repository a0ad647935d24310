// Package http renders the expense pages and translates form posts into
// state component calls. All data flows through the state layer; handlers
// never talk to the gateway directly.
package http

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"github.com/shobhitrastogi/expense-tracker-frontend/internal/cache"
	"github.com/shobhitrastogi/expense-tracker-frontend/internal/charts"
	"github.com/shobhitrastogi/expense-tracker-frontend/internal/core"
	"github.com/shobhitrastogi/expense-tracker-frontend/internal/log"
	"github.com/shobhitrastogi/expense-tracker-frontend/internal/middleware/ratelimit"
	"github.com/shobhitrastogi/expense-tracker-frontend/internal/middleware/security"
	"github.com/shobhitrastogi/expense-tracker-frontend/internal/middleware/trace"
	"github.com/shobhitrastogi/expense-tracker-frontend/internal/state"
	appweb "github.com/shobhitrastogi/expense-tracker-frontend/web"
)

// Config holds the server settings that are not state components.
type Config struct {
	Addr               string
	ChartCacheTTL      time.Duration
	RateLimitPerMinute int
}

// Components groups the state layer the server renders.
type Components struct {
	Session state.Session
	Form    *state.FormReconciler
	List    *state.ListSynchronizer
	Summary *state.SummaryAggregator
	Detail  *state.DetailViewer

	// ProfileErr carries a bootstrap profile failure into the profile page.
	ProfileErr string
}

// Server serves the rendered pages over an embedded http.Server.
type Server struct {
	http.Server

	logger    *log.Logger
	templates *template.Template

	session state.Session
	form    *state.FormReconciler
	list    *state.ListSynchronizer
	summary *state.SummaryAggregator
	detail  *state.DetailViewer

	profileErr string

	renderer   *charts.Renderer
	chartCache *cache.LRU[[]byte]
	limiter    *ratelimit.Limiter

	stopCacheCleanup chan struct{}
	shutdownOnce     sync.Once
}

// NewServer wires routes, templates and middleware around the state
// components. The state callbacks are connected here: a successful save
// refetches the list, and a successful update additionally clears the edit
// target.
func NewServer(cfg Config, c Components, logger *log.Logger) (*Server, error) {
	s := &Server{
		logger:           logger.WithComponent(log.ComponentHTTP),
		session:          c.Session,
		form:             c.Form,
		list:             c.List,
		summary:          c.Summary,
		detail:           c.Detail,
		profileErr:       c.ProfileErr,
		renderer:         charts.NewRenderer(),
		chartCache:       cache.NewLRU[[]byte](8, cfg.ChartCacheTTL),
		limiter:          ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: cfg.RateLimitPerMinute}),
		stopCacheCleanup: make(chan struct{}),
	}

	s.form.OnUpdated = func() { s.form.SetTarget(nil) }
	s.form.OnSaved = func() {
		if err := s.list.Refetch(context.Background()); err != nil {
			s.logger.Error("refetch after save failed", log.FieldError, err)
		}
	}

	funcs := template.FuncMap{
		"dateOnly": core.DateOnly,
	}
	t, err := template.New("").Funcs(funcs).ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	s.templates = t

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleExpensesPage)
	mux.HandleFunc("POST /expenses/save", s.handleSave)
	mux.HandleFunc("POST /expenses/edit", s.handleEdit)
	mux.HandleFunc("POST /expenses/view", s.handleView)
	mux.HandleFunc("POST /expenses/detail/close", s.handleDetailClose)
	mux.HandleFunc("POST /expenses/delete", s.handleDeleteRequest)
	mux.HandleFunc("POST /expenses/delete/confirm", s.handleDeleteConfirm)
	mux.HandleFunc("POST /expenses/delete/cancel", s.handleDeleteCancel)
	mux.HandleFunc("GET /summary", s.handleSummaryPage)
	mux.HandleFunc("GET /summary/chart.png", s.handleSummaryChart)
	mux.HandleFunc("GET /profile", s.handleProfilePage)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("GET /static/", security.StaticAssetMiddleware(3600)(static))
	} else {
		s.logger.Warn("failed to mount embedded static assets", log.FieldError, err)
	}

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	tracer := trace.NewMiddleware(logger)
	handler := tracer.Middleware(
		headers.Middleware(
			s.limiter.Middleware(trace.ClientIP)(mux)))

	s.Server = http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	go s.cacheCleanupLoop()
	return s, nil
}

func (s *Server) cacheCleanupLoop() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if cleaned := s.chartCache.CleanExpired(); cleaned > 0 {
				s.logger.Debug("chart cache cleanup", "entries_removed", cleaned)
			}
		case <-s.stopCacheCleanup:
			return
		}
	}
}

// Shutdown stops the background goroutines and the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		close(s.stopCacheCleanup)
		s.limiter.Stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
