package http

import (
	"context"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"

	"habitos/internal/core"
	applog "habitos/internal/log"
	"habitos/internal/middleware/security"
	"habitos/internal/middleware/trace"
	"habitos/internal/notify"
	"habitos/internal/services"
	appweb "habitos/web"
)

// Server renders the habit log UI and report pages.
type Server struct {
	http.Server
	templates    *template.Template
	records      *services.RecordService
	reports      *services.ReportService
	notifier     notify.Notifier
	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run http.Server.
func NewServer(addr string, records *services.RecordService, reports *services.ReportService, notifier notify.Notifier) *Server {
	mux := http.NewServeMux()

	s := &Server{
		records:  records,
		reports:  reports,
		notifier: notifier,
	}

	// Parse embedded templates at startup.
	t, err := template.New("").Funcs(template.FuncMap{
		"amount": core.FormatAmount,
	}).ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		slog.Warn("Failed parsing templates", "error", err)
	}
	s.templates = t

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", security.StaticAssetMiddleware(3600)(static))
	} else {
		slog.Warn("Failed to mount embedded static FS", "error", err)
	}

	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)
	mux.HandleFunc("/records", s.handleCreateRecord)
	mux.HandleFunc("/reports", s.handleReport)
	mux.HandleFunc("/notifications/status", s.handleNotificationStatus)
	mux.HandleFunc("/notifications/enable", s.handleEnableNotifications)

	traceMW := trace.NewMiddleware(extractClientIP)
	headersMW := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	logMW := applog.Middleware(applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentHTTP))

	s.Server = http.Server{
		Addr:    addr,
		Handler: traceMW.Middleware(headersMW.Middleware(logMW(mux))),
	}

	return s
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
