// Package server assembles the HTTP handler: Connect services, health, metrics and static files.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"connectrpc.com/connect"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/billsplitter/internal/auth"
	"github.com/mmynk/billsplitter/internal/metrics"
	"github.com/mmynk/billsplitter/internal/middleware"
	"github.com/mmynk/billsplitter/internal/service"
	"github.com/mmynk/billsplitter/internal/storage"
	"github.com/mmynk/billsplitter/pkg/api/apiconnect"
)

// rpcPrefix is the path prefix of every Connect procedure.
const rpcPrefix = "/billsplitter.v1."

// Store is the storage the server needs, including a liveness check.
type Store interface {
	storage.Store
	Ping(ctx context.Context) error
}

// Deps are the collaborators the router wires together.
type Deps struct {
	Store         Store
	Authenticator auth.Authenticator
	JWT           *auth.JWTManager
	Revoked       auth.RevocationList
	Metrics       *metrics.Metrics
	Gatherer      prometheus.Gatherer // nil disables /metrics
	StaticPath    string              // empty disables static files
	CORSOrigin    string
	Logger        *slog.Logger
}

// NewRouter returns the complete HTTP handler.
func NewRouter(d Deps) http.Handler {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(d.CORSOrigin))
	r.Use(middleware.AccessLog(rpcPrefix))

	common := []connect.Interceptor{
		middleware.MetricsInterceptor(d.Metrics),
		middleware.LoggingInterceptor(),
	}
	withAuth := func(authInterceptor connect.Interceptor) connect.HandlerOption {
		return connect.WithInterceptors(append(common[:len(common):len(common)], authInterceptor)...)
	}

	mount := func(path string, h http.Handler) {
		r.Handle(path+"*", h)
	}
	mount(apiconnect.NewAuthServiceHandler(
		service.NewAuthService(d.Authenticator, d.Store, d.JWT, d.Revoked, logger),
		withAuth(middleware.OptionalAuth(d.JWT, d.Revoked)),
	))
	mount(apiconnect.NewPeopleServiceHandler(
		service.NewPeopleService(d.Store),
		withAuth(middleware.RequireAuth(d.JWT, d.Revoked)),
	))
	mount(apiconnect.NewBillServiceHandler(
		service.NewBillService(d.Store, d.Metrics),
		withAuth(middleware.RequireAuth(d.JWT, d.Revoked)),
	))

	r.Get("/healthz", healthz(d.Store))
	if d.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	if d.StaticPath != "" {
		staticDir, err := filepath.Abs(d.StaticPath)
		if err != nil {
			logger.Warn("Static files disabled", "path", d.StaticPath, "error", err)
		} else {
			logger.Info("Serving static files", "path", staticDir)
			r.Get("/*", staticHandler(staticDir))
		}
	}

	return r
}

func healthz(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			slog.Error("Health check failed", "error", err)
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	}
}

// staticHandler serves files from dir. Unknown paths get index.html so that
// client-side routes work on reload.
func staticHandler(dir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, rpcPrefix) {
			http.NotFound(w, r)
			return
		}

		urlPath := r.URL.Path
		if urlPath == "/" {
			urlPath = "/index.html"
		}

		filePath := filepath.Join(dir, filepath.Clean("/"+urlPath))
		if info, err := os.Stat(filePath); err != nil || info.IsDir() {
			filePath = filepath.Join(dir, "index.html")
		}
		http.ServeFile(w, r, filePath)
	}
}
