// Command seqalign-server provides a REST API for pairwise sequence alignment.
//
// Usage:
//
//	seqalign-server [options]
//
// Options:
//
//	-port     Port to listen on (default: 8080)
//	-host     Host to bind to (default: localhost)
//	-config   TOML config file (default: ~/.seqalign.toml if present)
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/aria-lang/seqalign-go/api/handlers"
	"github.com/aria-lang/seqalign-go/api/middleware"
	"github.com/aria-lang/seqalign-go/internal/config"
	"github.com/aria-lang/seqalign-go/pkg/seqalign"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	colorable "github.com/mattn/go-colorable"
	"github.com/shenwei356/go-logging"
)

var log = logging.MustGetLogger("seqalign-server")

func init() {
	var stderr io.Writer = os.Stderr
	if runtime.GOOS == "windows" {
		stderr = colorable.NewColorableStderr()
	}
	backend := logging.NewLogBackend(stderr, "", 0)
	format := logging.MustStringFormatter(`%{time:2006-01-02 15:04:05} %{color}[%{level:.4s}]%{color:reset} %{message}`)
	logging.SetBackend(logging.NewBackendFormatter(backend, format))
}

func loadConfig(file string) (*seqalign.Config, error) {
	if file == "" {
		return config.LoadDefault()
	}
	return config.Load(file)
}

func newRouter(api *handlers.API) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/api", api.Routes)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(seqalign.Info() + `
Endpoints:
  POST /api/alignment/{global|strict-global|local}  {"sequence1": "GATTACA", "sequence2": "GCATGCT"}
  POST /api/alignment/score                         {"mode": "local", "sequence1": "...", "sequence2": "..."}
  POST /api/profile/align                           {"read": "ACGT", "quality": "IIII", "reference": "ACGT"}
  POST /api/quality/stats                           {"quality": "IIII"}
  POST /api/sequence/encode                         {"sequence": "ACGT"}
  GET  /health
`))
	})

	return r
}

func main() {
	port := flag.Int("port", 8080, "Port to listen on")
	host := flag.String("host", "localhost", "Host to bind to")
	configFile := flag.String("config", "", "TOML config file")
	flag.Parse()

	cfg, err := loadConfig(*configFile)
	if err != nil {
		log.Errorf("%s", err)
		os.Exit(1)
	}
	api, err := handlers.New(cfg)
	if err != nil {
		log.Errorf("%s", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf("%s:%d", *host, *port)
	server := &http.Server{
		Addr:         addr,
		Handler:      newRouter(api),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan bool, 1)
	quit := make(chan os.Signal, 1)

	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info("server is shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		server.SetKeepAlivesEnabled(false)
		if err := server.Shutdown(ctx); err != nil {
			log.Errorf("could not gracefully shutdown: %v", err)
			os.Exit(1)
		}
		close(done)
	}()

	log.Infof("seqalign API server v%s starting on http://%s (mode: %s, alphabet: %s)",
		seqalign.Version(), addr, cfg.Mode, cfg.Alphabet)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Errorf("could not listen on %s: %v", addr, err)
		os.Exit(1)
	}

	<-done
	log.Info("server stopped")
}
