package server

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
	"github.com/tartampluch/go-age/internal/metrics"
	"github.com/yuin/goldmark"
)

//go:embed templates/index.html templates/help.md templates/form.js
var templateFS embed.FS

// cacheItem stores a rendered calendar and its ETag.
type cacheItem struct {
	data []byte
	etag string
}

func newCacheItem(data []byte) *cacheItem {
	hash := sha256.Sum256(data)
	return &cacheItem{
		data: data,
		etag: fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:])),
	}
}

// AgeServer serves the age form to browsers. Each browser gets its own session
// and therefore its own engine.Controller.
type AgeServer struct {
	Port string

	sessions *SessionStore
	metrics  *metrics.Metrics
	registry *prometheus.Registry
	csrfKey  []byte
	page     *template.Template
	help     template.HTML
	script   []byte
}

// New creates a server. csrfKey must be 32 bytes (see LoadCSRFKey).
func New(port string, clock engine.Clock, csrfKey []byte) (*AgeServer, error) {
	if len(csrfKey) != config.CSRFKeyLength {
		return nil, errors.New(config.ErrCSRFKey)
	}
	if clock == nil {
		clock = engine.RealClock{}
	}

	page, err := template.ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrTemplate, err)
	}

	helpMD, err := templateFS.ReadFile("templates/help.md")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrTemplate, err)
	}
	script, err := templateFS.ReadFile("templates/form.js")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrTemplate, err)
	}

	var help bytes.Buffer
	if err := goldmark.Convert(helpMD, &help); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrTemplate, err)
	}

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	return &AgeServer{
		Port:     port,
		sessions: NewSessionStore(clock, config.SessionTTL, m.SetActiveSessions),
		metrics:  m,
		registry: reg,
		csrfKey:  csrfKey,
		page:     page,
		help:     template.HTML(help.String()),
		script:   script,
	}, nil
}

// LoadCSRFKey decodes a hex key (64 characters). An empty value yields a random key,
// which invalidates open forms on restart.
func LoadCSRFKey(hexKey string) ([]byte, error) {
	if hexKey == "" {
		key := make([]byte, config.CSRFKeyLength)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrRandom, err)
		}
		slog.Warn(config.MsgCSRFGenerated, config.LogKeyComponent, config.CompServer)
		return key, nil
	}

	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrCSRFKey, err)
	}
	if len(key) != config.CSRFKeyLength {
		return nil, errors.New(config.ErrCSRFKey)
	}
	return key, nil
}

// Handler builds the router with its middleware.
func (s *AgeServer) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(securityHeaders)
	r.Use(plaintextHTTP)

	// Form routes are CSRF protected; the script, calendar and metrics are read-only.
	r.Group(func(r chi.Router) {
		r.Use(csrfProtect(s.csrfKey))
		r.Get(config.RouteRoot, s.handleIndex)
		r.Post(config.RouteRoot, s.handleSubmit)
		r.Post(config.RouteField, s.handleField)
	})
	r.Get(config.RouteScript, s.handleScript)
	r.Get(config.RouteCalendar, s.handleCalendar)
	r.Method(http.MethodGet, config.RouteMetrics, promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	return r
}

// Start initializes the HTTP server and blocks until the context is cancelled.
func (s *AgeServer) Start(ctx context.Context) error {
	if s.Port == "" {
		return errors.New(config.ErrPortRequired)
	}

	srv := &http.Server{
		Addr:         config.LocalhostBindAddr + config.AddrSeparator + s.Port,
		Handler:      s.Handler(),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, s.Port,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShut, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}
