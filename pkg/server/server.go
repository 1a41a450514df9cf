package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// Config holds the backend's settings.
type Config struct {
	// Addr is the listen address, e.g. ":5000".
	Addr string

	// StaticDir, when non-empty, is served at / for the bundled web
	// front-end.
	StaticDir string

	// MaxUploadBytes caps PDF uploads. Zero means the default (20 MiB).
	MaxUploadBytes int64

	// MaxContextChars caps how much extracted document text is folded
	// into a prompt. Zero means the default (8000).
	MaxContextChars int
}

const (
	defaultMaxUploadBytes  = 20 << 20
	defaultMaxContextChars = 8000
)

// Server is the chat backend. It owns the upload store and delegates
// reasoning to the Provider and text extraction to the optional
// TextExtractor.
type Server struct {
	cfg          Config
	provider     Provider
	extractor    TextExtractor
	store        *sessionStore
	systemPrompt string
	logger       *logrus.Entry
	mux          *http.ServeMux
}

// Option configures a Server.
type Option func(*Server)

// WithExtractor installs a document text extractor for the upload
// side-channel.
func WithExtractor(e TextExtractor) Option {
	return func(s *Server) { s.extractor = e }
}

// WithServerLogger overrides the server's logger.
func WithServerLogger(logger *logrus.Logger) Option {
	return func(s *Server) { s.logger = logger.WithField("component", "server") }
}

// NewServer wires the routes and returns a ready server.
func NewServer(cfg Config, provider Provider, opts ...Option) *Server {
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = defaultMaxUploadBytes
	}
	if cfg.MaxContextChars <= 0 {
		cfg.MaxContextChars = defaultMaxContextChars
	}
	s := &Server{
		cfg:          cfg,
		provider:     provider,
		store:        newSessionStore(),
		systemPrompt: buildSystemPrompt(),
		logger:       logrus.StandardLogger().WithField("component", "server"),
	}
	for _, opt := range opts {
		opt(s)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/chat", s.handleChat)
	mux.HandleFunc("POST /api/upload_pdf", s.handleUploadPDF)
	if cfg.StaticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(cfg.StaticDir)))
	}
	s.mux = mux
	return s
}

// Handler returns the HTTP handler, for embedding and for httptest.
func (s *Server) Handler() http.Handler { return s.mux }

// ListenAndServe runs the server until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	s.logger.WithField("addr", s.cfg.Addr).Info("chat backend listening")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
