package httpd

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Handler turns one request payload into one reply payload.
type Handler interface {
	ProcessBytes(payload []byte) []byte
}

// Config configures the HTTP transport.
type Config struct {
	Listen string
	Path   string
}

// Server exposes the command processor over a single HTTP POST endpoint.
// Protocol failures travel inside the reply envelope, so the HTTP status is
// always 200 for requests that reach the processor.
type Server struct {
	log     *zap.Logger
	handler Handler
	config  Config
}

// NewServer creates the HTTP transport.
func NewServer(log *zap.Logger, handler Handler, cfg Config) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	if strings.TrimSpace(cfg.Listen) == "" {
		cfg.Listen = "127.0.0.1:8555"
	}
	if strings.TrimSpace(cfg.Path) == "" {
		cfg.Path = "/jsonrpc"
	}
	return &Server{log: log, handler: handler, config: cfg}
}

// Run serves until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc(s.config.Path, s.serveCommand)

	server := &http.Server{Addr: s.config.Listen, Handler: mux}
	errs := make(chan error, 1)
	go func() {
		errs <- server.ListenAndServe()
	}()
	s.log.Info("http transport listening",
		zap.String("listen", s.config.Listen), zap.String("path", s.config.Path))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) serveCommand(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	reply := s.handler.ProcessBytes(payload)
	w.Header().Set("Content-Type", "application/json;charset=utf-8")
	if _, err := w.Write(reply); err != nil {
		s.log.Debug("write reply failed", zap.Error(err))
	}
}
