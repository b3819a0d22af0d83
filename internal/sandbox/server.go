package sandbox

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultAddress is where the sandbox listens unless told otherwise.
	DefaultAddress = "localhost:7433"
	// DefaultShutdownTimeout bounds how long Run waits for open requests.
	DefaultShutdownTimeout = 10 * time.Second
)

// Server serves the emulated API over HTTP and owns its store.
type Server struct {
	http   *http.Server
	store  *Store
	logger *zap.Logger

	mu sync.Mutex
	ln net.Listener
}

// New creates a sandbox server for store. An empty addr means DefaultAddress.
func New(addr string, store *Store, logger *zap.Logger) *Server {
	if addr == "" {
		addr = DefaultAddress
	}
	return &Server{
		http: &http.Server{
			Addr:              addr,
			Handler:           NewRouter(store, logger),
			ReadHeaderTimeout: 5 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		store:  store,
		logger: logger,
	}
}

// Listen binds the listening socket. With port 0 the chosen port is
// available from Addr afterwards.
func (s *Server) Listen() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln != nil {
		return nil
	}

	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return err
	}
	s.ln = ln
	return nil
}

// Addr returns the bound address, or "" before Listen.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return ""
	}
	return s.ln.Addr().String()
}

// BaseURL returns the API root clients should use, e.g. http://127.0.0.1:7433/1.
func (s *Server) BaseURL() string {
	addr := s.Addr()
	if addr == "" {
		return ""
	}
	return "http://" + addr + "/1"
}

// Run listens if needed and serves until ctx is done, then shuts down
// gracefully and closes the store. A clean shutdown returns nil.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}

	s.mu.Lock()
	ln := s.ln
	s.mu.Unlock()

	s.logger.Info("sandbox listening", zap.String("base_url", s.BaseURL()))

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.http.Serve(ln)
	}()

	select {
	case err := <-errCh:
		s.closeStore()
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down sandbox")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer cancel()

	err := s.http.Shutdown(shutdownCtx)
	if serveErr := <-errCh; serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) && err == nil {
		err = serveErr
	}
	s.closeStore()

	s.logger.Info("sandbox stopped")
	return err
}

func (s *Server) closeStore() {
	if err := s.store.Close(); err != nil {
		s.logger.Warn("error closing store", zap.Error(err))
	}
}
