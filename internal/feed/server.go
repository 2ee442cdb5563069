package feed

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Server serves the hub at /feed until its context is cancelled.
type Server struct {
	listener net.Listener
	http     *http.Server
	log      *zap.Logger
}

func NewServer(bindAddr string, hub *Hub, log *zap.Logger) (*Server, error) {
	ln, err := net.Listen("tcp", bindAddr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", bindAddr, err)
	}
	mux := http.NewServeMux()
	mux.Handle("/feed", hub)
	return &Server{
		listener: ln,
		http:     &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second},
		log:      log,
	}, nil
}

// Addr returns the listener's address.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Run blocks serving connections. Cancelling ctx shuts the server down and
// Run returns nil.
func (s *Server) Run(ctx context.Context) error {
	// Hijacked websocket connections outlive Shutdown; tie them to ctx.
	s.http.BaseContext = func(net.Listener) context.Context { return ctx }
	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := s.http.Shutdown(sctx); err != nil {
			s.log.Warn("feed shutdown", zap.Error(err))
		}
	}()
	s.log.Info("feed listening", zap.String("addr", s.Addr().String()))
	if err := s.http.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve feed: %w", err)
	}
	return nil
}
