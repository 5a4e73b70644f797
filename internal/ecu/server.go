package ecu

import (
	"bufio"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net"

	"golang.org/x/sync/errgroup"

	"github.com/ecuprobe/cli/internal/domain"
	"github.com/ecuprobe/cli/internal/log"
	"github.com/ecuprobe/cli/internal/transport"
)

// Server exposes an ECU over the tcp-lines transport.
type Server struct {
	listener net.Listener
	ecu      *ECU
	logger   domain.Logger
}

// Listen binds addr. A nil logger discards log output.
func Listen(addr string, ecu *ECU, logger domain.Logger) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	if logger == nil {
		logger = log.NopLogger{}
	}

	return &Server{listener: listener, ecu: ecu, logger: logger}, nil
}

// Addr returns the listener address.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Serve accepts connections until ctx is cancelled or the server is
// closed. Serve returns once every connection has ended.
func (s *Server) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		<-ctx.Done()
		_ = s.listener.Close()
		return nil
	})

	g.Go(func() error {
		defer cancel()

		for {
			conn, err := s.listener.Accept()
			if err != nil {
				if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
					return nil
				}
				return fmt.Errorf("accept: %w", err)
			}

			s.logger.Info("ecu: connection from %s", conn.RemoteAddr())

			g.Go(func() error {
				s.serveConn(ctx, conn)
				return nil
			})
		}
	})

	return g.Wait()
}

// Close stops accepting connections.
func (s *Server) Close() error {
	return s.listener.Close()
}

func (s *Server) serveConn(ctx context.Context, conn net.Conn) {
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()
	defer func() { _ = conn.Close() }()

	reader := bufio.NewReader(conn)
	for {
		line, err := transport.ReadLine(reader)
		if err != nil {
			if !errors.Is(err, io.EOF) && ctx.Err() == nil {
				s.logger.Warn("ecu: %s: %v", conn.RemoteAddr(), err)
			}
			return
		}
		if line == "" {
			continue
		}

		req, err := transport.DecodeLine(line)
		if err != nil {
			s.logger.Warn("ecu: %s: %v", conn.RemoteAddr(), err)
			continue
		}

		resp := s.ecu.Handle(req)
		s.logger.Debug("ecu: % X -> % X", req, resp)
		if resp == nil {
			continue
		}

		if _, err := io.WriteString(conn, hex.EncodeToString(resp)+"\n"); err != nil {
			s.logger.Warn("ecu: %s: write: %v", conn.RemoteAddr(), err)
			return
		}
	}
}
