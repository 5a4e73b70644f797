// Package transport moves UDS PDUs between ecuprobe and an ECU endpoint.
package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
)

// SchemeTCPLines is a TCP stream carrying one hex encoded PDU per line.
const SchemeTCPLines = "tcp-lines"

// ErrUnsupportedScheme is returned for target URLs no transport handles.
var ErrUnsupportedScheme = errors.New("unsupported transport scheme")

// Transport exchanges whole PDUs with one peer.
type Transport interface {
	// Write sends one PDU.
	Write(ctx context.Context, pdu []byte) error
	// Read blocks until one PDU arrives or ctx is done.
	Read(ctx context.Context) ([]byte, error)
	Close() error
}

// Target is a parsed endpoint URL such as tcp-lines://127.0.0.1:13400.
type Target struct {
	Scheme string
	Host   string
}

func (t Target) String() string {
	return t.Scheme + "://" + t.Host
}

// ParseTarget parses and validates a target URL.
func ParseTarget(raw string) (Target, error) {
	if !strings.Contains(raw, "://") {
		return Target{}, fmt.Errorf("target %q: missing scheme, expected %s://host:port", raw, SchemeTCPLines)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return Target{}, fmt.Errorf("target %q: %w", raw, err)
	}

	if u.Scheme != SchemeTCPLines {
		return Target{}, fmt.Errorf("target %q: %w %q", raw, ErrUnsupportedScheme, u.Scheme)
	}

	if _, port, err := net.SplitHostPort(u.Host); err != nil || port == "" {
		return Target{}, fmt.Errorf("target %q: expected host:port", raw)
	}

	return Target{Scheme: u.Scheme, Host: u.Host}, nil
}

// Dial connects to target.
func Dial(ctx context.Context, target Target) (Transport, error) {
	switch target.Scheme {
	case SchemeTCPLines:
		t, err := DialTCPLines(ctx, target.Host)
		if err != nil {
			return nil, err
		}
		return t, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnsupportedScheme, target.Scheme)
	}
}
