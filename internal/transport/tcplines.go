package transport

import (
	"bufio"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"
)

// maxLineLength bounds one hex line; a UDS PDU is at most 4095 bytes.
const maxLineLength = 2*4095 + 2

// ErrLineTooLong is returned when the peer sends an oversized line.
var ErrLineTooLong = errors.New("line too long")

// TCPLines carries hex encoded PDUs over a TCP stream, one per line.
type TCPLines struct {
	conn   net.Conn
	reader *bufio.Reader
}

// DialTCPLines connects to addr.
func DialTCPLines(ctx context.Context, addr string) (*TCPLines, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	return NewTCPLines(conn), nil
}

// NewTCPLines wraps an established connection.
func NewTCPLines(conn net.Conn) *TCPLines {
	return &TCPLines{
		conn:   conn,
		reader: bufio.NewReaderSize(conn, maxLineLength),
	}
}

// Write sends pdu as one hex line.
func (t *TCPLines) Write(ctx context.Context, pdu []byte) error {
	stop := t.bind(ctx)
	defer stop()

	line := hex.EncodeToString(pdu) + "\n"
	if _, err := t.conn.Write([]byte(line)); err != nil {
		return wrapCtx(ctx, fmt.Errorf("write: %w", err))
	}
	return nil
}

// Read returns the next PDU. Blank lines are skipped.
func (t *TCPLines) Read(ctx context.Context) ([]byte, error) {
	stop := t.bind(ctx)
	defer stop()

	for {
		line, err := ReadLine(t.reader)
		if err != nil {
			return nil, wrapCtx(ctx, fmt.Errorf("read: %w", err))
		}
		if line == "" {
			continue
		}
		return DecodeLine(line)
	}
}

// Close closes the connection.
func (t *TCPLines) Close() error {
	return t.conn.Close()
}

// bind applies ctx's deadline to the connection and interrupts blocked I/O
// when ctx is cancelled.
func (t *TCPLines) bind(ctx context.Context) func() {
	deadline, _ := ctx.Deadline()
	_ = t.conn.SetDeadline(deadline)

	stop := context.AfterFunc(ctx, func() {
		_ = t.conn.SetDeadline(time.Unix(1, 0))
	})

	return func() {
		stop()
		_ = t.conn.SetDeadline(time.Time{})
	}
}

// wrapCtx attributes an I/O failure to ctx when ctx caused it. The
// connection deadline can fire just before ctx records its own expiry.
func wrapCtx(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%w: %w", ctxErr, err)
	}
	if errors.Is(err, os.ErrDeadlineExceeded) {
		if deadline, ok := ctx.Deadline(); ok && !time.Now().Before(deadline) {
			return fmt.Errorf("%w: %w", context.DeadlineExceeded, err)
		}
	}
	return err
}

// ReadLine reads one newline terminated line without its terminator.
func ReadLine(r *bufio.Reader) (string, error) {
	line, isPrefix, err := r.ReadLine()
	if err != nil {
		return "", err
	}
	if isPrefix {
		return "", ErrLineTooLong
	}
	return strings.TrimSpace(string(line)), nil
}

// DecodeLine decodes one hex line into a PDU.
func DecodeLine(line string) ([]byte, error) {
	pdu, err := hex.DecodeString(strings.TrimSpace(line))
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", line, err)
	}
	return pdu, nil
}

var _ Transport = (*TCPLines)(nil)
