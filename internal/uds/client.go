package uds

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/ecuprobe/cli/internal/transport"
)

// DefaultTimeout bounds a single request, including response-pending waits.
const DefaultTimeout = 2 * time.Second

// maxPending bounds how many response-pending replies a request tolerates.
const maxPending = 10

// ErrUnexpectedResponse is returned when a reply matches neither the
// positive nor the negative response of the request.
var ErrUnexpectedResponse = errors.New("unexpected response")

// Client issues UDS requests over a transport.
type Client struct {
	tr      transport.Transport
	timeout time.Duration
}

// NewClient returns a client using tr. A non-positive timeout selects
// DefaultTimeout.
func NewClient(tr transport.Transport, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{tr: tr, timeout: timeout}
}

// Close closes the underlying transport.
func (c *Client) Close() error {
	return c.tr.Close()
}

// Request sends req and returns the positive response. A negative response
// is returned as *NegativeResponse. Response-pending replies extend the wait.
func (c *Client) Request(ctx context.Context, req []byte) ([]byte, error) {
	if len(req) == 0 {
		return nil, errors.New("empty request")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.tr.Write(ctx, req); err != nil {
		return nil, err
	}

	sid := SID(req[0])
	for pending := 0; ; {
		resp, err := c.tr.Read(ctx)
		if err != nil {
			return nil, err
		}

		if len(resp) >= 3 && SID(resp[0]) == NegativeResponseSID && SID(resp[1]) == sid {
			code := NRC(resp[2])
			if code == RequestCorrectlyReceivedResponsePending && pending < maxPending {
				pending++
				continue
			}
			return nil, &NegativeResponse{Service: sid, Code: code}
		}

		if len(resp) == 0 || resp[0] != sid.Positive() {
			return nil, fmt.Errorf("%s: %w % X", sid, ErrUnexpectedResponse, resp)
		}

		return resp, nil
	}
}

// ReadDataByIdentifier returns the data record stored under did.
func (c *Client) ReadDataByIdentifier(ctx context.Context, did uint16) ([]byte, error) {
	req := []byte{byte(ReadDataByIdentifier), 0, 0}
	binary.BigEndian.PutUint16(req[1:], did)

	resp, err := c.Request(ctx, req)
	if err != nil {
		return nil, err
	}

	if len(resp) < 3 || binary.BigEndian.Uint16(resp[1:3]) != did {
		return nil, fmt.Errorf("%s 0x%04X: %w % X", ReadDataByIdentifier, did, ErrUnexpectedResponse, resp)
	}
	return resp[3:], nil
}

// ReadVIN reads the vehicle identification number.
func (c *Client) ReadVIN(ctx context.Context) ([]byte, error) {
	return c.ReadDataByIdentifier(ctx, DIDVIN)
}

// WriteDataByIdentifier stores data under did.
func (c *Client) WriteDataByIdentifier(ctx context.Context, did uint16, data []byte) error {
	req := make([]byte, 3, 3+len(data))
	req[0] = byte(WriteDataByIdentifier)
	binary.BigEndian.PutUint16(req[1:], did)
	req = append(req, data...)

	resp, err := c.Request(ctx, req)
	if err != nil {
		return err
	}

	if len(resp) < 3 || binary.BigEndian.Uint16(resp[1:3]) != did {
		return fmt.Errorf("%s 0x%04X: %w % X", WriteDataByIdentifier, did, ErrUnexpectedResponse, resp)
	}
	return nil
}

// ECUReset requests a reset of the given type.
func (c *Client) ECUReset(ctx context.Context, resetType byte) error {
	resp, err := c.Request(ctx, []byte{byte(ECUReset), resetType})
	if err != nil {
		return err
	}

	if len(resp) < 2 || resp[1] != resetType {
		return fmt.Errorf("%s: %w % X", ECUReset, ErrUnexpectedResponse, resp)
	}
	return nil
}

// TesterPresent keeps the current session alive.
func (c *Client) TesterPresent(ctx context.Context) error {
	_, err := c.Request(ctx, []byte{byte(TesterPresent), 0x00})
	return err
}
