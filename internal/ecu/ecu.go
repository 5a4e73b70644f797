// Package ecu implements a virtual UDS ECU used for local testing of
// probes.
package ecu

import (
	"encoding/binary"
	"maps"
	"sync"

	"github.com/ecuprobe/cli/internal/uds"
)

// DefaultVIN is the VIN a new ECU reports.
const DefaultVIN = "WVWZZZ1JZXW000001"

// ECU answers UDS requests from an in-memory data identifier table.
// Safe for concurrent use.
type ECU struct {
	mu       sync.Mutex
	dids     map[uint16][]byte
	readOnly map[uint16]bool
	resets   int
}

// New returns an ECU with the default identification DIDs.
func New() *ECU {
	return NewWithDIDs(map[uint16][]byte{
		uds.DIDVIN:             []byte(DefaultVIN),
		uds.DIDSparePartNumber: []byte("1K0907115AA"),
		uds.DIDECUSerialNumber: []byte("SN00042"),
		uds.DIDSoftwareVersion: []byte("0815"),
	}, uds.DIDVIN)
}

// NewWithDIDs returns an ECU serving dids. DIDs listed in readOnly reject
// writes.
func NewWithDIDs(dids map[uint16][]byte, readOnly ...uint16) *ECU {
	e := &ECU{
		dids:     maps.Clone(dids),
		readOnly: make(map[uint16]bool, len(readOnly)),
	}
	for _, did := range readOnly {
		e.readOnly[did] = true
	}
	return e
}

// Resets returns how many ECUReset requests were accepted.
func (e *ECU) Resets() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.resets
}

// Handle returns the response PDU for req.
func (e *ECU) Handle(req []byte) []byte {
	if len(req) == 0 {
		return nil
	}

	sid := uds.SID(req[0])

	e.mu.Lock()
	defer e.mu.Unlock()

	switch sid {
	case uds.ReadDataByIdentifier:
		return e.readDID(req)
	case uds.WriteDataByIdentifier:
		return e.writeDID(req)
	case uds.ECUReset:
		return e.reset(req)
	case uds.TesterPresent:
		if len(req) != 2 {
			return negative(sid, uds.IncorrectMessageLengthOrInvalidFormat)
		}
		return []byte{sid.Positive(), req[1]}
	case uds.DiagnosticSessionControl:
		if len(req) != 2 {
			return negative(sid, uds.IncorrectMessageLengthOrInvalidFormat)
		}
		// P2 50ms, P2* 5s
		return []byte{sid.Positive(), req[1], 0x00, 0x32, 0x01, 0xF4}
	default:
		return negative(sid, uds.ServiceNotSupported)
	}
}

func (e *ECU) readDID(req []byte) []byte {
	if len(req) != 3 {
		return negative(uds.ReadDataByIdentifier, uds.IncorrectMessageLengthOrInvalidFormat)
	}

	did := binary.BigEndian.Uint16(req[1:])
	data, ok := e.dids[did]
	if !ok {
		return negative(uds.ReadDataByIdentifier, uds.RequestOutOfRange)
	}

	resp := make([]byte, 0, 3+len(data))
	resp = append(resp, uds.ReadDataByIdentifier.Positive(), req[1], req[2])
	return append(resp, data...)
}

func (e *ECU) writeDID(req []byte) []byte {
	if len(req) < 4 {
		return negative(uds.WriteDataByIdentifier, uds.IncorrectMessageLengthOrInvalidFormat)
	}

	did := binary.BigEndian.Uint16(req[1:])
	if _, ok := e.dids[did]; !ok {
		return negative(uds.WriteDataByIdentifier, uds.RequestOutOfRange)
	}
	if e.readOnly[did] {
		return negative(uds.WriteDataByIdentifier, uds.SecurityAccessDenied)
	}

	e.dids[did] = append([]byte(nil), req[3:]...)
	return []byte{uds.WriteDataByIdentifier.Positive(), req[1], req[2]}
}

func (e *ECU) reset(req []byte) []byte {
	if len(req) != 2 {
		return negative(uds.ECUReset, uds.IncorrectMessageLengthOrInvalidFormat)
	}

	switch req[1] {
	case uds.HardReset, uds.KeyOffOnReset, uds.SoftReset:
		e.resets++
		return []byte{uds.ECUReset.Positive(), req[1]}
	default:
		return negative(uds.ECUReset, uds.SubFunctionNotSupported)
	}
}

func negative(sid uds.SID, code uds.NRC) []byte {
	return (&uds.NegativeResponse{Service: sid, Code: code}).Bytes()
}
