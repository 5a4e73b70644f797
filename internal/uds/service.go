// Package uds implements the subset of ISO 14229 (Unified Diagnostic
// Services) that ecuprobe's built-in probes speak.
package uds

import "fmt"

// SID is a UDS service identifier.
type SID byte

const (
	DiagnosticSessionControl SID = 0x10
	ECUReset                 SID = 0x11
	ReadDataByIdentifier     SID = 0x22
	WriteDataByIdentifier    SID = 0x2E
	TesterPresent            SID = 0x3E

	// NegativeResponseSID prefixes every negative response.
	NegativeResponseSID SID = 0x7F
)

// positiveOffset is added to a request SID to form its positive response SID.
const positiveOffset = 0x40

// Positive returns the positive response SID for s.
func (s SID) Positive() byte {
	return byte(s) + positiveOffset
}

var sidNames = map[SID]string{
	DiagnosticSessionControl: "DiagnosticSessionControl",
	ECUReset:                 "ECUReset",
	ReadDataByIdentifier:     "ReadDataByIdentifier",
	WriteDataByIdentifier:    "WriteDataByIdentifier",
	TesterPresent:            "TesterPresent",
}

func (s SID) String() string {
	if name, ok := sidNames[s]; ok {
		return name
	}
	return fmt.Sprintf("SID(0x%02X)", byte(s))
}

// Well known data identifiers.
const (
	DIDVIN                 uint16 = 0xF190
	DIDSparePartNumber     uint16 = 0xF187
	DIDECUSerialNumber     uint16 = 0xF18C
	DIDSoftwareVersion     uint16 = 0xF195
	DIDActiveSessionNumber uint16 = 0xF186
)

// Reset types for ECUReset.
const (
	HardReset     byte = 0x01
	KeyOffOnReset byte = 0x02
	SoftReset     byte = 0x03
)
