package uds

import "fmt"

// NRC is a negative response code.
type NRC byte

const (
	GeneralReject                           NRC = 0x10
	ServiceNotSupported                     NRC = 0x11
	SubFunctionNotSupported                 NRC = 0x12
	IncorrectMessageLengthOrInvalidFormat   NRC = 0x13
	ResponseTooLong                         NRC = 0x14
	BusyRepeatRequest                       NRC = 0x21
	ConditionsNotCorrect                    NRC = 0x22
	RequestSequenceError                    NRC = 0x24
	RequestOutOfRange                       NRC = 0x31
	SecurityAccessDenied                    NRC = 0x33
	InvalidKey                              NRC = 0x35
	GeneralProgrammingFailure               NRC = 0x72
	RequestCorrectlyReceivedResponsePending NRC = 0x78
	SubFunctionNotSupportedInActiveSession  NRC = 0x7E
	ServiceNotSupportedInActiveSession      NRC = 0x7F
)

var nrcNames = map[NRC]string{
	GeneralReject:                           "generalReject",
	ServiceNotSupported:                     "serviceNotSupported",
	SubFunctionNotSupported:                 "subFunctionNotSupported",
	IncorrectMessageLengthOrInvalidFormat:   "incorrectMessageLengthOrInvalidFormat",
	ResponseTooLong:                         "responseTooLong",
	BusyRepeatRequest:                       "busyRepeatRequest",
	ConditionsNotCorrect:                    "conditionsNotCorrect",
	RequestSequenceError:                    "requestSequenceError",
	RequestOutOfRange:                       "requestOutOfRange",
	SecurityAccessDenied:                    "securityAccessDenied",
	InvalidKey:                              "invalidKey",
	GeneralProgrammingFailure:               "generalProgrammingFailure",
	RequestCorrectlyReceivedResponsePending: "requestCorrectlyReceivedResponsePending",
	SubFunctionNotSupportedInActiveSession:  "subFunctionNotSupportedInActiveSession",
	ServiceNotSupportedInActiveSession:      "serviceNotSupportedInActiveSession",
}

func (c NRC) String() string {
	if name, ok := nrcNames[c]; ok {
		return fmt.Sprintf("%s (0x%02X)", name, byte(c))
	}
	return fmt.Sprintf("NRC(0x%02X)", byte(c))
}

// NegativeResponse is the error returned when the ECU rejects a request.
type NegativeResponse struct {
	Service SID
	Code    NRC
}

func (e *NegativeResponse) Error() string {
	return fmt.Sprintf("%s: %s", e.Service, e.Code)
}

// Bytes encodes the negative response PDU.
func (e *NegativeResponse) Bytes() []byte {
	return []byte{byte(NegativeResponseSID), byte(e.Service), byte(e.Code)}
}
