package usage

// Program is the name used as a prefix in user-facing messages.
const Program = "ecuprobe"

// ErrorKind represents the type of usage error.
type ErrorKind int

const (
	ErrUnknown ErrorKind = iota
	ErrInvalidFlag
	ErrMissingArgument
	ErrUnexpectedArgument
	ErrUnknownCommand
)

// Exit codes:
//
//	Exit 1: Unknown errors
//
//	Exit 2: User input errors rejected while parsing the command line
//	  - Invalid flag or flag value
//	  - Missing argument
//	  - Unexpected argument
//	  - Unknown command
var exitCodes = map[ErrorKind]int{
	ErrUnknown:            1,
	ErrInvalidFlag:        2,
	ErrMissingArgument:    2,
	ErrUnexpectedArgument: 2,
	ErrUnknownCommand:     2,
}

// Error represents a user-facing usage error with semantic type information.
type Error struct {
	Kind    ErrorKind
	Message string
	// Usage is the usage line of the node the error was raised at, if any.
	Usage    string
	ExitCode int // computed from Kind if zero
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// GetExitCode returns the appropriate exit code for this error.
// If ExitCode is explicitly set, it is returned; otherwise, the code is derived from Kind.
func (e *Error) GetExitCode() int {
	if e.ExitCode != 0 {
		return e.ExitCode
	}
	if code, ok := exitCodes[e.Kind]; ok {
		return code
	}
	return 1
}

// WithUsage returns a copy of e carrying the given usage line.
func (e *Error) WithUsage(usage string) *Error {
	cp := *e
	cp.Usage = usage
	return &cp
}

// Verify Error implements the error interface.
var _ error = (*Error)(nil)
