package usage

import (
	"fmt"
	"strings"
)

// InvalidFlag is returned when a flag is not valid in the current context
// or its value cannot be parsed.
func InvalidFlag(detail string) *Error {
	return &Error{
		Kind:    ErrInvalidFlag,
		Message: fmt.Sprintf("%s: %s", Program, detail),
	}
}

// MissingArgument is returned when a required argument is not provided.
func MissingArgument(arg string) *Error {
	return &Error{
		Kind:    ErrMissingArgument,
		Message: fmt.Sprintf("%s: missing required argument '%s'", Program, arg),
	}
}

// UnexpectedArguments is returned when more positional arguments are given
// than the command accepts.
func UnexpectedArguments(args []string) *Error {
	return &Error{
		Kind:    ErrUnexpectedArgument,
		Message: fmt.Sprintf("%s: unrecognized arguments: %s", Program, strings.Join(args, " ")),
	}
}

// UnknownCommand is returned when a token does not name a command or group
// at the current level. Suggestions, if any, are appended as hints.
func UnknownCommand(command string, suggestions ...string) *Error {
	msg := fmt.Sprintf("%s: '%s' is not a %s command. See '%s --help'.", Program, command, Program, Program)

	if len(suggestions) > 0 {
		var b strings.Builder
		b.WriteString(msg)
		b.WriteString("\n\nThe most similar commands are:\n")
		for _, s := range suggestions {
			b.WriteString("\t")
			b.WriteString(s)
			b.WriteString("\n")
		}
		msg = strings.TrimSuffix(b.String(), "\n")
	}

	return &Error{
		Kind:    ErrUnknownCommand,
		Message: msg,
	}
}
