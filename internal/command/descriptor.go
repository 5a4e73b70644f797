// Package command defines the contract every probe satisfies to be
// routed by the dispatcher, whether it is built in or supplied by a plugin.
package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// Exit codes shared by probes.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitUsage       = 2
	ExitInterrupted = 130
)

// MainFunc is a probe entry point. It may block on I/O and should return
// promptly once ctx is cancelled. The returned integer becomes the process
// exit status unmodified.
type MainFunc func(ctx context.Context, inv *Invocation) int

// FlagsFunc declares a probe's flags on the parser of its leaf node.
type FlagsFunc func(fs *pflag.FlagSet)

// ArgSpec describes one positional argument.
type ArgSpec struct {
	Name        string
	Description string
	Required    bool
}

// Descriptor identifies one probe and how it is exposed on the command line.
type Descriptor struct {
	// ID is the leaf name under its category/subcategory.
	ID          string
	Category    string
	Subcategory string
	// Short is shown in command listings.
	Short string
	// Long is shown in the probe's own help. Defaults to Short.
	Long     string
	Args     []ArgSpec
	AddFlags FlagsFunc
	Main     MainFunc
}

// Description returns the long help, falling back to the short help.
func (d Descriptor) Description() string {
	if d.Long != "" {
		return d.Long
	}
	return d.Short
}

// Path returns the non-empty address components of the descriptor,
// e.g. ["prims", "uds", "vin"].
func (d Descriptor) Path() []string {
	path := make([]string, 0, 3)
	if d.Category != "" {
		path = append(path, d.Category)
	}
	if d.Subcategory != "" {
		path = append(path, d.Subcategory)
	}
	return append(path, d.ID)
}

// Address returns the space separated tree address, e.g. "prims uds vin".
func (d Descriptor) Address() string {
	return strings.Join(d.Path(), " ")
}

// ErrMissingMain is returned by Validate for a descriptor without an entry point.
var ErrMissingMain = errors.New("descriptor has no entry point")

// Validate checks the descriptor's own fields. Taxonomy references are
// checked separately at registration.
func (d Descriptor) Validate() error {
	if d.ID == "" {
		return errors.New("descriptor has no identifier")
	}
	if strings.ContainsAny(d.ID, " \t\n") || strings.HasPrefix(d.ID, "-") {
		return fmt.Errorf("descriptor identifier %q is not a valid command name", d.ID)
	}
	if d.Main == nil {
		return fmt.Errorf("%s: %w", d.ID, ErrMissingMain)
	}

	optional := false
	for _, a := range d.Args {
		if !a.Required {
			optional = true
			continue
		}
		if optional {
			return fmt.Errorf("%s: required argument %q follows an optional one", d.ID, a.Name)
		}
	}

	return nil
}
