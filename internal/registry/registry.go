// Package registry holds the ordered set of command descriptors the
// dispatcher routes to. A Registry is assembled once by a Builder and is
// read-only afterwards.
package registry

import (
	"fmt"

	"github.com/ecuprobe/cli/internal/command"
	"github.com/ecuprobe/cli/internal/taxonomy"
	"github.com/spf13/pflag"
)

// Registry is an immutable, ordered collection of descriptors.
type Registry struct {
	descriptors []command.Descriptor
}

// All returns the descriptors in registration order.
func (r *Registry) All() []command.Descriptor {
	out := make([]command.Descriptor, len(r.descriptors))
	copy(out, r.descriptors)
	return out
}

// Len returns the number of descriptors.
func (r *Registry) Len() int {
	return len(r.descriptors)
}

// ConflictError reports two nodes claiming the same tree address.
type ConflictError struct {
	Address string
	// Existing describes what already occupies the address.
	Existing string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("command %q conflicts with existing %s", e.Address, e.Existing)
}

// Builder accumulates descriptors, rejecting any that would not register
// cleanly against the taxonomy.
type Builder struct {
	tax         *taxonomy.Taxonomy
	taken       map[string]string
	descriptors []command.Descriptor
}

// NewBuilder returns a Builder validating against tax.
func NewBuilder(tax *taxonomy.Taxonomy) *Builder {
	b := &Builder{
		tax:   tax,
		taken: make(map[string]string),
	}

	for _, c := range tax.Categories() {
		b.taken[c.Name] = "category"
		for _, s := range c.Subcategories {
			b.taken[c.Name+" "+s.Name] = "subcategory"
		}
	}

	return b
}

// Add validates d and appends it. Rejected descriptors leave the builder
// unchanged. Conflicts are rejected: the first registration at an address
// is kept.
func (b *Builder) Add(d command.Descriptor) error {
	if err := d.Validate(); err != nil {
		return err
	}

	if err := b.tax.Resolve(d.Category, d.Subcategory); err != nil {
		return fmt.Errorf("%s: %w", d.Address(), err)
	}

	addr := d.Address()
	if existing, ok := b.taken[addr]; ok {
		return &ConflictError{Address: addr, Existing: existing}
	}

	if err := checkFlags(d); err != nil {
		return fmt.Errorf("%s: %w", addr, err)
	}

	b.taken[addr] = "command"
	b.descriptors = append(b.descriptors, d)
	return nil
}

// Build returns the registry assembled so far.
func (b *Builder) Build() *Registry {
	out := make([]command.Descriptor, len(b.descriptors))
	copy(out, b.descriptors)
	return &Registry{descriptors: out}
}

// checkFlags runs the descriptor's flag hook against a scratch flag set so
// that a hook that panics (for example by redefining a flag) is caught
// before the real tree is built.
func checkFlags(d command.Descriptor) (err error) {
	if d.AddFlags == nil {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("flag declaration failed: %v", r)
		}
	}()

	fs := pflag.NewFlagSet(d.ID, pflag.ContinueOnError)
	fs.BoolP("help", "h", false, "show help")
	d.AddFlags(fs)
	return nil
}
