package registry

import (
	"errors"
	"fmt"

	"github.com/ecuprobe/cli/internal/command"
	"github.com/ecuprobe/cli/internal/domain"
	"github.com/ecuprobe/cli/internal/log"
	"github.com/ecuprobe/cli/internal/plugins"
	"github.com/ecuprobe/cli/internal/taxonomy"
)

// Loader populates a Registry: built-ins first, then discovered plugins.
type Loader struct {
	Taxonomy *taxonomy.Taxonomy
	Builtins []command.Descriptor
	// Manifest may be nil, in which case no plugins are discovered.
	Manifest plugins.Manifest
	Logger   domain.Logger
}

// Skipped records a plugin entry dropped during discovery.
type Skipped struct {
	Name   string
	Source string
	Err    error
}

// Result is the outcome of a Load.
type Result struct {
	Registry *Registry
	Skipped  []Skipped
}

// Load builds the registry. An invalid built-in is a configuration error
// and aborts the load. A plugin entry that fails to resolve, is invalid,
// references an unknown category or conflicts with an earlier command is
// logged and skipped; the rest of the registry still loads.
func (l Loader) Load() (Result, error) {
	if l.Taxonomy == nil {
		return Result{}, errors.New("registry: no taxonomy")
	}

	logger := l.Logger
	if logger == nil {
		logger = log.NopLogger{}
	}

	b := NewBuilder(l.Taxonomy)

	for _, d := range l.Builtins {
		if err := b.Add(d); err != nil {
			return Result{}, fmt.Errorf("registry: built-in %s: %w", d.Address(), err)
		}
	}
	logger.Debug("registry: %d built-in commands", len(l.Builtins))

	var skipped []Skipped
	if l.Manifest != nil {
		skipped = l.discover(b, logger)
	}

	reg := b.Build()
	logger.Debug("registry: %d commands loaded, %d plugins skipped", reg.Len(), len(skipped))

	return Result{Registry: reg, Skipped: skipped}, nil
}

func (l Loader) discover(b *Builder, logger domain.Logger) []Skipped {
	var skipped []Skipped

	entries, err := l.Manifest.Entries(plugins.Group)
	if err != nil {
		logger.Warn("registry: plugin discovery for %s failed: %v", plugins.Group, err)
		return append(skipped, Skipped{Name: plugins.Group, Err: err})
	}

	for _, e := range entries {
		d, err := e.Resolve()
		if err == nil {
			err = b.Add(d)
		}

		if err != nil {
			logger.Warn("registry: skipping plugin %s from %s: %v", e.Name, e.Source, err)
			skipped = append(skipped, Skipped{Name: e.Name, Source: e.Source, Err: err})
			continue
		}

		logger.Debug("registry: loaded plugin %s as %q", e.Name, d.Address())
	}

	return skipped
}
