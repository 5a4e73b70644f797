package plugins

import "sync"

// Linked is a manifest of factories registered by code linked into the
// binary, typically from a package init function:
//
//	func init() {
//		plugins.Register(plugins.Group, "acme.flash", newFlashProbe)
//	}
type Linked struct {
	mu      sync.Mutex
	entries map[string][]Entry
}

// Register adds a factory under the given group.
func (l *Linked) Register(group, name string, f Factory) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.entries == nil {
		l.entries = make(map[string][]Entry)
	}
	l.entries[group] = append(l.entries[group], Entry{Name: name, Source: "linked", Load: f})
}

// Entries implements Manifest. Entries are returned in registration order.
func (l *Linked) Entries(group string) ([]Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Entry, len(l.entries[group]))
	copy(out, l.entries[group])
	return out, nil
}

var linked Linked

// Register adds a factory to the process-wide linked manifest.
func Register(group, name string, f Factory) {
	linked.Register(group, name, f)
}

// LinkedManifest returns the process-wide linked manifest.
func LinkedManifest() Manifest {
	return &linked
}
