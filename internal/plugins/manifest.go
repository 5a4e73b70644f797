// Package plugins discovers externally supplied command descriptors.
//
// Discovery is organized by extension group. A Manifest lists the entries
// of a group; each entry resolves to a command.Descriptor through its
// factory. Resolution is lazy so that one broken entry can be skipped by
// the caller without affecting the others.
package plugins

import (
	"fmt"

	"github.com/ecuprobe/cli/internal/command"
)

// Group is the well-known extension group for ecuprobe commands.
const Group = "ecuprobe_commands"

// Factory resolves a plugin entry to a descriptor.
type Factory func() (command.Descriptor, error)

// Entry is one discovered plugin, not yet resolved.
type Entry struct {
	// Name identifies the entry in logs.
	Name string
	// Source tells where the entry came from: "linked" or a manifest path.
	Source string
	Load   Factory
}

// Resolve calls the entry's factory. A nil factory or a panicking factory
// is reported as an error.
func (e Entry) Resolve() (d command.Descriptor, err error) {
	if e.Load == nil {
		return command.Descriptor{}, fmt.Errorf("plugin %s: no factory", e.Name)
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("plugin %s: factory panicked: %v", e.Name, r)
		}
	}()

	d, err = e.Load()
	if err != nil {
		return command.Descriptor{}, fmt.Errorf("plugin %s: %w", e.Name, err)
	}
	return d, nil
}

// Manifest lists the plugin entries of an extension group.
type Manifest interface {
	Entries(group string) ([]Entry, error)
}

// Multi concatenates manifests in order. A manifest that fails to list its
// entries is turned into a single entry whose factory returns that error,
// so the failure surfaces per source instead of aborting discovery.
type Multi []Manifest

// Entries implements Manifest.
func (m Multi) Entries(group string) ([]Entry, error) {
	var out []Entry

	for i, src := range m {
		if src == nil {
			continue
		}

		entries, err := src.Entries(group)
		if err != nil {
			failed := err
			out = append(out, Entry{
				Name:   fmt.Sprintf("source[%d]", i),
				Source: fmt.Sprintf("%T", src),
				Load: func() (command.Descriptor, error) {
					return command.Descriptor{}, failed
				},
			})
			continue
		}

		out = append(out, entries...)
	}

	return out, nil
}
