package plugins

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/ecuprobe/cli/internal/command"
	"gopkg.in/yaml.v3"
)

// Dir is a manifest backed by a directory of YAML files. Each file
// declares an extension group and the external executables it provides:
//
//	group: ecuprobe_commands
//	commands:
//	  - id: dump-flash
//	    category: prims
//	    subcategory: uds
//	    short_help: dump flash memory
//	    exec: ./dump-flash
//	    args:
//	      - name: address
//	        required: true
//	    flags:
//	      - name: target
//	        type: string
//	        usage: target URL
type Dir struct {
	Path string
}

type manifestFile struct {
	Group    string            `yaml:"group"`
	Commands []manifestCommand `yaml:"commands"`
}

type manifestCommand struct {
	ID          string         `yaml:"id"`
	Category    string         `yaml:"category"`
	Subcategory string         `yaml:"subcategory"`
	ShortHelp   string         `yaml:"short_help"`
	LongHelp    string         `yaml:"long_help"`
	Exec        string         `yaml:"exec"`
	Args        []manifestArg  `yaml:"args"`
	Flags       []manifestFlag `yaml:"flags"`
}

type manifestArg struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Required    bool   `yaml:"required"`
}

type manifestFlag struct {
	Name      string `yaml:"name"`
	Shorthand string `yaml:"shorthand"`
	Type      string `yaml:"type"`
	Default   string `yaml:"default"`
	Usage     string `yaml:"usage"`
}

// Entries implements Manifest. A missing directory has no entries. A file
// that cannot be read or parsed yields one entry that fails to resolve.
func (d Dir) Entries(group string) ([]Entry, error) {
	if d.Path == "" {
		return nil, nil
	}

	files, err := d.manifestFiles()
	if err != nil {
		return nil, err
	}

	var out []Entry
	for _, path := range files {
		out = append(out, fileEntries(path, group)...)
	}
	return out, nil
}

func (d Dir) manifestFiles() ([]string, error) {
	dirEntries, err := os.ReadDir(d.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read plugin dir: %w", err)
	}

	var files []string
	for _, e := range dirEntries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".yaml", ".yml":
			files = append(files, filepath.Join(d.Path, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

func fileEntries(path, group string) []Entry {
	broken := func(err error) []Entry {
		return []Entry{{
			Name:   filepath.Base(path),
			Source: path,
			Load: func() (command.Descriptor, error) {
				return command.Descriptor{}, err
			},
		}}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return broken(fmt.Errorf("read manifest: %w", err))
	}

	var mf manifestFile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return broken(fmt.Errorf("parse manifest: %w", err))
	}

	if mf.Group != group {
		return nil
	}

	baseDir := filepath.Dir(path)
	entries := make([]Entry, 0, len(mf.Commands))
	for i, c := range mf.Commands {
		c := c
		name := c.ID
		if name == "" {
			name = fmt.Sprintf("commands[%d]", i)
		}
		entries = append(entries, Entry{
			Name:   filepath.Base(path) + ":" + name,
			Source: path,
			Load: func() (command.Descriptor, error) {
				return c.descriptor(baseDir)
			},
		})
	}
	return entries
}
