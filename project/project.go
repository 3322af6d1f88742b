package project

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format selects the on-disk encoding of a project file.
type Format int

const (
	FormatYAML Format = iota
	FormatTOML
)

// FormatFor picks the format from a file extension; anything that is not
// .toml is read as YAML.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// IsProjectFile reports whether path has a project file extension.
func IsProjectFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".toml":
		return true
	}
	return false
}

// Project is the set of sequences stored for a game.
type Project struct {
	Sequences []Sequence `yaml:"cinematicSequences" toml:"cinematicSequences"`
}

// Load reads a project file.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("project: load %s: %w", path, err)
	}
	p, err := Parse(data, FormatFor(path))
	if err != nil {
		return nil, fmt.Errorf("project: load %s: %w", path, err)
	}
	return p, nil
}

// Parse decodes a project document.
func Parse(data []byte, format Format) (*Project, error) {
	var p Project
	switch format {
	case FormatTOML:
		if _, err := toml.Decode(string(data), &p); err != nil {
			return nil, fmt.Errorf("unmarshal toml: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("unmarshal yaml: %w", err)
		}
	}
	return &p, nil
}

// Encode serialises the project in format.
func (p *Project) Encode(format Format) ([]byte, error) {
	switch format {
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(p); err != nil {
			return nil, fmt.Errorf("project: marshal toml: %w", err)
		}
		return buf.Bytes(), nil
	default:
		data, err := yaml.Marshal(p)
		if err != nil {
			return nil, fmt.Errorf("project: marshal yaml: %w", err)
		}
		return data, nil
	}
}

// Save writes the project to path in the format its extension names.
func (p *Project) Save(path string) error {
	data, err := p.Encode(FormatFor(path))
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Find returns the sequence called name.
func (p *Project) Find(name string) (*Sequence, bool) {
	if p == nil {
		return nil, false
	}
	for i := range p.Sequences {
		if p.Sequences[i].Name == name {
			return &p.Sequences[i], true
		}
	}
	return nil, false
}

// Lookup returns the sequence data stored under name.
func (p *Project) Lookup(name string) (string, bool) {
	s, ok := p.Find(name)
	if !ok {
		return "", false
	}
	return s.SequenceData, true
}

// Names lists the stored sequence names in file order.
func (p *Project) Names() []string {
	if p == nil {
		return nil
	}
	names := make([]string, 0, len(p.Sequences))
	for _, s := range p.Sequences {
		names = append(names, s.Name)
	}
	return names
}

// Validate checks every sequence and that names are unique and non-empty.
func (p *Project) Validate() error {
	if p == nil {
		return nil
	}
	var errs []error
	seen := make(map[string]bool, len(p.Sequences))
	for i := range p.Sequences {
		s := &p.Sequences[i]
		switch {
		case s.Name == "":
			errs = append(errs, fmt.Errorf("sequence %d has no name", i))
		case seen[s.Name]:
			errs = append(errs, fmt.Errorf("sequence %q is defined more than once", s.Name))
		}
		seen[s.Name] = true
		if err := s.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
