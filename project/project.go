// SPDX-License-Identifier: EPL-2.0

package project

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/karlingen/melonix/warp"
)

// Version is the project file format version written by this build.
const Version = 1

// Project is the serialized form of an editing session: where the audio came
// from and the marker arrangement applied to it. The audio itself is not
// embedded; reopening a project decodes SourcePath again.
type Project struct {
	Version    int           `yaml:"version"`
	SourcePath string        `yaml:"sourcePath"`
	Tempo      float64       `yaml:"tempo,omitempty"`
	Markers    []warp.Marker `yaml:"markers,omitempty"`
}

// Save writes p to w as YAML.
func Save(w io.Writer, p *Project) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encoding project: %w", err)
	}
	return enc.Close()
}

// Load reads a project from w's YAML form. Files written by a newer format
// version are rejected rather than half-understood.
func Load(r io.Reader) (*Project, error) {
	var p Project
	if err := yaml.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("decoding project: %w", err)
	}
	if p.Version > Version {
		return nil, fmt.Errorf("%w: file version %d", ErrVersionTooNew, p.Version)
	}
	return &p, nil
}

// SaveFile writes p to path, creating or truncating it.
func SaveFile(path string, p *Project) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating project file: %w", err)
	}
	if err := Save(f, p); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadFile reads the project at path.
func LoadFile(path string) (*Project, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening project file: %w", err)
	}
	defer f.Close()
	return Load(f)
}
