// Package manifest reads declarative slideshow descriptions from YAML.
package manifest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Jarutais/slidecast/internal/effects"
)

// Manifest describes a complete slideshow render.
type Manifest struct {
	Version            string  `yaml:"version"`
	Slides             []Slide `yaml:"slides"`
	Audio              string  `yaml:"audio"`
	Output             string  `yaml:"output"`
	FrameDuration      float64 `yaml:"frame_duration"`
	TransitionDuration float64 `yaml:"transition_duration"`
	DefaultTransition  string  `yaml:"default_transition"`
}

// Slide is one image plus the transition that leads to the next slide.
// The last slide's transition, if present, is ignored.
type Slide struct {
	Image      string `yaml:"image"`
	Transition string `yaml:"transition"`
}

// Read loads and validates a manifest file.
func Read(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}

	if len(m.Slides) < 2 {
		return nil, fmt.Errorf("manifest needs at least 2 slides, got %d", len(m.Slides))
	}
	for i, s := range m.Slides {
		if s.Image == "" {
			return nil, fmt.Errorf("slide %d has no image", i)
		}
	}
	if m.DefaultTransition == "" {
		m.DefaultTransition = effects.DefaultName
	}

	return &m, nil
}

// Write saves a manifest to a YAML file.
func Write(m *Manifest, path string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ImagePaths returns the slide images in order.
func (m *Manifest) ImagePaths() []string {
	paths := make([]string, len(m.Slides))
	for i, s := range m.Slides {
		paths[i] = s.Image
	}
	return paths
}

// Transitions returns one transition name per adjacent slide pair, filling
// unset slots from the manifest default.
func (m *Manifest) Transitions() []string {
	names := make([]string, len(m.Slides)-1)
	for i := range names {
		names[i] = m.Slides[i].Transition
		if names[i] == "" {
			names[i] = m.DefaultTransition
		}
	}
	return names
}
