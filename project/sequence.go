// Package project stores the cinematic sequences authored for a game and
// keeps them loadable by name at runtime.
package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/milk9111/cinematic/cinematic"
)

var ErrEmptyData = errors.New("sequence data is empty")

// Sequence is one stored cinematic sequence. SequenceData is the JSON
// document handed to the player; AssociatedLayout names the scene the
// sequence was authored against.
type Sequence struct {
	Name             string `yaml:"name" toml:"name"`
	SequenceData     string `yaml:"sequenceData" toml:"sequenceData"`
	AssociatedLayout string `yaml:"associatedLayout,omitempty" toml:"associatedLayout,omitempty"`
}

// header holds the document fields the player does not use.
type header struct {
	Version  int     `json:"version"`
	Duration float64 `json:"duration"`
}

// Validate reports whether the sequence data would play as authored.
func (s *Sequence) Validate() error {
	desc, err := cinematic.ParseDescriptor(s.SequenceData)
	if errors.Is(err, cinematic.ErrEmptySequence) {
		return fmt.Errorf("sequence %q: %w", s.Name, ErrEmptyData)
	}
	if err != nil {
		return fmt.Errorf("sequence %q: %w", s.Name, err)
	}

	var errs []error
	for i, track := range desc.Tracks {
		if track.Type == cinematic.TrackTypeObject && track.Name == "" {
			errs = append(errs, fmt.Errorf("sequence %q: track %d: object track has no name", s.Name, i))
		}
		for j, kf := range track.Keyframes {
			if kf.Time < 0 || math.IsNaN(kf.Time) {
				errs = append(errs, fmt.Errorf("sequence %q: track %d keyframe %d: negative time %v", s.Name, i, j, kf.Time))
			}
		}
	}
	return errors.Join(errs...)
}

// ApproxDuration returns the document's declared duration in seconds, or
// else the latest keyframe time over all tracks. Unreadable data has no
// duration.
func (s *Sequence) ApproxDuration() float64 {
	desc, err := cinematic.ParseDescriptor(s.SequenceData)
	if err != nil {
		return 0
	}
	var h header
	if err := json.Unmarshal([]byte(s.SequenceData), &h); err == nil && h.Duration > 0 {
		return h.Duration
	}

	latest := 0.0
	for _, track := range desc.Tracks {
		for _, kf := range track.Keyframes {
			latest = math.Max(latest, kf.Time)
		}
	}
	return latest
}
