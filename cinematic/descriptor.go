package cinematic

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// TrackTypeObject is the only track type the player applies. Tracks of any
// other type are ignored.
const TrackTypeObject = "object"

var (
	ErrEmptySequence = errors.New("cinematic: sequence data is empty")
	ErrNotObject     = errors.New("cinematic: sequence data is not a JSON object")
)

// Descriptor is a parsed sequence document.
type Descriptor struct {
	Name   string  `json:"name"`
	Tracks []Track `json:"tracks"`
}

// Track targets every scene object sharing Name.
type Track struct {
	Type      string     `json:"type"`
	Name      string     `json:"name"`
	Keyframes []Keyframe `json:"keyframes"`
}

// Keyframe is an instantaneous snapshot applied Time seconds after start.
type Keyframe struct {
	Time  float64 `json:"time"`
	Value Value   `json:"value"`
}

// Value holds the properties a keyframe sets. Nil fields leave the target
// property untouched.
type Value struct {
	X     *float64 `json:"x,omitempty"`
	Y     *float64 `json:"y,omitempty"`
	Angle *float64 `json:"angle,omitempty"`
}

// UnmarshalJSON accepts any JSON value. Anything but an object decodes to an
// empty Value, so such a keyframe still fires but changes nothing.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		*v = Value{}
		return nil
	}
	type plain Value
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*v = Value(p)
	return nil
}

// Empty reports whether the value sets nothing.
func (v Value) Empty() bool {
	return v.X == nil && v.Y == nil && v.Angle == nil
}

func (v Value) applyTo(o Object) {
	if v.X != nil {
		o.SetX(*v.X)
	}
	if v.Y != nil {
		o.SetY(*v.Y)
	}
	if v.Angle != nil {
		o.SetAngle(*v.Angle)
	}
}

// ParseDescriptor decodes a sequence document.
func ParseDescriptor(data string) (*Descriptor, error) {
	trimmed := strings.TrimSpace(data)
	if trimmed == "" {
		return nil, ErrEmptySequence
	}
	if trimmed[0] != '{' {
		return nil, ErrNotObject
	}
	var d Descriptor
	if err := json.Unmarshal([]byte(trimmed), &d); err != nil {
		return nil, fmt.Errorf("cinematic: parse sequence: %w", err)
	}
	return &d, nil
}

// MaxTime returns the largest time among the last keyframe of every track,
// or 0 when no track has keyframes.
//
// Only the final keyframe of each track is consulted, so a track listed out
// of time order can end its sequence before its latest keyframe fires.
// Existing sequences depend on this, so it is kept as is.
func (d *Descriptor) MaxTime() float64 {
	if d == nil {
		return 0
	}
	maxTime := 0.0
	for _, t := range d.Tracks {
		if len(t.Keyframes) == 0 {
			continue
		}
		maxTime = math.Max(maxTime, t.Keyframes[len(t.Keyframes)-1].Time)
	}
	return maxTime
}

// seconds converts a keyframe time, saturating at the largest Duration.
func seconds(s float64) time.Duration {
	ns := s * float64(time.Second)
	if ns >= math.MaxInt64 {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(ns)
}
