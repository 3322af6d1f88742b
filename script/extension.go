// Package script exposes cinematic playback to tengo scripts.
package script

import (
	"strings"

	"github.com/milk9111/cinematic/cinematic"
)

// Extension binds a player to the scene it animates. Lookup, when set,
// resolves stored sequences by name.
type Extension struct {
	Player *cinematic.Player
	Scene  cinematic.Scene
	Lookup func(name string) (data string, ok bool)
}

// PlayCinematicSequence plays inline JSON sequence data, or the stored
// sequence named by sequenceNameOrJSONData. It returns the name the
// sequence runs under, or "" when nothing started.
func (e *Extension) PlayCinematicSequence(sequenceNameOrJSONData string) string {
	if e == nil || e.Player == nil {
		return ""
	}
	return e.Player.Play(e.Scene, e.resolve(sequenceNameOrJSONData))
}

// IsCinematicSequencePlaying reports whether sequenceName is running.
func (e *Extension) IsCinematicSequencePlaying(sequenceName string) bool {
	if e == nil || e.Player == nil {
		return false
	}
	return e.Player.IsPlaying(e.Scene, sequenceName)
}

func (e *Extension) resolve(arg string) string {
	trimmed := strings.TrimSpace(arg)
	if trimmed == "" || strings.HasPrefix(trimmed, "{") || e.Lookup == nil {
		return arg
	}
	if data, ok := e.Lookup(trimmed); ok {
		return data
	}
	return arg
}
