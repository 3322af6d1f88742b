package system

import (
	"time"

	"github.com/milk9111/cinematic/cinematic"
	"github.com/milk9111/cinematic/ecs"
)

const (
	EventCinematicStarted  = "cinematic.started"
	EventCinematicFinished = "cinematic.finished"
)

// CinematicSystem advances a cinematic player by one fixed frame step per
// update and republishes the player's events on the world event queue.
type CinematicSystem struct {
	player  *cinematic.Player
	step    time.Duration
	pending []cinematic.Event
}

// NewCinematicSystem drives player at tps updates per second.
func NewCinematicSystem(player *cinematic.Player, tps int) *CinematicSystem {
	if tps <= 0 {
		tps = 60
	}
	s := &CinematicSystem{
		player: player,
		step:   time.Second / time.Duration(tps),
	}
	if player != nil {
		player.AddListener(func(ev cinematic.Event) {
			s.pending = append(s.pending, ev)
		})
	}
	return s
}

// Step returns the simulated time added per update.
func (s *CinematicSystem) Step() time.Duration {
	return s.step
}

func (s *CinematicSystem) Update(w *ecs.World) {
	if s == nil || s.player == nil {
		return
	}

	s.player.Update(s.step)

	events := w.Events()
	for _, ev := range s.pending {
		typ := EventCinematicStarted
		if ev.Kind == cinematic.EventFinished {
			typ = EventCinematicFinished
		}
		events.Push(ecs.Event{Type: typ, Data: ev.Name})
	}
	s.pending = s.pending[:0]
}
