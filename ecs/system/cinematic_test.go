package system

import (
	"testing"
	"time"

	"github.com/milk9111/cinematic/cinematic"
	"github.com/milk9111/cinematic/ecs"
	"github.com/milk9111/cinematic/ecs/component"
	"github.com/sirupsen/logrus/hooks/test"
)

const heroWalk = `{"name":"Walk","tracks":[{"type":"object","name":"Hero","keyframes":[
	{"time":0.5,"value":{"x":100}},
	{"time":1,"value":{"x":200,"angle":30}}
]}]}`

func TestCinematicSystemDrivesWorld(t *testing.T) {
	logger, _ := test.NewNullLogger()
	w := ecs.NewWorld()
	hero := spawnNamed(t, w, "Hero", 0, 0)

	player := cinematic.NewPlayer(nil, logger)
	sys := NewCinematicSystem(player, 10)
	sched := ecs.NewScheduler(sys)

	if sys.Step() != 100*time.Millisecond {
		t.Fatalf("unexpected step %s", sys.Step())
	}

	if name := player.Play(NewWorldScene(w), heroWalk); name != "Walk" {
		t.Fatalf("unexpected name %q", name)
	}

	var started, finished int
	frames := 0
	for player.IsPlaying(nil, "Walk") {
		if frames > 100 {
			t.Fatalf("sequence never finished")
		}
		sys.Update(w)
		for _, ev := range w.Events().Drain() {
			switch ev.Type {
			case EventCinematicStarted:
				started++
			case EventCinematicFinished:
				finished++
				if ev.Data != "Walk" {
					t.Fatalf("unexpected event data %v", ev.Data)
				}
			}
		}
		frames++
	}

	// 1s of keyframes plus the 100ms tail, at 100ms per frame.
	if frames != 11 {
		t.Fatalf("expected 11 frames, got %d", frames)
	}
	if started != 1 || finished != 1 {
		t.Fatalf("expected one start and one finish, got %d/%d", started, finished)
	}

	tr, _ := ecs.Get(w, hero, component.TransformComponent.Kind())
	if tr.X != 200 || tr.Rotation != 30 {
		t.Fatalf("unexpected transform %+v", *tr)
	}

	sched.Update(w)
	if len(w.Events().Pending()) != 0 {
		t.Fatalf("scheduler should flush events after a frame")
	}
}

func TestCinematicSystemDefaultsTickRate(t *testing.T) {
	sys := NewCinematicSystem(nil, 0)
	if sys.Step() != time.Second/60 {
		t.Fatalf("unexpected step %s", sys.Step())
	}
	sys.Update(ecs.NewWorld())
}
