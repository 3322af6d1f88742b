package cinematic

import (
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultNamePrefix starts the generated name of a sequence whose
	// document carries none.
	DefaultNamePrefix = "Cinematic_"

	// finishPadding keeps a sequence reported as playing for a little while
	// after its last keyframe has been applied.
	finishPadding = 100 * time.Millisecond
)

type EventKind int

const (
	EventStarted EventKind = iota
	EventFinished
)

func (k EventKind) String() string {
	switch k {
	case EventStarted:
		return "started"
	case EventFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Event reports a sequence changing state.
type Event struct {
	Kind EventKind
	Name string
}

// Listener receives player events on the goroutine driving the player.
type Listener func(Event)

// Tracer receives named diagnostic events.
type Tracer interface {
	Event(name string, data any)
}

// Player starts sequences against a Scene and answers whether a named
// sequence is still running.
type Player struct {
	timers    *Timers
	active    *ActiveTable
	log       logrus.FieldLogger
	tracer    Tracer
	listeners []Listener

	// Namer generates names for sequences that do not carry one.
	Namer func() string
}

// NewPlayer returns a player scheduling on timers. A nil timers gets a
// fresh queue, a nil logger the logrus standard logger.
func NewPlayer(timers *Timers, logger logrus.FieldLogger) *Player {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if timers == nil {
		timers = NewTimers(logger)
	}
	return &Player{
		timers: timers,
		active: NewActiveTable(),
		log:    logger,
		Namer:  defaultName,
	}
}

func defaultName() string {
	return DefaultNamePrefix + uuid.NewString()
}

// Timers returns the queue the player schedules on.
func (p *Player) Timers() *Timers {
	return p.timers
}

// Active returns the player's sequence table.
func (p *Player) Active() *ActiveTable {
	return p.active
}

// SetTracer attaches t; nil detaches.
func (p *Player) SetTracer(t Tracer) {
	p.tracer = t
}

// AddListener registers fn for every later event.
func (p *Player) AddListener(fn Listener) {
	if fn == nil {
		return
	}
	p.listeners = append(p.listeners, fn)
}

// Update advances the player's clock by dt, applying due keyframes.
func (p *Player) Update(dt time.Duration) {
	p.timers.Advance(dt)
}

// Play parses data and schedules its keyframes relative to now. It returns
// the name the sequence runs under, or "" when nothing was started.
//
// Play never fails: empty data is ignored and malformed data is logged. Work
// scheduled before an unexpected failure stays scheduled.
func (p *Player) Play(scene Scene, data string) (name string) {
	if data == "" {
		return ""
	}
	defer func() {
		if r := recover(); r != nil {
			p.log.Errorf("failed to play cinematic %s: %v", name, r)
		}
	}()

	desc, err := ParseDescriptor(data)
	if err != nil {
		p.log.Errorf("failed to parse cinematic: %v", err)
		return ""
	}

	name = desc.Name
	if name == "" {
		name = p.Namer()
	}
	p.active.Start(name)
	p.log.Infof("playing cinematic sequence: %s", name)
	p.emit(Event{Kind: EventStarted, Name: name})
	p.trace("cinematic_play", map[string]any{"name": name, "tracks": len(desc.Tracks)})

	for _, track := range desc.Tracks {
		p.scheduleTrack(scene, track)
	}

	p.timers.Schedule(seconds(desc.MaxTime())+finishPadding, func() {
		p.active.deactivate(name)
		p.log.Infof("cinematic finished: %s", name)
		p.emit(Event{Kind: EventFinished, Name: name})
		p.trace("cinematic_finish", map[string]any{"name": name})
	})
	return name
}

// IsPlaying reports whether the sequence called name is running. The scene
// is not consulted; it is accepted so both scripting calls share a shape.
func (p *Player) IsPlaying(_ Scene, name string) bool {
	return p.active.IsActive(name)
}

func (p *Player) scheduleTrack(scene Scene, track Track) {
	if track.Type != TrackTypeObject || scene == nil {
		return
	}
	objects := scene.GetObjects(track.Name)
	if len(objects) == 0 {
		return
	}
	for _, kf := range track.Keyframes {
		value := kf.Value
		p.timers.Schedule(seconds(kf.Time), func() {
			for _, o := range objects {
				value.applyTo(o)
			}
		})
	}
}

func (p *Player) emit(ev Event) {
	for _, fn := range p.listeners {
		fn(ev)
	}
}

func (p *Player) trace(name string, data any) {
	if p.tracer != nil {
		p.tracer.Event(name, data)
	}
}
