package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/cinematic/cinematic"
	"github.com/milk9111/cinematic/config"
	"github.com/milk9111/cinematic/ecs"
	"github.com/milk9111/cinematic/ecs/system"
	"github.com/milk9111/cinematic/project"
	"github.com/milk9111/cinematic/remote"
	"github.com/milk9111/cinematic/script"
	"github.com/milk9111/cinematic/trace"
	"github.com/sirupsen/logrus"
)

type Game struct {
	cfg    *config.Config
	log    logrus.FieldLogger
	frames int

	world     *ecs.World
	scheduler *ecs.Scheduler
	render    *system.RenderSystem
	ext       *script.Extension

	library   *project.Library
	watcher   *project.Watcher
	runtime   *script.Runtime
	bridge    *remote.Bridge
	transport remote.Transport
	tracer    *trace.Tracer

	lastEvent string
}

func NewGame(cfg *config.Config, log logrus.FieldLogger) (*Game, error) {
	world, err := buildWorld(cfg.Objects)
	if err != nil {
		return nil, err
	}

	player := cinematic.NewPlayer(nil, log)
	g := &Game{
		cfg:       cfg,
		log:       log,
		world:     world,
		scheduler: ecs.NewScheduler(system.NewCinematicSystem(player, cfg.TPS)),
		render:    system.NewRenderSystem(),
		ext:       &script.Extension{Player: player, Scene: system.NewWorldScene(world)},
	}
	g.scheduler.Add(eventLog{g})

	if cfg.TraceFile != "" {
		tracer, err := trace.Open(cfg.TraceFile)
		if err != nil {
			log.WithError(err).Warn("tracing disabled")
		} else {
			g.tracer = tracer
			player.SetTracer(tracer)
		}
	}

	library, err := project.OpenLibrary(cfg.Project, log)
	if err != nil {
		log.WithError(err).Warn("no project loaded, only inline sequences will play")
	} else {
		g.library = library
		g.ext.Lookup = library.Lookup
		if w, err := project.WatchFile(cfg.Project); err != nil {
			log.WithError(err).Warn("project hot reload disabled")
		} else {
			g.watcher = w
		}
	}

	if cfg.Script != "" {
		rt, err := script.Load(cfg.Script, g.ext, log)
		if err != nil {
			g.Close()
			return nil, err
		}
		g.runtime = rt
	}

	if cfg.MQTT.Enabled() {
		t, err := remote.Dial(cfg.MQTT, log)
		if err != nil {
			log.WithError(err).Warn("remote control disabled")
		} else {
			g.transport = t
			g.bridge = remote.NewBridge(t, cfg.MQTT.PlayTopic, cfg.MQTT.StatusTopic, log)
			if err := g.bridge.Start(); err != nil {
				log.WithError(err).Warn("remote control disabled")
				g.bridge = nil
			} else {
				player.AddListener(g.bridge.Notify)
			}
		}
	}

	return g, nil
}

// Play starts a stored sequence by name or inline JSON data.
func (g *Game) Play(sequenceNameOrJSONData string) string {
	return g.ext.PlayCinematicSequence(sequenceNameOrJSONData)
}

func (g *Game) Update() error {
	g.frames++

	g.reloadProject()
	if g.bridge != nil {
		g.bridge.Drain(func(req string) { g.Play(req) })
	}
	if g.runtime != nil {
		if err := g.runtime.Run(); err != nil {
			g.log.WithError(err).Error("script stopped")
			g.runtime = nil
		}
	}

	g.scheduler.Update(g.world)
	return nil
}

func (g *Game) reloadProject() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if path == g.library.Path() {
				g.reload()
			}
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			g.log.WithError(err).Warn("project watch")
		default:
			return
		}
	}
}

func (g *Game) reload() {
	if g.tracer != nil {
		defer g.tracer.Scope("project_reload")()
	}
	if err := g.library.Reload(); err != nil {
		g.log.WithError(err).Warn("project reload")
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(g.world, screen)

	running := g.ext.Player.Active().Running()
	sort.Strings(running)
	hud := fmt.Sprintf("Frames: %d    FPS: %.2f\nPlaying: %s", g.frames, ebiten.ActualFPS(), strings.Join(running, ", "))
	if g.lastEvent != "" {
		hud += "\nLast: " + g.lastEvent
	}
	ebitenutil.DebugPrint(screen, hud)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Window.Width, g.cfg.Window.Height
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	if g.transport != nil {
		g.transport.Close()
	}
	if g.tracer != nil {
		if err := g.tracer.Close(); err != nil {
			g.log.WithError(err).Warn("close trace")
		}
	}
}

// eventLog keeps the latest cinematic event for the HUD.
type eventLog struct {
	g *Game
}

func (l eventLog) Update(w *ecs.World) {
	for _, ev := range w.Events().Pending() {
		switch ev.Type {
		case system.EventCinematicStarted, system.EventCinematicFinished:
			l.g.lastEvent = fmt.Sprintf("%s %v", ev.Type, ev.Data)
		}
	}
}
