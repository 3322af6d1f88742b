package system

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/cinematic/ecs"
	"github.com/milk9111/cinematic/ecs/component"
)

// RenderSystem draws every entity with a Transform and a Shape as a filled
// rectangle rotated about its centre.
type RenderSystem struct {
	pixel *ebiten.Image
}

func NewRenderSystem() *RenderSystem {
	pixel := ebiten.NewImage(1, 1)
	pixel.Fill(color.White)
	return &RenderSystem{pixel: pixel}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	for _, e := range ecs.Entities(w) {
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		s, ok := ecs.Get(w, e, component.ShapeComponent.Kind())
		if !ok || s.W <= 0 || s.H <= 0 {
			continue
		}

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(s.W, s.H)
		op.GeoM.Translate(-s.W/2, -s.H/2)
		op.GeoM.Rotate(t.Rotation * math.Pi / 180)
		op.GeoM.Translate(t.X, t.Y)
		op.ColorScale.ScaleWithColor(s.Color)
		screen.DrawImage(r.pixel, op)
	}
}
