package main

import (
	"image/color"
	"testing"

	"github.com/milk9111/cinematic/config"
	"github.com/milk9111/cinematic/ecs"
	"github.com/milk9111/cinematic/ecs/component"
	"github.com/milk9111/cinematic/ecs/system"
)

func TestBuildWorld(t *testing.T) {
	w, err := buildWorld([]config.Object{
		{Name: "Hero", X: 10, Y: 20, W: 8, H: 16, Angle: 45, Color: "#ff0000"},
		{Name: "Hero", X: 30, Y: 40, W: 8, H: 16, Color: "#00ff00"},
	})
	if err != nil {
		t.Fatalf("buildWorld: %v", err)
	}

	objs := system.NewWorldScene(w).GetObjects("Hero")
	if len(objs) != 2 {
		t.Fatalf("expected 2 Hero objects, got %d", len(objs))
	}

	first := ecs.Entities(w)[0]
	tr, ok := ecs.Get(w, first, component.TransformComponent.Kind())
	if !ok || tr.X != 10 || tr.Rotation != 45 {
		t.Fatalf("unexpected transform %+v", tr)
	}
	shape, ok := ecs.Get(w, first, component.ShapeComponent.Kind())
	if !ok || shape.Color != (color.RGBA{R: 0xff, A: 0xff}) {
		t.Fatalf("unexpected shape %+v", shape)
	}
}

func TestBuildWorldRejectsBadColor(t *testing.T) {
	if _, err := buildWorld([]config.Object{{Name: "A", Color: "nope"}}); err == nil {
		t.Fatalf("expected error for bad color")
	}
}
