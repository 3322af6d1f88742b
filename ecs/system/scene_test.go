package system

import (
	"testing"

	"github.com/milk9111/cinematic/ecs"
	"github.com/milk9111/cinematic/ecs/component"
)

func spawnNamed(t *testing.T, w *ecs.World, name string, x, y float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: name}); err != nil {
		t.Fatalf("add name: %v", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}); err != nil {
		t.Fatalf("add transform: %v", err)
	}
	return e
}

func TestWorldSceneGetObjects(t *testing.T) {
	w := ecs.NewWorld()
	spawnNamed(t, w, "Guard", 0, 0)
	spawnNamed(t, w, "Hero", 0, 0)
	spawnNamed(t, w, "Guard", 5, 5)

	nameless := ecs.CreateEntity(w)
	if err := ecs.Add(w, nameless, component.TransformComponent.Kind(), &component.Transform{}); err != nil {
		t.Fatal(err)
	}
	noTransform := ecs.CreateEntity(w)
	if err := ecs.Add(w, noTransform, component.NameComponent.Kind(), &component.Name{Value: "Hero"}); err != nil {
		t.Fatal(err)
	}

	scene := NewWorldScene(w)
	cases := []struct {
		name string
		want int
	}{
		{"Guard", 2},
		{"Hero", 1},
		{"Ghost", 0},
		{"", 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := len(scene.GetObjects(c.name)); got != c.want {
				t.Fatalf("expected %d objects, got %d", c.want, got)
			}
		})
	}
}

func TestWorldSceneObjectSetters(t *testing.T) {
	w := ecs.NewWorld()
	e := spawnNamed(t, w, "Hero", 1, 2)

	objs := NewWorldScene(w).GetObjects("Hero")
	if len(objs) != 1 {
		t.Fatalf("expected one object, got %d", len(objs))
	}
	objs[0].SetX(10)
	objs[0].SetAngle(90)

	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		t.Fatalf("transform missing")
	}
	if tr.X != 10 || tr.Y != 2 || tr.Rotation != 90 {
		t.Fatalf("unexpected transform %+v", *tr)
	}
}

func TestWorldSceneStaleObjectIsHarmless(t *testing.T) {
	w := ecs.NewWorld()
	e := spawnNamed(t, w, "Hero", 1, 2)
	objs := NewWorldScene(w).GetObjects("Hero")

	if !ecs.DestroyEntity(w, e) {
		t.Fatalf("destroy failed")
	}
	reused := spawnNamed(t, w, "Other", 3, 4)

	objs[0].SetX(99)
	objs[0].SetY(99)

	tr, _ := ecs.Get(w, reused, component.TransformComponent.Kind())
	if tr.X != 3 || tr.Y != 4 {
		t.Fatalf("stale handle wrote into reused slot: %+v", *tr)
	}
}
