package system

import (
	"github.com/milk9111/cinematic/cinematic"
	"github.com/milk9111/cinematic/ecs"
	"github.com/milk9111/cinematic/ecs/component"
)

// WorldScene exposes the named entities of an ECS world to the cinematic
// player.
type WorldScene struct {
	World *ecs.World
}

func NewWorldScene(w *ecs.World) *WorldScene {
	return &WorldScene{World: w}
}

// GetObjects returns a handle for every live entity carrying both a Name
// equal to name and a Transform, ordered by entity.
func (s *WorldScene) GetObjects(name string) []cinematic.Object {
	if s == nil || s.World == nil || name == "" {
		return nil
	}

	var objects []cinematic.Object
	for _, e := range ecs.Entities(s.World) {
		n, ok := ecs.Get(s.World, e, component.NameComponent.Kind())
		if !ok || n.Value != name {
			continue
		}
		if !ecs.Has(s.World, e, component.TransformComponent.Kind()) {
			continue
		}
		objects = append(objects, &entityObject{world: s.World, entity: e})
	}
	return objects
}

// entityObject is captured when a sequence starts. If the entity is
// destroyed before a keyframe fires, the setters do nothing.
type entityObject struct {
	world  *ecs.World
	entity ecs.Entity
}

func (o *entityObject) transform() *component.Transform {
	t, ok := ecs.Get(o.world, o.entity, component.TransformComponent.Kind())
	if !ok {
		return nil
	}
	return t
}

func (o *entityObject) SetX(x float64) {
	if t := o.transform(); t != nil {
		t.X = x
	}
}

func (o *entityObject) SetY(y float64) {
	if t := o.transform(); t != nil {
		t.Y = y
	}
}

func (o *entityObject) SetAngle(degrees float64) {
	if t := o.transform(); t != nil {
		t.Rotation = degrees
	}
}
