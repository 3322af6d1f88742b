package main

import (
	"fmt"

	"github.com/milk9111/cinematic/config"
	"github.com/milk9111/cinematic/ecs"
	"github.com/milk9111/cinematic/ecs/component"
)

// buildWorld creates one entity per configured object.
func buildWorld(objects []config.Object) (*ecs.World, error) {
	w := ecs.NewWorld()
	for _, o := range objects {
		col, err := config.ParseColor(o.Color)
		if err != nil {
			return nil, fmt.Errorf("object %q: %w", o.Name, err)
		}

		e := ecs.CreateEntity(w)
		if err := ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: o.Name}); err != nil {
			return nil, err
		}
		if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: o.X, Y: o.Y, Rotation: o.Angle}); err != nil {
			return nil, err
		}
		if err := ecs.Add(w, e, component.ShapeComponent.Kind(), &component.Shape{W: o.W, H: o.H, Color: col}); err != nil {
			return nil, err
		}
	}
	return w, nil
}
