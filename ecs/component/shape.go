package component

import "image/color"

// Shape is a filled rectangle centred on the entity's transform.
type Shape struct {
	W     float64
	H     float64
	Color color.RGBA
}

var ShapeComponent = NewComponent[Shape]("shape")
