package component

// Transform is the placement of a scene object. Rotation is in degrees,
// clockwise, matching what cinematic keyframes carry in their angle field.
type Transform struct {
	X        float64
	Y        float64
	Rotation float64
}

var TransformComponent = NewComponent[Transform]("transform")
