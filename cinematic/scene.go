package cinematic

// Scene resolves track names to the objects they animate.
type Scene interface {
	// GetObjects returns every object instance named name, or nothing.
	GetObjects(name string) []Object
}

// Object is a scene object a keyframe can move.
type Object interface {
	SetX(x float64)
	SetY(y float64)
	SetAngle(degrees float64)
}
