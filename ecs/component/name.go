package component

// Name is the scene-level object name cinematic tracks target. Several
// entities may share one name; a track then drives all of them.
type Name struct {
	Value string
}

var NameComponent = NewComponent[Name]("name")
