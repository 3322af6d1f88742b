package cinematic

type fakeObject struct {
	x, y, angle float64
	calls       []string
}

func (o *fakeObject) SetX(x float64) {
	o.x = x
	o.calls = append(o.calls, "x")
}

func (o *fakeObject) SetY(y float64) {
	o.y = y
	o.calls = append(o.calls, "y")
}

func (o *fakeObject) SetAngle(a float64) {
	o.angle = a
	o.calls = append(o.calls, "angle")
}

type fakeScene map[string][]Object

func (s fakeScene) GetObjects(name string) []Object {
	return s[name]
}

func sceneWith(name string, objs ...*fakeObject) fakeScene {
	out := make([]Object, 0, len(objs))
	for _, o := range objs {
		out = append(out, o)
	}
	return fakeScene{name: out}
}
