package script

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/milk9111/cinematic/cinematic"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const walkData = `{"name":"Walk","tracks":[{"type":"object","name":"Hero","keyframes":[{"time":1,"value":{"x":200}}]}]}`

type box struct{ x, y, angle float64 }

func (b *box) SetX(x float64)     { b.x = x }
func (b *box) SetY(y float64)     { b.y = y }
func (b *box) SetAngle(a float64) { b.angle = a }

type scene map[string][]cinematic.Object

func (s scene) GetObjects(name string) []cinematic.Object { return s[name] }

func newExtension(t *testing.T) (*Extension, *box) {
	t.Helper()
	logger, _ := test.NewNullLogger()
	hero := &box{}
	ext := &Extension{
		Player: cinematic.NewPlayer(nil, logger),
		Scene:  scene{"Hero": {hero}},
		Lookup: func(name string) (string, bool) {
			if name == "walk" {
				return walkData, true
			}
			return "", false
		},
	}
	return ext, hero
}

func TestExtensionPlaysInlineData(t *testing.T) {
	ext, hero := newExtension(t)

	assert.Equal(t, "Walk", ext.PlayCinematicSequence(walkData))
	assert.True(t, ext.IsCinematicSequencePlaying("Walk"))

	ext.Player.Update(time.Second)
	assert.Equal(t, 200.0, hero.x)
	ext.Player.Update(100 * time.Millisecond)
	assert.False(t, ext.IsCinematicSequencePlaying("Walk"))
}

func TestExtensionResolvesStoredName(t *testing.T) {
	ext, _ := newExtension(t)

	assert.Equal(t, "Walk", ext.PlayCinematicSequence("  walk "))
	assert.True(t, ext.IsCinematicSequencePlaying("Walk"))
}

func TestExtensionUnknownName(t *testing.T) {
	ext, _ := newExtension(t)

	assert.Equal(t, "", ext.PlayCinematicSequence("missing"))
	assert.Equal(t, "", ext.PlayCinematicSequence(""))
	assert.Zero(t, ext.Player.Active().Len())
}

func TestNilExtension(t *testing.T) {
	var ext *Extension
	assert.Equal(t, "", ext.PlayCinematicSequence(walkData))
	assert.False(t, ext.IsCinematicSequencePlaying("Walk"))
}

func TestRuntimeDrivesPlayer(t *testing.T) {
	ext, hero := newExtension(t)
	src := `
update := func(engine, state, tick) {
	if tick == 0 {
		state.started = engine.play_cinematic_sequence("walk")
	}
	state.playing = engine.is_cinematic_sequence_playing("Walk")
}
`
	rt, err := Compile([]byte(src), ext, nil)
	require.NoError(t, err)

	require.NoError(t, rt.Run())
	state := rt.State()
	assert.Equal(t, "Walk", state["started"])
	assert.Equal(t, true, state["playing"])

	ext.Player.Update(1100 * time.Millisecond)
	require.NoError(t, rt.Run())
	assert.Equal(t, false, rt.State()["playing"])
	assert.Equal(t, 200.0, hero.x)
	assert.Equal(t, 2, rt.Tick())
	assert.Equal(t, 1, ext.Player.Active().Len(), "finished sequences stay in the table")
}

func TestRuntimeStatePersists(t *testing.T) {
	ext, _ := newExtension(t)
	src := `
update := func(engine, state, tick) {
	if is_undefined(state.count) {
		state.count = 0
	}
	state.count = state.count + 1
}
`
	rt, err := Compile([]byte(src), ext, nil)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		require.NoError(t, rt.Run())
	}
	assert.Equal(t, 3, rt.State()["count"])
}

func TestRuntimeLogsThroughLogger(t *testing.T) {
	ext, _ := newExtension(t)
	logger, hook := test.NewNullLogger()
	rt, err := Compile([]byte(`update := func(engine, state, tick) { engine.log("tick", tick) }`), ext, logger)
	require.NoError(t, err)
	require.NoError(t, rt.Run())

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "tick 0", hook.LastEntry().Message)
	assert.Equal(t, "script", hook.LastEntry().Data["source"])
}

func TestCompileErrors(t *testing.T) {
	ext, _ := newExtension(t)

	_, err := Compile([]byte(`x := 1`), ext, nil)
	require.Error(t, err, "update must be defined")

	_, err = Compile([]byte(`update := func(`), ext, nil)
	require.Error(t, err)
}

func TestRunReturnsScriptErrors(t *testing.T) {
	ext, _ := newExtension(t)
	rt, err := Compile([]byte(`update := func(engine, state, tick) { return 1 / 0 }`), ext, nil)
	require.NoError(t, err)

	err = rt.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tick 0")
}

func TestLoad(t *testing.T) {
	ext, _ := newExtension(t)
	path := filepath.Join(t.TempDir(), "main.tengo")
	require.NoError(t, os.WriteFile(path, []byte(`update := func(engine, state, tick) {}`), 0o644))

	rt, err := Load(path, ext, nil)
	require.NoError(t, err)
	assert.Equal(t, path, rt.Path())
	require.NoError(t, rt.Run())

	_, err = Load(filepath.Join(t.TempDir(), "missing.tengo"), ext, nil)
	require.Error(t, err)
}
