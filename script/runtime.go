package script

import (
	"fmt"
	"os"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/sirupsen/logrus"
)

// A script defines update(engine, state, tick), called once per frame.
// state persists between frames.
const dispatchScript = `
update(__engine, __state, __tick)
`

// Runtime is a compiled script driven by the host's tick.
type Runtime struct {
	path     string
	compiled *tengo.Compiled
	state    *tengo.Map
	engine   *tengo.ImmutableMap
	tick     int
}

// Load compiles the script at path.
func Load(path string, ext *Extension, logger logrus.FieldLogger) (*Runtime, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("script: load %s: %w", path, err)
	}
	rt, err := Compile(src, ext, logger)
	if err != nil {
		return nil, fmt.Errorf("script: load %s: %w", path, err)
	}
	rt.path = path
	return rt, nil
}

// Compile builds a runtime from script source.
func Compile(src []byte, ext *Extension, logger logrus.FieldLogger) (*Runtime, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	script := tengo.NewScript([]byte(string(src) + "\n" + dispatchScript))
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	_ = script.Add("__tick", 0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	return &Runtime{
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
		engine:   buildEngine(ext, logger),
	}, nil
}

func (rt *Runtime) Path() string {
	if rt == nil {
		return ""
	}
	return rt.path
}

// Tick returns how many frames have run.
func (rt *Runtime) Tick() int {
	if rt == nil {
		return 0
	}
	return rt.tick
}

// Run calls the script's update for the next frame.
func (rt *Runtime) Run() error {
	if rt == nil || rt.compiled == nil {
		return fmt.Errorf("script: nil runtime")
	}
	if err := rt.compiled.Set("__engine", rt.engine); err != nil {
		return err
	}
	if err := rt.compiled.Set("__state", rt.state); err != nil {
		return err
	}
	if err := rt.compiled.Set("__tick", rt.tick); err != nil {
		return err
	}
	rt.tick++
	if err := rt.compiled.Run(); err != nil {
		return fmt.Errorf("script: tick %d: %w", rt.tick-1, err)
	}
	return nil
}

// State returns a copy of the script's persistent state.
func (rt *Runtime) State() map[string]any {
	if rt == nil || rt.state == nil {
		return nil
	}
	out, _ := objectToAny(rt.state).(map[string]any)
	return out
}

func buildEngine(ext *Extension, logger logrus.FieldLogger) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["play_cinematic_sequence"] = &tengo.UserFunction{Name: "play_cinematic_sequence", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return &tengo.String{}, nil
		}
		return &tengo.String{Value: ext.PlayCinematicSequence(objectAsString(args[0]))}, nil
	}}

	values["is_cinematic_sequence_playing"] = &tengo.UserFunction{Name: "is_cinematic_sequence_playing", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		if ext.IsCinematicSequencePlaying(objectAsString(args[0])) {
			return tengo.TrueValue, nil
		}
		return tengo.FalseValue, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, objectAsString(a))
		}
		logger.WithField("source", "script").Info(strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

func objectToAny(obj tengo.Object) any {
	if obj == nil {
		return nil
	}

	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	case *tengo.Int:
		return int(v.Value)
	case *tengo.Float:
		return v.Value
	case *tengo.Bool:
		return !v.IsFalsy()
	case *tengo.Array:
		out := make([]any, 0, len(v.Value))
		for _, item := range v.Value {
			out = append(out, objectToAny(item))
		}
		return out
	case *tengo.Map:
		out := make(map[string]any, len(v.Value))
		for k, item := range v.Value {
			out[k] = objectToAny(item)
		}
		return out
	case *tengo.ImmutableMap:
		out := make(map[string]any, len(v.Value))
		for k, item := range v.Value {
			out[k] = objectToAny(item)
		}
		return out
	case *tengo.Undefined:
		return nil
	default:
		return v.String()
	}
}
