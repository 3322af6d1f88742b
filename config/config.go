// Package config loads the settings of the cinematic host.
package config

import (
	"fmt"
	"image/color"
	"os"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/milk9111/cinematic/remote"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

type Config struct {
	TPS       int           `yaml:"tps"`
	Window    Window        `yaml:"window"`
	LogLevel  string        `yaml:"logLevel"`
	Project   string        `yaml:"project"`
	Script    string        `yaml:"script"`
	TraceFile string        `yaml:"traceFile"`
	MQTT      remote.Config `yaml:"mqtt"`
	Objects   []Object      `yaml:"objects"`
}

type Window struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// Object is a scene object created at startup. Color is a #rrggbb hex
// string.
type Object struct {
	Name  string  `yaml:"name"`
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	W     float64 `yaml:"w"`
	H     float64 `yaml:"h"`
	Angle float64 `yaml:"angle"`
	Color string  `yaml:"color"`
}

// Default returns the settings used when no file is given.
func Default() *Config {
	c := &Config{
		Objects: []Object{
			{Name: "Player", X: 80, Y: 200, W: 32, H: 48, Color: "#4fa3ff"},
			{Name: "Crate", X: 400, Y: 300, W: 40, H: 40, Color: "#c8873a"},
		},
	}
	c.fillDefaults()
	return c
}

// Load reads a YAML config file. Zero fields take their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: load %s: %w", path, err)
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("config: load %s: %w", path, err)
	}
	c.fillDefaults()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config: load %s: %w", path, err)
	}
	return &c, nil
}

func (c *Config) fillDefaults() {
	if c.TPS <= 0 {
		c.TPS = 60
	}
	if c.Window.Width <= 0 {
		c.Window.Width = 1280
	}
	if c.Window.Height <= 0 {
		c.Window.Height = 720
	}
	if c.Window.Title == "" {
		c.Window.Title = "cinematic"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Project == "" {
		c.Project = "cinematics.yaml"
	}
	if c.MQTT.ClientID == "" {
		c.MQTT.ClientID = "cinematic"
	}
	if c.MQTT.PlayTopic == "" {
		c.MQTT.PlayTopic = "cinematic/play"
	}
	if c.MQTT.StatusTopic == "" {
		c.MQTT.StatusTopic = "cinematic/status"
	}
	for i := range c.Objects {
		o := &c.Objects[i]
		if o.W <= 0 {
			o.W = 32
		}
		if o.H <= 0 {
			o.H = 32
		}
		if o.Color == "" {
			o.Color = "#ffffff"
		}
	}
}

// Validate checks values that have no sensible default.
func (c *Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	for _, o := range c.Objects {
		if strings.TrimSpace(o.Name) == "" {
			return fmt.Errorf("object at (%v, %v) has no name", o.X, o.Y)
		}
		if _, err := ParseColor(o.Color); err != nil {
			return fmt.Errorf("object %q: %w", o.Name, err)
		}
	}
	return nil
}

// Level returns the configured log level.
func (c *Config) Level() (logrus.Level, error) {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel, fmt.Errorf("log level: %w", err)
	}
	return lvl, nil
}

// ParseColor decodes #rgb or #rrggbb; the leading # is optional.
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimSpace(s)
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}
