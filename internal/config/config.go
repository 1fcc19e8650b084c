package config

import (
	_ "embed"
	"fmt"
	"math"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/cullbench/internal/bench"
)

const DefaultScenario = "default"

//go:embed scenarios.yaml
var scenariosYAML []byte

type Scenario struct {
	Name        string         `yaml:"-"`
	Bodies      int            `yaml:"bodies"`
	Radius      float64        `yaml:"radius"`
	AreaPerBody float64        `yaml:"area_per_body"`
	AspectRatio float64        `yaml:"aspect_ratio"`
	Speed       float64        `yaml:"speed"`
	Engine      string         `yaml:"engine"`
	Seed        int64          `yaml:"seed"`
	Frames      int            `yaml:"frames"`
	Material    MaterialConfig `yaml:"material"`
	Screen      ScreenConfig   `yaml:"screen"`
	Solver      SolverConfig   `yaml:"solver"`
}

type MaterialConfig struct {
	Density     float64 `yaml:"density"`
	Friction    float64 `yaml:"friction"`
	Restitution float64 `yaml:"restitution"`
}

type ScreenConfig struct {
	Width          int     `yaml:"width"`
	Height         int     `yaml:"height"`
	FPS            int     `yaml:"fps"`
	PixelsPerMeter float64 `yaml:"pixels_per_meter"`
	Title          string  `yaml:"title"`
}

type SolverConfig struct {
	VelocityIterations int `yaml:"velocity_iterations"`
	PositionIterations int `yaml:"position_iterations"`
}

var presets map[string]*Scenario

func init() {
	p, err := parse(scenariosYAML)
	if err != nil {
		panic(fmt.Sprintf("config: embedded scenarios: %v", err))
	}
	presets = p
}

// parse decodes a scenario table. Every entry other than the default one is
// layered over the default, so presets only list what they change.
func parse(data []byte) (map[string]*Scenario, error) {
	var raw map[string]yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	base, ok := raw[DefaultScenario]
	if !ok {
		return nil, fmt.Errorf("missing %q scenario", DefaultScenario)
	}

	out := make(map[string]*Scenario, len(raw))
	for name, node := range raw {
		s := &Scenario{}
		if err := base.Decode(s); err != nil {
			return nil, fmt.Errorf("%s: %w", DefaultScenario, err)
		}
		if name != DefaultScenario {
			if err := node.Decode(s); err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
		}
		s.Name = name
		out[name] = s
	}
	return out, nil
}

// Default returns a copy of the default scenario.
func Default() Scenario {
	return *presets[DefaultScenario]
}

// Preset returns a copy of the named scenario.
func Preset(name string) (Scenario, error) {
	s, ok := presets[name]
	if !ok {
		return Scenario{}, fmt.Errorf("%w: unknown scenario %q (available: %v)", bench.ErrConfiguration, name, Presets())
	}
	return *s, nil
}

func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s Scenario) WithBodies(n int) Scenario {
	s.Bodies = n
	return s
}

func (s Scenario) WithEngine(name string) Scenario {
	s.Engine = name
	return s
}

// FramePeriod is the fixed physics timestep in seconds.
func (s Scenario) FramePeriod() float64 {
	return 1 / float64(s.Screen.FPS)
}

func (s Scenario) Iterations() bench.Iterations {
	return bench.Iterations{Velocity: s.Solver.VelocityIterations, Position: s.Solver.PositionIterations}
}

func (s Scenario) BodyMaterial() bench.Material {
	return bench.Material{Density: s.Material.Density, Friction: s.Material.Friction, Restitution: s.Material.Restitution}
}

// Validate reports the first invalid field as an ErrConfiguration.
func (s Scenario) Validate() error {
	if s.Bodies <= 0 {
		return fmt.Errorf("%w: body count must be positive, got %d", bench.ErrConfiguration, s.Bodies)
	}
	checks := []struct {
		name string
		v    float64
	}{
		{"radius", s.Radius},
		{"area_per_body", s.AreaPerBody},
		{"aspect_ratio", s.AspectRatio},
		{"pixels_per_meter", s.Screen.PixelsPerMeter},
	}
	for _, c := range checks {
		if !(c.v > 0) || math.IsInf(c.v, 0) {
			return fmt.Errorf("%w: %s must be positive, got %f", bench.ErrConfiguration, c.name, c.v)
		}
	}
	if s.Speed < 0 {
		return fmt.Errorf("%w: speed must not be negative, got %f", bench.ErrConfiguration, s.Speed)
	}
	if s.Screen.Width <= 0 || s.Screen.Height <= 0 {
		return fmt.Errorf("%w: screen must be positive, got %dx%d", bench.ErrConfiguration, s.Screen.Width, s.Screen.Height)
	}
	if s.Screen.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", bench.ErrConfiguration, s.Screen.FPS)
	}
	if s.Solver.VelocityIterations <= 0 || s.Solver.PositionIterations <= 0 {
		return fmt.Errorf("%w: solver iterations must be positive", bench.ErrConfiguration)
	}
	if s.Frames < 0 {
		return fmt.Errorf("%w: frame budget must not be negative, got %d", bench.ErrConfiguration, s.Frames)
	}
	return nil
}
