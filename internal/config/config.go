package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/dualdiff/internal/integrators"
	"github.com/san-kum/dualdiff/internal/optim"
)

const (
	DefaultProblem    = "expquad"
	DefaultMethod     = "dfp"
	DefaultIntegrator = "rk4"
	DefaultLogLevel   = "info"
)

type Config struct {
	Problem    string           `yaml:"problem"`
	Method     string           `yaml:"method"`
	Start      []float64        `yaml:"start,omitempty"`
	Tolerance  float64          `yaml:"tolerance"`
	MaxIter    int              `yaml:"max_iter"`
	Dt         float64          `yaml:"dt"`
	Integrator string           `yaml:"integrator"`
	LineSearch LineSearchConfig `yaml:"line_search"`
	Grid       []GridAxis       `yaml:"grid,omitempty"`
	LogLevel   string           `yaml:"log_level"`
}

type LineSearchConfig struct {
	Shrink float64 `yaml:"shrink"`
	Armijo float64 `yaml:"armijo"`
}

// GridAxis spans Steps evenly spaced starting coordinates from Min to Max.
type GridAxis struct {
	Min   float64 `yaml:"min"`
	Max   float64 `yaml:"max"`
	Steps int     `yaml:"steps"`
}

func DefaultConfig() *Config {
	return &Config{
		Problem:    DefaultProblem,
		Method:     DefaultMethod,
		Tolerance:  optim.DefaultTolerance,
		MaxIter:    optim.DefaultMaxIter,
		Dt:         optim.DefaultDt,
		Integrator: DefaultIntegrator,
		LineSearch: LineSearchConfig{
			Shrink: optim.DefaultShrink,
			Armijo: optim.DefaultArmijo,
		},
		LogLevel: DefaultLogLevel,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	switch c.Method {
	case "dfp", "flow":
	default:
		return fmt.Errorf("unknown method: %s", c.Method)
	}
	if _, err := integrators.New(c.Integrator); err != nil {
		return err
	}
	for i, axis := range c.Grid {
		if axis.Steps < 1 {
			return fmt.Errorf("grid axis %d: steps must be at least 1, got %d", i, axis.Steps)
		}
		if axis.Max < axis.Min {
			return fmt.Errorf("grid axis %d: max %g is below min %g", i, axis.Max, axis.Min)
		}
	}
	if len(c.Grid) > 0 && len(c.Start) > 0 && len(c.Grid) != len(c.Start) {
		return fmt.Errorf("grid has %d axes but start has %d coordinates", len(c.Grid), len(c.Start))
	}
	return nil
}

// SolverOptions converts the config into optimizer options. The logger is
// left for the caller to set.
func (c *Config) SolverOptions() (optim.Options, error) {
	opts := optim.DefaultOptions()
	opts.Tolerance = c.Tolerance
	opts.MaxIter = c.MaxIter
	opts.Dt = c.Dt
	opts.Shrink = c.LineSearch.Shrink
	opts.Armijo = c.LineSearch.Armijo

	stepper, err := integrators.New(c.Integrator)
	if err != nil {
		return opts, err
	}
	opts.Stepper = stepper
	return opts, nil
}

// NewSolver builds the configured optimizer.
func (c *Config) NewSolver(opts optim.Options) (optim.Solver, error) {
	switch c.Method {
	case "dfp":
		return optim.NewDFP(opts), nil
	case "flow":
		return optim.NewGradientFlow(opts), nil
	}
	return nil, fmt.Errorf("unknown method: %s", c.Method)
}

// GridAxes expands the grid into the start coordinates of each axis.
func (c *Config) GridAxes() [][]float64 {
	axes := make([][]float64, len(c.Grid))
	for i, axis := range c.Grid {
		if axis.Steps == 1 {
			axes[i] = []float64{axis.Min}
			continue
		}
		step := (axis.Max - axis.Min) / float64(axis.Steps-1)
		values := make([]float64, axis.Steps)
		for k := range values {
			values[k] = axis.Min + float64(k)*step
		}
		axes[i] = values
	}
	return axes
}
