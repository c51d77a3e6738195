package config

import "sort"

var Presets = map[string]map[string]*Config{
	"expquad": {
		"origin": {
			Problem: "expquad", Method: "dfp", Start: []float64{0, 0},
		},
		"far": {
			Problem: "expquad", Method: "dfp", Start: []float64{10, -10},
		},
		"flow": {
			Problem: "expquad", Method: "flow", Integrator: "rk4", Dt: 0.05,
			Start: []float64{1, 1}, MaxIter: 5000,
		},
		"adaptive-flow": {
			Problem: "expquad", Method: "flow", Integrator: "rk45", Dt: 1,
			Start: []float64{1, 1},
		},
	},
	"rosenbrock": {
		"classic": {
			Problem: "rosenbrock", Method: "dfp", Start: []float64{-1.2, 1}, MaxIter: 500,
		},
		"gentle-search": {
			Problem: "rosenbrock", Method: "dfp", Start: []float64{-1.2, 1}, MaxIter: 500,
			LineSearch: LineSearchConfig{Shrink: 0.8, Armijo: 1e-4},
		},
	},
	"himmelblau": {
		"all-minima": {
			Problem: "himmelblau", Method: "dfp",
			Grid: []GridAxis{{Min: -4, Max: 4, Steps: 3}, {Min: -4, Max: 4, Steps: 3}},
		},
		"euler-flow": {
			Problem: "himmelblau", Method: "flow", Integrator: "euler", Dt: 0.01,
			Start: []float64{0, 0}, MaxIter: 5000,
		},
	},
	"logistic-loss": {
		"fit": {
			Problem: "logistic-loss", Method: "dfp", Start: []float64{0, 0},
		},
	},
}

// GetPreset returns the named preset laid over the default config, or nil.
func GetPreset(problem, preset string) *Config {
	problemPresets, ok := Presets[problem]
	if !ok {
		return nil
	}
	p, ok := problemPresets[preset]
	if !ok {
		return nil
	}
	return p.overlay(DefaultConfig())
}

func ListPresets(problem string) []string {
	problemPresets, ok := Presets[problem]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(problemPresets))
	for name := range problemPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// overlay copies the non-zero fields of c onto base.
func (c *Config) overlay(base *Config) *Config {
	if c.Problem != "" {
		base.Problem = c.Problem
	}
	if c.Method != "" {
		base.Method = c.Method
	}
	if c.Start != nil {
		base.Start = append([]float64(nil), c.Start...)
	}
	if c.Tolerance != 0 {
		base.Tolerance = c.Tolerance
	}
	if c.MaxIter != 0 {
		base.MaxIter = c.MaxIter
	}
	if c.Dt != 0 {
		base.Dt = c.Dt
	}
	if c.Integrator != "" {
		base.Integrator = c.Integrator
	}
	if c.LineSearch.Shrink != 0 {
		base.LineSearch.Shrink = c.LineSearch.Shrink
	}
	if c.LineSearch.Armijo != 0 {
		base.LineSearch.Armijo = c.LineSearch.Armijo
	}
	if c.Grid != nil {
		base.Grid = append([]GridAxis(nil), c.Grid...)
	}
	if c.LogLevel != "" {
		base.LogLevel = c.LogLevel
	}
	return base
}
