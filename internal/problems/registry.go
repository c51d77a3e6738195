package problems

import (
	"fmt"
	"sort"
)

type Registry struct {
	objectives map[string]func() *Objective
	systems    map[string]func() *System
}

func NewRegistry() *Registry {
	r := &Registry{
		objectives: make(map[string]func() *Objective),
		systems:    make(map[string]func() *System),
	}

	r.objectives["expquad"] = NewExpQuad
	r.objectives["rosenbrock"] = NewRosenbrock
	r.objectives["himmelblau"] = NewHimmelblau
	r.objectives["booth"] = NewBooth
	r.objectives["sphere"] = func() *Objective { return NewSphere(3) }
	r.objectives["logistic-loss"] = NewLogisticLoss

	r.systems["polar"] = NewPolar
	r.systems["spherical"] = NewSpherical
	r.systems["logistic-layer"] = NewLogisticLayer
	r.systems["hyperbolic"] = NewHyperbolic

	return r
}

func (r *Registry) GetObjective(name string) (*Objective, error) {
	constructor, ok := r.objectives[name]
	if !ok {
		return nil, fmt.Errorf("unknown objective: %s", name)
	}
	return constructor(), nil
}

func (r *Registry) GetSystem(name string) (*System, error) {
	constructor, ok := r.systems[name]
	if !ok {
		return nil, fmt.Errorf("unknown system: %s", name)
	}
	return constructor(), nil
}

func (r *Registry) ListObjectives() []string {
	return sortedKeys(r.objectives)
}

func (r *Registry) ListSystems() []string {
	return sortedKeys(r.systems)
}

func sortedKeys[T any](m map[string]T) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
