package viz

import (
	"math"

	"github.com/guptarohit/asciigraph"
)

const (
	PlotHeight = 10
	PlotWidth  = 80
)

type PlotOption func(*plotConfig)

type plotConfig struct {
	log10  bool
	height int
	width  int
}

// Log10 plots log10 of each value. Non-positive values are clamped to the
// smallest positive value in the series.
func Log10() PlotOption {
	return func(c *plotConfig) { c.log10 = true }
}

func Size(width, height int) PlotOption {
	return func(c *plotConfig) {
		c.width = width
		c.height = height
	}
}

// PlotTrace draws values as an ascii line chart. It returns an empty string
// for an empty series.
func PlotTrace(values []float64, caption string, opts ...PlotOption) string {
	if len(values) == 0 {
		return ""
	}
	cfg := plotConfig{height: PlotHeight, width: PlotWidth}
	for _, opt := range opts {
		opt(&cfg)
	}

	data := values
	if cfg.log10 {
		data = logScale(values)
	}
	return asciigraph.Plot(data,
		asciigraph.Height(cfg.height),
		asciigraph.Width(cfg.width),
		asciigraph.Caption(caption))
}

func logScale(values []float64) []float64 {
	floor := math.Inf(1)
	for _, v := range values {
		if v > 0 && v < floor {
			floor = v
		}
	}
	if math.IsInf(floor, 1) {
		floor = 1
	}

	out := make([]float64, len(values))
	for i, v := range values {
		if !(v > 0) {
			v = floor
		}
		out[i] = math.Log10(v)
	}
	return out
}
