package viz

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestVector(t *testing.T) {
	got := Vector([]float64{1, 0.5, -0.4383784163099828})
	want := "[1, 0.5, -0.438378]"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestMatrix(t *testing.T) {
	got := Matrix([]float64{1, 2, 30, 4}, 2, 2)
	want := "│  1   2 │\n│ 30   4 │\n"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestKeyValue(t *testing.T) {
	got := KeyValue("value", 2.5)
	if !strings.Contains(got, "value") || !strings.Contains(got, "2.5") {
		t.Errorf("expected key and value in %q", got)
	}
}

func TestSparkline(t *testing.T) {
	values := []float64{7, 6, 5, 4, 3, 2, 1, 0}

	got := Sparkline(values, 4)
	if !strings.Contains(got, "█") {
		t.Errorf("expected a full block for the maximum in %q", got)
	}

	empty := Sparkline(nil, 5)
	if utf8.RuneCountInString(empty) != 5 {
		t.Errorf("expected 5 runes for an empty sparkline, got %q", empty)
	}
}

func TestPlotTrace(t *testing.T) {
	if PlotTrace(nil, "empty") != "" {
		t.Error("expected empty plot for no values")
	}

	out := PlotTrace([]float64{4, 2, 1, 0.5}, "objective", Size(20, 5))
	if !strings.Contains(out, "objective") {
		t.Errorf("expected caption in plot:\n%s", out)
	}
}

func TestLogScale(t *testing.T) {
	got := logScale([]float64{100, 0, 1, -3})
	want := []float64{2, 0, 0, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: expected %g, got %g", i, want[i], got[i])
		}
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(2, 1)
	c.DrawLine(0, 0, 3, 3)

	if c.Grid[0][0] != 0x2811 {
		t.Errorf("expected %U, got %U", rune(0x2811), c.Grid[0][0])
	}
	if c.Grid[0][1] != 0x2884 {
		t.Errorf("expected %U, got %U", rune(0x2884), c.Grid[0][1])
	}
}

func TestCanvasIgnoresOutOfBounds(t *testing.T) {
	c := NewCanvas(1, 1)
	c.Set(-1, 0)
	c.Set(2, 0)
	c.Set(0, 4)

	if c.Grid[0][0] != brailleBlank {
		t.Errorf("expected blank cell, got %U", c.Grid[0][0])
	}
}

func TestPlotPath(t *testing.T) {
	got := PlotPath([][]float64{{0, 0}, {1, 1}}, 2, 1)
	want := string([]rune{0x2860, 0x280A}) + "\n"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestPlotPathSkipsShortPoints(t *testing.T) {
	got := PlotPath([][]float64{{1}}, 3, 2)
	blank := strings.Repeat(string(rune(brailleBlank)), 3) + "\n"
	if got != blank+blank {
		t.Errorf("expected blank canvas, got %q", got)
	}
}
