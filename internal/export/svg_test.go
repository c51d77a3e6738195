package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPathSVG(t *testing.T) {
	points := [][]float64{{0, 0}, {1, 1}, {2, 0}}
	svg := PathSVG(points, 120, 100, "#ffffff")

	if !strings.HasPrefix(svg, "<?xml") {
		t.Errorf("expected xml header, got %q", svg[:20])
	}
	if !strings.Contains(svg, `stroke="#ffffff"`) {
		t.Error("expected stroke color in svg")
	}
	// x range [0,2] padded to [-0.2,2.2]; first point maps to 0.2/2.4*120 = 10
	if !strings.Contains(svg, `d="M10.0,`) {
		t.Errorf("expected path to start at x=10.0:\n%s", svg)
	}
	if got := strings.Count(svg, " L"); got != 2 {
		t.Errorf("expected 2 line segments, got %d", got)
	}
	if got := strings.Count(svg, "<circle"); got != 2 {
		t.Errorf("expected start and end markers, got %d", got)
	}
	if !strings.HasSuffix(svg, "</svg>") {
		t.Error("expected closing svg tag")
	}
}

func TestPathSVGTooShort(t *testing.T) {
	if PathSVG([][]float64{{1, 2}}, 10, 10, DefaultStroke) != "" {
		t.Error("expected empty svg for a single point")
	}
	if PathSVG([][]float64{{1}, {2}}, 10, 10, DefaultStroke) != "" {
		t.Error("expected empty svg for one-dimensional points")
	}
}

func TestWritePathSVG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "path.svg")
	if err := WritePathSVG(path, [][]float64{{0, 0}, {1, 2}}, 200, 200); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), DefaultStroke) {
		t.Error("expected default stroke in written svg")
	}

	if err := WritePathSVG(path, nil, 200, 200); err == nil {
		t.Error("expected error for empty path")
	}
}
