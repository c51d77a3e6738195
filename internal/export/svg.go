// Package export renders stored optimizer runs into standalone files.
package export

import (
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	DefaultStroke = "#00ccff"
	startColor    = "#ffcc00"
	endColor      = "#00ff88"
)

// PathSVG draws the polyline through the first two coordinates of points,
// marking the first point and the last. Points with fewer than two
// coordinates are skipped; fewer than two usable points yield "".
func PathSVG(points [][]float64, width, height int, strokeColor string) string {
	var path [][2]float64
	for _, p := range points {
		if len(p) >= 2 {
			path = append(path, [2]float64{p[0], p[1]})
		}
	}
	if len(path) < 2 {
		return ""
	}

	minX, maxX := path[0][0], path[0][0]
	minY, maxY := path[0][1], path[0][1]
	for _, p := range path {
		minX, maxX = min(minX, p[0]), max(maxX, p[0])
		minY, maxY = min(minY, p[1]), max(maxY, p[1])
	}

	// 10% padding on each side
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	project := func(p [2]float64) (float64, float64) {
		x := (p[0] - minX) / rangeX * float64(width)
		y := float64(height) - (p[1]-minY)/rangeY*float64(height)
		return x, y
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor)

	for i, p := range path {
		x, y := project(p)
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}
	sb.WriteString("\"/>\n")

	sx, sy := project(path[0])
	ex, ey := project(path[len(path)-1])
	fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"4\" fill=\"%s\"/>\n", sx, sy, startColor)
	fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"4\" fill=\"%s\"/>\n", ex, ey, endColor)
	sb.WriteString("</svg>")
	return sb.String()
}

// WritePathSVG writes PathSVG to path.
func WritePathSVG(path string, points [][]float64, width, height int) error {
	svg := PathSVG(points, width, height, DefaultStroke)
	if svg == "" {
		return fmt.Errorf("path needs at least two points with two coordinates, got %d points", len(points))
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	_, err = io.WriteString(file, svg)
	return err
}
