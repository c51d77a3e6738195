// Package viz renders optimizer output for the terminal: lipgloss-styled
// reports, asciigraph plots of objective decay, and a braille canvas that
// draws the path of a two-dimensional run.
package viz
