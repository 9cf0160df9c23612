// Package layout renders probe diagrams with channel groups highlighted.
package layout

import (
	"bytes"
	"embed"
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"text/template"

	"github.com/jmylchreest/clustercolour/internal/cluster"
	"github.com/jmylchreest/clustercolour/internal/colour"
	"github.com/jmylchreest/clustercolour/internal/selector"
)

//go:embed *.tmpl
var templates embed.FS

var probeTemplate = template.Must(template.New("probe.svg.tmpl").
	Funcs(template.FuncMap{"num": formatNumber}).
	ParseFS(templates, "probe.svg.tmpl"))

// Options control the rendered diagram.
type Options struct {
	// Width of the image in pixels; the height follows the aspect ratio.
	Width float64
	// Radius of a channel marker in position units. Zero picks 40% of the
	// smallest channel spacing.
	Radius float64
	// Idle fills channels that belong to no group.
	Idle colour.RGB
	// IdleOpacity and GroupOpacity are the fill opacities.
	IdleOpacity  float64
	GroupOpacity float64
}

// DefaultOptions returns the options used by Render.
func DefaultOptions() Options {
	return Options{
		Width:        120,
		Idle:         colour.Neutral,
		IdleOpacity:  0.3,
		GroupOpacity: 1,
	}
}

type channel struct {
	ID      cluster.ID
	X, Y    float64
	Fill    string
	Opacity float64
	Group   int
	Grouped bool
}

type diagram struct {
	Width, Height         float64
	MinX, MinY            float64
	ViewWidth, ViewHeight float64
	Radius                float64
	Stroke                string
	StrokeWidth           float64
	Channels              []channel
}

// Render draws every channel as a circle. Channels in group g are filled with
// the g-th highlight colour; when groups overlap the higher group id wins.
func Render(positions map[cluster.ID][2]float64, groups map[int][]cluster.ID) (string, error) {
	return DefaultOptions().Render(positions, groups)
}

// Render draws the diagram with these options.
func (o Options) Render(positions map[cluster.ID][2]float64, groups map[int][]cluster.ID) (string, error) {
	ids := slices.Sorted(maps.Keys(positions))
	points := make([][2]float64, len(ids))
	for i, id := range ids {
		p := positions[id]
		if !finite(p[0]) || !finite(p[1]) {
			return "", fmt.Errorf("channel %d has a non-finite position %v", id, p)
		}
		points[i] = p
	}

	membership := make(map[cluster.ID]int)
	for _, g := range slices.Sorted(maps.Keys(groups)) {
		for _, id := range groups[g] {
			if _, ok := positions[id]; !ok {
				return "", fmt.Errorf("group %d: channel %d has no position", g, id)
			}
			membership[id] = g
		}
	}

	r := o.Radius
	if r <= 0 {
		r = 0.4 * minDistance(points)
		if r == 0 {
			r = 1
		}
	}

	d := diagram{
		Radius:      r,
		Stroke:      "black",
		StrokeWidth: r / 5,
		Channels:    make([]channel, len(ids)),
	}
	minX, maxX, minY, maxY := math.Inf(1), math.Inf(-1), math.Inf(1), math.Inf(-1)
	for i, id := range ids {
		// SVG y grows downwards.
		x, y := points[i][0], -points[i][1]
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)

		c := channel{ID: id, X: x, Y: y, Fill: o.Idle.Hex(), Opacity: o.IdleOpacity}
		if g, ok := membership[id]; ok {
			c.Fill = selector.SelectedColour(g).Hex()
			c.Opacity = o.GroupOpacity
			c.Group, c.Grouped = g, true
		}
		d.Channels[i] = c
	}
	if len(ids) == 0 {
		minX, maxX, minY, maxY = 0, 0, 0, 0
	}

	margin := 2 * r
	d.MinX, d.MinY = minX-margin, minY-margin
	d.ViewWidth, d.ViewHeight = maxX-minX+2*margin, maxY-minY+2*margin
	d.Width = o.Width
	if d.Width <= 0 {
		d.Width = DefaultOptions().Width
	}
	d.Height = d.Width * d.ViewHeight / d.ViewWidth

	var buf bytes.Buffer
	if err := probeTemplate.Execute(&buf, d); err != nil {
		return "", fmt.Errorf("failed to render layout: %w", err)
	}
	return buf.String(), nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64)
}
