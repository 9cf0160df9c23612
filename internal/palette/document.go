package palette

import (
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/clustercolour/internal/colour"
)

// file is the on-disk layout of a palette collection.
type file struct {
	Palettes map[string]document `yaml:"palettes" json:"palettes"`
}

// document is the serialised form of a single palette.
type document struct {
	Name            string                `yaml:"name,omitempty" json:"name,omitempty"`
	Kind            Kind                  `yaml:"kind" json:"kind"`
	Colours         []colourSpec          `yaml:"colours,omitempty" json:"colours,omitempty"`
	Interpolate     bool                  `yaml:"interpolate,omitempty" json:"interpolate,omitempty"`
	Labels          map[string]colourSpec `yaml:"labels,omitempty" json:"labels,omitempty"`
	Missing         *colourSpec           `yaml:"missing,omitempty" json:"missing,omitempty"`
	Fallback        string                `yaml:"fallback,omitempty" json:"fallback,omitempty"`
	FallbackColours []colourSpec          `yaml:"fallback_colours,omitempty" json:"fallback_colours,omitempty"`
}

// palette converts the document; resolve looks up fallback names.
func (d document) palette(name string, resolve func(string) (*Palette, error)) (*Palette, error) {
	if name == "" {
		name = d.Name
	}
	kind := d.Kind
	if kind == "" {
		kind = KindCategorical
	}
	p := &Palette{
		Name:        name,
		Kind:        kind,
		Colours:     specsToRGB(d.Colours),
		Interpolate: d.Interpolate,
	}

	if kind == KindGroup {
		p.Missing = colour.Neutral
		if d.Missing != nil {
			p.Missing = colour.RGB(*d.Missing)
		}
		if len(d.Labels) > 0 {
			p.Labels = make(map[string]colour.RGB, len(d.Labels))
			for label, c := range d.Labels {
				p.Labels[label] = colour.RGB(c)
			}
		}
		switch {
		case len(d.FallbackColours) > 0:
			p.Fallback = specsToRGB(d.FallbackColours)
		case d.Fallback != "" && resolve != nil:
			fb, err := resolve(d.Fallback)
			if err != nil {
				return nil, fmt.Errorf("palette %q: fallback: %w", name, err)
			}
			if fb.Kind == KindGroup {
				return nil, fmt.Errorf("palette %q: fallback %q is itself a group palette", name, d.Fallback)
			}
			p.Fallback = fb.Colours
		case d.Fallback != "":
			return nil, fmt.Errorf("palette %q: fallback %q cannot be resolved here, give fallback_colours", name, d.Fallback)
		}
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func toDocument(p *Palette) document {
	d := document{
		Name:        p.Name,
		Kind:        p.Kind,
		Colours:     rgbToSpecs(p.Colours),
		Interpolate: p.Interpolate,
	}
	if p.Kind == KindGroup {
		m := colourSpec(p.Missing)
		d.Missing = &m
		if len(p.Labels) > 0 {
			d.Labels = make(map[string]colourSpec, len(p.Labels))
			for label, c := range p.Labels {
				d.Labels[label] = colourSpec(c)
			}
		}
		d.FallbackColours = rgbToSpecs(p.Fallback)
	}
	return d
}

func specsToRGB(specs []colourSpec) []colour.RGB {
	if len(specs) == 0 {
		return nil
	}
	out := make([]colour.RGB, len(specs))
	for i, s := range specs {
		out[i] = colour.RGB(s)
	}
	return out
}

func rgbToSpecs(colours []colour.RGB) []colourSpec {
	if len(colours) == 0 {
		return nil
	}
	out := make([]colourSpec, len(colours))
	for i, c := range colours {
		out[i] = colourSpec(c)
	}
	return out
}

// colourSpec is a colour written as "#rrggbb", an SVG colour name, or a
// [r, g, b] triple of floats in [0, 1].
type colourSpec colour.RGB

func parseColourName(s string) (colour.RGB, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		return colour.ParseHex(s)
	}
	named, ok := colornames.Map[strings.ToLower(s)]
	if !ok {
		return colour.RGB{}, fmt.Errorf("unknown colour %q", s)
	}
	return colour.FromColor(named), nil
}

func tripleToRGB(v []float64) (colour.RGB, error) {
	if len(v) != 3 {
		return colour.RGB{}, &colour.ShapeError{What: "colour", Got: len(v), Want: 3}
	}
	c := colour.RGB{R: v[0], G: v[1], B: v[2]}
	if c != c.Clamped() {
		return colour.RGB{}, fmt.Errorf("colour %v has components outside [0, 1]", v)
	}
	return c, nil
}

// MarshalJSON writes the exact float triple.
func (c colourSpec) MarshalJSON() ([]byte, error) {
	return json.Marshal([]float64{c.R, c.G, c.B})
}

// UnmarshalJSON accepts a string or a triple.
func (c *colourSpec) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		rgb, err := parseColourName(s)
		if err != nil {
			return err
		}
		*c = colourSpec(rgb)
		return nil
	}
	var v []float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("colour must be a string or [r, g, b]: %w", err)
	}
	rgb, err := tripleToRGB(v)
	if err != nil {
		return err
	}
	*c = colourSpec(rgb)
	return nil
}

// UnmarshalYAML accepts a scalar string or a sequence triple.
func (c *colourSpec) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		rgb, err := parseColourName(n.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", n.Line, err)
		}
		*c = colourSpec(rgb)
		return nil
	case yaml.SequenceNode:
		var v []float64
		if err := n.Decode(&v); err != nil {
			return fmt.Errorf("line %d: %w", n.Line, err)
		}
		rgb, err := tripleToRGB(v)
		if err != nil {
			return fmt.Errorf("line %d: %w", n.Line, err)
		}
		*c = colourSpec(rgb)
		return nil
	default:
		return fmt.Errorf("line %d: colour must be a string or [r, g, b]", n.Line)
	}
}
