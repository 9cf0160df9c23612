// Package palette holds the named continuous gradients, discrete palettes and
// fixed label tables the colour selector draws from.
package palette

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/jmylchreest/clustercolour/internal/colour"
)

// Kind is the way a palette is indexed.
type Kind string

const (
	// KindContinuous palettes are gradients sampled by a fraction in [0, 1].
	KindContinuous Kind = "continuous"
	// KindCategorical palettes are indexed by rank, wrapping around.
	KindCategorical Kind = "categorical"
	// KindGroup palettes map known labels to fixed colours.
	KindGroup Kind = "group"
)

// Reserved palette names.
const (
	// GroupName is the fixed mapping for the manual sorting labels.
	GroupName = "cluster_group"
	// DefaultCategorical is the palette used when no colormap is given.
	DefaultCategorical = "categorical"
)

// ErrUnknownPalette is matched by every *ConfigError.
var ErrUnknownPalette = errors.New("unknown colormap")

// ConfigError reports a colormap name that does not resolve to a palette.
type ConfigError struct {
	Name  string
	Known []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("unknown colormap %q (available: %s)", e.Name, strings.Join(e.Known, ", "))
}

// Is reports whether target is ErrUnknownPalette.
func (e *ConfigError) Is(target error) bool {
	return target == ErrUnknownPalette
}

// Palette is an ordered list of colours, or a label table for KindGroup.
type Palette struct {
	Name        string
	Kind        Kind
	Colours     []colour.RGB
	Interpolate bool

	// Group palettes only.
	Labels   map[string]colour.RGB
	Missing  colour.RGB
	Fallback []colour.RGB
}

// Len returns the number of colours in the palette.
func (p *Palette) Len() int {
	return len(p.Colours)
}

// Categorical reports whether the palette is indexed by rank.
func (p *Palette) Categorical() bool {
	return p.Kind != KindContinuous
}

// Validate checks the palette can produce a colour for every input.
func (p *Palette) Validate() error {
	switch p.Kind {
	case KindContinuous, KindCategorical:
		if len(p.Colours) == 0 {
			return fmt.Errorf("palette %q has no colours", p.Name)
		}
	case KindGroup:
		if len(p.Fallback) == 0 {
			return fmt.Errorf("group palette %q needs fallback colours", p.Name)
		}
	default:
		return fmt.Errorf("palette %q has unknown kind %q", p.Name, p.Kind)
	}
	return nil
}

// Anonymous returns a copy of the palette without a name, suitable for
// passing around as a raw palette.
func (p *Palette) Anonymous() *Palette {
	c := *p
	c.Name = ""
	c.Colours = slices.Clone(p.Colours)
	c.Fallback = slices.Clone(p.Fallback)
	c.Labels = maps.Clone(p.Labels)
	return &c
}

// Continuous builds an unnamed gradient.
func Continuous(colours ...colour.RGB) *Palette {
	return &Palette{Kind: KindContinuous, Colours: colours}
}

// Categorical builds an unnamed discrete palette.
func Categorical(colours ...colour.RGB) *Palette {
	return &Palette{Kind: KindCategorical, Colours: colours}
}

// MarshalJSON writes the palette with exact float components.
func (p *Palette) MarshalJSON() ([]byte, error) {
	return json.Marshal(toDocument(p))
}

// UnmarshalJSON reads a palette document. A group palette's fallback must be
// given as colours since no store is available to resolve a name.
func (p *Palette) UnmarshalJSON(data []byte) error {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	parsed, err := doc.palette("", nil)
	if err != nil {
		return err
	}
	*p = *parsed
	return nil
}
