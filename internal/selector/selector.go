// Package selector assigns colours to clusters from a selectable attribute.
//
// A Selector owns a State: the field driving the colours, the colormap and
// whether the field is treated as categorical. The field is bound to its
// source (cluster id, metadata or metric) and the colormap to a concrete
// palette and variant whenever the state changes, so colour queries never
// dispatch by name.
//
// A Selector does no locking. Reads may run concurrently with each other but
// not with SetColorMapping, SetState or SetClusterIDs.
package selector

import (
	"fmt"
	"math"
	"slices"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/clustercolour/internal/cluster"
	"github.com/jmylchreest/clustercolour/internal/colormap"
	"github.com/jmylchreest/clustercolour/internal/colour"
	"github.com/jmylchreest/clustercolour/internal/palette"
)

// Defaults used by New.
const (
	DefaultField    = cluster.IdentityField
	DefaultColormap = palette.DefaultCategorical
	DefaultOpacity  = 1.0
)

// Config configures a Selector.
type Config struct {
	Metadata cluster.Metadata
	Metrics  cluster.Metrics
	Palettes *palette.Store
	Logger   hclog.Logger

	// ClusterIDs is the reference set of clusters. When set, ranks and value
	// ranges are computed over these clusters plus the queried ones.
	ClusterIDs []cluster.ID

	Field    string
	Colormap string

	// Alpha is the opacity of returned colours; nil selects DefaultOpacity.
	Alpha *float64
}

// Selector maps clusters to colours.
type Selector struct {
	meta     cluster.Metadata
	metrics  cluster.Metrics
	store    *palette.Store
	logger   hclog.Logger
	universe []cluster.ID
	alpha    float64

	state   State
	palette *palette.Palette
	source  resolver
	cmap    colormap.Map
}

// New creates a Selector. It fails only if the colormap is unknown.
func New(cfg Config) (*Selector, error) {
	s := &Selector{
		meta:     cfg.Metadata,
		metrics:  cfg.Metrics,
		store:    cfg.Palettes,
		logger:   cfg.Logger,
		universe: slices.Clone(cfg.ClusterIDs),
		alpha:    DefaultOpacity,
	}
	if s.store == nil {
		s.store = palette.Default()
	}
	if s.logger == nil {
		s.logger = hclog.NewNullLogger()
	}
	if cfg.Alpha != nil {
		s.alpha = clamp01(*cfg.Alpha)
	}

	field := cfg.Field
	if field == "" {
		field = DefaultField
	}
	name := cfg.Colormap
	if name == "" {
		name = DefaultColormap
	}
	if err := s.setMapping(field, Named(name)); err != nil {
		return nil, err
	}
	return s, nil
}

// SetColorMapping selects the field and colormap. An empty argument keeps
// the current value. Categorical mode follows the palette kind, and is also
// forced for fields no source knows since they have no values to scale. An
// unknown field is not an error; an unknown colormap is, and leaves the
// state unchanged.
func (s *Selector) SetColorMapping(field, colormapName string) error {
	if field == "" {
		field = s.state.ColorField
	}
	cm := s.state.Colormap
	if colormapName != "" {
		cm = Named(colormapName)
	}
	return s.setMapping(field, cm)
}

func (s *Selector) setMapping(field string, cm Colormap) error {
	p, err := s.resolvePalette(cm)
	if err != nil {
		return err
	}
	src := s.bind(field)
	st := State{
		ColorField:  field,
		Colormap:    cm,
		Categorical: p.Categorical() || src.kind == sourceUnknown,
	}
	s.apply(st, p, src)
	return nil
}

// State returns a snapshot of the current state.
func (s *Selector) State() State {
	return s.state
}

// SetState replaces the whole state. A raw colormap is used as is; a named
// one is resolved through the store and, if unknown, leaves the state
// unchanged.
func (s *Selector) SetState(st State) error {
	p, err := s.resolvePalette(st.Colormap)
	if err != nil {
		return err
	}
	s.apply(st, p, s.bind(st.ColorField))
	return nil
}

func (s *Selector) bind(field string) resolver {
	src := newResolver(field, s.meta, s.metrics)
	if src.kind == sourceUnknown {
		s.logger.Warn("field is not a cluster label or metric, colouring as missing", "field", field)
	}
	return src
}

func (s *Selector) resolvePalette(cm Colormap) (*palette.Palette, error) {
	if cm.IsRaw() {
		if err := cm.Palette.Validate(); err != nil {
			return nil, fmt.Errorf("invalid raw colormap: %w", err)
		}
		return cm.Palette, nil
	}
	p, err := s.store.Lookup(cm.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to set colormap: %w", err)
	}
	return p, nil
}

func (s *Selector) apply(st State, p *palette.Palette, src resolver) {
	var group *palette.Palette
	if g, err := s.store.Lookup(palette.GroupName); err == nil {
		group = g
	}
	s.state = st
	s.palette = p
	s.source = src
	s.cmap = colormap.Select(st.ColorField, p, st.Categorical, group)
	s.logger.Debug("colour mapping set",
		"field", st.ColorField,
		"source", src.kind,
		"colormap", st.Colormap.String(),
		"variant", s.cmap.Kind(),
	)
}

// Palette returns the resolved palette of the current state.
func (s *Selector) Palette() *palette.Palette {
	return s.palette
}

// SetClusterIDs sets the reference set of clusters.
func (s *Selector) SetClusterIDs(ids []cluster.ID) {
	s.universe = slices.Clone(ids)
}

// ClusterIDs returns the reference set of clusters.
func (s *Selector) ClusterIDs() []cluster.ID {
	return slices.Clone(s.universe)
}

// Values returns the raw values of the current field.
func (s *Selector) Values(ids []cluster.ID) []cluster.Value {
	return s.source.resolveAll(ids)
}

// GetColors returns one colour per id, in order.
func (s *Selector) GetColors(ids []cluster.ID) []colour.RGBA {
	batch := ids
	if len(s.universe) > 0 {
		batch = slices.Concat(s.universe, ids)
	}
	rgb := s.cmap.Colours(s.source.resolveAll(batch))
	rgb = rgb[len(batch)-len(ids):]

	out := make([]colour.RGBA, len(ids))
	for i, c := range rgb {
		out[i] = c.Clamped().WithAlpha(s.alpha)
	}
	return out
}

// Get returns the colour of a single cluster.
func (s *Selector) Get(id cluster.ID) colour.RGBA {
	return s.GetColors([]cluster.ID{id})[0]
}

// GetWithAlpha returns the colour of a single cluster with the given opacity.
func (s *Selector) GetWithAlpha(id cluster.ID, alpha float64) colour.RGBA {
	c := s.Get(id)
	c.A = clamp01(alpha)
	return c
}

// GetSelectedColors returns the colours of ids with the selected clusters
// highlighted.
func (s *Selector) GetSelectedColors(ids, selected []cluster.ID) []colour.RGBA {
	// GetColors returns one colour per id, so the lengths always match.
	out, _ := Highlight(ids, selected, s.GetColors(ids))
	return out
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}
