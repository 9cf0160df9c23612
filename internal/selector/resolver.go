package selector

import (
	"slices"

	"github.com/jmylchreest/clustercolour/internal/cluster"
)

// source is where a field's values come from, fixed when the field is set.
type source int

const (
	sourceUnknown source = iota
	sourceIdentity
	sourceMetadata
	sourceMetric
)

func (s source) String() string {
	switch s {
	case sourceIdentity:
		return "identity"
	case sourceMetadata:
		return "metadata"
	case sourceMetric:
		return "metric"
	default:
		return "unknown"
	}
}

// resolver returns the raw value of one field for any cluster.
type resolver struct {
	kind   source
	field  string
	meta   cluster.Metadata
	metric cluster.MetricFunc
}

// newResolver binds field to the first source that knows it: the cluster id,
// then metadata, then metrics. Unknown fields resolve every cluster to Missing.
func newResolver(field string, meta cluster.Metadata, metrics cluster.Metrics) resolver {
	r := resolver{field: field}
	switch {
	case field == cluster.IdentityField:
		r.kind = sourceIdentity
	case meta != nil && slices.Contains(meta.Fields(), field):
		r.kind, r.meta = sourceMetadata, meta
	case metrics[field] != nil:
		r.kind, r.metric = sourceMetric, metrics[field]
	}
	return r
}

func (r resolver) resolve(id cluster.ID) cluster.Value {
	switch r.kind {
	case sourceIdentity:
		return cluster.Number(float64(id))
	case sourceMetadata:
		return r.meta.Lookup(r.field, id)
	case sourceMetric:
		return cluster.Number(r.metric(id))
	default:
		return cluster.Missing()
	}
}

func (r resolver) resolveAll(ids []cluster.ID) []cluster.Value {
	out := make([]cluster.Value, len(ids))
	for i, id := range ids {
		out[i] = r.resolve(id)
	}
	return out
}
