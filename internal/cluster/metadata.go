package cluster

import (
	"maps"
	"slices"
)

// IdentityField is the field whose value is the cluster id itself.
const IdentityField = "cluster"

// GroupField holds the manual sorting label ("noise", "mua", "good").
const GroupField = "group"

// Metadata provides per-cluster labels.
type Metadata interface {
	// Fields returns the names of the fields this provider knows.
	Fields() []string
	// Lookup returns the value of field for a cluster, or Missing.
	Lookup(field string, id ID) Value
}

// MetricFunc computes a numeric metric for a cluster.
type MetricFunc func(id ID) float64

// Metrics maps metric names to their functions.
type Metrics map[string]MetricFunc

// Names returns the sorted metric names.
func (m Metrics) Names() []string {
	return slices.Sorted(maps.Keys(m))
}

// Merge returns a new Metrics holding m and other; other wins on conflicts.
func (m Metrics) Merge(other Metrics) Metrics {
	out := make(Metrics, len(m)+len(other))
	maps.Copy(out, m)
	maps.Copy(out, other)
	return out
}

// Table is an in-memory Metadata keyed by field then cluster.
type Table struct {
	fields map[string]map[ID]Value
	order  []string
}

// NewTable creates an empty Table.
func NewTable() *Table {
	return &Table{fields: make(map[string]map[ID]Value)}
}

// Set stores a value; setting Missing removes the entry.
func (t *Table) Set(field string, id ID, v Value) {
	col, ok := t.fields[field]
	if !ok {
		col = make(map[ID]Value)
		t.fields[field] = col
		t.order = append(t.order, field)
	}
	if v.IsMissing() {
		delete(col, id)
		return
	}
	col[id] = v
}

// SetColumn stores several values of one field.
func (t *Table) SetColumn(field string, values map[ID]any) {
	for id, v := range values {
		t.Set(field, id, ValueOf(v))
	}
}

// Merge copies every field of other into t.
func (t *Table) Merge(other *Table) {
	for _, field := range other.order {
		t.touch(field)
		for id, v := range other.fields[field] {
			t.Set(field, id, v)
		}
	}
}

// Fields returns the field names in insertion order.
func (t *Table) Fields() []string {
	return slices.Clone(t.order)
}

// Lookup returns the value of field for a cluster, or Missing.
func (t *Table) Lookup(field string, id ID) Value {
	return t.fields[field][id]
}

// IDs returns the sorted ids that have at least one value.
func (t *Table) IDs() []ID {
	seen := make(map[ID]struct{})
	for _, col := range t.fields {
		for id := range col {
			seen[id] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(seen))
}

// MetadataFunc adapts a lookup function and a fixed field list to Metadata.
type MetadataFunc struct {
	FieldNames []string
	Get        func(field string, id ID) any
}

// Fields returns FieldNames.
func (m MetadataFunc) Fields() []string { return m.FieldNames }

// Lookup calls Get and converts its result.
func (m MetadataFunc) Lookup(field string, id ID) Value {
	if m.Get == nil {
		return Missing()
	}
	return ValueOf(m.Get(field, id))
}
