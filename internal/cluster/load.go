package cluster

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// idColumn is the header of the id column in cluster TSV files.
const idColumn = "cluster_id"

// LoadFile reads a metadata file. Tab-separated files (.tsv, .csv with tabs)
// use the cluster_<field>.tsv layout; .yaml, .yml and .json files map field
// names to {cluster id: value}.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path) // #nosec G304 - path supplied by the user on the command line
	if err != nil {
		return nil, fmt.Errorf("failed to open metadata file: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		t, err := ReadYAML(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return t, nil
	default:
		t, err := ReadTSV(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return t, nil
	}
}

// ReadTSV parses a tab-separated table whose first column is cluster_id and
// whose remaining columns are fields. Empty cells are Missing.
func ReadTSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty metadata table")
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) < 2 || strings.TrimSpace(header[0]) != idColumn {
		return nil, fmt.Errorf("metadata header must start with %q and name at least one field", idColumn)
	}

	t := NewTable()
	for _, field := range header[1:] {
		// Register the column even if every cell turns out to be empty.
		t.touch(strings.TrimSpace(field))
	}

	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		id, err := strconv.Atoi(strings.TrimSpace(rec[0]))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid cluster id %q", line, rec[0])
		}
		for i, field := range header[1:] {
			if i+1 >= len(rec) {
				break
			}
			t.Set(strings.TrimSpace(field), ID(id), ParseValue(strings.TrimSpace(rec[i+1])))
		}
	}
	return t, nil
}

// ReadYAML parses a document of the form {field: {cluster id: value}}.
func ReadYAML(r io.Reader) (*Table, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return NewTable(), nil
		}
		return nil, fmt.Errorf("failed to decode metadata: %w", err)
	}
	if len(doc.Content) == 0 {
		return NewTable(), nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("metadata document must be a mapping of fields")
	}

	t := NewTable()
	for i := 0; i+1 < len(root.Content); i += 2 {
		field := root.Content[i].Value
		col := root.Content[i+1]
		if col.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("field %q must map cluster ids to values", field)
		}
		t.touch(field)
		for j := 0; j+1 < len(col.Content); j += 2 {
			id, err := strconv.Atoi(col.Content[j].Value)
			if err != nil {
				return nil, fmt.Errorf("field %q: invalid cluster id %q", field, col.Content[j].Value)
			}
			t.Set(field, ID(id), nodeValue(col.Content[j+1]))
		}
	}
	return t, nil
}

// nodeValue keeps quoted scalars as labels and lets plain ones be numbers.
func nodeValue(n *yaml.Node) Value {
	if n.Kind != yaml.ScalarNode || n.Tag == "!!null" {
		return Missing()
	}
	if n.Tag == "!!str" {
		return Label(n.Value)
	}
	return ParseValue(n.Value)
}

func (t *Table) touch(field string) {
	if _, ok := t.fields[field]; !ok {
		t.fields[field] = make(map[ID]Value)
		t.order = append(t.order, field)
	}
}
