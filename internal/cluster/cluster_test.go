package cluster

import (
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestValueOf(t *testing.T) {
	var nilPtr *int
	three := 3
	tests := []struct {
		name string
		in   any
		want Value
	}{
		{name: "nil", in: nil, want: Missing()},
		{name: "nil pointer", in: nilPtr, want: Missing()},
		{name: "pointer", in: &three, want: Number(3)},
		{name: "int", in: 10, want: Number(10)},
		{name: "uint8", in: uint8(7), want: Number(7)},
		{name: "float", in: .25, want: Number(.25)},
		{name: "NaN", in: math.NaN(), want: Missing()},
		{name: "string", in: "mua", want: Label("mua")},
		{name: "empty string", in: "", want: Missing()},
		{name: "bool", in: true, want: Number(1)},
		{name: "id", in: ID(4), want: Number(4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValueOf(tt.in); got != tt.want {
				t.Errorf("ValueOf(%v) = %v (%s), want %v (%s)", tt.in, got, got.Kind(), tt.want, tt.want.Kind())
			}
		})
	}
}

func TestValueIndex(t *testing.T) {
	tests := []struct {
		v      Value
		want   int
		wantOK bool
	}{
		{v: Number(0), want: 0, wantOK: true},
		{v: Number(12), want: 12, wantOK: true},
		{v: Number(-1)},
		{v: Number(1.5)},
		{v: Label("3")},
		{v: Missing()},
	}
	for _, tt := range tests {
		got, ok := tt.v.Index()
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("%v.Index() = %d, %v; want %d, %v", tt.v, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestTable(t *testing.T) {
	tab := NewTable()
	tab.SetColumn("group", map[ID]any{1: nil, 2: "mua", 3: "good"})
	tab.Set("depth", 2, Number(120))

	if got := tab.Fields(); !slices.Equal(got, []string{"group", "depth"}) {
		t.Errorf("Fields() = %v", got)
	}
	if v := tab.Lookup("group", 1); !v.IsMissing() {
		t.Errorf("Lookup(group, 1) = %v, want missing", v)
	}
	if v := tab.Lookup("group", 2); v != Label("mua") {
		t.Errorf("Lookup(group, 2) = %v", v)
	}
	if v := tab.Lookup("nope", 2); !v.IsMissing() {
		t.Errorf("Lookup(nope, 2) = %v, want missing", v)
	}
	if got := tab.IDs(); !slices.Equal(got, []ID{2, 3}) {
		t.Errorf("IDs() = %v", got)
	}

	other := NewTable()
	other.Set("group", 2, Label("noise"))
	tab.Merge(other)
	if v := tab.Lookup("group", 2); v != Label("noise") {
		t.Errorf("after Merge Lookup(group, 2) = %v", v)
	}
}

func TestMetrics(t *testing.T) {
	m := Metrics{"quality": func(id ID) float64 { return float64(id) * .1 }}
	merged := m.Merge(Metrics{"amplitude": func(ID) float64 { return 1 }})
	if got := merged.Names(); !slices.Equal(got, []string{"amplitude", "quality"}) {
		t.Errorf("Names() = %v", got)
	}
	if len(m) != 1 {
		t.Errorf("Merge modified receiver")
	}
}

func TestReadTSV(t *testing.T) {
	in := "cluster_id\tgroup\tAmplitude\n0\tgood\t12.5\n1\t\t3\n4\tnoise\t\n"
	tab, err := ReadTSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadTSV() error = %v", err)
	}
	if got := tab.Fields(); !slices.Equal(got, []string{"group", "Amplitude"}) {
		t.Errorf("Fields() = %v", got)
	}
	checks := []struct {
		field string
		id    ID
		want  Value
	}{
		{"group", 0, Label("good")},
		{"group", 1, Missing()},
		{"group", 4, Label("noise")},
		{"Amplitude", 0, Number(12.5)},
		{"Amplitude", 4, Missing()},
	}
	for _, c := range checks {
		if got := tab.Lookup(c.field, c.id); got != c.want {
			t.Errorf("Lookup(%s, %d) = %v, want %v", c.field, c.id, got, c.want)
		}
	}
}

func TestReadTSVErrors(t *testing.T) {
	for _, in := range []string{"", "id\tgroup\n", "cluster_id\n", "cluster_id\tgroup\nx\tgood\n"} {
		if _, err := ReadTSV(strings.NewReader(in)); err == nil {
			t.Errorf("ReadTSV(%q) expected error", in)
		}
	}
}

func TestLoadFileYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "meta.yaml")
	doc := "group:\n  1: null\n  2: mua\n  3: good\nlabel:\n  1: 10\n  2: \"20\"\n"
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	tab, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if v := tab.Lookup("group", 1); !v.IsMissing() {
		t.Errorf("group/1 = %v, want missing", v)
	}
	if v := tab.Lookup("label", 1); v != Number(10) {
		t.Errorf("label/1 = %v, want 10", v)
	}
	if v := tab.Lookup("label", 2); v != Label("20") {
		t.Errorf("label/2 = %v, want label 20", v)
	}
}

func TestLoadFileJSONAndTSV(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "meta.json")
	if err := os.WriteFile(jsonPath, []byte(`{"quality": {"1": 0.5, "2": 0.75}}`), 0o600); err != nil {
		t.Fatal(err)
	}
	tsvPath := filepath.Join(dir, "cluster_group.tsv")
	if err := os.WriteFile(tsvPath, []byte("cluster_id\tgroup\n2\tmua\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	tab, err := LoadFile(jsonPath)
	if err != nil {
		t.Fatalf("LoadFile(json) error = %v", err)
	}
	if v := tab.Lookup("quality", 2); v != Number(.75) {
		t.Errorf("quality/2 = %v", v)
	}

	tab2, err := LoadFile(tsvPath)
	if err != nil {
		t.Fatalf("LoadFile(tsv) error = %v", err)
	}
	if v := tab2.Lookup("group", 2); v != Label("mua") {
		t.Errorf("group/2 = %v", v)
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.tsv")); err == nil {
		t.Error("LoadFile() on a missing file expected error")
	}
}

func TestMetadataFunc(t *testing.T) {
	m := MetadataFunc{
		FieldNames: []string{"group"},
		Get: func(_ string, id ID) any {
			return map[ID]any{1: nil, 2: "mua", 3: "good"}[id]
		},
	}
	if v := m.Lookup("group", 1); !v.IsMissing() {
		t.Errorf("Lookup(1) = %v", v)
	}
	if v := m.Lookup("group", 3); v != Label("good") {
		t.Errorf("Lookup(3) = %v", v)
	}
}
