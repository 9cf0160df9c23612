package cli

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jmylchreest/clustercolour/internal/cluster"
)

func TestParseIDs(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    []cluster.ID
		wantErr bool
	}{
		{name: "list", in: "1,2,5", want: []cluster.ID{1, 2, 5}},
		{name: "range", in: "3-5,9", want: []cluster.ID{3, 4, 5, 9}},
		{name: "spaces", in: " 1 , 2 ", want: []cluster.ID{1, 2}},
		{name: "empty", in: "", want: nil},
		{name: "word", in: "one", wantErr: true},
		{name: "reversed range", in: "5-3", wantErr: true},
		{name: "negative", in: "-1", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseIDs(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseIDs(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("parseIDs(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestIDListValueAppends(t *testing.T) {
	var ids []cluster.ID
	v := newIDListValue(&ids)
	for _, s := range []string{"1,2", "7"} {
		if err := v.Set(s); err != nil {
			t.Fatal(err)
		}
	}
	if v.String() != "1,2,7" {
		t.Errorf("String() = %q", v.String())
	}
}

func TestGroupsValue(t *testing.T) {
	v := newGroupsValue()
	for _, s := range []string{"0=1,3,5", "1=7-9", "0=11"} {
		if err := v.Set(s); err != nil {
			t.Fatalf("Set(%q) error = %v", s, err)
		}
	}
	want := map[int][]cluster.ID{0: {1, 3, 5, 11}, 1: {7, 8, 9}}
	if diff := cmp.Diff(want, v.groups); diff != "" {
		t.Errorf("groups mismatch (-want +got):\n%s", diff)
	}
	if v.String() != "0=1,3,5,11 1=7,8,9" {
		t.Errorf("String() = %q", v.String())
	}

	for _, bad := range []string{"1,2", "x=1", "-1=2", "0=a"} {
		if err := v.Set(bad); err == nil {
			t.Errorf("Set(%q) expected error", bad)
		}
	}
}

func TestAlphaAndChoiceValues(t *testing.T) {
	alpha := 1.0
	av := &alphaValue{alpha: &alpha}
	if err := av.Set("0.25"); err != nil || alpha != .25 {
		t.Errorf("Set(0.25) = %v, alpha %v", err, alpha)
	}
	for _, bad := range []string{"1.5", "-0.1", "half"} {
		if err := av.Set(bad); err == nil {
			t.Errorf("alpha Set(%q) expected error", bad)
		}
	}

	format := formatHex
	cv := &choiceValue{value: &format, choices: []string{formatHex, formatJSON}}
	if err := cv.Set(formatJSON); err != nil || format != formatJSON {
		t.Errorf("Set(json) = %v, format %q", err, format)
	}
	if err := cv.Set("xml"); err == nil {
		t.Error("Set(xml) expected error")
	}
}
