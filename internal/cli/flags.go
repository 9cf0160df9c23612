package cli

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/jmylchreest/clustercolour/internal/cluster"
)

var (
	_ pflag.Value = (*idListValue)(nil)
	_ pflag.Value = (*groupsValue)(nil)
	_ pflag.Value = (*alphaValue)(nil)
	_ pflag.Value = (*choiceValue)(nil)
)

// idListValue is a repeatable list of cluster ids such as "1,2,5-7".
type idListValue struct {
	ids *[]cluster.ID
}

func newIDListValue(p *[]cluster.ID) *idListValue {
	return &idListValue{ids: p}
}

func (v *idListValue) String() string {
	if v.ids == nil {
		return ""
	}
	return formatIDs(*v.ids)
}

func (v *idListValue) Set(s string) error {
	ids, err := parseIDs(s)
	if err != nil {
		return err
	}
	*v.ids = append(*v.ids, ids...)
	return nil
}

func (v *idListValue) Type() string { return "ids" }

func parseIDs(s string) ([]cluster.ID, error) {
	var out []cluster.ID
	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lo, hi, isRange := strings.Cut(part, "-")
		if !isRange {
			id, err := strconv.Atoi(part)
			if err != nil {
				return nil, fmt.Errorf("invalid cluster id %q", part)
			}
			out = append(out, cluster.ID(id))
			continue
		}
		from, err1 := strconv.Atoi(strings.TrimSpace(lo))
		to, err2 := strconv.Atoi(strings.TrimSpace(hi))
		if err1 != nil || err2 != nil || to < from {
			return nil, fmt.Errorf("invalid cluster id range %q", part)
		}
		for id := from; id <= to; id++ {
			out = append(out, cluster.ID(id))
		}
	}
	return out, nil
}

func formatIDs(ids []cluster.ID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(int(id))
	}
	return strings.Join(parts, ",")
}

// groupsValue collects channel groups given as "g=ids", one per flag.
type groupsValue struct {
	groups map[int][]cluster.ID
}

func newGroupsValue() *groupsValue {
	return &groupsValue{groups: make(map[int][]cluster.ID)}
}

func (v *groupsValue) String() string {
	parts := make([]string, 0, len(v.groups))
	for _, g := range slices.Sorted(maps.Keys(v.groups)) {
		parts = append(parts, fmt.Sprintf("%d=%s", g, formatIDs(v.groups[g])))
	}
	return strings.Join(parts, " ")
}

func (v *groupsValue) Set(s string) error {
	key, list, ok := strings.Cut(s, "=")
	if !ok {
		return fmt.Errorf("group must look like 0=1,3,5, got %q", s)
	}
	g, err := strconv.Atoi(strings.TrimSpace(key))
	if err != nil || g < 0 {
		return fmt.Errorf("invalid group id %q", key)
	}
	ids, err := parseIDs(list)
	if err != nil {
		return err
	}
	v.groups[g] = append(v.groups[g], ids...)
	return nil
}

func (v *groupsValue) Type() string { return "group" }

// alphaValue is an opacity in [0, 1].
type alphaValue struct {
	alpha *float64
}

func (v *alphaValue) String() string {
	return strconv.FormatFloat(*v.alpha, 'g', -1, 64)
}

func (v *alphaValue) Set(s string) error {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 || f > 1 {
		return fmt.Errorf("alpha must be a number in [0, 1], got %q", s)
	}
	*v.alpha = f
	return nil
}

func (v *alphaValue) Type() string { return "alpha" }

// choiceValue accepts one of a fixed set of strings.
type choiceValue struct {
	value   *string
	choices []string
}

func (v *choiceValue) String() string { return *v.value }

func (v *choiceValue) Set(s string) error {
	if !slices.Contains(v.choices, s) {
		return fmt.Errorf("must be one of %s", strings.Join(v.choices, ", "))
	}
	*v.value = s
	return nil
}

func (v *choiceValue) Type() string { return "string" }
