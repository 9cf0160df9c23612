package version

import (
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name   string
		commit string
		date   string
		want   string
	}{
		{
			name:   "release",
			commit: "0123456789abcdef",
			date:   "2026-01-02T03:04:05Z",
			want:   "clustercolour version 1.2.0 (commit: 01234567, built: 2026-01-02T03:04:05Z, go1.25.1, linux/amd64)",
		},
		{
			name:   "dirty tree",
			commit: "0123456789abcdef-dirty",
			date:   unknown,
			want:   "clustercolour version 1.2.0 (commit: 01234567-dirty, go1.25.1, linux/amd64)",
		},
		{
			name:   "no stamp",
			commit: unknown,
			date:   unknown,
			want:   "clustercolour version 1.2.0 (go1.25.1, linux/amd64)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := format("1.2.0", tt.commit, tt.date, "go1.25.1", "linux/amd64"); got != tt.want {
				t.Errorf("format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestString(t *testing.T) {
	if got := String(); !strings.HasPrefix(got, "clustercolour version "+Version+" (") {
		t.Errorf("String() = %q", got)
	}
	if Short() != Version {
		t.Errorf("Short() = %q, want %q", Short(), Version)
	}
}
