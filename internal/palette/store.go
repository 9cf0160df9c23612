package palette

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/hashicorp/go-hclog"
	"github.com/ulikunitz/xz"
	"gopkg.in/yaml.v3"
)

//go:embed builtin.yaml
var builtinYAML []byte

// maxFileSize bounds decompressed palette files.
const maxFileSize = 16 * 1024 * 1024

// Store maps colormap names to palettes. It is read-only once built.
type Store struct {
	palettes map[string]*Palette
	logger   hclog.Logger
}

// NewStore creates an empty store.
func NewStore(logger hclog.Logger) *Store {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Store{palettes: make(map[string]*Palette), logger: logger}
}

var builtin = sync.OnceValue(func() *Store {
	s := NewStore(nil)
	if err := s.Load(bytes.NewReader(builtinYAML)); err != nil {
		panic(fmt.Sprintf("palette: invalid builtin palettes: %v", err))
	}
	return s
})

// Default returns a new store holding the builtin palettes.
func Default() *Store {
	return builtin().Clone()
}

// Clone returns a shallow copy; palettes are shared as they are never mutated.
func (s *Store) Clone() *Store {
	return &Store{palettes: maps.Clone(s.palettes), logger: s.logger}
}

// WithLogger returns the store with a different logger.
func (s *Store) WithLogger(logger hclog.Logger) *Store {
	c := s.Clone()
	if logger != nil {
		c.logger = logger
	}
	return c
}

// Register adds or replaces a named palette.
func (s *Store) Register(p *Palette) error {
	if p.Name == "" {
		return fmt.Errorf("cannot register an unnamed palette")
	}
	if err := p.Validate(); err != nil {
		return err
	}
	if _, ok := s.palettes[p.Name]; ok {
		s.logger.Debug("replacing palette", "name", p.Name)
	}
	s.palettes[p.Name] = p
	return nil
}

// Lookup resolves a colormap name.
func (s *Store) Lookup(name string) (*Palette, error) {
	p, ok := s.palettes[name]
	if !ok {
		return nil, &ConfigError{Name: name, Known: s.Names()}
	}
	return p, nil
}

// Names returns the sorted palette names.
func (s *Store) Names() []string {
	return slices.Sorted(maps.Keys(s.palettes))
}

// Load reads a palette collection in YAML or JSON. Group palettes may name a
// fallback defined in the same document or already in the store.
func (s *Store) Load(r io.Reader) error {
	var f file
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("failed to decode palettes: %w", err)
	}

	// Plain palettes first so group palettes can resolve their fallback.
	names := slices.Sorted(maps.Keys(f.Palettes))
	slices.SortStableFunc(names, func(a, b string) int {
		return groupOrder(f.Palettes[a]) - groupOrder(f.Palettes[b])
	})

	for _, name := range names {
		p, err := f.Palettes[name].palette(name, s.Lookup)
		if err != nil {
			return err
		}
		if err := s.Register(p); err != nil {
			return err
		}
		s.logger.Trace("loaded palette", "name", name, "kind", p.Kind, "colours", p.Len())
	}
	return nil
}

func groupOrder(d document) int {
	if d.Kind == KindGroup {
		return 1
	}
	return 0
}

// LoadFile reads a palette file; a trailing .xz extension is decompressed.
func (s *Store) LoadFile(path string) error {
	data, err := os.ReadFile(path) // #nosec G304 - palette path supplied by the user
	if err != nil {
		return fmt.Errorf("failed to read palette file: %w", err)
	}

	var r io.Reader = bytes.NewReader(data)
	if strings.EqualFold(filepath.Ext(path), ".xz") {
		xzr, err := xz.NewReader(r)
		if err != nil {
			return fmt.Errorf("failed to create xz reader: %w", err)
		}
		r = io.LimitReader(xzr, maxFileSize)
	}

	if err := s.Load(r); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	s.logger.Debug("loaded palette file", "path", path)
	return nil
}

// LoadPath loads a palette file, or every .yaml/.yml/.json (optionally .xz)
// file of a directory in name order.
func (s *Store) LoadPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat palette path: %w", err)
	}
	if !info.IsDir() {
		return s.LoadFile(path)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return fmt.Errorf("failed to read palette directory: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || !isPaletteFile(e.Name()) {
			continue
		}
		if err := s.LoadFile(filepath.Join(path, e.Name())); err != nil {
			return err
		}
	}
	return nil
}

func isPaletteFile(name string) bool {
	name = strings.TrimSuffix(strings.ToLower(name), ".xz")
	switch filepath.Ext(name) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}
