package selector

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmylchreest/clustercolour/internal/palette"
)

// SessionKey is the key of the selector state inside a session file.
const SessionKey = "color_selector"

// State is the persisted configuration of a Selector.
type State struct {
	ColorField  string   `json:"color_field"`
	Colormap    Colormap `json:"colormap"`
	Categorical bool     `json:"categorical"`
}

// Colormap is a palette name or a raw palette.
type Colormap struct {
	Name    string
	Palette *palette.Palette
}

// Named refers to a palette of the store.
func Named(name string) Colormap {
	return Colormap{Name: name}
}

// Raw carries a palette directly, bypassing the store.
func Raw(p *palette.Palette) Colormap {
	return Colormap{Palette: p}
}

// IsRaw reports whether the colormap carries its own palette.
func (c Colormap) IsRaw() bool {
	return c.Palette != nil
}

func (c Colormap) String() string {
	if c.IsRaw() {
		return fmt.Sprintf("<raw %s palette, %d colours>", c.Palette.Kind, c.Palette.Len())
	}
	return c.Name
}

// MarshalJSON writes a name as a string and a raw palette as an object.
func (c Colormap) MarshalJSON() ([]byte, error) {
	if c.IsRaw() {
		return json.Marshal(c.Palette)
	}
	return json.Marshal(c.Name)
}

// UnmarshalJSON reads either form.
func (c *Colormap) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		*c = Named(name)
		return nil
	}
	var p palette.Palette
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("invalid raw colormap: %w", err)
	}
	*c = Raw(&p)
	return nil
}

// SaveSession writes the state under SessionKey in a JSON session file,
// keeping any other keys already present.
func SaveSession(path string, st State) error {
	doc, err := readSession(path)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to encode selector state: %w", err)
	}
	doc[SessionKey] = raw

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace session: %w", err)
	}
	return nil
}

// LoadSession reads the state stored under SessionKey. The boolean is false
// when the file or the key does not exist.
func LoadSession(path string) (State, bool, error) {
	doc, err := readSession(path)
	if err != nil {
		return State{}, false, err
	}
	raw, ok := doc[SessionKey]
	if !ok {
		return State{}, false, nil
	}
	var st State
	if err := json.Unmarshal(raw, &st); err != nil {
		return State{}, false, fmt.Errorf("invalid selector state in %s: %w", path, err)
	}
	return st, true, nil
}

func readSession(path string) (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(path) // #nosec G304 - session path supplied by the user
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string]json.RawMessage), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	doc := make(map[string]json.RawMessage)
	if len(bytes.TrimSpace(data)) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", path, err)
	}
	return doc, nil
}
