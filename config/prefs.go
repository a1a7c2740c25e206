// Package config persists the compass preferences.
package config

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

const (
	CategoryName = "HudCompass"
	FileName     = CategoryName + ".yaml"
)

var ErrInvalidPreferences = errors.New("config: invalid preferences")

// Preferences are the user-tunable compass settings. Keys match the
// persisted file.
type Preferences struct {
	// CompassPositionX is the x position of the compass relative to the HUD.
	CompassPositionX float64 `yaml:"CompassPositionX"`
	// CompassPositionY is the y position of the compass relative to the HUD.
	CompassPositionY float64 `yaml:"CompassPositionY"`
	// CompassScale is the size of the compass relative to its default size.
	CompassScale float64 `yaml:"CompassScale"`
	// InvertCompassRotation makes the needle rotate the opposite way.
	InvertCompassRotation bool `yaml:"InvertCompassRotation"`
}

func Defaults() Preferences {
	return Preferences{
		CompassPositionX:      0,
		CompassPositionY:      -986,
		CompassScale:          1,
		InvertCompassRotation: false,
	}
}

// Preferences lets a plain value act as a preference source.
func (p Preferences) Preferences() Preferences {
	return p
}

// DefaultPath returns <user config dir>/hudcompass/HudCompass.yaml, falling
// back to the working directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return FileName
	}
	return filepath.Join(dir, "hudcompass", FileName)
}

// Load reads preferences from path. A missing file is created with defaults;
// keys absent from an existing file keep their defaults.
func Load(path string) (Preferences, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		p := Defaults()
		if err := Save(path, p); err != nil {
			return p, err
		}
		return p, nil
	}
	if err != nil {
		return Defaults(), fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(raw)
}

// Reload re-reads path for a running session. An unreadable or invalid file
// leaves current in effect.
func Reload(path string, current Preferences) (Preferences, error) {
	p, err := Load(path)
	if err != nil {
		return current, err
	}
	return p, nil
}

// Parse validates and decodes a preferences document.
func Parse(raw []byte) (Preferences, error) {
	if err := validate(raw); err != nil {
		return Defaults(), err
	}
	p := Defaults()
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return Defaults(), fmt.Errorf("config: unmarshal: %w", err)
	}
	return p, nil
}

// Save writes p to path, creating parent directories.
func Save(path string, p Preferences) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: create dir: %w", err)
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

//go:embed preferences.schema.json
var schemaSource string

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func validate(raw []byte) error {
	schemaOnce.Do(func() {
		schema, schemaErr = jsonschema.CompileString("https://hudcompass.local/schemas/preferences.schema.json", schemaSource)
	})
	if schemaErr != nil {
		return fmt.Errorf("config: compile schema: %w", schemaErr)
	}

	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPreferences, err)
	}
	if doc == nil {
		// empty file: every key keeps its default
		return nil
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPreferences, err)
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPreferences, err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPreferences, err)
	}
	return nil
}
