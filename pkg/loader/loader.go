// Package loader parses structured configuration text into the core Value
// model. Each format gets its own Loader; ForPath selects one by file name.
package loader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"

	"github.com/conformhq/conform/pkg/core"
)

// Loader parses one configuration format into a Value tree.
type Loader interface {
	// Load parses data and returns the root Value.
	Load(data []byte) (core.Value, error)
}

// DefaultLoaders returns the standard set of loaders keyed by extension.
func DefaultLoaders() map[string]Loader {
	return map[string]Loader{
		".json": &JSONLoader{},
		".yaml": &YAMLLoader{},
		".yml":  &YAMLLoader{},
		".toml": &TOMLLoader{},
		".cfg":  &INILoader{},
		".ini":  &INILoader{},
	}
}

// iniBasenames are extensionless or oddly named files that are INI-shaped.
var iniBasenames = map[string]bool{
	".flake8":          true,
	".bumpversion.cfg": true,
	"setup.cfg":        true,
	"tox.ini":          true,
}

// ForPath selects a loader for the given file path by extension, with a
// basename override for dotfiles like .flake8.
func ForPath(path string) (Loader, error) {
	base := filepath.Base(path)
	if iniBasenames[base] {
		return &INILoader{}, nil
	}
	if l, ok := DefaultLoaders()[strings.ToLower(filepath.Ext(base))]; ok {
		return l, nil
	}
	return nil, fmt.Errorf("no loader for %q", path)
}

// --- JSON ---

// JSONLoader parses JSON documents. Numbers decode via json.Number so large
// integers survive without float64 precision loss.
type JSONLoader struct{}

func (l *JSONLoader) Load(data []byte) (core.Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return core.Value{}, fmt.Errorf("invalid json: %w", err)
	}
	return core.FromAny(raw)
}

// --- YAML ---

// YAMLLoader parses a single YAML document.
type YAMLLoader struct{}

func (l *YAMLLoader) Load(data []byte) (core.Value, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return core.Value{}, fmt.Errorf("invalid yaml: %w", err)
	}
	return core.FromAny(raw)
}

// --- TOML ---

// TOMLLoader parses TOML documents.
type TOMLLoader struct{}

func (l *TOMLLoader) Load(data []byte) (core.Value, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return core.Value{}, fmt.Errorf("invalid toml: %w", err)
	}
	return core.FromAny(raw)
}

// --- INI ---

// INILoader parses INI-shaped files (.flake8, setup.cfg, .bumpversion.cfg).
// Sections become nested mappings and every value stays a string scalar,
// configparser-style; keys of the default section sit at the top level.
type INILoader struct{}

func (l *INILoader) Load(data []byte) (core.Value, error) {
	f, err := ini.Load(data)
	if err != nil {
		return core.Value{}, fmt.Errorf("invalid ini: %w", err)
	}

	fields := map[string]core.Value{}
	for _, sec := range f.Sections() {
		section := map[string]core.Value{}
		for k, v := range sec.KeysHash() {
			section[k] = core.String(v)
		}
		if sec.Name() == ini.DefaultSection {
			for k, v := range section {
				fields[k] = v
			}
			continue
		}
		if len(section) > 0 || len(sec.ChildSections()) == 0 {
			fields[sec.Name()] = core.Map(section)
		}
	}
	return core.Map(fields), nil
}
