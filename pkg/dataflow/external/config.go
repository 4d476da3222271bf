// Package external provides the leaf ends of a graph: fixed values, files
// on disk and the configuration documents describing them.
package external

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is a configuration document loaded from disk.
type Config map[string]any

// LoadConfig reads a YAML or JSON document into a config map. The format
// follows the file extension.
func LoadConfig(path string) (Config, error) {
	var out Config
	if err := decodeFile(path, &out); err != nil {
		return nil, err
	}

	return out, nil
}

// GetString returns a string entry of the document.
func (c Config) GetString(key string) (string, bool) {
	v, ok := c[key].(string)

	return v, ok
}

// GetSection returns a nested document.
func (c Config) GetSection(key string) (Config, bool) {
	v, ok := c[key].(map[string]any)
	if !ok {
		return nil, false
	}

	return Config(v), true
}

func decodeFile(path string, into any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "unable to read %s", path)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(raw, into); err != nil {
			return errors.Wrapf(err, "unable to decode %s", path)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, into); err != nil {
			return errors.Wrapf(err, "unable to decode %s", path)
		}
	default:
		return errors.Errorf("unsupported config format %q", ext)
	}

	return nil
}
