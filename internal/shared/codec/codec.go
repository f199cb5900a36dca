// Package codec decodes manifest and option files and encodes stream frames.
//
// The file format is chosen by extension:
//   - .yaml, .yml: goccy/go-yaml
//   - .toml: pelletier/go-toml/v2
//   - .json: bytedance/sonic
package codec

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// Extensions lists the file extensions Decode understands.
var Extensions = []string{"yaml", "yml", "toml", "json"}

// Supported reports whether the file name has a decodable extension.
func Supported(name string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Decode unmarshals data into v using the format implied by name.
func Decode(name string, data []byte, v interface{}) error {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, v); err != nil {
			return fmt.Errorf("failed to parse YAML %s: %w", name, err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, v); err != nil {
			return fmt.Errorf("failed to parse TOML %s: %w", name, err)
		}
	case ".json":
		if err := sonic.Unmarshal(data, v); err != nil {
			return fmt.Errorf("failed to parse JSON %s: %w", name, err)
		}
	default:
		return fmt.Errorf("unsupported file format: %s", name)
	}
	return nil
}

// Marshal encodes v as JSON.
func Marshal(v interface{}) ([]byte, error) {
	return sonic.Marshal(v)
}

// Unmarshal decodes JSON data into v.
func Unmarshal(data []byte, v interface{}) error {
	return sonic.Unmarshal(data, v)
}
