package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	pkgconfig "github.com/goran-ethernal/ChainFirehose/pkg/config"
	"gopkg.in/yaml.v3"
)

type decodeFunc func(data []byte, cfg *pkgconfig.Config) error

var decoders = map[string]decodeFunc{
	"YAML": func(data []byte, cfg *pkgconfig.Config) error { return yaml.Unmarshal(data, cfg) },
	"JSON": func(data []byte, cfg *pkgconfig.Config) error { return json.Unmarshal(data, cfg) },
	"TOML": func(data []byte, cfg *pkgconfig.Config) error { return toml.Unmarshal(data, cfg) },
}

// LoadFromFile loads configuration from a file, picking the format from the extension.
// Supported formats: .yaml, .yml, .json, .toml
func LoadFromFile(path string) (*pkgconfig.Config, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return load(path, "YAML")
	case ".json":
		return load(path, "JSON")
	case ".toml":
		return load(path, "TOML")
	default:
		return nil, fmt.Errorf("unsupported config file format: %s (supported: .yaml, .yml, .json, .toml)", ext)
	}
}

// LoadFromYAML loads configuration from a YAML file.
func LoadFromYAML(path string) (*pkgconfig.Config, error) {
	return load(path, "YAML")
}

// LoadFromJSON loads configuration from a JSON file.
func LoadFromJSON(path string) (*pkgconfig.Config, error) {
	return load(path, "JSON")
}

// LoadFromTOML loads configuration from a TOML file.
func LoadFromTOML(path string) (*pkgconfig.Config, error) {
	return load(path, "TOML")
}

// load reads path, expands ${VAR} references so node URLs can carry API keys from the
// environment, then decodes, defaults and validates the result.
func load(path, format string) (*pkgconfig.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg pkgconfig.Config
	if err := decoders[format]([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s config: %w", format, err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
