package commands

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Output formats of the info and chunks commands.
const (
	formatYAML = "yaml"
	formatText = "text"
)

// Config is the YAML config file.
type Config struct {
	// BitDepth is the default target of convert and decode.
	BitDepth string `yaml:"bit_depth"`
	// Container is the default container of convert: riff, rifx or rf64.
	Container string `yaml:"container"`
	// OutputFormat is yaml (default) or text.
	OutputFormat string `yaml:"output_format"`
	Verbose      bool   `yaml:"verbose"`
}

func loadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.UnmarshalWithOptions(data, &cfg, yaml.Strict()); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return cfg, nil
}

func (c Config) outputFormat() string {
	if c.OutputFormat == "" {
		return formatYAML
	}

	return c.OutputFormat
}
