package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds user defaults for the chart explorer, loaded from a YAML
// file. Zero values fall back to the built-in defaults.
type Config struct {
	StartYear int               `yaml:"start_year"`
	EndYear   int               `yaml:"end_year"`
	Metrics   []string          `yaml:"metrics"`
	Styles    map[string]string `yaml:"styles"`
}

// DefaultConfigPath is ~/.schooltrends.yaml, falling back to the working
// directory when the home directory cannot be resolved.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".schooltrends.yaml"
	}
	return filepath.Join(home, ".schooltrends.yaml")
}

func DefaultConfig() Config {
	return Config{}
}

// LoadConfig reads the YAML config at path. A missing file is not an
// error, it just yields the defaults.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return DefaultConfig(), fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Apply overlays the configured defaults onto a selection. Unknown metric
// or style names are ignored rather than rejected.
func (c Config) Apply(s *Selection) {
	if c.StartYear != 0 {
		s.SetStartYear(c.StartYear)
	}
	if c.EndYear != 0 {
		s.SetEndYear(c.EndYear)
	}

	if len(c.Metrics) > 0 {
		var metrics []MetricID
		for _, name := range c.Metrics {
			id := MetricID(name)
			if _, ok := MetricByID(id); !ok {
				continue
			}
			seen := false
			for _, existing := range metrics {
				if existing == id {
					seen = true
					break
				}
			}
			if !seen {
				metrics = append(metrics, id)
			}
		}
		if len(metrics) > 0 {
			s.Metrics = metrics
		}
	}

	for name, style := range c.Styles {
		id := MetricID(name)
		if _, ok := MetricByID(id); !ok {
			continue
		}
		switch ChartStyle(style) {
		case StyleLine, StyleBar, StyleArea:
			s.Styles[id] = ChartStyle(style)
		}
	}
}
