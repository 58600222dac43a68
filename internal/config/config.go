package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ResultsDir    string     `yaml:"results_dir"`
	Dataset       string     `yaml:"dataset"`
	Scenarios     []Scenario `yaml:"scenarios"`
	Methods       []string   `yaml:"methods"`
	Avoidance     []string   `yaml:"avoidance"`
	Runs          int        `yaml:"runs"`
	StaticMethods []string   `yaml:"static_methods"`
	Files         Files      `yaml:"files"`
}

type Scenario struct {
	Name   string `yaml:"name"`
	Agents int    `yaml:"agents"`
}

// Files names the two artifacts expected inside every run directory.
type Files struct {
	Console string `yaml:"console"`
	Events  string `yaml:"events"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.ResultsDir == "" {
		return fmt.Errorf("results_dir is required")
	}
	if len(cfg.Scenarios) == 0 {
		return fmt.Errorf("no scenarios defined")
	}
	for i, s := range cfg.Scenarios {
		if s.Name == "" {
			return fmt.Errorf("scenario %d: name is required", i)
		}
		if s.Agents < 0 {
			return fmt.Errorf("scenario %q: agents must not be negative", s.Name)
		}
	}
	if len(cfg.Methods) == 0 {
		return fmt.Errorf("no methods defined")
	}
	for i, m := range cfg.Methods {
		if m == "" {
			return fmt.Errorf("method %d: name is required", i)
		}
	}
	if cfg.Runs < 1 {
		return fmt.Errorf("runs must be at least 1")
	}
	if cfg.Dataset == "" {
		cfg.Dataset = "metrics.csv"
	}
	if cfg.StaticMethods == nil {
		cfg.StaticMethods = []string{"static"}
	}
	if cfg.Files.Console == "" {
		cfg.Files.Console = "console.log"
	}
	if cfg.Files.Events == "" {
		cfg.Files.Events = "reallocation_log.csv"
	}
	return nil
}

// DatasetPath resolves the dataset file location. Relative names live
// next to the experiment results.
func (c *Config) DatasetPath() string {
	if filepath.IsAbs(c.Dataset) {
		return c.Dataset
	}
	return filepath.Join(c.ResultsDir, c.Dataset)
}

// IsStatic reports whether a method is declared to never reallocate.
func (c *Config) IsStatic(method string) bool {
	for _, m := range c.StaticMethods {
		if m == method {
			return true
		}
	}
	return false
}
