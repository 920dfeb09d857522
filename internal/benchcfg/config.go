// Package benchcfg loads the scenario files of the poolbench command.
// Files ending in .toml are read as TOML, everything else as YAML.
package benchcfg

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/utkarsh5026/parpool/pool"
	"gopkg.in/yaml.v3"
)

// Scenario categories, one per for-each entry point.
const (
	CategoryIndex   = "index"
	CategoryStrided = "strided"
	CategorySlice   = "slice"
	CategoryList    = "list"
	CategoryInput   = "input"
)

var categories = []string{CategoryIndex, CategoryStrided, CategorySlice, CategoryList, CategoryInput}

// Scenario is one for-each benchmark.
type Scenario struct {
	Name     string `yaml:"name" toml:"name"`
	Category string `yaml:"category" toml:"category"`
	Size     int    `yaml:"size" toml:"size"`

	// Start and Step apply to strided scenarios only.
	Start int `yaml:"start,omitempty" toml:"start,omitempty"`
	Step  int `yaml:"step,omitempty" toml:"step,omitempty"`

	ChunkingFactor float64 `yaml:"chunking_factor,omitempty" toml:"chunking_factor,omitempty"`

	// Work is the number of hash rounds per element.
	Work int `yaml:"work" toml:"work"`
}

// Config is the content of a scenario file.
type Config struct {
	Threads   string     `yaml:"threads" toml:"threads"`
	Repeat    int        `yaml:"repeat" toml:"repeat"`
	Scenarios []Scenario `yaml:"scenarios" toml:"scenarios"`
}

// Default returns the scenarios used when no file is given.
func Default() Config {
	return Config{
		Threads: "auto",
		Repeat:  3,
		Scenarios: []Scenario{
			{Name: "small-index", Category: CategoryIndex, Size: 1_000, Work: 200},
			{Name: "large-index", Category: CategoryIndex, Size: 200_000, Work: 20},
			{Name: "strided", Category: CategoryStrided, Size: 100_000, Start: 1, Step: 3, Work: 20},
			{Name: "slice", Category: CategorySlice, Size: 100_000, Work: 20},
			{Name: "coarse-chunks", Category: CategoryIndex, Size: 100_000, ChunkingFactor: 1, Work: 20},
			{Name: "list", Category: CategoryList, Size: 20_000, Work: 50},
			{Name: "input", Category: CategoryInput, Size: 2_000, Work: 500},
		},
	}
}

// Load reads the scenario file at path. A missing file yields Default.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if isTOML(path) {
		err = toml.Unmarshal(data, &cfg)
	} else {
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Default(), fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Repeat <= 0 {
		cfg.Repeat = 1
	}
	if cfg.Threads == "" {
		cfg.Threads = "auto"
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Save writes cfg to path, creating parent directories as needed.
func Save(path string, cfg Config) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	var buf bytes.Buffer
	if isTOML(path) {
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
	} else {
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate reports the first invalid scenario.
func (c Config) Validate() error {
	if _, err := ThreadOption(c.Threads); err != nil {
		return err
	}
	if len(c.Scenarios) == 0 {
		return errors.New("config has no scenarios")
	}

	seen := make(map[string]bool, len(c.Scenarios))
	for i, s := range c.Scenarios {
		name := s.Name
		if name == "" {
			name = "#" + strconv.Itoa(i)
		} else if seen[name] {
			return fmt.Errorf("scenario %s: duplicate name", name)
		}
		seen[name] = true

		switch {
		case !validCategory(s.Category):
			return fmt.Errorf("scenario %s: unknown category %q (want one of %s)",
				name, s.Category, strings.Join(categories, ", "))
		case s.Size < 0:
			return fmt.Errorf("scenario %s: size must not be negative", name)
		case s.Category == CategoryStrided && s.Step <= 0:
			return fmt.Errorf("scenario %s: %w", name, pool.ErrInvalidStep)
		case s.Work < 0:
			return fmt.Errorf("scenario %s: work must not be negative", name)
		}
	}
	return nil
}

// ThreadOption turns a thread setting into a pool option. It accepts
// "auto", "nice", "none" or a non-negative worker count.
func ThreadOption(s string) (pool.Option, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto", "default":
		return pool.WithThreadSetting(pool.DefaultThreads), nil
	case "nice":
		return pool.WithThreadSetting(pool.NiceThreads), nil
	case "none", "serial":
		return pool.WithThreadSetting(pool.NoThreads), nil
	}

	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return nil, fmt.Errorf("invalid thread setting %q: want auto, nice, none or a worker count", s)
	}
	return pool.WithWorkerCount(n), nil
}

func validCategory(c string) bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}
