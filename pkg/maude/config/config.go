package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/maude/pkg/maude/internalerr"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config is the full analysis configuration.
type Config struct {
	Manufacturers []Manufacturer  `yaml:"manufacturers"`
	ProductCodes  []string        `yaml:"product_codes"`
	Causes        []CauseCategory `yaml:"causes"`
	RootCause     RootCause       `yaml:"root_cause"`
	Matching      Matching        `yaml:"matching"`
	Extraction    Extraction      `yaml:"extraction"`
	Sentiment     Sentiment       `yaml:"sentiment"`
}

// Manufacturer is one catalog entry. Instruments are in preference order.
type Manufacturer struct {
	Name        string   `yaml:"name"`
	Instruments []string `yaml:"instruments"`
}

// CauseCategory is a named list of cause keywords and phrases.
type CauseCategory struct {
	Category string   `yaml:"category"`
	Keywords []string `yaml:"keywords"`
}

// RootCause holds the two phrase tiers, each in priority order.
type RootCause struct {
	Unknown []string `yaml:"unknown"`
	Known   []string `yaml:"known"`
}

// Matching configures instrument matching.
type Matching struct {
	Threshold float64 `yaml:"threshold"`
}

// Extraction configures cause extraction.
type Extraction struct {
	Window           int      `yaml:"window"`
	MaxPhraseTokens  int      `yaml:"max_phrase_tokens"`
	InjuryExclusions []string `yaml:"injury_exclusions"`
	DeathExclusions  []string `yaml:"death_exclusions"`
}

// Sentiment configures the polarity scorer.
type Sentiment struct {
	// Lexicon is a YAML lexicon path; empty selects the built-in lexicon.
	// Relative paths are resolved against the config file's directory.
	Lexicon string `yaml:"lexicon"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg, err := parse(defaultsYAML, &Config{})
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load reads a YAML config file. Keys present in the file replace the
// corresponding defaults; absent keys keep them.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a YAML document over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	return parse(data, Default())
}

func parse(data []byte, base *Config) (*Config, error) {
	if err := yaml.Unmarshal(data, base); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := base.Validate(); err != nil {
		return nil, err
	}
	return base, nil
}

// Validate checks the configuration invariants.
func (c *Config) Validate() error {
	if len(c.Manufacturers) == 0 {
		return fmt.Errorf("%w: no manufacturers", internalerr.ErrInvalidConfig)
	}
	for i, m := range c.Manufacturers {
		if strings.TrimSpace(m.Name) == "" {
			return fmt.Errorf("%w: manufacturer %d has no name", internalerr.ErrInvalidConfig, i)
		}
		if len(m.Instruments) == 0 {
			return fmt.Errorf("%w: manufacturer %q has no instruments", internalerr.ErrInvalidConfig, m.Name)
		}
	}
	if len(c.ProductCodes) == 0 {
		return fmt.Errorf("%w: no product codes", internalerr.ErrInvalidConfig)
	}
	for i, cat := range c.Causes {
		if strings.TrimSpace(cat.Category) == "" {
			return fmt.Errorf("%w: cause category %d has no name", internalerr.ErrInvalidConfig, i)
		}
	}
	if c.Matching.Threshold <= 0 || c.Matching.Threshold > 1 {
		return fmt.Errorf("%w: matching threshold %v outside (0, 1]", internalerr.ErrInvalidConfig, c.Matching.Threshold)
	}
	if c.Extraction.Window < 0 {
		return fmt.Errorf("%w: negative extraction window", internalerr.ErrInvalidConfig)
	}
	if c.Extraction.MaxPhraseTokens < 0 {
		return fmt.Errorf("%w: negative max_phrase_tokens", internalerr.ErrInvalidConfig)
	}
	return nil
}

// Marshal encodes the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
