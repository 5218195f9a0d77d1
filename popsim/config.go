package popsim

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Config describes one synthesis scenario.  The coefficient tables can
// be overridden to run sensitivity experiments without touching the
// simulation code.
type Config struct {
	N        int            `yaml:"n"`
	Seeds    Seeds          `yaml:"seeds"`
	Exposure *LogisticModel `yaml:"exposure"`
	Outcome  *HazardModel   `yaml:"outcome"`
}

// DefaultConfig returns the standard scenario: one million individuals
// and the default coefficient tables.
func DefaultConfig() *Config {
	return &Config{
		N:        1000000,
		Seeds:    Seeds{Sample: 1, Exposure: 2, Outcome: 3},
		Exposure: DefaultExposureModel(),
		Outcome:  DefaultOutcomeModel(),
	}
}

// LoadConfig reads a YAML scenario.  Fields not present keep their
// default values.
func LoadConfig(r io.Reader) (*Config, error) {

	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	conf := DefaultConfig()
	if err := yaml.Unmarshal(b, conf); err != nil {
		return nil, fmt.Errorf("popsim: parsing config: %w", err)
	}

	if conf.N <= 0 {
		return nil, fmt.Errorf("popsim: config has population size %d", conf.N)
	}

	return conf, nil
}
