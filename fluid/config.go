package fluid

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// BoundsMode selects how query points are checked against sampled bounds.
type BoundsMode string

const (
	// BoundsPerFluid rejects points outside the fluid's envelope across all
	// properties with ErrOutOfRange.
	BoundsPerFluid BoundsMode = "fluid"
	// BoundsPerProperty checks each property against its own grid box. Out of
	// box properties report NotAvailable; the query fails with ErrOutOfRange
	// only when no requested property's box contains the point.
	BoundsPerProperty BoundsMode = "property"
	// BoundsNone skips range validation; out of box properties report
	// NotAvailable.
	BoundsNone BoundsMode = "none"
)

// ValidBoundsModes is the set of recognized bounds modes. Empty means the default.
var ValidBoundsModes = map[BoundsMode]bool{"": true, BoundsPerFluid: true, BoundsPerProperty: true, BoundsNone: true}

// Config is the engine configuration, loadable from YAML.
type Config struct {
	Properties     []string          `yaml:"properties"`
	SourcePriority []string          `yaml:"source_priority"`
	Synonyms       map[string]string `yaml:"synonyms"`
	Bounds         BoundsMode        `yaml:"bounds"`
	WarmWorkers    int               `yaml:"warm_workers"`
}

// DefaultConfig returns the configuration matching the ingestion pipeline's
// defaults: all canonical properties, coolprop > thermopack > pykingas,
// per-fluid bounds.
func DefaultConfig() Config {
	synonyms := make(map[string]string, len(DefaultSynonyms))
	for k, v := range DefaultSynonyms {
		synonyms[k] = v
	}
	return Config{
		Properties:     append([]string(nil), DefaultProperties...),
		SourcePriority: append([]string(nil), DefaultSourcePriority...),
		Synonyms:       synonyms,
		Bounds:         BoundsPerFluid,
		WarmWorkers:    4,
	}
}

// LoadConfig reads a YAML config file over DefaultConfig. Uses strict
// parsing: unrecognized keys (typos) are rejected. Fields absent from the
// file keep their defaults; synonyms are merged into DefaultSynonyms.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading engine config: %w", err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing engine config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid engine config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks property keys, source order, synonyms and the bounds mode.
func (c *Config) Validate() error {
	if _, err := NewPropertySet(c.Properties); err != nil {
		return fmt.Errorf("properties: %w", err)
	}
	if _, err := NewSourcePriority(c.SourcePriority); err != nil {
		return err
	}
	for alias, target := range c.Synonyms {
		if normalizeName(alias) == "" || normalizeName(target) == "" {
			return fmt.Errorf("synonyms: empty alias or target in %q -> %q", alias, target)
		}
	}
	if !ValidBoundsModes[c.Bounds] {
		return fmt.Errorf("unknown bounds mode %q; valid: fluid, property, none", c.Bounds)
	}
	if c.WarmWorkers < 0 {
		return fmt.Errorf("warm_workers must be non-negative, got %d", c.WarmWorkers)
	}
	return nil
}

func (c *Config) boundsMode() BoundsMode {
	if c.Bounds == "" {
		return BoundsPerFluid
	}
	return c.Bounds
}
