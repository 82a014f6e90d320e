// Package rules implements the per-field transforms applied when copying
// intake values into destination fields, driven by an immutable Config.
// What the legacy process kept as module-level mutable constants (the
// exclusion list, the capacity code table, the in-house publisher name
// fragments) is injected configuration here, optionally overridden from a
// YAML file.
package rules

import (
	"os"

	"github.com/goccy/go-yaml"

	"github.com/eliteembassy/songbridge/pkg/errors"
)

// Config carries the business-rule constants for one run. Treat values as
// immutable once the run starts.
type Config struct {
	// Exclusions are disqualifying tokens: any identifier containing one
	// (case-insensitive substring match) is discarded for that field.
	Exclusions []string `yaml:"exclusions"`

	// CapacityLabels translates short capacity codes to display labels.
	// Unrecognized codes pass through unchanged.
	CapacityLabels map[string]string `yaml:"capacity_labels"`

	// InHousePublishers are name fragments identifying publishers whose
	// shares the company controls, matched case-insensitively against the
	// normalized publisher name.
	InHousePublishers []string `yaml:"in_house_publishers"`

	// PlaceholderPublisher is the synthesized publisher written on the
	// non-controlled chain row.
	PlaceholderPublisher string `yaml:"placeholder_publisher"`

	// PlaceholderCAE is the identifier code written alongside the
	// placeholder publisher.
	PlaceholderCAE string `yaml:"placeholder_cae"`

	// OriginalPublisherLabel is the capacity written on publisher slots
	// that carry no extracted capacity of their own.
	OriginalPublisherLabel string `yaml:"original_publisher_label"`

	// PriorityMarker is the status literal that maps to a TRUE priority
	// flag; anything else, including a missing value, maps to FALSE.
	PriorityMarker string `yaml:"priority_marker"`

	// MaxIdentifierLen gates the length-checked identifier field; longer
	// single-line values are dropped, not truncated.
	MaxIdentifierLen int `yaml:"max_identifier_len"`

	// MaxParticipants caps the rights-holders extracted per work.
	MaxParticipants int `yaml:"max_participants"`

	// StaticFills are destination columns filled with a constant on every
	// enriched row.
	StaticFills map[string]string `yaml:"static_fills"`
}

// Default returns the configuration the engine ships with.
func Default() Config {
	return Config{
		Exclusions: []string{
			"REQUEST FROM BMI",
			"NOT ELIGIBLE",
			"NRY",
			"NRYI",
			"YTO",
			"OJ",
		},
		CapacityLabels: map[string]string{
			"C":  "Composer",
			"A":  "Lyrics",
			"AC": "Lyrics and Music",
			"CA": "Lyrics and Music",
		},
		InHousePublishers: []string{
			"elite embassy publishing",
			"music embassies publishing",
		},
		PlaceholderPublisher:   "Copyright Control",
		PlaceholderCAE:         "00000000",
		OriginalPublisherLabel: "Original Publisher",
		PriorityMarker:         "POPULAR-ARTIST",
		MaxIdentifierLen:       15,
		MaxParticipants:        10,
		StaticFills: map[string]string{
			"Language":    "English",
			"Territories": "WW",
		},
	}
}

// Load reads a YAML rules file and overlays it on the defaults. Only keys
// present in the file replace their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.WrapIO("read rules file", path, err)
	}

	var overlay Config
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return cfg, errors.WrapIO("parse rules file", path, err)
	}

	cfg.merge(overlay)
	return cfg, nil
}

func (c *Config) merge(o Config) {
	if len(o.Exclusions) > 0 {
		c.Exclusions = o.Exclusions
	}
	if len(o.CapacityLabels) > 0 {
		c.CapacityLabels = o.CapacityLabels
	}
	if len(o.InHousePublishers) > 0 {
		c.InHousePublishers = o.InHousePublishers
	}
	if o.PlaceholderPublisher != "" {
		c.PlaceholderPublisher = o.PlaceholderPublisher
	}
	if o.PlaceholderCAE != "" {
		c.PlaceholderCAE = o.PlaceholderCAE
	}
	if o.OriginalPublisherLabel != "" {
		c.OriginalPublisherLabel = o.OriginalPublisherLabel
	}
	if o.PriorityMarker != "" {
		c.PriorityMarker = o.PriorityMarker
	}
	if o.MaxIdentifierLen > 0 {
		c.MaxIdentifierLen = o.MaxIdentifierLen
	}
	if o.MaxParticipants > 0 {
		c.MaxParticipants = o.MaxParticipants
	}
	if len(o.StaticFills) > 0 {
		c.StaticFills = o.StaticFills
	}
}
