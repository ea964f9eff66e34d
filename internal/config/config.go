// Package config loads the YAML configuration of the perishables tool.
//
// Every field has a default, so the tool runs without a config file. Command
// line flags override whatever the file sets.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"perishables/internal/core/apperror"
)

// Config holds the application configuration.
type Config struct {
	// Input is the semicolon separated inventory file.
	Input string `yaml:"input"`

	// Output is the text report. It is truncated at the start of every run.
	Output string `yaml:"output"`

	// XLSX is an optional workbook mirroring the text report.
	XLSX string `yaml:"xlsx,omitempty"`

	// ArchiveDir receives a zstd copy of the input after a successful run.
	// Empty disables archiving.
	ArchiveDir string `yaml:"archive_dir,omitempty"`

	Log LogConfig `yaml:"log"`

	// Queries are run in order against the loaded inventory.
	Queries []QueryConfig `yaml:"queries"`
}

// LogConfig configures pkg/logger.
type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// QueryConfig selects one store and prunes it with a criterion.
type QueryConfig struct {
	// Label names the list in report headers ("Second" -> "Second list ...").
	Label string `yaml:"label"`

	// Store may be left empty; the CLI then asks for it.
	Store string `yaml:"store,omitempty"`

	Criterion CriterionConfig `yaml:"criterion"`
}

// CriterionConfig describes the synthetic record used for pruning.
type CriterionConfig struct {
	Begin     Date `yaml:"begin"`
	End       Date `yaml:"end"`
	Remaining int  `yaml:"remaining"`
}

// Date is a calendar date written as YYYY-MM-DD.
type Date struct {
	time.Time
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	t, err := time.Parse(time.DateOnly, value.Value)
	if err != nil {
		return fmt.Errorf("line %d: date must be YYYY-MM-DD: %w", value.Line, err)
	}
	d.Time = t
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Date) MarshalYAML() (any, error) {
	return d.Format(time.DateOnly), nil
}

// NewDate builds a Date.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Default returns the built-in configuration: the classic Duomenys.txt /
// Rezultatai.txt pair and two store queries.
func Default() *Config {
	return &Config{
		Input:  "Duomenys.txt",
		Output: "Rezultatai.txt",
		Log: LogConfig{
			Level: "info",
		},
		Queries: []QueryConfig{
			{
				Label: "Second",
				Criterion: CriterionConfig{
					Begin:     NewDate(2020, time.March, 1),
					End:       NewDate(2020, time.March, 31),
					Remaining: 1000,
				},
			},
			{
				Label: "Third",
				Criterion: CriterionConfig{
					Begin:     NewDate(2020, time.March, 1),
					End:       NewDate(2020, time.March, 11),
					Remaining: 100,
				},
			},
		},
	}
}

// Load reads path over the defaults and validates the result. When
// mustExist is false a missing file yields the defaults.
func Load(path string, mustExist bool) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !mustExist {
			return cfg, cfg.Validate()
		}
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperror.NewNotFound("config file", path).WithCause(err)
		}
		return nil, apperror.NewIO("read", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, apperror.NewInvalidInput("failed to parse config file").
			WithDetail("path", path).
			WithCause(err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required fields and criterion periods.
func (c *Config) Validate() error {
	if c.Input == "" {
		return apperror.NewInvalidInput("input file is required").WithDetail("field", "input")
	}
	if c.Output == "" {
		return apperror.NewInvalidInput("output file is required").WithDetail("field", "output")
	}
	if len(c.Queries) == 0 {
		return apperror.NewInvalidInput("at least one query is required").WithDetail("field", "queries")
	}

	seen := make(map[string]bool, len(c.Queries))
	for i, q := range c.Queries {
		if q.Label == "" {
			return apperror.NewInvalidInput("query label is required").
				WithDetail("query", i)
		}
		if seen[q.Label] {
			return apperror.NewInvalidInput("duplicate query label").
				WithDetail("query", i).
				WithDetail("label", q.Label)
		}
		seen[q.Label] = true

		if q.Criterion.Begin.IsZero() || q.Criterion.End.IsZero() {
			return apperror.NewInvalidInput("criterion begin and end are required").
				WithDetail("query", i)
		}
		if q.Criterion.End.Before(q.Criterion.Begin.Time) {
			return apperror.NewInvalidInput("criterion end is before begin").
				WithDetail("query", i)
		}
		if q.Criterion.Remaining < 0 {
			return apperror.NewInvalidInput("criterion remaining cannot be negative").
				WithDetail("query", i)
		}
	}
	return nil
}
