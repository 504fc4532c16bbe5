// Package config holds the report configuration. The JSON schema uses
// pointer fields so a partial config file only overrides what it names.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Defaults applied when a field is absent from the config file.
const (
	DefaultYear          = 2023
	DefaultTitle         = "Sample Data Report - Medicare Spending per Beneficiary Score (MSPB) Overview"
	DefaultDataSourceURL = "https://data.cms.gov/provider-data/dataset/rrqw-56er"
	DefaultMapWidthIn    = 14.0
	DefaultMapDPI        = 200
	DefaultGeoProperty   = "STUSPS"
)

// ReportConfig is the root configuration for one report run.
type ReportConfig struct {
	Title         *string  `json:"title,omitempty"`
	Year          *int     `json:"year,omitempty"`
	DataSourceURL *string  `json:"data_source_url,omitempty"`
	AccessedNote  *string  `json:"accessed_note,omitempty"` // e.g. "accessed 2 Oct 2025"
	MapWidthIn    *float64 `json:"map_width_in,omitempty"`
	MapDPI        *int     `json:"map_dpi,omitempty"`
	MapScaleMin   *float64 `json:"map_scale_min,omitempty"` // colormap lower endpoint; default is the data minimum
	MapScaleMax   *float64 `json:"map_scale_max,omitempty"` // colormap upper endpoint; default is the data maximum
	GeoProperty   *string  `json:"geo_property,omitempty"`  // GeoJSON property holding the state code
	OutputBase    *string  `json:"output_base,omitempty"`   // base name for generated files

	// Regions replaces the built-in region taxonomy when set. Keys are
	// region names, values the member state codes; no state may appear
	// in two regions.
	Regions map[string][]string `json:"regions,omitempty"`
}

// Empty returns a config with every field unset so getters fall back
// to defaults.
func Empty() *ReportConfig {
	return &ReportConfig{}
}

// Load reads a ReportConfig from a JSON file. Fields omitted from the
// file keep their defaults, so partial configs are safe.
func Load(path string) (*ReportConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Empty()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that any set fields hold sane values.
func (c *ReportConfig) Validate() error {
	if c.Year != nil && (*c.Year < 2000 || *c.Year > 2100) {
		return fmt.Errorf("year %d out of range", *c.Year)
	}
	if c.MapWidthIn != nil && *c.MapWidthIn <= 2 {
		return fmt.Errorf("map_width_in %g too small", *c.MapWidthIn)
	}
	if c.MapDPI != nil && (*c.MapDPI < 50 || *c.MapDPI > 1200) {
		return fmt.Errorf("map_dpi %d out of range", *c.MapDPI)
	}
	if c.Title != nil && *c.Title == "" {
		return fmt.Errorf("title must not be empty")
	}
	if c.GeoProperty != nil && *c.GeoProperty == "" {
		return fmt.Errorf("geo_property must not be empty")
	}
	if c.MapScaleMin != nil && c.MapScaleMax != nil && *c.MapScaleMax <= *c.MapScaleMin {
		return fmt.Errorf("map_scale range [%g, %g] is empty", *c.MapScaleMin, *c.MapScaleMax)
	}
	seen := make(map[string]string)
	for region, states := range c.Regions {
		if region == "" {
			return fmt.Errorf("regions map contains an unnamed region")
		}
		for _, s := range states {
			if prev, dup := seen[s]; dup {
				return fmt.Errorf("state %s appears in both %q and %q", s, prev, region)
			}
			seen[s] = region
		}
	}
	return nil
}

// GetTitle returns the report title.
func (c *ReportConfig) GetTitle() string {
	if c.Title != nil {
		return *c.Title
	}
	return DefaultTitle
}

// GetYear returns the reporting year.
func (c *ReportConfig) GetYear() int {
	if c.Year != nil {
		return *c.Year
	}
	return DefaultYear
}

// GetDataSourceURL returns the dataset URL for the source annotation.
func (c *ReportConfig) GetDataSourceURL() string {
	if c.DataSourceURL != nil {
		return *c.DataSourceURL
	}
	return DefaultDataSourceURL
}

// GetAccessedNote returns the access-date note, which may be empty.
func (c *ReportConfig) GetAccessedNote() string {
	if c.AccessedNote != nil {
		return *c.AccessedNote
	}
	return ""
}

// GetMapWidthIn returns the map width in inches.
func (c *ReportConfig) GetMapWidthIn() float64 {
	if c.MapWidthIn != nil {
		return *c.MapWidthIn
	}
	return DefaultMapWidthIn
}

// GetMapDPI returns the map render resolution.
func (c *ReportConfig) GetMapDPI() int {
	if c.MapDPI != nil {
		return *c.MapDPI
	}
	return DefaultMapDPI
}

// GetMapScaleMin returns the configured colormap lower endpoint, if
// any.
func (c *ReportConfig) GetMapScaleMin() (float64, bool) {
	if c.MapScaleMin != nil {
		return *c.MapScaleMin, true
	}
	return 0, false
}

// GetMapScaleMax returns the configured colormap upper endpoint, if
// any.
func (c *ReportConfig) GetMapScaleMax() (float64, bool) {
	if c.MapScaleMax != nil {
		return *c.MapScaleMax, true
	}
	return 0, false
}

// GetRegions returns the configured region taxonomy override, or nil
// when the built-in taxonomy applies.
func (c *ReportConfig) GetRegions() map[string][]string {
	return c.Regions
}

// GetGeoProperty returns the GeoJSON property carrying the state code.
func (c *ReportConfig) GetGeoProperty() string {
	if c.GeoProperty != nil {
		return *c.GeoProperty
	}
	return DefaultGeoProperty
}

// GetOutputBase returns the base name for generated artifacts, e.g.
// "2023MSPBReport" for 2023MSPBReport.pdf.
func (c *ReportConfig) GetOutputBase() string {
	if c.OutputBase != nil && *c.OutputBase != "" {
		return *c.OutputBase
	}
	return fmt.Sprintf("%dMSPBReport", c.GetYear())
}
