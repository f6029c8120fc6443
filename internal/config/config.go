// Package config loads pdfdiff settings from defaults, an optional config
// file and PDFDIFF_ environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/tsawler/pdfdiff/compare"
	"github.com/tsawler/pdfdiff/model"
)

// EnvPrefix prefixes every environment variable, e.g.
// PDFDIFF_IMAGE_PIXEL_THRESHOLD.
const EnvPrefix = "PDFDIFF"

// Config holds all pdfdiff settings
type Config struct {
	Text  TextConfig  `mapstructure:"text"`
	Image ImageConfig `mapstructure:"image"`
	OCR   OCRConfig   `mapstructure:"ocr"`
	Log   LogConfig   `mapstructure:"log"`
}

// TextConfig configures text comparison
type TextConfig struct {
	RemoveWhitespace bool     `mapstructure:"remove_whitespace"`
	NormalizeUnicode bool     `mapstructure:"normalize_unicode"`
	Regions          []string `mapstructure:"regions"`
}

// ImageConfig configures image comparison
type ImageConfig struct {
	Resolution        int   `mapstructure:"resolution"`
	PixelThreshold    int64 `mapstructure:"pixel_threshold"`
	PageThreshold     int64 `mapstructure:"page_threshold"`
	DocumentThreshold int64 `mapstructure:"document_threshold"`
	Workers           int   `mapstructure:"workers"`
}

// OCRConfig configures the OCR fallback for text comparison
type OCRConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Language   string `mapstructure:"language"`
	Resolution int    `mapstructure:"resolution"`
}

// LogConfig configures diagnostics
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// New returns a viper instance with defaults and environment binding set.
// Callers may bind command-line flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("text.remove_whitespace", true)
	v.SetDefault("text.normalize_unicode", false)
	v.SetDefault("text.regions", []string{})

	v.SetDefault("image.resolution", compare.DefaultResolution)
	v.SetDefault("image.pixel_threshold", 0)
	v.SetDefault("image.page_threshold", 0)
	v.SetDefault("image.document_threshold", 0)
	v.SetDefault("image.workers", 1)

	v.SetDefault("ocr.enabled", false)
	v.SetDefault("ocr.language", "eng")
	v.SetDefault("ocr.resolution", 300)

	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads the config file at path, if any, and decodes v into a Config.
// A missing file is an error only when path is set explicitly.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.Text.Regions = regroupRegions(cfg.Text.Regions)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings no comparison can run with
func (c *Config) Validate() error {
	if err := c.Thresholds().Validate(); err != nil {
		return err
	}
	if c.Image.Resolution <= 0 {
		return fmt.Errorf("image.resolution must be positive, got %d", c.Image.Resolution)
	}
	if c.Image.Workers < 1 {
		return fmt.Errorf("image.workers must be at least 1, got %d", c.Image.Workers)
	}
	if c.OCR.Resolution <= 0 {
		return fmt.Errorf("ocr.resolution must be positive, got %d", c.OCR.Resolution)
	}
	if _, err := c.ParsedRegions(); err != nil {
		return err
	}

	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("unknown log.format %q", c.Log.Format)
	}
	return nil
}

// Thresholds returns the image comparison thresholds
func (c *Config) Thresholds() compare.Thresholds {
	return compare.Thresholds{
		Pixel:    c.Image.PixelThreshold,
		Page:     c.Image.PageThreshold,
		Document: c.Image.DocumentThreshold,
	}
}

// ParsedRegions parses text.regions
func (c *Config) ParsedRegions() ([]model.Region, error) {
	var (
		regions []model.Region
		errs    []error
	)
	for _, s := range c.Text.Regions {
		r, err := model.ParseRegion(s)
		if err != nil {
			errs = append(errs, fmt.Errorf("text.regions: %w", err))
			continue
		}
		regions = append(regions, r)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return regions, nil
}

// regroupRegions undoes the comma split viper applies to list values read
// from the environment: "0,842,595,760" arrives as four elements.
func regroupRegions(in []string) []string {
	if len(in) == 0 || len(in)%4 != 0 {
		return in
	}
	for _, s := range in {
		if strings.Contains(s, ",") {
			return in
		}
	}

	out := make([]string, 0, len(in)/4)
	for i := 0; i < len(in); i += 4 {
		out = append(out, strings.Join(in[i:i+4], ","))
	}
	return out
}
