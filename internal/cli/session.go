package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/tsawler/pdfdiff/compare"
	"github.com/tsawler/pdfdiff/internal/config"
	"github.com/tsawler/pdfdiff/internal/logging"
	"github.com/tsawler/pdfdiff/reader"
)

// flagKeys maps command-line flags to configuration keys. Flags take
// precedence over the environment and the config file when set.
var flagKeys = map[string]string{
	"log-level":          "log.level",
	"normalize-unicode":  "text.normalize_unicode",
	"region":             "text.regions",
	"resolution":         "image.resolution",
	"pixel-threshold":    "image.pixel_threshold",
	"page-threshold":     "image.page_threshold",
	"document-threshold": "image.document_threshold",
	"workers":            "image.workers",
	"ocr":                "ocr.enabled",
	"ocr-language":       "ocr.language",
}

// session holds what a comparison command runs with
type session struct {
	cfg    *config.Config
	logger *zap.Logger
	engine compare.Engine
}

func newSession(cmd *cobra.Command) (*session, error) {
	v := config.New()
	if err := bindFlags(v, cmd); err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("keep-whitespace") {
		keep, err := cmd.Flags().GetBool("keep-whitespace")
		if err != nil {
			return nil, err
		}
		v.Set("text.remove_whitespace", !keep)
	}

	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	engine, err := newEngine(reader.Options{
		OCR:           cfg.OCR.Enabled,
		OCRLanguage:   cfg.OCR.Language,
		OCRResolution: cfg.OCR.Resolution,
		Logger:        logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF engine: %w", err)
	}

	return &session{cfg: cfg, logger: logger, engine: engine}, nil
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	for name, key := range flagKeys {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed to bind flag --%s: %w", name, err)
		}
	}
	return nil
}

func (s *session) close() {
	_ = s.logger.Sync()
}
