package pdfdiff

import (
	"go.uber.org/zap"

	"github.com/tsawler/pdfdiff/compare"
	"github.com/tsawler/pdfdiff/model"
	"github.com/tsawler/pdfdiff/reader"
)

// commonOptions holds what both comparison kinds share.
type commonOptions struct {
	engine compare.Engine // nil selects the reader engine
	logger *zap.Logger

	ocr         bool
	ocrLanguage string
}

// textOptions holds configuration for text comparison.
type textOptions struct {
	commonOptions

	removeWhitespace bool
	normalizeUnicode bool
	regions          []model.Region
}

// imageOptions holds configuration for image comparison.
type imageOptions struct {
	commonOptions

	thresholds compare.Thresholds
	resolution int
	workers    int
}

// defaultTextOptions returns the default text comparison options.
// Whitespace is removed unless KeepWhitespace is called.
func defaultTextOptions() textOptions {
	return textOptions{removeWhitespace: true}
}

// defaultImageOptions returns the default image comparison options.
func defaultImageOptions() imageOptions {
	return imageOptions{
		resolution: compare.DefaultResolution,
		workers:    1,
	}
}

// clone creates a deep copy of textOptions.
func (o textOptions) clone() textOptions {
	newOpts := o
	if o.regions != nil {
		newOpts.regions = make([]model.Region, len(o.regions))
		copy(newOpts.regions, o.regions)
	}
	return newOpts
}

// resolve returns the engine and logger to compare with
func (o commonOptions) resolve() (compare.Engine, *zap.Logger, error) {
	logger := o.logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if o.engine != nil {
		return o.engine, logger, nil
	}

	engine, err := reader.NewEngine(reader.Options{
		OCR:         o.ocr,
		OCRLanguage: o.ocrLanguage,
		Logger:      logger,
	})
	if err != nil {
		return nil, nil, err
	}
	return engine, logger, nil
}
