package pdfdiff

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/tsawler/pdfdiff/compare"
	"github.com/tsawler/pdfdiff/model"
)

// TextComparison provides a fluent interface for comparing the text of two
// PDFs. Each configuration method returns a new TextComparison, making it
// safe for concurrent use and allowing method chaining.
type TextComparison struct {
	pathA, pathB string
	options      textOptions
}

// Text starts a text comparison of the documents at pathA and pathB.
//
// Example:
//
//	equal, err := pdfdiff.Text("a.pdf", "b.pdf").KeepWhitespace().Equal()
func Text(pathA, pathB string) *TextComparison {
	return &TextComparison{
		pathA:   pathA,
		pathB:   pathB,
		options: defaultTextOptions(),
	}
}

func (c *TextComparison) clone() *TextComparison {
	return &TextComparison{
		pathA:   c.pathA,
		pathB:   c.pathB,
		options: c.options.clone(),
	}
}

// KeepWhitespace compares text exactly, including spaces and line breaks.
func (c *TextComparison) KeepWhitespace() *TextComparison {
	newCmp := c.clone()
	newCmp.options.removeWhitespace = false
	return newCmp
}

// RemoveWhitespace drops spaces, tabs and line breaks before comparing.
// This is the default.
func (c *TextComparison) RemoveWhitespace() *TextComparison {
	newCmp := c.clone()
	newCmp.options.removeWhitespace = true
	return newCmp
}

// NormalizeUnicode compares text in Unicode NFC form, so a precomposed
// "é" equals "e" followed by a combining accent.
func (c *TextComparison) NormalizeUnicode() *TextComparison {
	newCmp := c.clone()
	newCmp.options.normalizeUnicode = true
	return newCmp
}

// Regions restricts the comparison to the given page areas, in PDF points
// with the origin at the bottom-left corner. Multiple calls are cumulative.
//
// Example:
//
//	header := model.NewRegion(0, 842, 595, 760)
//	equal, err := pdfdiff.Text("a.pdf", "b.pdf").Regions(header).Equal()
func (c *TextComparison) Regions(regions ...model.Region) *TextComparison {
	newCmp := c.clone()
	newCmp.options.regions = append(newCmp.options.regions, regions...)
	return newCmp
}

// OCR recognizes text on pages, or regions, that have no text layer.
// language is a Tesseract language such as "eng"; empty selects English.
// Requires a build with -tags ocr.
func (c *TextComparison) OCR(language string) *TextComparison {
	newCmp := c.clone()
	newCmp.options.ocr = true
	newCmp.options.ocrLanguage = language
	return newCmp
}

// WithEngine replaces the PDF engine.
func (c *TextComparison) WithEngine(engine compare.Engine) *TextComparison {
	newCmp := c.clone()
	newCmp.options.engine = engine
	return newCmp
}

// WithLogger sets the logger that receives the comparison diagnostics.
func (c *TextComparison) WithLogger(logger *zap.Logger) *TextComparison {
	newCmp := c.clone()
	newCmp.options.logger = logger
	return newCmp
}

// Equal reports whether the documents have the same text.
func (c *TextComparison) Equal() (bool, error) {
	res, err := c.Result()
	if err != nil {
		return false, err
	}
	return res.Equal, nil
}

// Result runs the comparison and describes the first difference.
func (c *TextComparison) Result() (*compare.Result, error) {
	engine, logger, err := c.options.resolve()
	if err != nil {
		return nil, err
	}

	cmp := compare.NewTextComparator(engine, compare.TextOptions{
		RemoveWhitespace: c.options.removeWhitespace,
		NormalizeUnicode: c.options.normalizeUnicode,
		Regions:          c.options.regions,
	}, logger)
	return cmp.Compare(c.pathA, c.pathB)
}

// ImageComparison provides a fluent interface for comparing how two PDFs
// render. Each configuration method returns a new ImageComparison.
type ImageComparison struct {
	pathA, pathB string
	options      imageOptions
	err          error
}

// Images starts an image comparison of the documents at pathA and pathB.
//
// Example:
//
//	equal, err := pdfdiff.Images("a.pdf", "b.pdf").PixelThreshold(30).Equal()
func Images(pathA, pathB string) *ImageComparison {
	return &ImageComparison{
		pathA:   pathA,
		pathB:   pathB,
		options: defaultImageOptions(),
	}
}

func (c *ImageComparison) clone() *ImageComparison {
	newCmp := *c
	return &newCmp
}

// PixelThreshold sets the largest allowed |dR|+|dG|+|dB| of one pixel.
func (c *ImageComparison) PixelThreshold(n int64) *ImageComparison {
	newCmp := c.clone()
	newCmp.options.thresholds.Pixel = n
	return newCmp
}

// PageThreshold sets the largest allowed sum of pixel differences on one
// page.
func (c *ImageComparison) PageThreshold(n int64) *ImageComparison {
	newCmp := c.clone()
	newCmp.options.thresholds.Page = n
	return newCmp
}

// DocumentThreshold sets the largest allowed sum of page differences.
func (c *ImageComparison) DocumentThreshold(n int64) *ImageComparison {
	newCmp := c.clone()
	newCmp.options.thresholds.Document = n
	return newCmp
}

// Thresholds sets all thresholds at once.
func (c *ImageComparison) Thresholds(t Thresholds) *ImageComparison {
	newCmp := c.clone()
	newCmp.options.thresholds = t
	return newCmp
}

// Resolution sets the rendering resolution in dots per inch.
func (c *ImageComparison) Resolution(dpi int) *ImageComparison {
	newCmp := c.clone()
	if dpi <= 0 && newCmp.err == nil {
		newCmp.err = fmt.Errorf("invalid resolution %d", dpi)
	}
	newCmp.options.resolution = dpi
	return newCmp
}

// Parallel renders and compares up to workers pages at a time. The result
// is the one a page-by-page comparison gives, but pages after the first
// difference may be rendered.
func (c *ImageComparison) Parallel(workers int) *ImageComparison {
	newCmp := c.clone()
	newCmp.options.workers = workers
	return newCmp
}

// WithEngine replaces the PDF engine.
func (c *ImageComparison) WithEngine(engine compare.Engine) *ImageComparison {
	newCmp := c.clone()
	newCmp.options.engine = engine
	return newCmp
}

// WithLogger sets the logger that receives the comparison diagnostics.
func (c *ImageComparison) WithLogger(logger *zap.Logger) *ImageComparison {
	newCmp := c.clone()
	newCmp.options.logger = logger
	return newCmp
}

// Equal reports whether the documents render the same within the
// thresholds.
func (c *ImageComparison) Equal() (bool, error) {
	res, err := c.Result()
	if err != nil {
		return false, err
	}
	return res.Equal, nil
}

// Result runs the comparison and describes the first violation.
func (c *ImageComparison) Result() (*compare.Result, error) {
	if c.err != nil {
		return nil, c.err
	}

	engine, logger, err := c.options.resolve()
	if err != nil {
		return nil, err
	}

	cmp, err := compare.NewImageComparator(engine, compare.ImageOptions{
		Thresholds: c.options.thresholds,
		Resolution: c.options.resolution,
		Workers:    c.options.workers,
	}, logger)
	if err != nil {
		return nil, err
	}
	return cmp.Compare(c.pathA, c.pathB)
}
