package compare

import (
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tsawler/pdfdiff/raster"
)

// ImageOptions configures an image comparison
type ImageOptions struct {
	Thresholds Thresholds

	// Resolution is the rendering resolution in dots per inch. Values <= 0
	// select DefaultResolution.
	Resolution int

	// Workers is the number of pages rendered and compared concurrently.
	// Values <= 1 compare pages one at a time and stop at the first
	// violating page without rendering the rest.
	Workers int
}

// ImageComparator compares documents by rendering their pages and measuring
// pixel color distances. It is safe for concurrent use.
type ImageComparator struct {
	engine Engine
	opts   ImageOptions
	logger *zap.Logger
}

// pageResult is the outcome of comparing one page
type pageResult struct {
	diff      int64
	violation *Violation
	err       error
}

// NewImageComparator creates an image comparator. A nil logger disables
// logging. Negative thresholds are rejected.
func NewImageComparator(engine Engine, opts ImageOptions, logger *zap.Logger) (*ImageComparator, error) {
	if err := opts.Thresholds.Validate(); err != nil {
		return nil, err
	}
	if opts.Resolution <= 0 {
		opts.Resolution = DefaultResolution
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}

	return &ImageComparator{
		engine: engine,
		opts:   opts,
		logger: loggerOrNop(logger),
	}, nil
}

// Equal reports whether the documents at pathA and pathB render the same
// within the configured thresholds. Missing files compare unequal; a
// *DocumentError is returned when a file cannot be read or rendered.
func (c *ImageComparator) Equal(pathA, pathB string) (bool, error) {
	res, err := c.Compare(pathA, pathB)
	if err != nil {
		return false, err
	}
	return res.Equal, nil
}

// Compare renders both documents page by page and stops at the first
// threshold violation.
func (c *ImageComparator) Compare(pathA, pathB string) (*Result, error) {
	return comparePair(c.engine, c.logger, pathA, pathB, func(a, b Document) (*Result, error) {
		pages, v, err := pageCounts(pathA, pathB, a, b)
		if err != nil {
			return nil, err
		}
		if v != nil {
			return differentResult(v, 0, 0), nil
		}

		if c.opts.Workers > 1 && pages > 1 {
			return c.reduce(c.compareConcurrently(pathA, pathB, a, b, pages))
		}

		var total int64
		for page := 1; page <= pages; page++ {
			pr := c.comparePage(pathA, pathB, a, b, page)
			if pr.err != nil {
				return nil, pr.err
			}
			if pr.violation != nil {
				return differentResult(pr.violation, page, total), nil
			}
			total += pr.diff
		}

		return c.finish(pages, total), nil
	})
}

// compareConcurrently compares every page with a bounded number of workers
// and returns the results in page order.
func (c *ImageComparator) compareConcurrently(pathA, pathB string, a, b Document, pages int) []pageResult {
	results := make([]pageResult, pages)

	var g errgroup.Group
	g.SetLimit(c.opts.Workers)
	for i := range results {
		i := i
		g.Go(func() error {
			results[i] = c.comparePage(pathA, pathB, a, b, i+1)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// reduce folds page results in page order, so the outcome is the one a
// sequential scan would have produced.
func (c *ImageComparator) reduce(results []pageResult) (*Result, error) {
	var total int64
	for i, pr := range results {
		if pr.err != nil {
			return nil, pr.err
		}
		if pr.violation != nil {
			return differentResult(pr.violation, i+1, total), nil
		}
		total += pr.diff
	}
	return c.finish(len(results), total), nil
}

func (c *ImageComparator) finish(pages int, total int64) *Result {
	if total > c.opts.Thresholds.Document {
		return differentResult(&Violation{
			Kind:      KindDocument,
			Region:    -1,
			Diff:      total,
			Threshold: c.opts.Thresholds.Document,
		}, pages, total)
	}
	return equalResult(pages, total)
}

// comparePage renders one page of each document and compares the pixels.
func (c *ImageComparator) comparePage(pathA, pathB string, a, b Document, page int) pageResult {
	imgA, err := a.Rasterize(page, c.opts.Resolution)
	if err != nil {
		return pageResult{err: wrapDocumentError(pathA, "rasterize", page, err)}
	}
	imgB, err := b.Rasterize(page, c.opts.Resolution)
	if err != nil {
		return pageResult{err: wrapDocumentError(pathB, "rasterize", page, err)}
	}

	ra, rb := raster.FromImage(imgA), raster.FromImage(imgB)
	pr := comparePixels(page, ra, rb, c.opts.Thresholds)
	if pr.violation == nil {
		c.logger.Debug("page within thresholds",
			zap.Int("page", page),
			zap.Int64("diff", pr.diff),
			zap.Int64("max", raster.MaxPageDiff(ra.Width, ra.Height)))
	}
	return pr
}

// comparePixels compares two rendered pages. Pixels are visited column by
// column (outer loop over x, inner loop over y) and the scan stops at the
// first pixel whose difference exceeds the pixel threshold.
func comparePixels(page int, a, b *raster.Image, t Thresholds) pageResult {
	if !a.SameSize(b) {
		return pageResult{violation: &Violation{
			Kind:     KindDimensions,
			Page:     page,
			Region:   -1,
			Expected: fmt.Sprintf("%dx%d", a.Width, a.Height),
			Actual:   fmt.Sprintf("%dx%d", b.Width, b.Height),
		}}
	}

	var sum int64
	for x := 0; x < a.Width; x++ {
		for y := 0; y < a.Height; y++ {
			diff := raster.PixelDiff(a.At(x, y), b.At(x, y))
			if diff > t.Pixel {
				return pageResult{violation: &Violation{
					Kind:      KindPixel,
					Page:      page,
					Region:    -1,
					X:         x,
					Y:         y,
					Diff:      diff,
					Threshold: t.Pixel,
				}}
			}
			sum += diff
		}
	}

	if sum > t.Page {
		return pageResult{violation: &Violation{
			Kind:      KindPage,
			Page:      page,
			Region:    -1,
			Diff:      sum,
			Threshold: t.Page,
		}}
	}
	return pageResult{diff: sum}
}
