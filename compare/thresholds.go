package compare

import "fmt"

// DefaultResolution is the rendering resolution, in dots per inch, used for
// image comparison. It is low on purpose: the comparison only has to notice
// differences, not read them.
const DefaultResolution = 25

// Thresholds are the tolerances of an image comparison. A value of 0
// requires an exact match at that granularity.
type Thresholds struct {
	// Pixel is the largest allowed |dR|+|dG|+|dB| for a single pixel.
	Pixel int64
	// Page is the largest allowed sum of pixel differences on one page.
	Page int64
	// Document is the largest allowed sum of page differences.
	Document int64
}

// Validate rejects negative thresholds
func (t Thresholds) Validate() error {
	switch {
	case t.Pixel < 0:
		return fmt.Errorf("%w: pixel threshold %d", ErrInvalidThreshold, t.Pixel)
	case t.Page < 0:
		return fmt.Errorf("%w: page threshold %d", ErrInvalidThreshold, t.Page)
	case t.Document < 0:
		return fmt.Errorf("%w: document threshold %d", ErrInvalidThreshold, t.Document)
	}
	return nil
}
