package reader

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"rsc.io/pdf"

	"github.com/tsawler/pdfdiff/model"
	"github.com/tsawler/pdfdiff/ocr"
	"github.com/tsawler/pdfdiff/raster"
	"github.com/tsawler/pdfdiff/text"
)

// maxParentDepth bounds the walk up the page tree for inherited attributes
const maxParentDepth = 32

// ExtractText returns the text of a page, or only the text whose glyphs are
// centered inside region when region is not nil. Glyphs are assembled into
// lines in reading order. When OCR is enabled and no text is found, the
// rendered page (or region) is recognized instead.
func (d *Document) ExtractText(page int, region *model.Region) (string, error) {
	if err := d.checkPage(page); err != nil {
		return "", err
	}

	var s string
	if region == nil && d.pdf == nil {
		t, err := d.mupdfText(page)
		if err != nil {
			return "", fmt.Errorf("failed to read page text: %w", err)
		}
		s = t
	} else {
		fragments, err := d.Fragments(page)
		if err != nil {
			return "", err
		}
		if region != nil {
			fragments = text.InRegion(fragments, *region)
		}
		s = text.Assemble(fragments)
	}

	if !d.opts.OCR || strings.TrimSpace(s) != "" {
		return s, nil
	}
	return d.recognize(page, region)
}

// Fragments returns the positioned glyphs of a page. For files only MuPDF
// can read, each fragment is a whole line.
func (d *Document) Fragments(page int) ([]text.Fragment, error) {
	if err := d.checkPage(page); err != nil {
		return nil, err
	}
	if d.pdf == nil {
		fragments, err := d.mupdfFragments(page)
		if err != nil {
			return nil, fmt.Errorf("failed to read page text: %w", err)
		}
		return fragments, nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil, errClosed
	}
	return d.fragments(page)
}

// recognize renders the page at the OCR resolution and runs OCR on it
func (d *Document) recognize(page int, region *model.Region) (string, error) {
	dpi := d.opts.OCRResolution
	img, err := d.rasterize(page, dpi)
	if err != nil {
		return "", err
	}

	r := raster.FromImage(img)
	mode := ocr.ModeAuto
	if region != nil {
		height, ok := d.pageHeight(page)
		if !ok {
			height = float64(r.Height) * 72 / float64(dpi)
		}
		r = r.Crop(region.ToPixels(dpi, height))
		mode = ocr.ModeSingleBlock
	}
	if r.Width == 0 || r.Height == 0 {
		return "", nil
	}

	data, err := r.EncodePNG()
	if err != nil {
		return "", err
	}

	s, err := ocr.Recognize(data, ocr.Options{Language: d.opts.OCRLanguage, Mode: mode})
	if err != nil {
		return "", fmt.Errorf("failed to recognize text: %w", err)
	}

	d.logger.Debug("recognized text with OCR",
		zap.Int("page", page),
		zap.Bool("region", region != nil),
		zap.Int("length", len(s)))
	return s, nil
}

// pageHeight returns the top of the page's media box in points
func (d *Document) pageHeight(page int) (float64, bool) {
	if d.pdf == nil {
		return 0, false
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	var (
		top float64
		ok  bool
	)
	_ = guard(func() error {
		top, ok = mediaBoxTop(d.pdf.Page(page))
		return nil
	})
	return top, ok
}

// mediaBoxTop finds the MediaBox, which may be inherited from an ancestor
// in the page tree.
func mediaBoxTop(p pdf.Page) (float64, bool) {
	v := p.V
	for i := 0; i < maxParentDepth && !v.IsNull(); i++ {
		box := v.Key("MediaBox")
		if box.Len() == 4 {
			top := box.Index(3).Float64()
			if bottom := box.Index(1).Float64(); bottom > top {
				top = bottom
			}
			return top, top > 0
		}
		v = v.Key("Parent")
	}
	return 0, false
}
