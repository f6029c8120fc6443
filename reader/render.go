package reader

import (
	"errors"
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
	"go.uber.org/zap"
)

var errClosed = errors.New("document is closed")

// Rasterize renders a page at resolution dots per inch. Calls from
// different goroutines render on separate MuPDF documents.
func (d *Document) Rasterize(page int, resolution int) (image.Image, error) {
	if err := d.checkPage(page); err != nil {
		return nil, err
	}
	if resolution <= 0 {
		return nil, fmt.Errorf("invalid resolution %d", resolution)
	}
	return d.rasterize(page, resolution)
}

func (d *Document) rasterize(page int, resolution int) (image.Image, error) {
	var img image.Image
	err := d.withRenderer(func(r *fitz.Document) error {
		rgba, err := r.ImageDPI(page-1, float64(resolution))
		if err != nil {
			return err
		}
		img = rgba
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render page: %w", err)
	}
	return img, nil
}

// withRenderer runs fn with a renderer no other goroutine is using. Idle
// renderers are reused; a new one is opened when all are busy.
func (d *Document) withRenderer(fn func(*fitz.Document) error) error {
	r, err := d.acquire()
	if err != nil {
		return err
	}
	defer d.release(r)
	return guard(func() error { return fn(r) })
}

func (d *Document) acquire() (*fitz.Document, error) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil, errClosed
	}
	if n := len(d.idle); n > 0 {
		r := d.idle[n-1]
		d.idle = d.idle[:n-1]
		d.mu.Unlock()
		return r, nil
	}
	d.mu.Unlock()

	return openRenderer(d.path)
}

func (d *Document) release(r *fitz.Document) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		if err := r.Close(); err != nil {
			d.logger.Warn("failed to close renderer", zap.Error(err))
		}
		return
	}
	d.idle = append(d.idle, r)
}

func openRenderer(path string) (*fitz.Document, error) {
	var r *fitz.Document
	err := guard(func() error {
		var err error
		r, err = fitz.New(path)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open renderer: %w", err)
	}
	return r, nil
}
