package compare

import (
	"image"

	"github.com/tsawler/pdfdiff/model"
)

// Engine opens PDF documents. Implementations bind a concrete PDF library;
// the reader package provides the default one.
type Engine interface {
	// Open loads the document at path. It fails with a *DocumentError when
	// the file is not a PDF the engine can parse.
	Open(path string) (Document, error)
}

// Document is an opened PDF. Page numbers are 1-indexed.
type Document interface {
	// PageCount returns the number of pages
	PageCount() (int, error)

	// ExtractText returns the text of a page. A nil region means the whole
	// page; otherwise only text inside the region is returned.
	ExtractText(page int, region *model.Region) (string, error)

	// Rasterize renders a page at the given resolution in dots per inch
	Rasterize(page int, resolution int) (image.Image, error)

	// Close releases the document
	Close() error
}

// EngineFunc adapts a function to the Engine interface
type EngineFunc func(path string) (Document, error)

// Open calls f(path)
func (f EngineFunc) Open(path string) (Document, error) {
	return f(path)
}
