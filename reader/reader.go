package reader

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/gen2brain/go-fitz"
	"go.uber.org/zap"
	"rsc.io/pdf"

	"github.com/tsawler/pdfdiff/compare"
	"github.com/tsawler/pdfdiff/format"
	"github.com/tsawler/pdfdiff/ocr"
)

// ErrPageOutOfRange is returned for page numbers outside 1..PageCount
var ErrPageOutOfRange = errors.New("page out of range")

// DefaultOCRResolution is the rendering resolution used for OCR
const DefaultOCRResolution = 300

// Options configures how documents are read.
type Options struct {
	// OCR enables optical character recognition for pages, or regions,
	// that have no extractable text. Requires a build with -tags ocr.
	OCR bool

	// OCRLanguage is a Tesseract language such as "eng" or "eng+deu".
	OCRLanguage string

	// OCRResolution is the rendering resolution for OCR in dots per inch.
	OCRResolution int

	Logger *zap.Logger
}

// Engine opens documents with the given options. It implements
// compare.Engine.
type Engine struct {
	opts Options
}

var (
	_ compare.Engine   = (*Engine)(nil)
	_ compare.Document = (*Document)(nil)
)

// NewEngine creates an engine. It fails when OCR is requested but was not
// compiled in.
func NewEngine(opts Options) (*Engine, error) {
	if opts.OCR && !ocr.Available {
		return nil, ocr.ErrOCRNotEnabled
	}
	if opts.OCRResolution <= 0 {
		opts.OCRResolution = DefaultOCRResolution
	}
	if opts.OCRLanguage == "" {
		opts.OCRLanguage = ocr.DefaultLanguage
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Engine{opts: opts}, nil
}

// Open implements compare.Engine
func (e *Engine) Open(path string) (compare.Document, error) {
	return open(path, e.opts)
}

// Document is an opened PDF. Text is read with rsc.io/pdf when it can
// parse the file and with MuPDF otherwise; pages are always rendered with
// MuPDF. All methods are safe for concurrent use, and pages render
// concurrently on separate renderers.
type Document struct {
	// set at open and never changed
	path    string
	pdf     *pdf.Reader // nil when text comes from MuPDF
	pages   int
	version format.Version
	opts    Options
	logger  *zap.Logger

	mu     sync.Mutex
	file   *os.File
	idle   []*fitz.Document
	closed bool
}

// Open opens a PDF file for reading with default options
func Open(path string) (*Document, error) {
	e, err := NewEngine(Options{})
	if err != nil {
		return nil, err
	}
	return open(path, e.opts)
}

func open(path string, opts Options) (*Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, openError(path, err)
	}

	header, err := format.ReadHeader(file)
	if err != nil {
		file.Close()
		return nil, openError(path, err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, openError(path, fmt.Errorf("failed to get file info: %w", err))
	}

	d := &Document{
		path:    path,
		file:    file,
		version: header.Version,
		opts:    opts,
		logger:  opts.Logger.With(zap.String("path", path)),
	}

	r, pages, parseErr := parse(file, info.Size(), header)
	if parseErr != nil || pages == 0 {
		// MuPDF repairs and reads files rsc.io/pdf rejects
		if err := d.openWithRenderer(); err == nil {
			d.logger.Debug("reading text with MuPDF", zap.NamedError("parser", parseErr))
		} else if parseErr != nil {
			file.Close()
			return nil, openError(path, parseErr)
		} else {
			d.pdf = r
		}
	} else {
		d.pdf, d.pages = r, pages
	}

	d.logger.Debug("opened document",
		zap.Stringer("version", d.version),
		zap.Int("pages", d.pages),
		zap.Bool("mupdf_text", d.pdf == nil))

	return d, nil
}

// openWithRenderer counts pages with MuPDF and keeps the renderer for
// later use. It fails when MuPDF cannot open the file or finds no pages.
func (d *Document) openWithRenderer() error {
	r, err := openRenderer(d.path)
	if err != nil {
		return err
	}
	var pages int
	err = guard(func() error {
		pages = r.NumPage()
		return nil
	})
	if err != nil || pages <= 0 {
		r.Close()
		if err == nil {
			err = errors.New("no pages")
		}
		return err
	}
	d.pages = pages
	d.idle = append(d.idle, r)
	return nil
}

func openError(path string, err error) error {
	return &compare.DocumentError{Path: path, Op: "open", Err: err}
}

// Path returns the file the document was opened from
func (d *Document) Path() string {
	return d.path
}

// Version returns the PDF version declared in the file header
func (d *Document) Version() format.Version {
	return d.version
}

// PageCount returns the number of pages
func (d *Document) PageCount() (int, error) {
	return d.pages, nil
}

func (d *Document) checkPage(page int) error {
	if page < 1 || page > d.pages {
		return fmt.Errorf("%w: %d of %d", ErrPageOutOfRange, page, d.pages)
	}
	return nil
}

// Close releases the file and the renderers. Renderers still busy with a
// page are released when the page is done. It is safe to call twice.
func (d *Document) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.closed = true
	var errs []error
	for _, r := range d.idle {
		if err := r.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close renderer: %w", err))
		}
	}
	d.idle = nil
	if d.file != nil {
		if err := d.file.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close file: %w", err))
		}
		d.file = nil
	}
	return errors.Join(errs...)
}

// guard runs fn and turns a panic into an error. The PDF parser panics on
// some malformed input.
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed PDF: %v", r)
		}
	}()
	return fn()
}
