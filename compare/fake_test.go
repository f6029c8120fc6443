package compare

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tsawler/pdfdiff/model"
)

// fakePage is one page of an in-memory document
type fakePage struct {
	text    string
	regions map[model.Region]string
	img     image.Image
}

// fakeDoc is an in-memory Document that records how it was used
type fakeDoc struct {
	engine *fakeEngine
	path   string
	pages  []fakePage

	pageCountErr error
	extractErr   map[int]error
	rasterErr    map[int]error
}

func (d *fakeDoc) PageCount() (int, error) {
	if d.pageCountErr != nil {
		return 0, d.pageCountErr
	}
	return len(d.pages), nil
}

func (d *fakeDoc) ExtractText(page int, region *model.Region) (string, error) {
	d.engine.record(d.path, "text", page)
	if err := d.extractErr[page]; err != nil {
		return "", err
	}
	p := d.pages[page-1]
	if region == nil {
		return p.text, nil
	}
	return p.regions[*region], nil
}

func (d *fakeDoc) Rasterize(page int, resolution int) (image.Image, error) {
	d.engine.record(d.path, "raster", page)
	d.engine.mu.Lock()
	d.engine.resolutions = append(d.engine.resolutions, resolution)
	d.engine.mu.Unlock()

	if err := d.rasterErr[page]; err != nil {
		return nil, err
	}
	return d.pages[page-1].img, nil
}

func (d *fakeDoc) Close() error {
	d.engine.mu.Lock()
	defer d.engine.mu.Unlock()
	d.engine.closed[d.path]++
	return nil
}

// fakeEngine serves fakeDocs keyed by path
type fakeEngine struct {
	mu          sync.Mutex
	docs        map[string]*fakeDoc
	openErr     map[string]error
	opened      map[string]int
	closed      map[string]int
	calls       []string
	resolutions []int
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		docs:    make(map[string]*fakeDoc),
		openErr: make(map[string]error),
		opened:  make(map[string]int),
		closed:  make(map[string]int),
	}
}

func (e *fakeEngine) Open(path string) (Document, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.openErr[path]; err != nil {
		return nil, err
	}
	doc, ok := e.docs[path]
	if !ok {
		return nil, errors.New("not a PDF")
	}
	e.opened[path]++
	return doc, nil
}

func (e *fakeEngine) record(path, op string, page int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls = append(e.calls, op+":"+filepath.Base(path)+":"+strconv.Itoa(page))
}

func (e *fakeEngine) countCalls(op string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := 0
	for _, c := range e.calls {
		if strings.HasPrefix(c, op+":") {
			n++
		}
	}
	return n
}

// add registers a document with the engine and creates a placeholder file
// for it so the path passes input validation.
func (e *fakeEngine) add(t *testing.T, name string, pages ...fakePage) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4\n"), 0o644))

	e.docs[path] = &fakeDoc{
		engine:     e,
		path:       path,
		pages:      pages,
		extractErr: make(map[int]error),
		rasterErr:  make(map[int]error),
	}
	return path
}

// assertAllClosed checks every opened document was closed exactly once
func (e *fakeEngine) assertAllClosed(t *testing.T) {
	t.Helper()
	e.mu.Lock()
	defer e.mu.Unlock()
	for path, n := range e.opened {
		require.Equalf(t, n, e.closed[path], "document %s opened %d times, closed %d times", path, n, e.closed[path])
	}
}

func textPage(s string) fakePage {
	return fakePage{text: s}
}

func imagePage(img image.Image) fakePage {
	return fakePage{img: img}
}

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func white(w, h int) *image.RGBA {
	return solid(w, h, color.RGBA{R: 255, G: 255, B: 255, A: 255})
}

// withPixels returns a copy of img with the given pixels replaced
func withPixels(img *image.RGBA, c color.RGBA, points ...image.Point) *image.RGBA {
	out := image.NewRGBA(img.Bounds())
	copy(out.Pix, img.Pix)
	for _, p := range points {
		out.SetRGBA(p.X, p.Y, c)
	}
	return out
}
