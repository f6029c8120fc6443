package compare

import (
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/tsawler/pdfdiff/model"
	"github.com/tsawler/pdfdiff/text"
)

// snippetRadius is how many bytes of context a text violation keeps on
// each side of the first differing position.
const snippetRadius = 20

// TextOptions configures a text comparison
type TextOptions struct {
	// RemoveWhitespace deletes all spaces, tabs, CRs and LFs before comparing.
	RemoveWhitespace bool

	// NormalizeUnicode applies NFC normalization before comparing.
	NormalizeUnicode bool

	// Regions restricts the comparison to these areas of every page, in
	// order. Empty means whole pages.
	Regions []model.Region
}

// TextComparator compares documents by their extracted text.
// It is safe for concurrent use.
type TextComparator struct {
	engine     Engine
	opts       TextOptions
	normalizer text.Normalizer
	logger     *zap.Logger
}

// NewTextComparator creates a text comparator. A nil logger disables logging.
func NewTextComparator(engine Engine, opts TextOptions, logger *zap.Logger) *TextComparator {
	regions := make([]model.Region, len(opts.Regions))
	copy(regions, opts.Regions)
	opts.Regions = regions

	return &TextComparator{
		engine: engine,
		opts:   opts,
		normalizer: text.Normalizer{
			RemoveWhitespace: opts.RemoveWhitespace,
			Unicode:          opts.NormalizeUnicode,
		},
		logger: loggerOrNop(logger),
	}
}

// Equal reports whether the documents at pathA and pathB have the same text.
// Missing files compare unequal; a *DocumentError is returned when a file
// cannot be read as a PDF.
func (c *TextComparator) Equal(pathA, pathB string) (bool, error) {
	res, err := c.Compare(pathA, pathB)
	if err != nil {
		return false, err
	}
	return res.Equal, nil
}

// Compare compares the documents page by page and stops at the first page
// or region whose text differs.
func (c *TextComparator) Compare(pathA, pathB string) (*Result, error) {
	return comparePair(c.engine, c.logger, pathA, pathB, func(a, b Document) (*Result, error) {
		pages, v, err := pageCounts(pathA, pathB, a, b)
		if err != nil {
			return nil, err
		}
		if v != nil {
			return differentResult(v, 0, 0), nil
		}

		for page := 1; page <= pages; page++ {
			v, err := c.comparePage(pathA, pathB, a, b, page)
			if err != nil {
				return nil, err
			}
			if v != nil {
				return differentResult(v, page, 0), nil
			}
		}

		return equalResult(pages, 0), nil
	})
}

// comparePage compares one page, region by region when regions are set.
func (c *TextComparator) comparePage(pathA, pathB string, a, b Document, page int) (*Violation, error) {
	if len(c.opts.Regions) == 0 {
		return c.compareArea(pathA, pathB, a, b, page, -1, nil)
	}

	for i := range c.opts.Regions {
		v, err := c.compareArea(pathA, pathB, a, b, page, i, &c.opts.Regions[i])
		if err != nil || v != nil {
			return v, err
		}
	}
	return nil, nil
}

func (c *TextComparator) compareArea(pathA, pathB string, a, b Document, page, index int, region *model.Region) (*Violation, error) {
	textA, err := c.extract(pathA, a, page, region)
	if err != nil {
		return nil, err
	}
	textB, err := c.extract(pathB, b, page, region)
	if err != nil {
		return nil, err
	}

	if textA == textB {
		return nil, nil
	}

	expected, actual := snippets(textA, textB)
	return &Violation{
		Kind:     KindText,
		Page:     page,
		Region:   index,
		Expected: expected,
		Actual:   actual,
	}, nil
}

// extract returns the normalized text of a page or region. Pages without
// text yield the empty string.
func (c *TextComparator) extract(path string, doc Document, page int, region *model.Region) (string, error) {
	s, err := doc.ExtractText(page, region)
	if err != nil {
		return "", wrapDocumentError(path, "extract text from", page, err)
	}
	return c.normalizer.Apply(s), nil
}

// snippets returns the text of a and b around the first byte where they
// differ.
func snippets(a, b string) (string, string) {
	i := 0
	for i < len(a) && i < len(b) && a[i] == b[i] {
		i++
	}

	start := i - snippetRadius
	if start < 0 {
		start = 0
	}
	return window(a, start), window(b, start)
}

// window cuts about 2*snippetRadius bytes from s, moving both ends back to
// character boundaries so multi-byte characters stay whole.
func window(s string, start int) string {
	if start >= len(s) {
		return ""
	}
	for start > 0 && !utf8.RuneStart(s[start]) {
		start--
	}
	end := start + 2*snippetRadius
	if end >= len(s) {
		return s[start:]
	}
	for end > start && !utf8.RuneStart(s[end]) {
		end--
	}
	return s[start:end]
}
