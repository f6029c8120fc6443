package reader

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gen2brain/go-fitz"
	"golang.org/x/net/html"

	"github.com/tsawler/pdfdiff/text"
)

// Text read through MuPDF, for files rsc.io/pdf cannot parse. MuPDF's HTML
// output places each text line in a <p> with its top, left and line height
// in points, measured from the top-left corner of a page <div> that carries
// the page size:
//
//	<div id="page0" style="width:612.0pt;height:792.0pt">
//	<p style="top:62.4pt;left:72.0pt;line-height:12.0pt"><span ...>Hello</span></p>

// baselineRatio places the baseline within a line box, as MuPDF does
const baselineRatio = 0.8

// averageGlyphWidth estimates a glyph's advance as a fraction of the font size
const averageGlyphWidth = 0.5

// mupdfText returns the whole-page text as MuPDF lays it out
func (d *Document) mupdfText(page int) (string, error) {
	var s string
	err := d.withRenderer(func(r *fitz.Document) error {
		var err error
		s, err = r.Text(page - 1)
		return err
	})
	if err != nil {
		return "", err
	}
	return strings.TrimRight(s, " \n"), nil
}

// mupdfFragments returns one fragment per text line of a page
func (d *Document) mupdfFragments(page int) ([]text.Fragment, error) {
	var (
		doc    string
		bounds float64
	)
	err := d.withRenderer(func(r *fitz.Document) error {
		var err error
		doc, err = r.HTML(page-1, false)
		if err != nil {
			return err
		}
		if b, err := r.Bound(page - 1); err == nil {
			bounds = float64(b.Dy())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return parseLines(doc, bounds)
}

// parseLines converts MuPDF's HTML into fragments in PDF user space.
// pageHeight is used when the page <div> carries no height.
func parseLines(doc string, pageHeight float64) ([]text.Fragment, error) {
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return nil, err
	}

	var fragments []text.Fragment
	var walk func(n *html.Node, height float64)
	walk = func(n *html.Node, height float64) {
		if n.Type == html.ElementNode {
			style := parseStyle(getAttr(n, "style"))
			switch n.Data {
			case "div":
				if h, ok := style["height"]; ok {
					height = h
				}
			case "p":
				s := textContent(n)
				if strings.TrimSpace(s) == "" {
					return
				}
				size := style["line-height"]
				baseline := style["top"] + size*baselineRatio
				width := float64(utf8.RuneCountInString(s)) * size * averageGlyphWidth
				fragments = append(fragments, text.NewFragment(s, style["left"], height-baseline, width, size, ""))
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, height)
		}
	}
	walk(root, pageHeight)

	return fragments, nil
}

// parseStyle reads the point-valued properties of an inline style
func parseStyle(s string) map[string]float64 {
	props := make(map[string]float64)
	for _, decl := range strings.Split(s, ";") {
		key, val, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		val = strings.TrimSuffix(strings.TrimSpace(val), "pt")
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			props[strings.TrimSpace(key)] = f
		}
	}
	return props
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(textContent(c))
	}
	return sb.String()
}
