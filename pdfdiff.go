// Package pdfdiff decides whether two PDF files are equivalent, either by
// the text they contain or by how they render.
//
// Basic usage:
//
//	equal, err := pdfdiff.CompareText("expected.pdf", "actual.pdf", true, nil)
//	if err != nil {
//	    // the files could not be read
//	}
//
// With options:
//
//	res, err := pdfdiff.Images("expected.pdf", "actual.pdf").
//	    PixelThreshold(30).
//	    PageThreshold(5000).
//	    Parallel(4).
//	    Result()
//	if err == nil && !res.Equal {
//	    fmt.Println(res.Violation)
//	}
//
// A missing file is reported as "not equal", never as an error. An error
// means a file exists but could not be parsed or rendered.
//
// For custom engines and finer control, the compare and reader packages
// are also available.
package pdfdiff

import (
	"github.com/tsawler/pdfdiff/compare"
	"github.com/tsawler/pdfdiff/model"
)

// CompareText reports whether the two documents have the same page count
// and the same text on every page. With removeWhitespace, all spaces, tabs
// and line breaks are dropped before comparing. When regions is not empty,
// only the text inside each region is compared.
//
// Example:
//
//	equal, err := pdfdiff.CompareText("a.pdf", "b.pdf", true, nil)
func CompareText(pathA, pathB string, removeWhitespace bool, regions []model.Region) (bool, error) {
	c := Text(pathA, pathB).Regions(regions...)
	if !removeWhitespace {
		c = c.KeepWhitespace()
	}
	return c.Equal()
}

// CompareImages reports whether the two documents render identically at
// the default resolution, with all thresholds at zero.
//
// Example:
//
//	equal, err := pdfdiff.CompareImages("a.pdf", "b.pdf")
func CompareImages(pathA, pathB string) (bool, error) {
	return Images(pathA, pathB).Equal()
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	equal := pdfdiff.Must(pdfdiff.CompareImages("a.pdf", "b.pdf"))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// Thresholds is an alias so callers need not import compare
type Thresholds = compare.Thresholds

// Result is an alias so callers need not import compare
type Result = compare.Result
