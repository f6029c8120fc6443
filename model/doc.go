// Package model provides the geometric primitives shared by the comparison
// and extraction packages.
//
// # Regions
//
// A [Region] restricts text extraction to part of a page. Regions are
// expressed in PDF user space: points (1/72 inch) with the origin at the
// bottom-left corner of the page, so Top is always greater than or equal to
// Bottom:
//
//	header := model.NewRegion(0, 842, 595, 760)
//	r, err := model.ParseRegion("0,842,595,760")
//
// [Region.ToPixels] maps a region onto a rendered page, flipping the Y axis
// into image space.
package model
