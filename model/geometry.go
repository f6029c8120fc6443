package model

import (
	"fmt"
	"image"
	"math"
	"strconv"
	"strings"
)

// Point represents a 2D point in PDF user space
type Point struct {
	X, Y float64
}

// Region is an axis-aligned rectangle in PDF user space (points, origin at
// the bottom-left corner of the page). Top is therefore >= Bottom.
type Region struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// NewRegion creates a region from its edges, swapping edges given in the
// wrong order so that Left <= Right and Bottom <= Top.
func NewRegion(left, top, right, bottom float64) Region {
	if left > right {
		left, right = right, left
	}
	if bottom > top {
		top, bottom = bottom, top
	}
	return Region{Left: left, Top: top, Right: right, Bottom: bottom}
}

// ParseRegion parses a region written as "left,top,right,bottom".
func ParseRegion(s string) (Region, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return Region{}, fmt.Errorf("invalid region %q: want left,top,right,bottom", s)
	}

	var edges [4]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Region{}, fmt.Errorf("invalid region %q: %w", s, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Region{}, fmt.Errorf("invalid region %q: non-finite edge", s)
		}
		edges[i] = v
	}

	return NewRegion(edges[0], edges[1], edges[2], edges[3]), nil
}

// Width returns the horizontal extent
func (r Region) Width() float64 {
	return r.Right - r.Left
}

// Height returns the vertical extent
func (r Region) Height() float64 {
	return r.Top - r.Bottom
}

// Center returns the center point
func (r Region) Center() Point {
	return Point{
		X: r.Left + r.Width()/2,
		Y: r.Bottom + r.Height()/2,
	}
}

// Contains checks if a point is inside the region. Edges are inclusive.
func (r Region) Contains(p Point) bool {
	return p.X >= r.Left && p.X <= r.Right &&
		p.Y >= r.Bottom && p.Y <= r.Top
}

// IsEmpty returns true if the region has zero area
func (r Region) IsEmpty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}

// ToPixels maps the region onto the pixel grid of a page rendered at dpi,
// where pageHeight is the page height in points. Image space has its origin
// at the top-left corner, so the Y axis is flipped.
func (r Region) ToPixels(dpi int, pageHeight float64) image.Rectangle {
	scale := float64(dpi) / 72.0
	return image.Rect(
		int(math.Floor(r.Left*scale)),
		int(math.Floor((pageHeight-r.Top)*scale)),
		int(math.Ceil(r.Right*scale)),
		int(math.Ceil((pageHeight-r.Bottom)*scale)),
	)
}

// String returns the region in the form accepted by ParseRegion
func (r Region) String() string {
	return fmt.Sprintf("%g,%g,%g,%g", r.Left, r.Top, r.Right, r.Bottom)
}
