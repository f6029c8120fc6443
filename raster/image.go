package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"golang.org/x/image/draw"
)

// RGB is one pixel with 8 bits per channel. Alpha is not represented.
type RGB struct {
	R, G, B uint8
}

// Image is a rendered page: a Width x Height grid of RGB pixels stored
// row by row, three bytes per pixel.
type Image struct {
	Width  int
	Height int
	Pix    []uint8
}

// New allocates a white image of the given size
func New(width, height int) *Image {
	pix := make([]uint8, width*height*3)
	for i := range pix {
		pix[i] = 0xff
	}
	return &Image{Width: width, Height: height, Pix: pix}
}

// FromImage converts any image.Image into an RGB grid anchored at the
// origin. The alpha channel is discarded: color channels are kept as the
// source stores them, without premultiplying translucent pixels.
func FromImage(src image.Image) *Image {
	b := src.Bounds()
	m := &Image{Width: b.Dx(), Height: b.Dy(), Pix: make([]uint8, b.Dx()*b.Dy()*3)}

	switch img := src.(type) {
	case *image.RGBA:
		m.copyRows(img.Pix[img.PixOffset(b.Min.X, b.Min.Y):], img.Stride)
	case *image.NRGBA:
		m.copyRows(img.Pix[img.PixOffset(b.Min.X, b.Min.Y):], img.Stride)
	default:
		if o, ok := src.(interface{ Opaque() bool }); ok && o.Opaque() {
			rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
			draw.Draw(rgba, rgba.Bounds(), src, b.Min, draw.Src)
			m.copyRows(rgba.Pix, rgba.Stride)
			break
		}
		for y := 0; y < m.Height; y++ {
			for x := 0; x < m.Width; x++ {
				c := color.NRGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
				m.Set(x, y, RGB{R: c.R, G: c.G, B: c.B})
			}
		}
	}
	return m
}

// copyRows copies 4-byte-per-pixel rows starting at pix
func (m *Image) copyRows(pix []uint8, stride int) {
	for y := 0; y < m.Height; y++ {
		row := pix[y*stride:]
		for x := 0; x < m.Width; x++ {
			i := (y*m.Width + x) * 3
			m.Pix[i] = row[x*4]
			m.Pix[i+1] = row[x*4+1]
			m.Pix[i+2] = row[x*4+2]
		}
	}
}

// At returns the pixel at (x, y). Coordinates must be in range.
func (m *Image) At(x, y int) RGB {
	i := (y*m.Width + x) * 3
	return RGB{R: m.Pix[i], G: m.Pix[i+1], B: m.Pix[i+2]}
}

// Set sets the pixel at (x, y). Coordinates must be in range.
func (m *Image) Set(x, y int, c RGB) {
	i := (y*m.Width + x) * 3
	m.Pix[i] = c.R
	m.Pix[i+1] = c.G
	m.Pix[i+2] = c.B
}

// SameSize reports whether both images have identical dimensions
func (m *Image) SameSize(o *Image) bool {
	return m.Width == o.Width && m.Height == o.Height
}

// Bounds returns the image rectangle anchored at the origin
func (m *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.Width, m.Height)
}

// Crop returns a copy of the part of m inside r, clipped to the image.
func (m *Image) Crop(r image.Rectangle) *Image {
	r = r.Intersect(m.Bounds())
	out := &Image{Width: r.Dx(), Height: r.Dy(), Pix: make([]uint8, r.Dx()*r.Dy()*3)}
	for y := 0; y < out.Height; y++ {
		src := ((r.Min.Y+y)*m.Width + r.Min.X) * 3
		copy(out.Pix[y*out.Width*3:(y+1)*out.Width*3], m.Pix[src:src+out.Width*3])
	}
	return out
}

// ToImage converts m back to a standard library image
func (m *Image) ToImage() *image.RGBA {
	img := image.NewRGBA(m.Bounds())
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			p := m.At(x, y)
			img.SetRGBA(x, y, color.RGBA{R: p.R, G: p.G, B: p.B, A: 0xff})
		}
	}
	return img
}

// EncodePNG encodes m as PNG
func (m *Image) EncodePNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, m.ToImage()); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}
