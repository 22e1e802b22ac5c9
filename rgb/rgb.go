/*
Package rgb implements a flat 24-bit pixel grid.

Each pixel is stored as three consecutive bytes; red, green and blue, in that
order. Pixels are stored row-major starting from the top-left corner so the
grid can be walked as a single sequence of width * height * 3 channel bytes.
There is no alpha channel, every pixel is treated as fully opaque.
*/
package rgb

import (
	"image"
	"image/color"
)

// Channels is the number of channel bytes in each pixel
const Channels = 3

// Image is an in-memory grid of RGB pixels. It implements image.Image so it
// can be passed directly to any image encoder.
type Image struct {
	// Pix holds the channel bytes, Channels per pixel, row-major
	Pix    []uint8
	Width  int
	Height int
}

// New returns an Image of the given dimensions with every channel set to
// zero.
func New(width, height int) *Image {
	if width < 0 || height < 0 {
		width, height = 0, 0
	}
	return &Image{
		Pix:    make([]uint8, width*height*Channels),
		Width:  width,
		Height: height,
	}
}

// Len returns the number of channel bytes in the grid
func (m *Image) Len() int {
	return len(m.Pix)
}

func (m *Image) offset(x, y int) int {
	return (y*m.Width + x) * Channels
}

// ColorModel returns the color model of the grid
func (m *Image) ColorModel() color.Model {
	return color.NRGBAModel
}

// Bounds returns the grid dimensions with the top-left corner at (0, 0)
func (m *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.Width, m.Height)
}

// At returns the color of the pixel at (x, y)
func (m *Image) At(x, y int) color.Color {
	if !image.Pt(x, y).In(m.Bounds()) {
		return color.NRGBA{}
	}
	i := m.offset(x, y)
	return color.NRGBA{m.Pix[i+0], m.Pix[i+1], m.Pix[i+2], 0xff}
}

// Set sets the pixel at (x, y) to c, any alpha is discarded
func (m *Image) Set(x, y int, c color.Color) {
	if !image.Pt(x, y).In(m.Bounds()) {
		return
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	i := m.offset(x, y)
	m.Pix[i+0], m.Pix[i+1], m.Pix[i+2] = n.R, n.G, n.B
}

// Opaque reports whether the grid is fully opaque, which is always true
func (m *Image) Opaque() bool {
	return true
}

// Convert copies any image into a new Image, adjusting it so the top-left
// corner is at (0, 0).
func Convert(src image.Image) *Image {
	if m, ok := src.(*Image); ok {
		dup := New(m.Width, m.Height)
		copy(dup.Pix, m.Pix)
		return dup
	}

	b := src.Bounds()
	m := New(b.Dx(), b.Dy())

	// Fast path for the common decoder outputs
	switch s := src.(type) {
	case *image.NRGBA:
		for y := 0; y < m.Height; y++ {
			row := s.Pix[s.PixOffset(b.Min.X, b.Min.Y+y):]
			for x := 0; x < m.Width; x++ {
				i := m.offset(x, y)
				copy(m.Pix[i:i+Channels], row[x*4:x*4+Channels])
			}
		}
		return m
	case *image.RGBA:
		if s.Opaque() {
			for y := 0; y < m.Height; y++ {
				row := s.Pix[s.PixOffset(b.Min.X, b.Min.Y+y):]
				for x := 0; x < m.Width; x++ {
					i := m.offset(x, y)
					copy(m.Pix[i:i+Channels], row[x*4:x*4+Channels])
				}
			}
			return m
		}
	}

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			m.Set(x, y, src.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return m
}
