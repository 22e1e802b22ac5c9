package rgb

import (
	"errors"
	"image/png"
	"io"
)

var errNoImage = errors.New("rgb: nil image")

// Encode writes m to w in PNG format. PNG is lossless so every channel byte
// survives unchanged.
func Encode(w io.Writer, m *Image) error {
	if m == nil {
		return errNoImage
	}

	e := png.Encoder{
		CompressionLevel: png.BestCompression,
	}

	return e.Encode(w, m)
}
