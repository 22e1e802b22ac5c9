package rgb

import (
	"errors"
	"image"
	"io"

	// Container formats understood by Decode
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

var errEmpty = errors.New("rgb: image has no pixels")

// Decode reads any registered image format from r and returns it as a flat
// RGB grid along with the format name.
func Decode(r io.Reader) (*Image, string, error) {
	src, format, err := image.Decode(r)
	if err != nil {
		return nil, "", err
	}

	if src.Bounds().Empty() {
		return nil, format, errEmpty
	}

	return Convert(src), format, nil
}
