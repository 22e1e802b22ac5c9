package stegimg

import (
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"io/ioutil"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/bodgit/stegimg/lsb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func makeImage(width, height int) *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, width, height))
	r := rand.New(rand.NewSource(int64(width*height)))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			m.SetNRGBA(x, y, color.NRGBA{
				R: uint8(r.Intn(256)),
				G: uint8(r.Intn(256)),
				B: uint8(r.Intn(256)),
				A: 0xff,
			})
		}
	}
	return m
}

func writeImage(t *testing.T, file string, encode func(io.Writer, image.Image) error, m image.Image) string {
	t.Helper()
	f, err := os.Create(file)
	require.Nil(t, err)
	defer f.Close()
	require.Nil(t, encode(f, m))
	return file
}

func writeText(t *testing.T, file string, b []byte) string {
	t.Helper()
	require.Nil(t, ioutil.WriteFile(file, b, 0644))
	return file
}

func newStegimg(t *testing.T, options Options) *Stegimg {
	t.Helper()
	s, err := New(options, log.New(ioutil.Discard, "", 0))
	require.Nil(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestEncodedName(t *testing.T) {
	tests := map[string]string{
		"x.png":                                 "encoded-x.png",
		"x.jpg":                                 "encoded-x.png",
		"x":                                     "encoded-x.png",
		"encoded-x.png":                         "encoded-x.png",
		"encoded-x.jpeg":                        "encoded-x.png",
		filepath.Join("dir", "photo.bmp"):       filepath.Join("dir", "encoded-photo.png"),
		filepath.Join("dir", "encoded-a.b.gif"): filepath.Join("dir", "encoded-a.b.png"),
	}

	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, EncodedName(in))
			assert.Equal(t, want, EncodedName(EncodedName(in)))
		})
	}
}

func TestRoundTrip(t *testing.T) {
	encoders := map[string]func(io.Writer, image.Image) error{
		"cover.png": png.Encode,
		"cover.bmp": bmp.Encode,
		"cover.jpg": func(w io.Writer, m image.Image) error { return jpeg.Encode(w, m, nil) },
	}

	for name, encode := range encoders {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			imageFile := writeImage(t, filepath.Join(dir, name), encode, makeImage(32, 32))
			textFile := writeText(t, filepath.Join(dir, "msg.txt"), []byte("héllo\nwörld"))

			s := newStegimg(t, Options{})

			out, err := s.Encode(imageFile, textFile)
			require.Nil(t, err)
			assert.Equal(t, filepath.Join(dir, "encoded-cover.png"), out)

			msg, err := s.Decode(out, "")
			require.Nil(t, err)
			assert.Equal(t, "héllo\nwörld", msg)

			saved := filepath.Join(dir, "out.txt")
			_, err = s.Decode(out, saved)
			require.Nil(t, err)
			b, err := ioutil.ReadFile(saved)
			require.Nil(t, err)
			assert.Equal(t, "héllo\nwörld", string(b))

			// Encoding an encoded image doesn't add another prefix
			again, err := s.Encode(out, textFile)
			require.Nil(t, err)
			assert.Equal(t, out, again)
		})
	}
}

func TestEncodeErrors(t *testing.T) {
	dir := t.TempDir()
	imageFile := writeImage(t, filepath.Join(dir, "cover.png"), png.Encode, makeImage(10, 10))
	textFile := writeText(t, filepath.Join(dir, "msg.txt"), []byte("hi"))
	s := newStegimg(t, Options{})

	_, err := s.Encode(filepath.Join(dir, "missing.png"), textFile)
	assert.True(t, errors.Is(err, ErrImageNotFound))

	_, err = s.Encode(imageFile, filepath.Join(dir, "missing.txt"))
	assert.True(t, errors.Is(err, ErrTextNotFound))

	_, err = s.Encode(writeText(t, filepath.Join(dir, "garbage.png"), []byte("not an image")), textFile)
	assert.True(t, errors.Is(err, ErrImageUndecodable))

	_, err = s.Encode(imageFile, writeText(t, filepath.Join(dir, "bad.txt"), []byte{'a', 0xff, 'b'}))
	assert.True(t, errors.Is(err, ErrInvalidText))

	// 10x10 holds 75 bytes including the padding
	_, err = s.Encode(imageFile, writeText(t, filepath.Join(dir, "long.txt"), make([]byte, 60)))
	var ce *lsb.CapacityError
	require.True(t, errors.As(err, &ce))
	assert.Greater(t, ce.Ratio(), 1.0)
	_, err = os.Stat(filepath.Join(dir, "encoded-cover.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestEncodeSaveFailure(t *testing.T) {
	dir := t.TempDir()
	imageFile := writeImage(t, filepath.Join(dir, "cover.png"), png.Encode, makeImage(10, 10))
	textFile := writeText(t, filepath.Join(dir, "msg.txt"), []byte("hi"))

	// A directory where the output file should go
	require.Nil(t, os.Mkdir(filepath.Join(dir, "encoded-cover.png"), 0755))

	_, err := newStegimg(t, Options{}).Encode(imageFile, textFile)
	assert.True(t, errors.Is(err, ErrSave))
}

func TestCapacityMode(t *testing.T) {
	dir := t.TempDir()
	imageFile := writeImage(t, filepath.Join(dir, "tall.png"), png.Encode, makeImage(5, 20))
	// 54 bytes framed is 432 bits, over 150 but under 600
	textFile := writeText(t, filepath.Join(dir, "msg.txt"), []byte("0123456789abcdefghijklmnopqrstuvwxyzAB"))

	_, err := newStegimg(t, Options{}).Encode(imageFile, textFile)
	var ce *lsb.CapacityError
	assert.True(t, errors.As(err, &ce))

	s := newStegimg(t, Options{Capacity: lsb.CapacityExact})
	out, err := s.Encode(imageFile, textFile)
	require.Nil(t, err)

	msg, err := s.Decode(out, "")
	require.Nil(t, err)
	assert.Equal(t, "0123456789abcdefghijklmnopqrstuvwxyzAB", msg)
}

func TestDecodeHeaderMismatch(t *testing.T) {
	dir := t.TempDir()
	m := makeImage(10, 10)
	for i := range m.Pix {
		m.Pix[i] |= 0x03
	}
	imageFile := writeImage(t, filepath.Join(dir, "cover.png"), png.Encode, m)

	asked := 0
	s := newStegimg(t, Options{
		Confirm: func() (bool, error) {
			asked++
			return false, nil
		},
	})

	_, err := s.Decode(imageFile, "")
	assert.True(t, errors.Is(err, lsb.ErrHeaderMismatch))
	assert.Equal(t, 1, asked)

	// Forcing reads every channel as 0xff bytes which isn't UTF-8
	s = newStegimg(t, Options{
		Confirm: func() (bool, error) { return true, nil },
	})
	_, err = s.Decode(imageFile, "")
	assert.True(t, errors.Is(err, lsb.ErrInvalidUTF8))
}

func TestJournal(t *testing.T) {
	dir := t.TempDir()
	imageFile := writeImage(t, filepath.Join(dir, "cover.png"), png.Encode, makeImage(16, 16))
	textFile := writeText(t, filepath.Join(dir, "msg.txt"), []byte("secret"))

	_, err := newStegimg(t, Options{}).History()
	assert.Equal(t, ErrNoJournal, err)

	s := newStegimg(t, Options{Journal: filepath.Join(dir, "journal.db")})

	out, err := s.Encode(imageFile, textFile)
	require.Nil(t, err)

	entries, err := s.History()
	require.Nil(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "encoded-cover.png", entries[0].Name)
	assert.Equal(t, 16, entries[0].Width)
	assert.Equal(t, 16, entries[0].Height)
	assert.Equal(t, 6, entries[0].Length)
	assert.Equal(t, "literal", entries[0].Capacity)
	assert.Equal(t, textSHA1("secret"), entries[0].MessageSHA1)

	_, sha, err := openImage(out)
	require.Nil(t, err)
	assert.Equal(t, sha, entries[0].SHA1)

	e, err := s.journal.FindBySHA1(sha)
	require.Nil(t, err)
	require.NotNil(t, e)
	assert.Equal(t, entries[0], *e)

	e, err = s.journal.FindBySHA1("0000")
	require.Nil(t, err)
	assert.Nil(t, e)

	msg, err := s.Decode(out, "")
	require.Nil(t, err)
	assert.Equal(t, "secret", msg)

	// Encoding a different cover adds a second entry
	other := writeImage(t, filepath.Join(dir, "other.png"), png.Encode, makeImage(20, 20))
	_, err = s.Encode(other, textFile)
	require.Nil(t, err)

	entries, err = s.History()
	require.Nil(t, err)
	assert.Len(t, entries, 2)
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	hidden := filepath.Join(dir, ".hidden")
	require.Nil(t, os.Mkdir(sub, 0755))
	require.Nil(t, os.Mkdir(hidden, 0755))

	s := newStegimg(t, Options{})
	textFile := writeText(t, filepath.Join(dir, "msg.txt"), []byte("found me"))

	var want []Found
	for _, d := range []string{dir, sub, hidden} {
		imageFile := writeImage(t, filepath.Join(d, "cover.png"), png.Encode, makeImage(12, 12))
		out, err := s.Encode(imageFile, textFile)
		require.Nil(t, err)
		if d != hidden {
			want = append(want, Found{out, "found me"})
		}
	}

	// Plain images, garbage and non-images are skipped
	writeImage(t, filepath.Join(sub, "plain.png"), png.Encode, makeImage(12, 12))
	writeText(t, filepath.Join(sub, "broken.png"), []byte("not an image"))
	writeText(t, filepath.Join(sub, "notes.txt"), []byte("hello"))

	found, err := s.Scan(dir)
	require.Nil(t, err)
	assert.Equal(t, want, found)
}

func TestScanMissing(t *testing.T) {
	_, err := newStegimg(t, Options{}).Scan(filepath.Join(t.TempDir(), "missing"))
	assert.NotNil(t, err)
}
