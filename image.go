package stegimg

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/stegimg/rgb"
)

const encodedPrefix = "encoded-"

// EncodedName returns the filename an encoded copy of file is saved as. The
// name gains an "encoded-" prefix unless it already has one and the
// extension is always ".png".
func EncodedName(file string) string {
	dir, name := filepath.Split(file)
	if !strings.HasPrefix(name, encodedPrefix) {
		name = encodedPrefix + name
	}
	return filepath.Join(dir, strings.TrimSuffix(name, filepath.Ext(name))+".png")
}

func openImage(file string) (*rgb.Image, string, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, "", fmt.Errorf("%w: '%s': %v", ErrImageNotFound, file, err)
	}
	defer f.Close()

	h := sha1.New()
	m, _, err := rgb.Decode(io.TeeReader(f, h))
	if err != nil {
		return nil, "", fmt.Errorf("%w: '%s': %v", ErrImageUndecodable, file, err)
	}

	// Decoders can stop short of the end of the file
	if _, err := io.Copy(h, f); err != nil {
		return nil, "", fmt.Errorf("%w: '%s': %v", ErrImageUndecodable, file, err)
	}

	return m, fmt.Sprintf("%X", h.Sum(nil)), nil
}

func saveImage(m *rgb.Image, file string) (string, error) {
	b := new(bytes.Buffer)
	h := sha1.New()
	if err := rgb.Encode(io.MultiWriter(b, h), m); err != nil {
		return "", fmt.Errorf("%w image to '%s': %v", ErrSave, file, err)
	}

	if err := ioutil.WriteFile(file, b.Bytes(), 0666); err != nil {
		return "", fmt.Errorf("%w image to '%s': %v", ErrSave, file, err)
	}

	return fmt.Sprintf("%X", h.Sum(nil)), nil
}
