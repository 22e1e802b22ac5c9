package stegimg

import (
	"crypto/sha1"
	"errors"
	"fmt"
	"io/ioutil"
	"os"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

func openText(file string) ([]byte, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("%w: '%s': %v", ErrTextNotFound, file, err)
	}
	defer f.Close()

	b, err := ioutil.ReadAll(transform.NewReader(f, encoding.UTF8Validator))
	if err != nil {
		if errors.Is(err, encoding.ErrInvalidUTF8) {
			return nil, fmt.Errorf("%w: '%s'", ErrInvalidText, file)
		}
		return nil, fmt.Errorf("%w: '%s': %v", ErrTextNotFound, file, err)
	}

	return b, nil
}

func saveText(file, text string) error {
	if err := ioutil.WriteFile(file, []byte(text), 0666); err != nil {
		return fmt.Errorf("%w text to '%s': %v", ErrSave, file, err)
	}
	return nil
}

func textSHA1(text string) string {
	return fmt.Sprintf("%X", sha1.Sum([]byte(text)))
}
