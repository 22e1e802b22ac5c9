package stegimg

import (
	"path/filepath"

	"github.com/bodgit/stegimg/lsb"
)

// Encode hides the text in textFile inside the image in imageFile and saves
// the result alongside it, as named by EncodedName. It returns the path of
// the saved image.
func (s *Stegimg) Encode(imageFile, textFile string) (string, error) {
	msg, err := openText(textFile)
	if err != nil {
		return "", err
	}

	m, _, err := openImage(imageFile)
	if err != nil {
		return "", err
	}

	if err := lsb.Encode(m, msg, s.options.Capacity); err != nil {
		return "", err
	}
	s.logger.Printf("Encoded %d bytes into %dx%d image \"%s\"\n", len(msg), m.Width, m.Height, imageFile)

	file := EncodedName(imageFile)
	sha, err := saveImage(m, file)
	if err != nil {
		return "", err
	}
	s.logger.Printf("Saved \"%s\" with SHA1 %s\n", file, sha)

	if s.journal != nil {
		if err := s.journal.Record(Entry{
			SHA1:        sha,
			Name:        filepath.Base(file),
			Width:       m.Width,
			Height:      m.Height,
			Capacity:    s.options.Capacity.String(),
			Length:      len(msg),
			MessageSHA1: textSHA1(string(msg)),
		}); err != nil {
			return file, err
		}
	}

	return file, nil
}
