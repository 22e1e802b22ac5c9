/*
Package stegimg is a library for hiding UTF-8 text messages inside images
using least-significant-bit steganography.

Messages are written into the two lowest bits of every color channel of a
copy of the image which is always saved as a PNG. See package lsb for the
details of the bit layout.
*/
package stegimg

import (
	"errors"
	"log"

	"github.com/bodgit/stegimg/lsb"
)

var (
	// ErrImageNotFound is returned when the image file can't be opened
	ErrImageNotFound = errors.New("image not found")

	// ErrImageUndecodable is returned when the image format is unknown or
	// the image data is corrupt
	ErrImageUndecodable = errors.New("image couldn't be opened")

	// ErrTextNotFound is returned when the text file can't be opened
	ErrTextNotFound = errors.New("text file not found")

	// ErrInvalidText is returned when the text file isn't valid UTF-8
	ErrInvalidText = errors.New("text isn't valid utf-8")

	// ErrSave is returned when the resulting image or text can't be saved
	ErrSave = errors.New("couldn't save")

	// ErrNoJournal is returned when the journal is needed but not enabled
	ErrNoJournal = errors.New("no journal configured")
)

// Options control how messages are embedded and recovered
type Options struct {
	// Capacity selects the formula used to check a message fits
	Capacity lsb.CapacityMode

	// Strict fails decoding if the trailing padding is never found
	Strict bool

	// Confirm is asked whether to carry on decoding when an image doesn't
	// start with the expected padding. If nil, decoding fails.
	Confirm lsb.Confirm

	// Journal is the path to a database recording every encoded image.
	// If empty, nothing is recorded.
	Journal string
}

// Stegimg encodes and decodes messages in image files
type Stegimg struct {
	options Options
	journal *Journal
	logger  *log.Logger
}

// New returns a Stegimg configured with options, opening the journal if
// one is set
func New(options Options, logger *log.Logger) (*Stegimg, error) {
	s := &Stegimg{
		options: options,
		logger:  logger,
	}

	if options.Journal != "" {
		j, err := NewJournal(options.Journal)
		if err != nil {
			return nil, err
		}
		s.journal = j
	}

	return s, nil
}

// Close closes the journal, if any
func (s *Stegimg) Close() error {
	if s.journal != nil {
		return s.journal.Close()
	}
	return nil
}
