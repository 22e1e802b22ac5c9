package lsb

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"github.com/bodgit/stegimg/rgb"
)

type state int

const (
	stateHeaderCheck state = iota
	stateAccumulate
	stateDone
	stateAborted
)

// Reader recovers a message from a grid. It starts by checking the header,
// after which the message can be read. A header mismatch can be resolved
// with either Restart or Abort.
type Reader struct {
	m      *rgb.Image
	strict bool

	state state
	pos   int // index of the next channel byte

	bits []byte // accumulated payload, one bit per byte
}

// An Option configures a Reader
type Option func(*Reader)

// Strict makes a Reader fail with ErrNoTrailer if the grid ends before the
// trailing padding is found. By default whatever was read is returned.
func Strict(strict bool) Option {
	return func(r *Reader) {
		r.strict = strict
	}
}

// NewReader returns a Reader for m
func NewReader(m *rgb.Image, options ...Option) *Reader {
	r := &Reader{
		m: m,
	}
	for _, o := range options {
		o(r)
	}
	return r
}

// CheckHeader verifies that the first channels of the grid carry only zero
// payload bits. It returns ErrHeaderMismatch if they do not, leaving the
// decision of how to continue to the caller.
func (r *Reader) CheckHeader() error {
	switch r.state {
	case stateAborted:
		return ErrAborted
	case stateHeaderCheck:
	default:
		return nil
	}

	if r.m.Len() < headerChannels {
		return errShortGrid
	}

	for _, c := range r.m.Pix[:headerChannels] {
		if c&0x03 != 0 {
			return ErrHeaderMismatch
		}
	}

	r.pos = headerChannels
	r.state = stateAccumulate

	return nil
}

// Restart skips header validation and rewinds to the first channel so that
// the header channels are read as payload.
func (r *Reader) Restart() {
	if r.state == stateAborted {
		return
	}
	r.pos = 0
	r.bits = r.bits[:0]
	r.state = stateAccumulate
}

// Abort stops the Reader, any further reads return ErrAborted
func (r *Reader) Abort() {
	r.state = stateAborted
}

func (r *Reader) accumulate() error {
	zeros := 0
	for ; r.pos < r.m.Len(); r.pos++ {
		c := r.m.Pix[r.pos]
		hi, lo := c>>1&1, c&1
		r.bits = append(r.bits, hi, lo)

		if hi == 0 && lo == 0 {
			zeros += BitsPerChannel
		} else {
			zeros = 0
		}

		if zeros == trailerBits {
			r.bits = r.bits[:len(r.bits)-trailerBits]
			r.pos++
			r.state = stateDone
			return nil
		}
	}

	if r.strict {
		return ErrNoTrailer
	}
	r.state = stateDone

	return nil
}

// pack regroups bits into bytes, most significant bit first. A trailing
// partial byte is filled with zero bits; the trailer match can swallow the
// low zero bits of the last message byte and this puts them back.
func pack(bits []byte) []byte {
	b := make([]byte, (len(bits)+7)>>3)
	for i, v := range bits {
		b[i>>3] |= v << (7 - i&7)
	}
	return b
}

// ReadMessage reads the payload up to the trailing padding and returns it as
// a string. CheckHeader must have succeeded, or Restart been called, first.
func (r *Reader) ReadMessage() (string, error) {
	switch r.state {
	case stateAborted:
		return "", ErrAborted
	case stateHeaderCheck:
		if err := r.CheckHeader(); err != nil {
			return "", err
		}
	}

	if r.state == stateAccumulate {
		if err := r.accumulate(); err != nil {
			return "", err
		}
	}

	b := pack(r.bits)
	if err := validUTF8(b); err != nil {
		return "", err
	}

	return string(b), nil
}

func validUTF8(b []byte) error {
	if _, _, err := transform.Bytes(encoding.UTF8Validator, b); err != nil {
		return ErrInvalidUTF8
	}
	return nil
}

// Confirm is asked whether to carry on reading after a header mismatch
type Confirm func() (bool, error)

// Decode reads the message hidden in m. On a header mismatch confirm is
// called; if it returns true the whole grid is read as payload, otherwise
// ErrHeaderMismatch is returned. A nil confirm always declines.
func Decode(m *rgb.Image, confirm Confirm, options ...Option) (string, error) {
	r := NewReader(m, options...)

	switch err := r.CheckHeader(); err {
	case nil:
	case ErrHeaderMismatch:
		ok := false
		if confirm != nil {
			if ok, err = confirm(); err != nil {
				r.Abort()
				return "", err
			}
		}
		if !ok {
			r.Abort()
			return "", ErrHeaderMismatch
		}
		r.Restart()
	default:
		return "", err
	}

	return r.ReadMessage()
}
