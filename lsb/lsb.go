/*
Package lsb implements least-significant-bit steganography of UTF-8 text in
an RGB pixel grid.

The message is framed with Padding zero bytes at the front and back and the
result is treated as a stream of bits, most significant bit first. Every
channel byte of the grid, walked row-major and then red, green, blue, carries
two bits of the stream: the first in bit position 1 and the second in bit
position 0. Bits 2 to 7 are never touched.

A reader walks the same sequence. The first Padding * 4 channels must carry
only zero bits, which confirms the reader is aligned with the writer. The
payload then runs until Padding * 8 consecutive zero bits are seen, which is
the trailing padding.

Because the end of the message is found by looking for a run of zero bytes, a
message containing Padding consecutive NUL bytes will be truncated at that
point when read back.
*/
package lsb

import "errors"

const (
	// Padding is the number of zero bytes framing each side of a message
	Padding = 8

	// BitsPerChannel is the number of payload bits stored in each channel
	BitsPerChannel = 2

	headerChannels = Padding * 8 / BitsPerChannel
	trailerBits    = Padding * 8
)

var (
	// ErrHeaderMismatch is returned when the first channels of a grid do
	// not carry the zero padding. The caller may choose to Restart the
	// reader and treat those channels as payload.
	ErrHeaderMismatch = errors.New("lsb: text doesn't start with padding")

	// ErrAborted is returned by a Reader that was aborted after a header
	// mismatch
	ErrAborted = errors.New("lsb: read aborted")

	// ErrNoTrailer is returned in strict mode when the grid ends before
	// the trailing padding is found
	ErrNoTrailer = errors.New("lsb: trailing padding not found")

	// ErrInvalidUTF8 is returned when the recovered bytes are not valid
	// UTF-8 text
	ErrInvalidUTF8 = errors.New("lsb: decoded message isn't valid utf-8")

	// ErrTruncated is returned by Write when the grid runs out of channels
	// before the whole stream is written
	ErrTruncated = errors.New("lsb: image too small for stream")

	errShortGrid = errors.New("lsb: image smaller than header")
)
