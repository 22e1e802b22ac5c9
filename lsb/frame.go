package lsb

import "bytes"

// Frame returns msg with Padding zero bytes added to the front and back. The
// original slice is not modified.
func Frame(msg []byte) []byte {
	b := new(bytes.Buffer)
	b.Grow(len(msg) + Padding<<1)

	var pad [Padding]byte
	b.Write(pad[:])
	b.Write(msg)
	b.Write(pad[:])

	return b.Bytes()
}
