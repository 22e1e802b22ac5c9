package lsb

import "github.com/bodgit/stegimg/rgb"

// bit returns bit i of b counting from the most significant bit of b[0]
func bit(b []byte, i int) byte {
	return b[i>>3] >> (7 - i&7) & 1
}

// stamp sets bit position pos of c to v
func stamp(c byte, pos uint, v byte) byte {
	return c&^(1<<pos) | v<<pos
}

// Write stores stream in the payload bits of m. Channels after the end of the
// stream are left untouched. ErrTruncated is returned if m has fewer channels
// than the stream needs, in which case m holds as much of the stream as
// fits.
func Write(m *rgb.Image, stream []byte) error {
	n := len(stream) << 3

	i := 0
	for c := range m.Pix {
		if i >= n {
			return nil
		}
		m.Pix[c] = stamp(m.Pix[c], 1, bit(stream, i))
		i++

		if i >= n {
			// Odd number of bits, only reachable with a partial stream
			return nil
		}
		m.Pix[c] = stamp(m.Pix[c], 0, bit(stream, i))
		i++
	}

	if i < n {
		return ErrTruncated
	}
	return nil
}

// Encode frames msg, checks it fits in m and writes it
func Encode(m *rgb.Image, msg []byte, mode CapacityMode) error {
	stream := Frame(msg)
	if err := Plan(len(stream)<<3, m.Width, m.Height, mode); err != nil {
		return err
	}
	return Write(m, stream)
}
