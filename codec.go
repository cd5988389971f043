package scottvm

// alphabet is the 32-character table packed strings index into, five bits
// at a time.
const alphabet = " abcdefghijklmnopqrstuvwxyz'\x01,.\x00"

// maxDecodedLen is the hard cap on a single decoded string; exceeding it
// signals a corrupt image or a wrong section offset during loader scanning.
const maxDecodedLen = 255

// DecodeString decodes the index-th string of a packed-text section that
// starts at image[base:]. It is pure over the image slice: no section state
// is kept between calls.
func DecodeString(image []byte, base, index int) (string, error) {
	pos := base
	for i := 0; i < index; i++ {
		if pos >= len(image) {
			return "", &DecodeError{Index: index}
		}
		pos += int(image[pos] & 0x7f)
	}
	if pos >= len(image) {
		return "", &DecodeError{Index: index}
	}

	uppercase := image[pos]&0x40 == 0
	pos++

	var out []byte
	for len(out) <= maxDecodedLen {
		if pos+5 > len(image) {
			return "", &DecodeError{Index: index}
		}
		var block [5]byte
		copy(block[:], image[pos:pos+5])
		pos += 5

		for i := 0; i < 8; i++ {
			c := alphabet[decodeOneChar(&block)]

			if c == '\x01' {
				uppercase = true
				c = ' '
			} else if uppercase && c >= 'a' && c <= 'z' {
				c = c - 'a' + 'A'
				uppercase = false
			}

			out = append(out, c)
			if len(out) > maxDecodedLen {
				return "", &DecodeError{Index: index}
			}
			if c == 0 {
				return string(out[:len(out)-1]), nil
			}
			if c == '.' || c == ',' {
				if c == '.' {
					uppercase = true
				}
				out = append(out, ' ')
			}
		}
	}
	return "", &DecodeError{Index: index}
}

// decodeOneChar emits one 5-bit alphabet index from block by rotating the
// carry chain through all five bytes five times, mirroring the original
// decompress_one bit-twiddling exactly.
func decodeOneChar(block *[5]byte) byte {
	var result byte
	for i := 0; i < 5; i++ {
		var carry bool
		for j := 0; j < 5; j++ {
			b := &block[4-j]
			next := (*b & 0x80) != 0
			*b <<= 1
			if carry {
				*b |= 0x01
			}
			carry = next
		}
		result <<= 1
		if carry {
			result |= 0x01
		}
	}
	return result
}
