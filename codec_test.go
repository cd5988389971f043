package scottvm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeStringErrors(t *testing.T) {
	t.Run("rejects a directory hop that runs past the image", func(t *testing.T) {
		image := []byte{0x01}
		_, err := DecodeString(image, 0, 5)
		require.Error(t, err)
		var decodeErr *DecodeError
		assert.ErrorAs(t, err, &decodeErr)
		assert.Equal(t, 5, decodeErr.Index)
	})

	t.Run("rejects a string body that runs past the image", func(t *testing.T) {
		// Directory byte (hop 0, shift bit set) followed by fewer than 5
		// bytes: not enough for a single decode block.
		image := []byte{0x40, 0x00, 0x00}
		_, err := DecodeString(image, 0, 0)
		require.Error(t, err)
	})

	t.Run("an all-zero block never terminates before the length cap", func(t *testing.T) {
		// alphabet[0] is a space; a block of all-zero bytes decodes to
		// an endless run of spaces, so decoding must fail once the
		// 255-byte cap is hit rather than loop forever.
		image := make([]byte, 1+5*52)
		_, err := DecodeString(image, 0, 0)
		require.Error(t, err)
		var decodeErr *DecodeError
		assert.ErrorAs(t, err, &decodeErr)
	})
}

func TestAlphabetTable(t *testing.T) {
	assert.Len(t, alphabet, 32)
	assert.Equal(t, byte(' '), alphabet[0])
	assert.Equal(t, byte(0), alphabet[len(alphabet)-1])
}
