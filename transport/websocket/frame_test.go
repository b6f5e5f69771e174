package websocket

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReadWriter(buf *bytes.Buffer) *bufio.ReadWriter {
	return bufio.NewReadWriter(bufio.NewReader(buf), bufio.NewWriter(buf))
}

func TestFrameRoundTrip(t *testing.T) {
	t.Run("Short payload", func(t *testing.T) {
		// Given: a small JSON payload
		var buf bytes.Buffer
		bufrw := newTestReadWriter(&buf)
		payload := []byte(`{"action":"connect"}`)

		// When: writing and reading it back
		require.NoError(t, writeFrame(bufrw, payload))
		got, err := readFrame(bufrw)

		// Then: the payload survives unchanged
		require.NoError(t, err)
		assert.Equal(t, payload, got)
	})

	t.Run("Payload needing the 16-bit extended length", func(t *testing.T) {
		// Given: a payload longer than 125 bytes
		var buf bytes.Buffer
		bufrw := newTestReadWriter(&buf)
		payload := []byte(strings.Repeat("x", 300))

		// When: writing and reading it back
		require.NoError(t, writeFrame(bufrw, payload))
		got, err := readFrame(bufrw)

		// Then: the payload survives unchanged
		require.NoError(t, err)
		assert.Equal(t, payload, got)
	})
}

func TestReadFrame(t *testing.T) {
	t.Run("Unmasks a client frame", func(t *testing.T) {
		// Given: a masked text frame as a browser would send it
		payload := []byte(`{"action":"state"}`)
		mask := []byte{0x12, 0x34, 0x56, 0x78}

		raw := []byte{finBit | opText, maskBit | byte(len(payload))}
		raw = append(raw, mask...)
		for i, b := range payload {
			raw = append(raw, b^mask[i%4])
		}

		bufrw := newTestReadWriter(bytes.NewBuffer(raw))

		// When: reading the frame
		got, err := readFrame(bufrw)

		// Then: the payload is unmasked
		require.NoError(t, err)
		assert.Equal(t, payload, got)
	})

	t.Run("Close opcode ends the connection", func(t *testing.T) {
		// Given: a close frame
		raw := []byte{finBit | opClose, 0}
		bufrw := newTestReadWriter(bytes.NewBuffer(raw))

		// When: reading the frame
		_, err := readFrame(bufrw)

		// Then: the codec reports the close
		require.ErrorIs(t, err, errConnectionClosed)
	})
}

func TestGenerateAcceptKey(t *testing.T) {
	// Given/When: the handshake key from the RFC 6455 example
	accept := GenerateAcceptKey("dGhlIHNhbXBsZSBub25jZQ==")

	// Then: the accept key matches the value in the RFC
	assert.Equal(t, "s3pPLMBiTxaQ9kYGzzhZRbK+xOo=", accept)
}
