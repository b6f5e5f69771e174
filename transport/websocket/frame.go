package websocket

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Frame codec for the slice of RFC 6455 this server speaks: unfragmented
// text frames, masked client-to-server, bare server-to-client.

const (
	opText  byte = 0x1
	opClose byte = 0x8

	finBit  byte = 0x80
	maskBit byte = 0x80
)

var errConnectionClosed = errors.New("client sent close frame")

// writeFrame sends payload as a single final text frame.
func writeFrame(bufrw *bufio.ReadWriter, payload []byte) error {
	header := []byte{finBit | opText, 0}

	length := uint64(len(payload))
	switch {
	case length < 126:
		header[1] = byte(length)
	case length < 1<<16:
		header[1] = 126
		header = binary.BigEndian.AppendUint16(header, uint16(length))
	default:
		header[1] = 127
		header = binary.BigEndian.AppendUint64(header, length)
	}

	if _, err := bufrw.Write(append(header, payload...)); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}

	if err := bufrw.Flush(); err != nil {
		return fmt.Errorf("failed to flush frame: %w", err)
	}

	return nil
}

// readFrame reads one frame and returns its unmasked payload. A close
// opcode is reported as errConnectionClosed.
func readFrame(bufrw *bufio.ReadWriter) ([]byte, error) {
	header := make([]byte, 2)
	if _, err := io.ReadFull(bufrw, header); err != nil {
		return nil, fmt.Errorf("failed to read frame header: %w", err)
	}

	opCode := header[0] & 0x0f
	masked := header[1]&maskBit != 0

	length, err := readLength(bufrw, header[1]&0x7f)
	if err != nil {
		return nil, err
	}

	var mask []byte
	if masked {
		mask = make([]byte, 4)
		if _, err = io.ReadFull(bufrw, mask); err != nil {
			return nil, fmt.Errorf("failed to read mask: %w", err)
		}
	}

	payload := make([]byte, length)
	if _, err = io.ReadFull(bufrw, payload); err != nil {
		return nil, fmt.Errorf("failed to read payload: %w", err)
	}

	for i := range payload {
		if masked {
			payload[i] ^= mask[i%4]
		}
	}

	if opCode == opClose {
		return nil, errConnectionClosed
	}

	return payload, nil
}

func readLength(bufrw *bufio.ReadWriter, sizeMarker byte) (uint64, error) {
	switch sizeMarker {
	case 126:
		extended := make([]byte, 2)
		if _, err := io.ReadFull(bufrw, extended); err != nil {
			return 0, fmt.Errorf("failed to read extended length: %w", err)
		}
		return uint64(binary.BigEndian.Uint16(extended)), nil
	case 127:
		extended := make([]byte, 8)
		if _, err := io.ReadFull(bufrw, extended); err != nil {
			return 0, fmt.Errorf("failed to read extended length: %w", err)
		}
		return binary.BigEndian.Uint64(extended), nil
	default:
		return uint64(sizeMarker), nil
	}
}
