package signer

import "fmt"

// PadScalar left-pads the big-endian magnitude b with zero bytes to exactly
// size bytes. Values longer than size are rejected rather than truncated.
func PadScalar(b []byte, size int) ([]byte, error) {
	if len(b) > size {
		return nil, fmt.Errorf("%w: %d bytes, limit is %d", ErrOversizedScalar, len(b), size)
	}
	padded := make([]byte, size)
	copy(padded[size-len(b):], b)
	return padded, nil
}
