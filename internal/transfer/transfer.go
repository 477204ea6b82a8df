// Package transfer implements value transfer between devices. A source is
// anything Readable, a sink anything Writable, and the Copy driver moves
// values between them without knowing what either one is. A single device
// may be both.
package transfer

import (
	"errors"
	"fmt"
)

// ErrEndOfInput is returned by a Readable that has no more values.
var ErrEndOfInput = errors.New("end of input")

// Readable produces one value per call.
type Readable interface {
	Read() (int, error)
}

// Writable consumes one value per call.
type Writable interface {
	Write(v int) error
}

// ReadWriter is a combined device satisfying both capabilities.
type ReadWriter interface {
	Readable
	Writable
}

// Copy reads n values from src and writes each to dst, in order. It returns
// the number of values fully transferred. n = 0 performs no operations.
func Copy(dst Writable, src Readable, n int) (int, error) {
	for i := 0; i < n; i++ {
		v, err := src.Read()
		if err != nil {
			return i, fmt.Errorf("reading value %d: %w", i, err)
		}
		if err := dst.Write(v); err != nil {
			return i, fmt.Errorf("writing value %d: %w", i, err)
		}
	}
	return n, nil
}

// CopyAll transfers values until src reports ErrEndOfInput. A clean end of
// input is not an error.
func CopyAll(dst Writable, src Readable) (int, error) {
	copied := 0
	for {
		v, err := src.Read()
		if errors.Is(err, ErrEndOfInput) {
			return copied, nil
		}
		if err != nil {
			return copied, fmt.Errorf("reading value %d: %w", copied, err)
		}
		if err := dst.Write(v); err != nil {
			return copied, fmt.Errorf("writing value %d: %w", copied, err)
		}
		copied++
	}
}
