package rvg

import (
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// compressionLevel is used for every file written.
const compressionLevel = zlib.BestCompression

// newCompressor wraps w in a zlib writer. The caller must Close it to
// flush the stream trailer.
func newCompressor(w io.Writer) (io.WriteCloser, error) {
	zw, err := zlib.NewWriterLevel(w, compressionLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: creating writer: %v", ErrCompression, err)
	}
	return zw, nil
}

// decompressAll inflates the whole stream from r into memory. A stream
// that stops early matches both ErrCompression and ErrUnexpectedEOF.
func decompressAll(r io.Reader) ([]byte, error) {
	zr, err := zlib.NewReader(r)
	if err != nil {
		return nil, inflateError("opening stream", err)
	}
	defer zr.Close()

	data, err := io.ReadAll(zr)
	if err != nil {
		return nil, inflateError("inflating", err)
	}
	return data, nil
}

func inflateError(what string, err error) error {
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %w: %s", ErrCompression, ErrUnexpectedEOF, what)
	}
	return fmt.Errorf("%w: %s: %v", ErrCompression, what, err)
}
