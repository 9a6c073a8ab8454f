package imagecheck

import (
	"fmt"
	"io"
)

// readChunkSize bounds how many bytes a single Read hands to the decoder.
// Decoding through a fixed-size window exercises the decoder's resume path
// on every image instead of only on pathological inputs.
const readChunkSize = 1024

// byteSource feeds a decoder from an in-memory buffer, at most
// readChunkSize bytes per call. When the decoder asks for bytes after the
// buffer is exhausted, the shortfall is recorded so the final diagnostic
// can state what was requested versus what was available. The buffer is
// only read, never written or retained.
type byteSource struct {
	data      []byte
	off       int
	shortfall string
}

func newByteSource(data []byte) *byteSource {
	return &byteSource{data: data}
}

func (s *byteSource) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if s.off >= len(s.data) {
		if s.shortfall == "" {
			s.shortfall = fmt.Sprintf(
				"not enough data in input PNG buffer, bytes requested: [%d], read actual: [0], already read: [%d]",
				len(p), s.off)
		}
		return 0, io.EOF
	}
	n := len(s.data) - s.off
	if n > readChunkSize {
		n = readChunkSize
	}
	if n > len(p) {
		n = len(p)
	}
	copy(p, s.data[s.off:s.off+n])
	s.off += n
	return n, nil
}
