package imagecheck

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
)

// pngSignature is the 8-byte magic prefix of every PNG stream.
var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// ValidatePNG proves that data holds a structurally well-formed PNG stream
// by decoding every row of it. The buffer is borrowed read-only; on success
// the caller may hand the same bytes to the PDF image loader unchanged.
func ValidatePNG(data []byte) error {
	if len(data) < len(pngSignature) || !bytes.Equal(data[:len(pngSignature)], pngSignature) {
		return ErrInvalidSignature
	}

	cfg, err := decodePNGConfig(bytes.NewReader(data))
	if err != nil {
		return pngDecodeError(err.Error())
	}
	if err := checkPNGWidth(cfg.Width); err != nil {
		return err
	}

	src := newByteSource(data)
	if err := decodePNG(src); err != nil {
		if src.shortfall != "" {
			return pngDecodeError(src.shortfall)
		}
		return pngDecodeError(err.Error())
	}
	return nil
}

// decodePNGConfig parses the stream header only, enough to learn the
// declared dimensions without allocating pixel memory.
func decodePNGConfig(r io.Reader) (cfg image.Config, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("decoder panic: %v", p)
		}
	}()
	return png.DecodeConfig(r)
}

// decodePNG is the one frame a decoder failure unwinds to. It owns no
// resources, so recovering here cannot leak anything; it reduces every
// outcome to a returned error.
func decodePNG(src *byteSource) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("decoder panic: %v", p)
		}
	}()
	_, err = png.Decode(src)
	return err
}
