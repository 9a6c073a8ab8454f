package imagecheck

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"io"
)

// ValidateJPEG proves that data holds a well-formed JPEG stream by decoding
// every scanline of it. The buffer is bound directly as an in-memory source
// and is only read.
func ValidateJPEG(data []byte) error {
	if err := decodeJPEG(bytes.NewReader(data)); err != nil {
		return jpegDecodeError(err.Error())
	}
	return nil
}

// decodeJPEG mirrors decodePNG: the single resource-free frame that decoder
// failures unwind to.
func decodeJPEG(r io.Reader) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("decoder panic: %v", p)
		}
	}()
	_, err = jpeg.Decode(r)
	return err
}
