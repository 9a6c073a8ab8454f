package imagecheck

import "errors"

var (
	// ErrInvalidSignature reports that a buffer declared as PNG does not
	// start with the 8-byte PNG magic. The check runs before any decoder
	// state exists, so no decode diagnostics accompany it.
	ErrInvalidSignature = errors.New("invalid PNG signature")

	// ErrUnsupportedFormat reports a declared format tag with no registered
	// validator. It is a caller error, not a statement about the bytes.
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

// DecodeError reports a failure surfaced while decoding an image buffer:
// a malformed chunk, a short stream, a dimension over the ceiling, or an
// internal decoder fault. Message holds the complete diagnostic, including
// any byte-shortfall counters captured by the feeding source.
type DecodeError struct {
	Format  Format
	Message string
}

func (e *DecodeError) Error() string { return e.Message }

func pngDecodeError(msg string) *DecodeError {
	return &DecodeError{Format: FormatPNG, Message: "PNG read error, message: [" + msg + "]"}
}

func jpegDecodeError(msg string) *DecodeError {
	return &DecodeError{Format: FormatJPEG, Message: "JPEG read error, message: [" + msg + "]"}
}
