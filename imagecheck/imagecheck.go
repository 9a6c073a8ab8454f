// Package imagecheck proves that in-memory PNG and JPEG buffers are
// structurally well-formed before they reach the PDF image loader. The
// loader itself performs no validation, so a malformed buffer must be
// rejected here, while the buffer is still just bytes and long before a
// viewer opens the produced document.
//
// Validation fully decodes the image, every row of it. The input buffer is
// borrowed read-only for the duration of the call and never retained;
// validators keep no state between calls and are safe for concurrent use.
package imagecheck

import (
	"fmt"

	"github.com/h2non/filetype"
)

// Format tags the declared encoding of an image buffer.
type Format string

const (
	FormatPNG  Format = "PNG"
	FormatJPEG Format = "JPEG"
)

// validators maps a declared format tag to its checker. Selection happens
// before any decoder runs, so an unknown tag never touches the data.
var validators = map[Format]func([]byte) error{
	FormatPNG:  ValidatePNG,
	FormatJPEG: ValidateJPEG,
}

// formatExtensions maps a format tag to the extension the content sniffer
// reports for it.
var formatExtensions = map[Format]string{
	FormatPNG:  "png",
	FormatJPEG: "jpg",
}

// Validate checks that data is a structurally well-formed image of the
// declared format. A nil error means the buffer decoded completely and may
// be embedded as-is. Failures carry the declared format's diagnostic and,
// when the bytes confidently sniff as some other known type, a hint naming
// the detected content.
func Validate(data []byte, format Format) error {
	check, ok := validators[format]
	if !ok {
		return fmt.Errorf("%w: [%s]", ErrUnsupportedFormat, format)
	}
	if err := check(data); err != nil {
		return withContentHint(err, data, format)
	}
	return nil
}

// withContentHint appends the sniffed content type to a validation failure.
// The sniff runs only on the failure path and only changes the message when
// the detected type differs from the declared one.
func withContentHint(err error, data []byte, declared Format) error {
	kind, matchErr := filetype.Match(data)
	if matchErr != nil || kind == filetype.Unknown {
		return err
	}
	if kind.Extension == formatExtensions[declared] {
		return err
	}
	return fmt.Errorf("%w, detected content type: [%s]", err, kind.Extension)
}
