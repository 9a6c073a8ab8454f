package imagecheck

import "fmt"

// maxPNGWidth caps the decoded PNG width to avoid oversized row-buffer
// allocations when a header lies about image size. Height is deliberately
// left uncapped; row decoding is incremental and bounded by the buffer.
const maxPNGWidth = 1 << 16

func checkPNGWidth(width int) error {
	if width > maxPNGWidth {
		return &DecodeError{
			Format:  FormatPNG,
			Message: fmt.Sprintf("PNG error, invalid image width: [%d]", width),
		}
	}
	return nil
}
