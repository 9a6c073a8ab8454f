package imagecheck

import (
	"bytes"
	"image"
	"image/png"
	"testing"
)

func FuzzValidate(f *testing.F) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		f.Fatalf("encode png: %v", err)
	}
	f.Add(buf.Bytes(), "PNG")
	f.Add(append([]byte(nil), pngSignature...), "PNG")
	f.Add(make([]byte, 64), "JPEG")
	f.Add([]byte("not an image"), "PNG")

	f.Fuzz(func(t *testing.T, data []byte, format string) {
		// Limit format to known tags to avoid "unsupported format" spam.
		known := map[string]bool{"PNG": true, "JPEG": true}
		if !known[format] {
			return
		}

		// Validation must never panic and must be deterministic for a
		// given buffer.
		first := Validate(data, Format(format))
		second := Validate(data, Format(format))
		if (first == nil) != (second == nil) {
			t.Fatalf("verdict changed between passes: %v vs %v", first, second)
		}
		if first != nil && first.Error() != second.Error() {
			t.Fatalf("message changed between passes: %q vs %q", first.Error(), second.Error())
		}
	})
}
