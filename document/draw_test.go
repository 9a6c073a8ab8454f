package document

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/wudi/pdfbridge/imagecheck"
)

func samplePNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func sampleJPEG(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	return buf.Bytes()
}

func TestDrawLineAndRect(t *testing.T) {
	d := newTestDocument(t)
	if err := d.DrawLine(0, 0, 100, 100, LineOptions{LineWidth: 2}); !errors.Is(err, ErrNoPage) {
		t.Fatalf("expected ErrNoPage, got %v", err)
	}
	addA4(t, d)
	if err := d.DrawLine(0, 0, 100, 100, LineOptions{LineWidth: 2}); err != nil {
		t.Fatalf("draw line: %v", err)
	}
	if err := d.DrawRect(50, 50, 200, 100, RectOptions{LineWidth: 1}); err != nil {
		t.Fatalf("draw rect: %v", err)
	}
	if err := d.DrawLine(0, 200, 100, 200, LineOptions{LineWidth: 0.5, Color: Color{B: 1}}); err != nil {
		t.Fatalf("draw colored line: %v", err)
	}
	if err := d.DrawRect(50, 300, 80, 40, RectOptions{Color: Color{R: 1}}); err != nil {
		t.Fatalf("draw colored rect: %v", err)
	}
}

func TestDrawImagePNG(t *testing.T) {
	d := newTestDocument(t)
	addA4(t, d)
	if err := d.DrawImage(samplePNG(t), imagecheck.FormatPNG, 10, 10, 100, 100); err != nil {
		t.Fatalf("draw png: %v", err)
	}
}

func TestDrawImageJPEG(t *testing.T) {
	d := newTestDocument(t)
	addA4(t, d)
	if err := d.DrawImage(sampleJPEG(t), imagecheck.FormatJPEG, 10, 10, 100, 100); err != nil {
		t.Fatalf("draw jpeg: %v", err)
	}
}

func TestDrawImageRejectsInvalid(t *testing.T) {
	d := newTestDocument(t)
	addA4(t, d)
	err := d.DrawImage(make([]byte, 100), imagecheck.FormatPNG, 10, 10, 100, 100)
	if !errors.Is(err, imagecheck.ErrInvalidSignature) {
		t.Fatalf("expected signature error, got %v", err)
	}
	// The declared format drives validation, not the actual content.
	err = d.DrawImage(sampleJPEG(t), imagecheck.FormatPNG, 10, 10, 100, 100)
	if !errors.Is(err, imagecheck.ErrInvalidSignature) {
		t.Fatalf("expected signature error for mislabeled jpeg, got %v", err)
	}
	// A rejected image leaves the document usable.
	if err := d.DrawImage(samplePNG(t), imagecheck.FormatPNG, 10, 10, 100, 100); err != nil {
		t.Fatalf("document unusable after rejected image: %v", err)
	}
}

func TestDrawImageReusesEqualContent(t *testing.T) {
	data := samplePNG(t)
	other := samplePNG(t)
	if imageName(data) != imageName(other) {
		t.Fatalf("equal content must share a resource name")
	}
	if imageName(data) == imageName(sampleJPEG(t)) {
		t.Fatalf("distinct content must not share a resource name")
	}

	d := newTestDocument(t)
	addA4(t, d)
	if err := d.DrawImage(data, imagecheck.FormatPNG, 10, 10, 50, 50); err != nil {
		t.Fatalf("first placement: %v", err)
	}
	if err := d.DrawImage(other, imagecheck.FormatPNG, 200, 200, 50, 50); err != nil {
		t.Fatalf("second placement: %v", err)
	}
}
