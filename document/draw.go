package document

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"

	"github.com/go-pdf/fpdf"

	"github.com/wudi/pdfbridge/imagecheck"
)

// LineOptions configures line drawing. A zero LineWidth keeps the engine's
// current width; the zero Color strokes black.
type LineOptions struct {
	LineWidth float64
	Color     Color
}

// RectOptions configures rectangle drawing. Rectangles are stroked, not
// filled; the zero Color strokes black.
type RectOptions struct {
	LineWidth float64
	Color     Color
}

func (d *documentImpl) DrawLine(x1, y1, x2, y2 float64, opts LineOptions) error {
	if err := d.ready(); err != nil {
		return err
	}
	if opts.LineWidth > 0 {
		d.pdf.SetLineWidth(opts.LineWidth)
	}
	d.pdf.SetDrawColor(opts.Color.rgb255())
	d.pdf.Line(x1, d.baselineY(y1), x2, d.baselineY(y2))
	return d.flush()
}

func (d *documentImpl) DrawRect(x, y, width, height float64, opts RectOptions) error {
	if err := d.ready(); err != nil {
		return err
	}
	if opts.LineWidth > 0 {
		d.pdf.SetLineWidth(opts.LineWidth)
	}
	d.pdf.SetDrawColor(opts.Color.rgb255())
	d.pdf.Rect(x, d.boxTop(y, height), width, height, "D")
	return d.flush()
}

// DrawImage validates data as the declared format, then places it. The
// stream is embedded once per distinct content; placing the same bytes
// again reuses the stored object.
func (d *documentImpl) DrawImage(data []byte, format imagecheck.Format, x, y, width, height float64) error {
	if err := d.ready(); err != nil {
		return err
	}
	if err := imagecheck.Validate(data, format); err != nil {
		return err
	}
	opt := fpdf.ImageOptions{ImageType: string(format)}
	name := imageName(data)
	d.pdf.RegisterImageOptionsReader(name, opt, bytes.NewReader(data))
	if err := d.flush(); err != nil {
		return err
	}
	d.pdf.ImageOptions(name, x, d.boxTop(y, height), width, height, false, opt, 0, "")
	return d.flush()
}

// imageName derives a stable resource name from the image bytes, so equal
// content shares one embedded stream.
func imageName(data []byte) string {
	sum := sha256.Sum256(data)
	return "img" + hex.EncodeToString(sum[:8])
}
