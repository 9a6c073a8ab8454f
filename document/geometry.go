package document

import (
	"fmt"

	"github.com/go-pdf/fpdf"
)

// PageFormat names a standard paper size.
type PageFormat string

const (
	A3 PageFormat = "A3"
	A4 PageFormat = "A4"
	A5 PageFormat = "A5"
	B4 PageFormat = "B4"
	B5 PageFormat = "B5"
)

// Orientation selects which way a standard page format is turned.
type Orientation string

const (
	Portrait  Orientation = "PORTRAIT"
	Landscape Orientation = "LANDSCAPE"
)

// pageSizes holds portrait dimensions in points. B4 and B5 are the ISO
// sizes, which the underlying engine does not ship built in.
var pageSizes = map[PageFormat]fpdf.SizeType{
	A3: {Wd: 841.89, Ht: 1190.55},
	A4: {Wd: 595.28, Ht: 841.89},
	A5: {Wd: 419.53, Ht: 595.28},
	B4: {Wd: 708.66, Ht: 1000.63},
	B5: {Wd: 498.90, Ht: 708.66},
}

// Page dimension bounds in points, matching the limits common PDF viewers
// accept.
const (
	minPageDimension = 3
	maxPageDimension = 14400
)

func pageSize(format PageFormat) (fpdf.SizeType, error) {
	size, ok := pageSizes[format]
	if !ok {
		return fpdf.SizeType{}, fmt.Errorf("Unsupported PDF page format specified, format: [%s]", format)
	}
	return size, nil
}

func orientationCode(orientation Orientation) (string, error) {
	switch orientation {
	case Portrait:
		return "P", nil
	case Landscape:
		return "L", nil
	}
	return "", fmt.Errorf("Unsupported PDF page orientation specified, orientation: [%s]", orientation)
}

func (d *documentImpl) AddPage(format PageFormat, orientation Orientation) error {
	if d.closed {
		return ErrClosed
	}
	if d.saved {
		return ErrSaved
	}
	size, err := pageSize(format)
	if err != nil {
		return err
	}
	orient, err := orientationCode(orientation)
	if err != nil {
		return err
	}
	d.pdf.AddPageFormat(orient, size)
	return d.flush()
}

func (d *documentImpl) AddPageSized(width, height float64) error {
	if d.closed {
		return ErrClosed
	}
	if d.saved {
		return ErrSaved
	}
	if width < minPageDimension || width > maxPageDimension ||
		height < minPageDimension || height > maxPageDimension {
		return fmt.Errorf("invalid page size, width: [%g], height: [%g]", width, height)
	}
	d.pdf.AddPageFormat("P", fpdf.SizeType{Wd: width, Ht: height})
	return d.flush()
}

// Box is a rectangle given by its edges in page coordinates, bottom-left
// origin, so Top > Bottom for a non-empty box.
type Box struct {
	Left, Top, Right, Bottom float64
}

func (b Box) validate() error {
	if b.Right <= b.Left || b.Top <= b.Bottom {
		return fmt.Errorf("invalid rectangle, left: [%g], top: [%g], right: [%g], bottom: [%g]",
			b.Left, b.Top, b.Right, b.Bottom)
	}
	return nil
}

// baselineY converts a bottom-left baseline coordinate to the engine's
// top-left origin.
func (d *documentImpl) baselineY(y float64) float64 {
	_, pageH := d.pdf.GetPageSize()
	return pageH - y
}

// boxTop converts the bottom-left anchor of a box of the given height to
// the engine's top edge coordinate.
func (d *documentImpl) boxTop(y, height float64) float64 {
	_, pageH := d.pdf.GetPageSize()
	return pageH - y - height
}
