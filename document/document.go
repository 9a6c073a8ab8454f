// Package document assembles PDF documents: pages, text, vector drawing,
// TrueType fonts, validated raster images and markdown flows. Coordinates
// on the public surface use a bottom-left origin in points.
package document

import (
	"errors"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/wudi/pdfbridge/imagecheck"
)

var (
	// ErrNoPage reports a content operation on a document without pages.
	ErrNoPage = errors.New("PDF generation error, cannot access current page, please add at least one page to the document first")

	// ErrSaved reports an operation on a document already written to file.
	ErrSaved = errors.New("PDF document has already been saved to file")

	// ErrClosed reports an operation on a destroyed document.
	ErrClosed = errors.New("PDF document has already been destroyed")
)

// Document is an in-progress PDF. Implementations are not safe for
// concurrent use; callers serialize access per document.
type Document interface {
	// AddPage appends a page of a standard format.
	AddPage(format PageFormat, orientation Orientation) error
	// AddPageSized appends a page with explicit dimensions in points.
	AddPageSized(width, height float64) error
	// LoadFont embeds a TrueType font file and returns the name to use
	// in text options.
	LoadFont(path string) (string, error)
	// LoadFontBytes embeds an in-memory TrueType font.
	LoadFontBytes(data []byte) (string, error)
	// WriteText places a single line of text with its baseline at (x, y).
	WriteText(text string, x, y float64, opts TextOptions) error
	// WriteTextBox wraps text inside a rectangle.
	WriteTextBox(text string, box Box, opts TextBoxOptions) error
	// DrawLine strokes a straight line between two points.
	DrawLine(x1, y1, x2, y2 float64, opts LineOptions) error
	// DrawRect strokes a rectangle anchored at its bottom-left corner.
	DrawRect(x, y, width, height float64, opts RectOptions) error
	// DrawImage validates and places a raster image anchored at its
	// bottom-left corner.
	DrawImage(data []byte, format imagecheck.Format, x, y, width, height float64) error
	// RenderMarkdown flows markdown source onto the current page,
	// breaking onto new pages as needed.
	RenderMarkdown(source string, opts MarkdownOptions) error
	// SaveFile writes the document to path and finalizes it. A saved
	// document accepts no further content.
	SaveFile(path string) error
	// PageCount reports the number of pages added so far.
	PageCount() int
	// PageSize reports the current page dimensions in points.
	PageSize() (width, height float64)
	// Close releases the document. Further operations fail.
	Close() error
}

type documentImpl struct {
	pdf       *fpdf.Fpdf
	saved     bool
	closed    bool
	utf8Fonts map[string]bool
	translate func(string) string
}

// New creates an empty document with compression enabled and no pages.
func New() Document {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetCompression(true)
	pdf.SetAutoPageBreak(false, 0)
	return &documentImpl{pdf: pdf, utf8Fonts: make(map[string]bool)}
}

// ready gates content operations: the document must be open, unsaved and
// hold at least one page.
func (d *documentImpl) ready() error {
	if d.closed {
		return ErrClosed
	}
	if d.saved {
		return ErrSaved
	}
	if d.pdf.PageNo() == 0 {
		return ErrNoPage
	}
	return nil
}

// flush surfaces and clears the engine's sticky error so one rejected
// operation does not poison the rest of the document.
func (d *documentImpl) flush() error {
	if d.pdf.Err() {
		err := d.pdf.Error()
		d.pdf.ClearError()
		return err
	}
	return nil
}

// encode prepares text for the given font. Fonts embedded through LoadFont
// take UTF-8 directly; the builtin core fonts need a codepage translation
// for anything beyond ASCII.
func (d *documentImpl) encode(font, text string) string {
	if d.utf8Fonts[strings.ToLower(font)] {
		return text
	}
	ascii := true
	for i := 0; i < len(text); i++ {
		if text[i] >= 0x80 {
			ascii = false
			break
		}
	}
	if ascii {
		return text
	}
	if d.translate == nil {
		d.translate = d.pdf.UnicodeTranslatorFromDescriptor("")
	}
	return d.translate(text)
}

func (d *documentImpl) SaveFile(path string) error {
	if d.closed {
		return ErrClosed
	}
	if d.saved {
		return ErrSaved
	}
	if err := d.pdf.OutputFileAndClose(path); err != nil {
		return err
	}
	d.saved = true
	return nil
}

func (d *documentImpl) PageCount() int {
	return d.pdf.PageNo()
}

func (d *documentImpl) PageSize() (float64, float64) {
	return d.pdf.GetPageSize()
}

func (d *documentImpl) Close() error {
	if d.closed {
		return ErrClosed
	}
	d.closed = true
	return nil
}
