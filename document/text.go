package document

import "fmt"

// TextOptions configures text placement.
type TextOptions struct {
	Font     string
	FontSize float64
	Color    Color
}

// Alignment controls horizontal text alignment inside a box.
type Alignment string

const (
	AlignLeft    Alignment = "LEFT"
	AlignRight   Alignment = "RIGHT"
	AlignCenter  Alignment = "CENTER"
	AlignJustify Alignment = "JUSTIFY"
)

// TextBoxOptions configures wrapped text placement.
type TextBoxOptions struct {
	Font     string
	FontSize float64
	Color    Color
	Align    Alignment
}

// lineSpacing is the line height multiplier for wrapped text.
const lineSpacing = 1.2

func alignCode(align Alignment) (string, error) {
	switch align {
	case AlignLeft, "":
		return "L", nil
	case AlignRight:
		return "R", nil
	case AlignCenter:
		return "C", nil
	case AlignJustify:
		return "J", nil
	}
	return "", fmt.Errorf("Invalid 'align' parameter specified, value: [%s]", align)
}

func (d *documentImpl) WriteText(text string, x, y float64, opts TextOptions) error {
	if err := d.ready(); err != nil {
		return err
	}
	d.pdf.SetFont(opts.Font, "", opts.FontSize)
	if err := d.flush(); err != nil {
		return err
	}
	d.pdf.SetTextColor(opts.Color.rgb255())
	d.pdf.Text(x, d.baselineY(y), d.encode(opts.Font, text))
	return d.flush()
}

func (d *documentImpl) WriteTextBox(text string, box Box, opts TextBoxOptions) error {
	if err := d.ready(); err != nil {
		return err
	}
	if err := box.validate(); err != nil {
		return err
	}
	align, err := alignCode(opts.Align)
	if err != nil {
		return err
	}
	d.pdf.SetFont(opts.Font, "", opts.FontSize)
	if err := d.flush(); err != nil {
		return err
	}
	d.pdf.SetTextColor(opts.Color.rgb255())
	d.pdf.SetXY(box.Left, d.baselineY(box.Top))
	d.pdf.MultiCell(box.Right-box.Left, opts.FontSize*lineSpacing, d.encode(opts.Font, text), "", align, false)
	return d.flush()
}
