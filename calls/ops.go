package calls

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/wudi/pdfbridge/document"
	"github.com/wudi/pdfbridge/imagecheck"
)

// Creating a document takes no parameters; any payload is ignored.
func opCreateDocument(_ context.Context, m *Module, _ []byte) (interface{}, error) {
	handle := m.registry.put(document.New())
	return map[string]interface{}{"pdfDocumentHandle": handle}, nil
}

func opLoadFont(_ context.Context, m *Module, params []byte) (interface{}, error) {
	var handle int64
	var handleSet bool
	var ttfPath string
	err := decodeFields(params, func(name string, value json.RawMessage) error {
		var err error
		switch name {
		case "pdfDocumentHandle":
			handle, err = asInt64(name, value)
			handleSet = err == nil
		case "ttfPath":
			ttfPath, err = asString(name, value)
		default:
			return errUnknownField(name)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	if !handleSet {
		return nil, errRequired("pdfDocumentHandle")
	}
	if ttfPath == "" {
		return nil, errRequired("ttfPath")
	}
	return m.borrow(handle, func(doc document.Document) (interface{}, error) {
		fontName, err := doc.LoadFont(ttfPath)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"fontName": fontName}, nil
	})
}

func opAddPage(_ context.Context, m *Module, params []byte) (interface{}, error) {
	var handle int64
	var handleSet bool
	var format, orientation string
	var width, height float64
	var widthSet, heightSet bool
	err := decodeFields(params, func(name string, value json.RawMessage) error {
		var err error
		switch name {
		case "pdfDocumentHandle":
			handle, err = asInt64(name, value)
			handleSet = err == nil
		case "format":
			format, err = asString(name, value)
		case "orientation":
			orientation, err = asString(name, value)
		case "width":
			var n int64
			n, err = asInt64(name, value)
			width, widthSet = float64(n), err == nil
		case "height":
			var n int64
			n, err = asInt64(name, value)
			height, heightSet = float64(n), err == nil
		default:
			return errUnknownField(name)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	if !handleSet {
		return nil, errRequired("pdfDocumentHandle")
	}

	// The two parameter sets are exclusive. A missing piece of one set is
	// reported as required unless the other set is complete; mixing pieces
	// of both sets is its own error.
	bothSized := widthSet && heightSet
	bothFormat := format != "" && orientation != ""
	if format == "" && !bothSized {
		return nil, errRequired("format")
	}
	if orientation == "" && !bothSized {
		return nil, errRequired("orientation")
	}
	if !widthSet && !bothFormat {
		return nil, errRequired("width")
	}
	if !heightSet && !bothFormat {
		return nil, errRequired("height")
	}
	if (format != "" || orientation != "") && (widthSet || heightSet) {
		return nil, errors.New("Invalid parameters, either both 'height' and 'width', or both 'format' and 'orientation' must be specified")
	}

	return m.borrow(handle, func(doc document.Document) (interface{}, error) {
		if format != "" {
			return nil, doc.AddPage(document.PageFormat(format), document.Orientation(orientation))
		}
		return nil, doc.AddPageSized(width, height)
	})
}

func opWriteText(_ context.Context, m *Module, params []byte) (interface{}, error) {
	var handle int64
	var handleSet bool
	var fontName, text string
	var textSet, xSet, ySet bool
	var x, y float64
	fontSize := -1.0
	var color document.Color
	err := decodeFields(params, func(name string, value json.RawMessage) error {
		var err error
		switch name {
		case "pdfDocumentHandle":
			handle, err = asInt64(name, value)
			handleSet = err == nil
		case "fontName":
			fontName, err = asString(name, value)
		case "fontSize":
			fontSize, err = asFloat(name, value)
		case "text":
			text, err = asString(name, value)
			textSet = err == nil
		case "x":
			x, err = asCoord(name, value)
			xSet = err == nil
		case "y":
			y, err = asCoord(name, value)
			ySet = err == nil
		case "color":
			color, err = asColor(value)
		default:
			return errUnknownField(name)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	if !handleSet {
		return nil, errRequired("pdfDocumentHandle")
	}
	if fontName == "" {
		return nil, errRequired("fontName")
	}
	if fontSize < 0 {
		return nil, errRequired("fontSize")
	}
	if !xSet {
		return nil, errRequired("x")
	}
	if !ySet {
		return nil, errRequired("y")
	}
	if !textSet || text == "" {
		return nil, errRequired("text")
	}
	return m.borrow(handle, func(doc document.Document) (interface{}, error) {
		opts := document.TextOptions{Font: fontName, FontSize: fontSize, Color: color}
		return nil, doc.WriteText(text, x, y, opts)
	})
}

func opWriteTextInsideRectangle(_ context.Context, m *Module, params []byte) (interface{}, error) {
	var handle int64
	var handleSet bool
	var fontName, text, align string
	var textSet bool
	fontSize := -1.0
	var color document.Color
	var box document.Box
	var leftSet, topSet, rightSet, bottomSet bool
	err := decodeFields(params, func(name string, value json.RawMessage) error {
		var err error
		switch name {
		case "pdfDocumentHandle":
			handle, err = asInt64(name, value)
			handleSet = err == nil
		case "fontName":
			fontName, err = asString(name, value)
		case "fontSize":
			fontSize, err = asFloat(name, value)
		case "text":
			text, err = asString(name, value)
			textSet = err == nil
		case "left":
			box.Left, err = asCoord(name, value)
			leftSet = err == nil
		case "top":
			box.Top, err = asCoord(name, value)
			topSet = err == nil
		case "right":
			box.Right, err = asCoord(name, value)
			rightSet = err == nil
		case "bottom":
			box.Bottom, err = asCoord(name, value)
			bottomSet = err == nil
		case "align":
			align, err = asString(name, value)
		case "color":
			color, err = asColor(value)
		default:
			return errUnknownField(name)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	if !handleSet {
		return nil, errRequired("pdfDocumentHandle")
	}
	if fontName == "" {
		return nil, errRequired("fontName")
	}
	if fontSize < 0 {
		return nil, errRequired("fontSize")
	}
	if !leftSet {
		return nil, errRequired("left")
	}
	if !topSet {
		return nil, errRequired("top")
	}
	if !rightSet {
		return nil, errRequired("right")
	}
	if !bottomSet {
		return nil, errRequired("bottom")
	}
	if !textSet || text == "" {
		return nil, errRequired("text")
	}
	if align == "" {
		return nil, errRequired("align")
	}
	return m.borrow(handle, func(doc document.Document) (interface{}, error) {
		opts := document.TextBoxOptions{
			Font:     fontName,
			FontSize: fontSize,
			Color:    color,
			Align:    document.Alignment(align),
		}
		return nil, doc.WriteTextBox(text, box, opts)
	})
}

func opDrawLine(_ context.Context, m *Module, params []byte) (interface{}, error) {
	var handle int64
	var handleSet bool
	var beginX, beginY, endX, endY float64
	var beginXSet, beginYSet, endXSet, endYSet bool
	lineWidth := 1.0
	var color document.Color
	err := decodeFields(params, func(name string, value json.RawMessage) error {
		var err error
		switch name {
		case "pdfDocumentHandle":
			handle, err = asInt64(name, value)
			handleSet = err == nil
		case "beginX":
			beginX, err = asCoord(name, value)
			beginXSet = err == nil
		case "beginY":
			beginY, err = asCoord(name, value)
			beginYSet = err == nil
		case "endX":
			endX, err = asCoord(name, value)
			endXSet = err == nil
		case "endY":
			endY, err = asCoord(name, value)
			endYSet = err == nil
		case "lineWidth":
			lineWidth, err = asFloat(name, value)
			if err == nil && lineWidth < 0 {
				err = errInvalidValue(name, value)
			}
		case "color":
			color, err = asColor(value)
		default:
			return errUnknownField(name)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	if !handleSet {
		return nil, errRequired("pdfDocumentHandle")
	}
	if !beginXSet {
		return nil, errRequired("beginX")
	}
	if !beginYSet {
		return nil, errRequired("beginY")
	}
	if !endXSet {
		return nil, errRequired("endX")
	}
	if !endYSet {
		return nil, errRequired("endY")
	}
	return m.borrow(handle, func(doc document.Document) (interface{}, error) {
		opts := document.LineOptions{LineWidth: lineWidth, Color: color}
		return nil, doc.DrawLine(beginX, beginY, endX, endY, opts)
	})
}

func opDrawRectangle(_ context.Context, m *Module, params []byte) (interface{}, error) {
	var handle int64
	var handleSet bool
	var x, y, width, height float64
	var xSet, ySet, widthSet, heightSet bool
	lineWidth := 1.0
	var color document.Color
	err := decodeFields(params, func(name string, value json.RawMessage) error {
		var err error
		switch name {
		case "pdfDocumentHandle":
			handle, err = asInt64(name, value)
			handleSet = err == nil
		case "x":
			x, err = asCoord(name, value)
			xSet = err == nil
		case "y":
			y, err = asCoord(name, value)
			ySet = err == nil
		case "width":
			width, err = asCoord(name, value)
			widthSet = err == nil
		case "height":
			height, err = asCoord(name, value)
			heightSet = err == nil
		case "lineWidth":
			lineWidth, err = asFloat(name, value)
			if err == nil && lineWidth < 0 {
				err = errInvalidValue(name, value)
			}
		case "color":
			color, err = asColor(value)
		default:
			return errUnknownField(name)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	if !handleSet {
		return nil, errRequired("pdfDocumentHandle")
	}
	if !xSet {
		return nil, errRequired("x")
	}
	if !ySet {
		return nil, errRequired("y")
	}
	if !widthSet {
		return nil, errRequired("width")
	}
	if !heightSet {
		return nil, errRequired("height")
	}
	return m.borrow(handle, func(doc document.Document) (interface{}, error) {
		opts := document.RectOptions{LineWidth: lineWidth, Color: color}
		return nil, doc.DrawRect(x, y, width, height, opts)
	})
}

func opDrawImage(_ context.Context, m *Module, params []byte) (interface{}, error) {
	var handle int64
	var handleSet bool
	var x, y, width, height float64
	var xSet, ySet, widthSet, heightSet bool
	var imageHex, imageFormat string
	err := decodeFields(params, func(name string, value json.RawMessage) error {
		var err error
		switch name {
		case "pdfDocumentHandle":
			handle, err = asInt64(name, value)
			handleSet = err == nil
		case "x":
			x, err = asCoord(name, value)
			xSet = err == nil
		case "y":
			y, err = asCoord(name, value)
			ySet = err == nil
		case "width":
			width, err = asCoord(name, value)
			widthSet = err == nil
		case "height":
			height, err = asCoord(name, value)
			heightSet = err == nil
		case "imageHex":
			imageHex, err = asString(name, value)
		case "imageFormat":
			imageFormat, err = asString(name, value)
		default:
			return errUnknownField(name)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	if !handleSet {
		return nil, errRequired("pdfDocumentHandle")
	}
	if !xSet {
		return nil, errRequired("x")
	}
	if !ySet {
		return nil, errRequired("y")
	}
	if !widthSet {
		return nil, errRequired("width")
	}
	if !heightSet {
		return nil, errRequired("height")
	}
	if imageHex == "" {
		return nil, errRequired("imageHex")
	}
	if imageFormat == "" {
		return nil, errRequired("imageFormat")
	}

	var format imagecheck.Format
	switch imageFormat {
	case "PNG":
		format = imagecheck.FormatPNG
	case "JPEG":
		format = imagecheck.FormatJPEG
	default:
		return nil, fmt.Errorf("Invalid 'imageFormat' specified: [%s]", imageFormat)
	}
	data, err := hex.DecodeString(imageHex)
	if err != nil {
		return nil, fmt.Errorf("Invalid 'imageHex' parameter specified: [%v]", err)
	}

	return m.borrow(handle, func(doc document.Document) (interface{}, error) {
		return nil, doc.DrawImage(data, format, x, y, width, height)
	})
}

func opWriteMarkdown(_ context.Context, m *Module, params []byte) (interface{}, error) {
	var handle int64
	var handleSet bool
	var markdown, fontName string
	var markdownSet bool
	var fontSize float64
	err := decodeFields(params, func(name string, value json.RawMessage) error {
		var err error
		switch name {
		case "pdfDocumentHandle":
			handle, err = asInt64(name, value)
			handleSet = err == nil
		case "markdown":
			markdown, err = asString(name, value)
			markdownSet = err == nil
		case "fontName":
			fontName, err = asString(name, value)
		case "fontSize":
			fontSize, err = asFloat(name, value)
			if err == nil && fontSize < 0 {
				err = errInvalidValue(name, value)
			}
		default:
			return errUnknownField(name)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	if !handleSet {
		return nil, errRequired("pdfDocumentHandle")
	}
	if !markdownSet {
		return nil, errRequired("markdown")
	}
	return m.borrow(handle, func(doc document.Document) (interface{}, error) {
		opts := document.MarkdownOptions{Font: fontName, FontSize: fontSize}
		return nil, doc.RenderMarkdown(markdown, opts)
	})
}

func opSaveToFile(_ context.Context, m *Module, params []byte) (interface{}, error) {
	var handle int64
	var handleSet bool
	var path string
	err := decodeFields(params, func(name string, value json.RawMessage) error {
		var err error
		switch name {
		case "pdfDocumentHandle":
			handle, err = asInt64(name, value)
			handleSet = err == nil
		case "path":
			path, err = asString(name, value)
		default:
			return errUnknownField(name)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	if !handleSet {
		return nil, errRequired("pdfDocumentHandle")
	}
	if path == "" {
		return nil, errRequired("path")
	}
	return m.borrow(handle, func(doc document.Document) (interface{}, error) {
		return nil, doc.SaveFile(path)
	})
}

func opDestroyDocument(_ context.Context, m *Module, params []byte) (interface{}, error) {
	var handle int64
	var handleSet bool
	err := decodeFields(params, func(name string, value json.RawMessage) error {
		var err error
		switch name {
		case "pdfDocumentHandle":
			handle, err = asInt64(name, value)
			handleSet = err == nil
		default:
			return errUnknownField(name)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	if !handleSet {
		return nil, errRequired("pdfDocumentHandle")
	}
	doc, err := m.registry.checkout(handle)
	if err != nil {
		return nil, err
	}
	return nil, doc.Close()
}
