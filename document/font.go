package document

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"seehuhn.de/go/sfnt"
)

func (d *documentImpl) LoadFont(path string) (string, error) {
	if d.closed {
		return "", ErrClosed
	}
	if d.saved {
		return "", ErrSaved
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("cannot read font file, path: [%s]: %w", path, err)
	}
	name, err := d.LoadFontBytes(data)
	if err != nil {
		return "", fmt.Errorf("cannot load font file, path: [%s]: %w", path, err)
	}
	return name, nil
}

// LoadFontBytes parses data as an OpenType/TrueType font, derives its
// PostScript name and embeds it under that name. The font must carry glyf
// outlines; CFF-flavored OpenType is rejected before the engine sees it.
func (d *documentImpl) LoadFontBytes(data []byte) (string, error) {
	if d.closed {
		return "", ErrClosed
	}
	if d.saved {
		return "", ErrSaved
	}
	info, err := sfnt.Read(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("invalid TrueType font: %w", err)
	}
	if !info.IsGlyf() {
		return "", errors.New("invalid TrueType font: no glyf outlines in font")
	}
	name := info.PostScriptName()
	if name == "" {
		return "", errors.New("invalid TrueType font: empty PostScript name")
	}
	d.pdf.AddUTF8FontFromBytes(name, "", data)
	if err := d.flush(); err != nil {
		return "", err
	}
	d.utf8Fonts[strings.ToLower(name)] = true
	return name, nil
}
