package document

import (
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func TestLoadFontBytes(t *testing.T) {
	d := newTestDocument(t)
	name, err := d.LoadFontBytes(goregular.TTF)
	if err != nil {
		t.Fatalf("load font: %v", err)
	}
	if name == "" {
		t.Fatalf("empty font name")
	}

	addA4(t, d)
	if err := d.WriteText("loaded font text", 50, 700, TextOptions{Font: name, FontSize: 12}); err != nil {
		t.Fatalf("write with loaded font: %v", err)
	}
}

func TestLoadFontBytesGarbage(t *testing.T) {
	d := newTestDocument(t)
	_, err := d.LoadFontBytes([]byte("definitely not a font"))
	if err == nil || !strings.Contains(err.Error(), "invalid TrueType font") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadFontMissingFile(t *testing.T) {
	d := newTestDocument(t)
	path := filepath.Join(t.TempDir(), "missing.ttf")
	_, err := d.LoadFont(path)
	if err == nil || !strings.Contains(err.Error(), path) {
		t.Fatalf("expected path in error, got %v", err)
	}
}
