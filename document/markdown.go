package document

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownOptions configures markdown flow rendering. Zero values pick the
// package defaults.
type MarkdownOptions struct {
	Font     string
	FontSize float64
}

const (
	defaultMarkdownFont = "Helvetica"
	defaultMarkdownSize = 12.0
	markdownIndent      = 15.0
	markdownBreakMargin = 50.0
)

// RenderMarkdown parses source with goldmark and flows headings, paragraphs
// and lists onto the document, starting at the current position and page
// breaking automatically.
func (d *documentImpl) RenderMarkdown(source string, opts MarkdownOptions) error {
	if err := d.ready(); err != nil {
		return err
	}
	font := opts.Font
	if font == "" {
		font = defaultMarkdownFont
	}
	size := opts.FontSize
	if size <= 0 {
		size = defaultMarkdownSize
	}

	md := goldmark.New()
	src := []byte(source)
	root := md.Parser().Parse(text.NewReader(src))

	d.pdf.SetAutoPageBreak(true, markdownBreakMargin)
	defer d.pdf.SetAutoPageBreak(false, 0)

	r := &markdownRenderer{doc: d, font: font, size: size}
	r.walk(root, src, 0)
	return d.flush()
}

type markdownRenderer struct {
	doc  *documentImpl
	font string
	size float64
}

func (r *markdownRenderer) walk(node ast.Node, source []byte, depth int) {
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch n := child.(type) {
		case *ast.Heading:
			r.heading(n, source)
		case *ast.Paragraph:
			r.paragraph(n, source)
		case *ast.List:
			r.walk(n, source, depth)
		case *ast.ListItem:
			r.listItem(n, source, depth)
		}
	}
}

func (r *markdownRenderer) heading(n *ast.Heading, source []byte) {
	size := r.size * 2.0
	if n.Level == 2 {
		size = r.size * 1.5
	} else if n.Level >= 3 {
		size = r.size * 1.25
	}
	r.block(string(n.Text(source)), size, 0)
}

func (r *markdownRenderer) paragraph(n *ast.Paragraph, source []byte) {
	r.block(r.inline(n, source), r.size, 0)
}

func (r *markdownRenderer) listItem(n *ast.ListItem, source []byte, depth int) {
	var content string
	if child := n.FirstChild(); child != nil {
		if p, ok := child.(*ast.Paragraph); ok {
			content = r.inline(p, source)
		} else {
			content = string(child.Text(source))
		}
	}
	r.block("• "+content, r.size, markdownIndent*float64(depth+1))

	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if l, ok := child.(*ast.List); ok {
			r.walk(l, source, depth+1)
		}
	}
}

// block writes one wrapped text block at the given indent and advances the
// flow cursor.
func (r *markdownRenderer) block(content string, size, indent float64) {
	if content == "" {
		return
	}
	pdf := r.doc.pdf
	pdf.SetFont(r.font, "", size)
	pdf.SetTextColor(0, 0, 0)
	left, _, _, _ := pdf.GetMargins()
	pdf.SetX(left + indent)
	pdf.MultiCell(0, size*lineSpacing, r.doc.encode(r.font, content), "", "L", false)
}

// inline concatenates the text segments of a block node, collapsing soft
// line breaks to spaces. Emphasis, strong and code spans render as plain
// text for now.
func (r *markdownRenderer) inline(n ast.Node, source []byte) string {
	var sb strings.Builder
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if t, ok := child.(*ast.Text); ok {
			sb.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteByte(' ')
			}
			continue
		}
		sb.WriteString(string(child.Text(source)))
	}
	return sb.String()
}
