// Package termmd renders Markdown replies as styled terminal text.
//
// Supported: emphasis, strikethrough, inline and fenced code, headings,
// ordered and bullet lists, task lists, blockquotes, links and GFM tables.
// Anything else falls back to its plain text.
package termmd

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

var (
	boldStyle    = lipgloss.NewStyle().Bold(true)
	italicStyle  = lipgloss.NewStyle().Italic(true)
	strikeStyle  = lipgloss.NewStyle().Strikethrough(true)
	codeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	headingStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	linkStyle    = lipgloss.NewStyle().Underline(true)
	urlStyle     = lipgloss.NewStyle().Faint(true)
	quoteStyle   = lipgloss.NewStyle().Faint(true)
)

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Render converts Markdown into styled text without trailing blank lines.
func Render(markdown string) string {
	source := []byte(markdown)
	doc := md.Parser().Parse(text.NewReader(source))

	r := &renderer{source: source}
	r.children(doc)
	return strings.TrimRight(r.buf.String(), "\n ")
}

type renderer struct {
	source []byte
	buf    bytes.Buffer
	depth  int
}

func (r *renderer) children(n ast.Node) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		r.block(c)
	}
}

func (r *renderer) block(node ast.Node) {
	switch n := node.(type) {
	case *ast.Heading:
		r.buf.WriteString(headingStyle.Render(r.inlineString(n)))
		r.buf.WriteString("\n\n")

	case *ast.Paragraph:
		r.buf.WriteString(r.inlineString(n))
		r.buf.WriteString("\n\n")

	case *ast.TextBlock:
		r.buf.WriteString(r.inlineString(n))
		r.buf.WriteString("\n")

	case *ast.Blockquote:
		sub := &renderer{source: r.source}
		sub.children(n)
		for _, line := range strings.Split(strings.TrimRight(sub.buf.String(), "\n "), "\n") {
			r.buf.WriteString(quoteStyle.Render("│ " + line))
			r.buf.WriteByte('\n')
		}
		r.buf.WriteByte('\n')

	case *ast.List:
		r.list(n)

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		r.codeLines(node)
		r.buf.WriteByte('\n')

	case *ast.ThematicBreak:
		r.buf.WriteString(urlStyle.Render(strings.Repeat("─", 10)))
		r.buf.WriteString("\n\n")

	case *ast.HTMLBlock:
		r.rawLines(n)
		r.buf.WriteByte('\n')

	case *east.Table:
		r.table(n)

	default:
		if node.HasChildren() {
			r.children(node)
		}
	}
}

func (r *renderer) codeLines(n ast.Node) {
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		line := strings.TrimRight(string(seg.Value(r.source)), "\n")
		r.buf.WriteString("  ")
		r.buf.WriteString(codeStyle.Render(line))
		r.buf.WriteByte('\n')
	}
}

func (r *renderer) rawLines(n ast.Node) {
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		r.buf.Write(seg.Value(r.source))
	}
}

// inlineString renders the inline children of n.
func (r *renderer) inlineString(n ast.Node) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		b.WriteString(r.inline(c))
	}
	return b.String()
}

func (r *renderer) inline(node ast.Node) string {
	switch n := node.(type) {
	case *ast.Text:
		s := string(n.Segment.Value(r.source))
		if n.SoftLineBreak() || n.HardLineBreak() {
			s += "\n"
		}
		return s

	case *ast.String:
		return string(n.Value)

	case *ast.Emphasis:
		inner := r.inlineString(n)
		if n.Level == 2 {
			return boldStyle.Render(inner)
		}
		return italicStyle.Render(inner)

	case *ast.CodeSpan:
		return codeStyle.Render(r.plain(n))

	case *ast.Link:
		label := r.inlineString(n)
		dest := string(n.Destination)
		if r.plain(n) == dest {
			return linkStyle.Render(dest)
		}
		return linkStyle.Render(label) + " " + urlStyle.Render("("+dest+")")

	case *ast.AutoLink:
		return linkStyle.Render(string(n.URL(r.source)))

	case *ast.Image:
		alt := r.plain(n)
		if alt == "" {
			alt = "image"
		}
		return fmt.Sprintf("[%s] %s", alt, urlStyle.Render(string(n.Destination)))

	case *ast.RawHTML:
		var b strings.Builder
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			b.Write(seg.Value(r.source))
		}
		return b.String()

	case *east.Strikethrough:
		return strikeStyle.Render(r.inlineString(n))

	case *east.TaskCheckBox:
		if n.IsChecked {
			return "[x] "
		}
		return "[ ] "

	default:
		if node.HasChildren() {
			return r.inlineString(node)
		}
		return ""
	}
}

// plain returns the unstyled text content of a node tree.
func (r *renderer) plain(n ast.Node) string {
	var b strings.Builder
	var walk func(ast.Node)
	walk = func(node ast.Node) {
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			switch t := c.(type) {
			case *ast.Text:
				b.Write(t.Segment.Value(r.source))
			case *ast.String:
				b.Write(t.Value)
			default:
				walk(c)
			}
		}
	}
	walk(n)
	return b.String()
}

func (r *renderer) list(n *ast.List) {
	idx := 0
	if n.Start > 0 {
		idx = n.Start - 1
	}
	indent := strings.Repeat("  ", r.depth)

	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		item, ok := child.(*ast.ListItem)
		if !ok {
			continue
		}
		r.buf.WriteString(indent)
		if n.IsOrdered() {
			idx++
			fmt.Fprintf(&r.buf, "%d. ", idx)
		} else {
			r.buf.WriteString("• ")
		}
		r.listItem(item)
		r.buf.WriteByte('\n')
	}
	if r.depth == 0 {
		r.buf.WriteByte('\n')
	}
}

func (r *renderer) listItem(item *ast.ListItem) {
	first := true
	for c := item.FirstChild(); c != nil; c = c.NextSibling() {
		switch n := c.(type) {
		case *ast.Paragraph, *ast.TextBlock:
			if !first {
				r.buf.WriteByte('\n')
				r.buf.WriteString(strings.Repeat("  ", r.depth+1))
			}
			r.buf.WriteString(r.inlineString(n))
			first = false
		case *ast.List:
			r.buf.WriteByte('\n')
			r.depth++
			r.list(n)
			r.depth--
			// nested list already ended its last line
			r.buf.Truncate(len(bytes.TrimRight(r.buf.Bytes(), "\n")))
		default:
			r.block(c)
			first = false
		}
	}
}

// table prints each data row as a block of "header: value" lines.
func (r *renderer) table(t *east.Table) {
	var headers []string
	var rows [][]string

	for child := t.FirstChild(); child != nil; child = child.NextSibling() {
		var cells []string
		for cell := child.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, strings.TrimSpace(r.plain(cell)))
		}
		switch child.(type) {
		case *east.TableHeader:
			headers = cells
		case *east.TableRow:
			rows = append(rows, cells)
		}
	}

	for i, row := range rows {
		fmt.Fprintf(&r.buf, "%s\n", boldStyle.Render(fmt.Sprintf("%d.", i+1)))
		for j, cell := range row {
			name := fmt.Sprintf("Column %d", j+1)
			if j < len(headers) && headers[j] != "" {
				name = headers[j]
			}
			fmt.Fprintf(&r.buf, "• %s: %s\n", boldStyle.Render(name), cell)
		}
		r.buf.WriteByte('\n')
	}
}
