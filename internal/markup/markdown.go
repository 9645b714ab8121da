package markup

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	blankLines    = regexp.MustCompile(`\n[ \t]*\n(?:[ \t]*\n)+`)
	markdownChars = strings.NewReplacer(`\`, `\\`, "*", `\*`, "_", `\_`, "`", "\\`", "[", `\[`, "]", `\]`)
)

// Markdown converts the document to markdown for the terminal renderer.
// Images become a textual placeholder carrying their effective size.
func (d *Document) Markdown() string {
	c := &converter{images: make(map[*html.Node]*Image, len(d.images))}
	for _, img := range d.images {
		c.images[img.node] = img
	}
	var sb strings.Builder
	for _, n := range d.nodes {
		sb.WriteString(c.node(n))
	}
	out := blankLines.ReplaceAllString(sb.String(), "\n\n")
	return strings.TrimSpace(out)
}

type converter struct {
	images map[*html.Node]*Image
	pre    int
	depth  int
}

func (c *converter) children(n *html.Node) string {
	var sb strings.Builder
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		sb.WriteString(c.node(ch))
	}
	return sb.String()
}

func (c *converter) node(n *html.Node) string {
	switch n.Type {
	case html.TextNode:
		if c.pre > 0 {
			return n.Data
		}
		return markdownChars.Replace(collapseSpace(n.Data))
	case html.ElementNode:
	case html.CommentNode, html.DoctypeNode:
		return ""
	default:
		return c.children(n)
	}

	switch n.DataAtom {
	case atom.Script, atom.Style, atom.Head, atom.Title:
		return ""
	case atom.Br:
		return "\n"
	case atom.Hr:
		return "\n\n---\n\n"
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		level := int(n.Data[1] - '0')
		inner := strings.TrimSpace(c.children(n))
		if inner == "" {
			return ""
		}
		return "\n\n" + strings.Repeat("#", level) + " " + strings.ReplaceAll(inner, "\n", " ") + "\n\n"
	case atom.P, atom.Div, atom.Section, atom.Article, atom.Header, atom.Footer, atom.Main, atom.Figure:
		return block(c.children(n))
	case atom.Blockquote:
		inner := strings.TrimSpace(c.children(n))
		if inner == "" {
			return ""
		}
		return "\n\n> " + strings.ReplaceAll(inner, "\n", "\n> ") + "\n\n"
	case atom.Strong, atom.B:
		return wrap(c.children(n), "**")
	case atom.Em, atom.I:
		return wrap(c.children(n), "_")
	case atom.Code:
		if c.pre > 0 {
			return c.children(n)
		}
		return wrap(textContent(n), "`")
	case atom.Pre:
		c.pre++
		inner := c.children(n)
		c.pre--
		return "\n\n```\n" + strings.Trim(inner, "\n") + "\n```\n\n"
	case atom.A:
		return link(strings.TrimSpace(c.children(n)), attr(n, "href"))
	case atom.Ul:
		return c.list(n, false)
	case atom.Ol:
		return c.list(n, true)
	case atom.Img:
		return c.image(n)
	case atom.Video, atom.Audio, atom.Iframe, atom.Source:
		if src := attr(n, "src"); src != "" {
			return link(n.Data, src)
		}
		return c.children(n)
	case atom.Tr:
		return strings.TrimSpace(c.children(n)) + "\n"
	case atom.Td, atom.Th:
		return strings.TrimSpace(c.children(n)) + "  "
	case atom.Table:
		return block(c.children(n))
	}
	return c.children(n)
}

func (c *converter) list(n *html.Node, ordered bool) string {
	var sb strings.Builder
	indent := strings.Repeat("  ", c.depth)
	index := 1

	c.depth++
	for li := n.FirstChild; li != nil; li = li.NextSibling {
		if li.Type != html.ElementNode || li.DataAtom != atom.Li {
			continue
		}
		marker := "- "
		if ordered {
			marker = fmt.Sprintf("%d. ", index)
			index++
		}
		body := strings.TrimSpace(c.children(li))
		body = blankLines.ReplaceAllString(body, "\n")
		body = strings.ReplaceAll(body, "\n\n", "\n")
		sb.WriteString(indent + marker + body + "\n")
	}
	c.depth--

	if c.depth == 0 {
		return "\n\n" + sb.String() + "\n"
	}
	return "\n" + strings.TrimRight(sb.String(), "\n")
}

func (c *converter) image(n *html.Node) string {
	alt := strings.TrimSpace(attr(n, "alt"))
	if alt == "" {
		alt = "image"
	}

	w, h := dimension(attr(n, "width")), dimension(attr(n, "height"))
	if img, ok := c.images[n]; ok {
		w, h = img.Width, img.Height
	}

	label := "image: " + alt
	switch {
	case w > 0 && h > 0:
		label += fmt.Sprintf(" (%dx%d)", w, h)
	case w > 0:
		label += fmt.Sprintf(" (%dpx wide)", w)
	}
	return markdownChars.Replace("[" + label + "]")
}

func block(inner string) string {
	inner = strings.TrimSpace(inner)
	if inner == "" {
		return ""
	}
	return "\n\n" + inner + "\n\n"
}

func wrap(inner, marker string) string {
	inner = strings.TrimSpace(inner)
	if inner == "" {
		return ""
	}
	return marker + inner + marker
}

func link(text, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return text
	}
	if text == "" {
		text = markdownChars.Replace(href)
	}
	return "[" + text + "](" + href + ")"
}

func collapseSpace(s string) string {
	if s == "" {
		return s
	}
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return " "
	}
	out := strings.Join(fields, " ")
	if isSpace(s[0]) {
		out = " " + out
	}
	if isSpace(s[len(s)-1]) {
		out += " "
	}
	return out
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\n' || b == '\t' || b == '\r' || b == '\f'
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	walk(n, func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
	})
	return sb.String()
}
