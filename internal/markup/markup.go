// Package markup parses message markup into an element tree and prepares it
// for display: image scaling, optional sanitization and conversion to
// markdown for the terminal renderer.
package markup

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is a parsed markup fragment.
type Document struct {
	source string
	nodes  []*html.Node
	images []*Image
}

// fragmentContext is the element the fragment is parsed into, like a message bubble.
var fragmentContext = &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}

// Parse parses s as an HTML fragment. It never fails: markup the parser
// cannot make sense of is kept as literal text.
func Parse(s string) *Document {
	doc := &Document{source: s}

	nodes, err := html.ParseFragment(strings.NewReader(s), fragmentContext)
	if err != nil {
		nodes = []*html.Node{{Type: html.TextNode, Data: s}}
	}
	doc.nodes = nodes

	for _, n := range nodes {
		walk(n, func(n *html.Node) {
			if n.Type == html.ElementNode && n.DataAtom == atom.Img {
				doc.images = append(doc.images, newImage(n))
			}
		})
	}
	return doc
}

// Source returns the markup the document was parsed from.
func (d *Document) Source() string {
	return d.source
}

// Images returns the <img> elements of the document in document order.
func (d *Document) Images() []*Image {
	return d.images
}

// ScaleImages constrains every image to containerWidth, preserving aspect ratio.
func (d *Document) ScaleImages(containerWidth int) {
	for _, img := range d.images {
		img.scale(containerWidth)
	}
}

// HTML renders the (possibly modified) tree back to markup.
func (d *Document) HTML() string {
	var buf bytes.Buffer
	for _, n := range d.nodes {
		if err := html.Render(&buf, n); err != nil {
			return d.source
		}
	}
	return buf.String()
}

// Text returns the text content of the document with whitespace collapsed.
func (d *Document) Text() string {
	var sb strings.Builder
	for _, n := range d.nodes {
		walk(n, func(n *html.Node) {
			if n.Type == html.TextNode && !insideSkipped(n) {
				sb.WriteString(n.Data)
				sb.WriteByte(' ')
			}
		})
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func insideSkipped(n *html.Node) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.DataAtom == atom.Script || p.DataAtom == atom.Style {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
