package markup

import (
	"bytes"
	"encoding/base64"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// fitStyle is applied to every image so a browser host scales it the same way.
const fitStyle = "max-width:100%;height:auto"

// Image is an <img> element together with its natural and effective size.
// Sizes are zero when unknown.
type Image struct {
	node *html.Node

	Src string
	Alt string

	NaturalWidth  int
	NaturalHeight int

	// Width and Height are the effective size after ScaleImages.
	Width  int
	Height int
}

func newImage(n *html.Node) *Image {
	img := &Image{
		node: n,
		Src:  attr(n, "src"),
		Alt:  attr(n, "alt"),
	}
	img.NaturalWidth, img.NaturalHeight = naturalSize(n, img.Src)
	img.Width, img.Height = img.NaturalWidth, img.NaturalHeight
	return img
}

// Style returns the element's current style attribute.
func (img *Image) Style() string {
	return attr(img.node, "style")
}

func (img *Image) scale(containerWidth int) {
	img.Width, img.Height = img.NaturalWidth, img.NaturalHeight
	if containerWidth > 0 && img.NaturalWidth > containerWidth {
		img.Width = containerWidth
		if img.NaturalHeight > 0 {
			ratio := float64(containerWidth) / float64(img.NaturalWidth)
			img.Height = int(math.Round(float64(img.NaturalHeight) * ratio))
		}
	}

	style := strings.TrimSpace(attr(img.node, "style"))
	if strings.Contains(style, fitStyle) {
		return
	}
	if style != "" && !strings.HasSuffix(style, ";") {
		style += ";"
	}
	setAttr(img.node, "style", style+fitStyle)
}

// naturalSize prefers explicit width/height attributes and falls back to the
// header of an inline data: image. A single attribute is completed from the
// decoded aspect ratio.
func naturalSize(n *html.Node, src string) (int, int) {
	w := dimension(attr(n, "width"))
	h := dimension(attr(n, "height"))
	if w > 0 && h > 0 {
		return w, h
	}

	cfg, ok := decodeDataURI(src)
	if !ok || cfg.Width == 0 || cfg.Height == 0 {
		return w, h
	}

	switch {
	case w > 0:
		return w, int(math.Round(float64(cfg.Height) * float64(w) / float64(cfg.Width)))
	case h > 0:
		return int(math.Round(float64(cfg.Width) * float64(h) / float64(cfg.Height))), h
	default:
		return cfg.Width, cfg.Height
	}
}

func dimension(v string) int {
	v = strings.TrimSuffix(strings.TrimSpace(v), "px")
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func decodeDataURI(src string) (image.Config, bool) {
	if !strings.HasPrefix(src, "data:") {
		return image.Config{}, false
	}
	comma := strings.IndexByte(src, ',')
	if comma < 0 || !strings.HasSuffix(src[:comma], ";base64") {
		return image.Config{}, false
	}

	payload := strings.Map(func(r rune) rune {
		if r == ' ' || r == '\n' || r == '\r' || r == '\t' {
			return -1
		}
		return r
	}, src[comma+1:])

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return image.Config{}, false
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return image.Config{}, false
	}
	return cfg, true
}
