package markup

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
)

// pngDataURI builds an inline PNG of the given size.
func pngDataURI(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestParseKeepsSource(t *testing.T) {
	doc := Parse("<p>Hi there!</p>")
	if doc.Source() != "<p>Hi there!</p>" {
		t.Errorf("Source() = %q", doc.Source())
	}
	if doc.HTML() != "<p>Hi there!</p>" {
		t.Errorf("HTML() = %q", doc.HTML())
	}
	if doc.Text() != "Hi there!" {
		t.Errorf("Text() = %q", doc.Text())
	}
}

func TestParsePlainAndEmpty(t *testing.T) {
	if got := Parse("Hello").Markdown(); got != "Hello" {
		t.Errorf("Markdown() = %q, want Hello", got)
	}
	empty := Parse("")
	if empty.Markdown() != "" || len(empty.Images()) != 0 {
		t.Errorf("empty document should render nothing")
	}
}

func TestImagesNaturalSizeFromAttributes(t *testing.T) {
	doc := Parse(`<div><img src="/a.png" alt="a" width="800" height="600"><img src="/b.png" width="120px"></div>`)
	imgs := doc.Images()
	if len(imgs) != 2 {
		t.Fatalf("Images() returned %d images, want 2", len(imgs))
	}
	if imgs[0].NaturalWidth != 800 || imgs[0].NaturalHeight != 600 || imgs[0].Alt != "a" {
		t.Errorf("first image = %+v", imgs[0])
	}
	if imgs[1].NaturalWidth != 120 || imgs[1].NaturalHeight != 0 {
		t.Errorf("second image = %+v", imgs[1])
	}
}

func TestImagesNaturalSizeFromDataURI(t *testing.T) {
	uri := pngDataURI(t, 40, 20)

	doc := Parse(`<img src="` + uri + `">`)
	img := doc.Images()[0]
	if img.NaturalWidth != 40 || img.NaturalHeight != 20 {
		t.Errorf("natural size = %dx%d, want 40x20", img.NaturalWidth, img.NaturalHeight)
	}

	// A single attribute is completed from the decoded aspect ratio.
	doc = Parse(`<img src="` + uri + `" width="10">`)
	img = doc.Images()[0]
	if img.NaturalWidth != 10 || img.NaturalHeight != 5 {
		t.Errorf("natural size = %dx%d, want 10x5", img.NaturalWidth, img.NaturalHeight)
	}
}

func TestScaleImages(t *testing.T) {
	tests := []struct {
		name         string
		markup       string
		container    int
		wantW, wantH int
	}{
		{"wider than container", `<img width="800" height="600">`, 400, 400, 300},
		{"narrower than container", `<img width="200" height="100">`, 400, 200, 100},
		{"exactly container", `<img width="400" height="50">`, 400, 400, 50},
		{"unknown height", `<img width="1000">`, 250, 250, 0},
		{"unknown size", `<img src="/x.png">`, 250, 0, 0},
		{"rounding", `<img width="333" height="100">`, 100, 100, 30},
		{"zero container leaves size", `<img width="800" height="600">`, 0, 800, 600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Parse(tt.markup)
			doc.ScaleImages(tt.container)
			img := doc.Images()[0]
			if img.Width != tt.wantW || img.Height != tt.wantH {
				t.Errorf("scaled size = %dx%d, want %dx%d", img.Width, img.Height, tt.wantW, tt.wantH)
			}
			if img.Width > tt.container && tt.container > 0 {
				t.Errorf("width %d exceeds container %d", img.Width, tt.container)
			}
			if !strings.Contains(img.Style(), "max-width:100%;height:auto") {
				t.Errorf("style = %q", img.Style())
			}
		})
	}
}

func TestScaleImagesPreservesAspectRatio(t *testing.T) {
	for _, container := range []int{50, 97, 320, 640} {
		doc := Parse(`<img width="1280" height="720">`)
		doc.ScaleImages(container)
		img := doc.Images()[0]

		want := float64(720) / float64(1280)
		got := float64(img.Height) / float64(img.Width)
		if diff := got - want; diff > 0.02 || diff < -0.02 {
			t.Errorf("container %d: aspect %f, want %f", container, got, want)
		}
	}
}

func TestScaleImagesKeepsExistingStyleOnce(t *testing.T) {
	doc := Parse(`<img style="border:1px solid red" width="10" height="10">`)
	doc.ScaleImages(100)
	doc.ScaleImages(100)

	style := doc.Images()[0].Style()
	if style != "border:1px solid red;max-width:100%;height:auto" {
		t.Errorf("style = %q", style)
	}
	if !strings.Contains(doc.HTML(), `style="border:1px solid red;max-width:100%;height:auto"`) {
		t.Errorf("HTML() did not carry the style: %s", doc.HTML())
	}
}

func TestMarkdownConversion(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   string
	}{
		{"paragraph", "<p>Hi there!</p>", "Hi there!"},
		{"heading", "<h2>Stress</h2><p>Try this</p>", "## Stress\n\nTry this"},
		{"emphasis", "<p>Do <b>slowly</b> and <em>gently</em></p>", "Do **slowly** and _gently_"},
		{"link", `<a href="https://video.example/1">Watch</a>`, "[Watch](https://video.example/1)"},
		{"unordered list", "<ul><li>one</li><li>two</li></ul>", "- one\n- two"},
		{"ordered list", "<ol><li>one</li><li>two</li></ol>", "1. one\n2. two"},
		{"line break", "a<br>b", "a\nb"},
		{"escapes", "<p>2*3 = snake_case</p>", `2\*3 = snake\_case`},
		{"script dropped", "<p>x</p><script>alert(1)</script>", "x"},
		{"code", "<code>a*b</code>", "`a*b`"},
		{"image placeholder", `<img alt="tree pose" width="80" height="40">`, `\[image: tree pose (80x40)\]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.markup).Markdown(); got != tt.want {
				t.Errorf("Markdown() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMarkdownUsesScaledImageSize(t *testing.T) {
	doc := Parse(`<img alt="cobra" width="800" height="600">`)
	doc.ScaleImages(200)

	if got := doc.Markdown(); !strings.Contains(got, "(200x150)") {
		t.Errorf("Markdown() = %q, want scaled size", got)
	}
}

func TestSanitizer(t *testing.T) {
	p := NewSanitizer()

	out := p.Sanitize(`<b>bold</b><script>alert(1)</script><a href="javascript:alert(1)">x</a>`)
	if strings.Contains(out, "<script>") || strings.Contains(out, "javascript:") {
		t.Errorf("unsafe markup survived: %s", out)
	}
	if !strings.Contains(out, "<b>bold</b>") {
		t.Errorf("safe markup removed: %s", out)
	}

	uri := pngDataURI(t, 2, 2)
	out = p.Sanitize(`<img src="` + uri + `" alt="pose">`)
	if !strings.Contains(out, "data:image/png;base64,") {
		t.Errorf("data image removed: %s", out)
	}
}
