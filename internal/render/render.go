package render

import (
	"strings"

	"github.com/diogo/posechat/internal/markup"
)

// Markdown renders markdown content for terminal display.
func Markdown(content string, opts Options) (string, error) {
	tr, err := pool.acquire(opts)
	if err != nil {
		return "", err
	}
	defer pool.release(opts, tr)

	return tr.Render(content)
}

// Document renders a message body without glamour's surrounding blank lines.
// If the style cannot be loaded the markdown is returned unstyled.
func Document(doc *markup.Document, opts Options) string {
	content := doc.Markdown()
	rendered, err := Markdown(content, opts)
	if err != nil {
		return content
	}
	return strings.Trim(rendered, "\n")
}
