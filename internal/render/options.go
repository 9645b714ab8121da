// Package render turns message markdown into styled terminal text.
package render

const (
	defaultStyle = "dark"
	defaultWidth = 80
)

// Options selects how a message is drawn. It is comparable and keys the
// renderer pool.
type Options struct {
	// Style is a glamour standard style ("dark", "light", "notty", ...) or a path to a JSON style
	Style string

	// Width is the word wrap column
	Width int
}

// DefaultOptions returns the dark style wrapped at 80 columns.
func DefaultOptions() Options {
	return Options{Style: defaultStyle, Width: defaultWidth}
}

// WithWidth returns a copy wrapping at width, never below one column.
func (o Options) WithWidth(width int) Options {
	if width < 1 {
		width = 1
	}
	o.Width = width
	return o
}

// WithStyle returns a copy using style.
func (o Options) WithStyle(style string) Options {
	o.Style = style
	return o
}
