package render

import (
	"sync"

	"github.com/charmbracelet/glamour"
)

// maxIdle bounds the idle renderers kept per option set.
const maxIdle = 4

// renderers holds idle glamour renderers by option set. A TermRenderer must
// not be shared between concurrent Render calls, so each render checks one
// out and hands it back afterwards.
type renderers struct {
	mu   sync.Mutex
	idle map[Options][]*glamour.TermRenderer
}

var pool = &renderers{idle: make(map[Options][]*glamour.TermRenderer)}

func (r *renderers) acquire(opts Options) (*glamour.TermRenderer, error) {
	r.mu.Lock()
	if list := r.idle[opts]; len(list) > 0 {
		tr := list[len(list)-1]
		r.idle[opts] = list[:len(list)-1]
		r.mu.Unlock()
		return tr, nil
	}
	r.mu.Unlock()

	return glamour.NewTermRenderer(
		glamour.WithStylePath(opts.Style),
		glamour.WithWordWrap(opts.Width),
		glamour.WithPreservedNewLines(),
	)
}

func (r *renderers) release(opts Options, tr *glamour.TermRenderer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.idle[opts]) < maxIdle {
		r.idle[opts] = append(r.idle[opts], tr)
	}
}

func (r *renderers) idleCount(opts Options) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.idle[opts])
}

// reset drops every idle renderer.
func reset() {
	pool.mu.Lock()
	pool.idle = make(map[Options][]*glamour.TermRenderer)
	pool.mu.Unlock()
}
