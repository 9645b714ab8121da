// Package widget implements the chat exchange loop: capture the typed text,
// echo it into the conversation, send it to the server and render the reply.
//
// The widget owns no UI itself. A host injects the message list, the input
// field and the network sender, and drives the widget from its own
// single-threaded event loop: Submit and Receive run on that loop, while
// Submission.Send may run anywhere.
package widget

import (
	"context"
	"log/slog"
	"strings"
)

// View is the conversation: an append-only list of rendered messages.
type View interface {
	// Append renders msg at the end of the list and returns its element.
	Append(msg Message) *Element
	// Width is the width available to message content, in the view's layout units.
	Width() int
	// ScrollToBottom makes the newest element visible.
	ScrollToBottom()
}

// Input is the text field the user types into.
type Input interface {
	Value() string
	SetValue(s string)
}

// Sender performs the request/response round trip for one message.
type Sender interface {
	Send(ctx context.Context, text string) (string, error)
}

// Sanitizer cleans markup before it enters the view.
type Sanitizer interface {
	Sanitize(s string) string
}

// Widget binds a view, an input field and a sender.
type Widget struct {
	view      View
	input     Input
	sender    Sender
	sanitizer Sanitizer
	logger    *slog.Logger
}

// Option configures a Widget
type Option func(*Widget)

// WithSanitizer filters both user and bot markup through s.
// Without it markup is trusted and rendered as-is.
func WithSanitizer(s Sanitizer) Option {
	return func(w *Widget) {
		w.sanitizer = s
	}
}

// WithLogger sets the logger used for failed round trips
func WithLogger(l *slog.Logger) Option {
	return func(w *Widget) {
		if l != nil {
			w.logger = l
		}
	}
}

// New creates a widget over the given controls.
func New(view View, input Input, sender Sender, opts ...Option) *Widget {
	w := &Widget{
		view:   view,
		input:  input,
		sender: sender,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Submission is one user message on its way to the server.
type Submission struct {
	Text   string
	sender Sender
}

// Reply is the outcome of a Submission's round trip.
type Reply struct {
	Submission *Submission
	Body       string
	Err        error
}

// Submit takes the current input. Blank input is a no-op and returns nil.
// Otherwise the text is echoed into the view as a user message, the input
// is cleared, and the returned Submission is ready to Send.
func (w *Widget) Submit() *Submission {
	text := strings.TrimSpace(w.input.Value())
	if text == "" {
		return nil
	}

	w.view.Append(Message{Role: RoleUser, Markup: w.clean(text)})
	w.input.SetValue("")

	w.logger.Debug("message submitted", "length", len(text))
	return &Submission{Text: text, sender: w.sender}
}

// Send performs the round trip. It never touches the view, so it is safe to
// run off the event loop.
func (s *Submission) Send(ctx context.Context) Reply {
	body, err := s.sender.Send(ctx, s.Text)
	return Reply{Submission: s, Body: body, Err: err}
}

// Receive renders a reply as a bot message, scales its images to the view
// width and scrolls to the bottom. A failed round trip renders nothing.
func (w *Widget) Receive(r Reply) *Element {
	if r.Err != nil {
		w.logger.Warn("round trip failed", "error", r.Err)
		return nil
	}

	el := w.view.Append(Message{Role: RoleBot, Markup: w.clean(r.Body)})
	el.Doc.ScaleImages(w.view.Width())
	w.view.ScrollToBottom()
	return el
}

// Exchange runs Submit, Send and Receive back to back, for hosts without an
// event loop. It returns nil and no error when the input is blank.
func (w *Widget) Exchange(ctx context.Context) (*Element, error) {
	sub := w.Submit()
	if sub == nil {
		return nil, nil
	}
	reply := sub.Send(ctx)
	if reply.Err != nil {
		w.Receive(reply)
		return nil, reply.Err
	}
	return w.Receive(reply), nil
}

func (w *Widget) clean(s string) string {
	if w.sanitizer == nil {
		return s
	}
	return w.sanitizer.Sanitize(s)
}
