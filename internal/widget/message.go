package widget

import "github.com/diogo/posechat/internal/markup"

// Role tags who a message came from.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// Message is a markup payload and its role. Never mutated after creation.
type Message struct {
	Role   Role
	Markup string
}

// Element is a Message as it sits in a view. Views create one per Append and
// hand it back, so post-processing never has to go looking for "the last one".
type Element struct {
	Message Message
	Doc     *markup.Document
}

// NewElement parses the message markup into an element.
func NewElement(msg Message) *Element {
	return &Element{Message: msg, Doc: markup.Parse(msg.Markup)}
}

// Images returns the <img> elements inside the element.
func (e *Element) Images() []*markup.Image {
	return e.Doc.Images()
}
