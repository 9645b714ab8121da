package markup

import "github.com/microcosm-cc/bluemonday"

// NewSanitizer returns a user-generated-content policy that also keeps inline
// data: images, which is how the recommendation server ships pose pictures.
func NewSanitizer() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowDataURIImages()
	return p
}
