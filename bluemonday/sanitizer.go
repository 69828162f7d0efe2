// Package bluemonday provides HTML sanitization and the content normalizer
// that turns fetched pages into indexable plain text.
package bluemonday

import (
	"github.com/fwojciec/foxmark"
	"github.com/microcosm-cc/bluemonday"
)

// Ensure Sanitizer implements foxmark.Sanitizer at compile time.
var _ foxmark.Sanitizer = (*Sanitizer)(nil)

// Sanitizer strips unsafe or unwanted HTML per a named policy.
type Sanitizer struct {
	index  *bluemonday.Policy
	viewer *bluemonday.Policy
}

// NewSanitizer creates a Sanitizer with the index and viewer policies.
//
// The index policy strips all markup, inserting a space where a tag is
// removed so adjacent inline text from different tags does not merge. The
// viewer policy keeps a safe formatting subset for rendering a mark's
// saved copy.
func NewSanitizer() *Sanitizer {
	index := bluemonday.StrictPolicy()
	index.AddSpaceWhenStrippingTag(true)

	return &Sanitizer{
		index:  index,
		viewer: bluemonday.UGCPolicy(),
	}
}

// Sanitize applies the named policy. Unknown policies fall back to the
// index policy, the most restrictive one.
func (s *Sanitizer) Sanitize(html string, policy foxmark.Policy) string {
	switch policy {
	case foxmark.PolicyViewer:
		return s.viewer.Sanitize(html)
	default:
		return s.index.Sanitize(html)
	}
}
