package mock

import "github.com/fwojciec/foxmark"

var _ foxmark.Normalizer = (*Normalizer)(nil)

// Normalizer is a mock implementation of foxmark.Normalizer.
type Normalizer struct {
	CleanFn func(raw []byte) (string, error)
}

func (n *Normalizer) Clean(raw []byte) (string, error) {
	return n.CleanFn(raw)
}

var _ foxmark.Sanitizer = (*Sanitizer)(nil)

// Sanitizer is a mock implementation of foxmark.Sanitizer.
type Sanitizer struct {
	SanitizeFn func(html string, policy foxmark.Policy) string
}

func (s *Sanitizer) Sanitize(html string, policy foxmark.Policy) string {
	return s.SanitizeFn(html, policy)
}
