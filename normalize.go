package foxmark

// Policy names a sanitization policy: which tags and attributes survive.
type Policy string

const (
	// PolicyIndex strips all markup, leaving only text content. Used to
	// produce the indexable body.
	PolicyIndex Policy = "index"

	// PolicyViewer keeps a safe subset of formatting tags. Used to render
	// a mark's saved copy.
	PolicyViewer Policy = "viewer"
)

// Sanitizer strips unsafe or unwanted HTML according to a named policy.
type Sanitizer interface {
	Sanitize(html string, policy Policy) string
}

// Normalizer converts raw fetched HTML into a single clean line of
// indexable plain text.
//
// Implementations must be deterministic and idempotent on already-clean
// text, and must tolerate non-UTF-8 input by transcoding rather than
// failing.
type Normalizer interface {
	Clean(raw []byte) (string, error)
}
