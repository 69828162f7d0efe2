package bluemonday

import (
	"html"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fwojciec/foxmark"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/transform"
)

// Ensure Normalizer implements foxmark.Normalizer at compile time.
var _ foxmark.Normalizer = (*Normalizer)(nil)

// Spacing inserted around tag boundaries before markup is stripped, so
// that "<div>a</div><div>b</div>" yields "a b" rather than "ab".
var (
	closingTag     = regexp.MustCompile(`(</[a-z]+>)`)
	selfClosingTag = regexp.MustCompile(`(<[a-z]+ ?/>)`)
)

// Normalizer converts raw fetched HTML into one clean line of plain text:
// transcode to valid UTF-8, strip markup with the index policy, and
// collapse all ASCII and Unicode whitespace to single spaces.
type Normalizer struct {
	sanitizer *Sanitizer
}

// NewNormalizer creates a Normalizer using the given sanitizer's index
// policy.
func NewNormalizer(sanitizer *Sanitizer) *Normalizer {
	return &Normalizer{sanitizer: sanitizer}
}

// Clean implements foxmark.Normalizer. It is deterministic and idempotent
// on already-clean text, and never fails on malformed input bytes.
func (n *Normalizer) Clean(raw []byte) (string, error) {
	text := decodeToUTF8(raw)

	// Space out adjacent tags before stripping markup.
	text = closingTag.ReplaceAllString(text, " $1 ")
	text = selfClosingTag.ReplaceAllString(text, " $1")

	text = n.sanitizer.Sanitize(text, foxmark.PolicyIndex)

	// The sanitizer entity-escapes text content; decode it back for
	// indexing and excerpt display.
	text = html.UnescapeString(text)

	// Normalize ASCII and Unicode space separators alike, then collapse
	// runs and trim.
	text = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return ' '
		}
		return r
	}, text)

	return strings.Join(strings.Fields(text), " "), nil
}

// decodeToUTF8 returns raw as a valid UTF-8 string. Valid input passes
// through untouched; otherwise the encoding is sniffed from BOM and meta
// tags and the bytes are transcoded, degrading to replacement characters
// as a last resort.
func decodeToUTF8(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}

	enc, _, _ := charset.DetermineEncoding(raw, "")
	decoded, _, err := transform.Bytes(enc.NewDecoder(), raw)
	if err == nil && utf8.Valid(decoded) {
		return string(decoded)
	}

	return strings.ToValidUTF8(string(raw), string(utf8.RuneError))
}
